package loads

import (
	"context"
	"fmt"

	"github.com/alexiusacademia/gonbc/internal/catalog"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

// Layer is one material of an assembly. Thickness is only read for
// materials given per volume or per mm.
type Layer struct {
	Material    string  `yaml:"material"`
	ThicknessMM float64 `yaml:"thickness"`
}

// LayerLoad is the dead load contributed by one layer.
type LayerLoad struct {
	Layer
	Load float64 // kPa
}

// DeadLoadBreakdown itemizes a dead load, Article 4.1.4.1.
type DeadLoadBreakdown struct {
	Layers     []LayerLoad
	Partitions float64 // kPa
	Additional float64 // kPa
	Total      float64 // kPa, rounded to 0.01
}

// DeadLoadOptions are the allowances added to the material weights.
type DeadLoadOptions struct {
	Partitions bool    // add the partition allowance of Sentence 4.1.4.1.(3)
	Additional float64 // other permanent loads (kPa)
}

// DeadLoad sums the weights of the assembly's materials and the allowances.
func DeadLoad(ctx context.Context, cat catalog.Catalog, layers []Layer, opts DeadLoadOptions) (*DeadLoadBreakdown, error) {
	if !nbc.Finite(opts.Additional) || opts.Additional < 0 {
		return nil, fmt.Errorf("%w: additional dead load must not be negative, got %.2f kPa", nbc.ErrInvalidInput, opts.Additional)
	}

	b := &DeadLoadBreakdown{Additional: opts.Additional}
	total := opts.Additional
	if opts.Partitions {
		b.Partitions = nbc.PartitionAllowance
		total += nbc.PartitionAllowance
	}

	for _, layer := range layers {
		entry, err := cat.Lookup(ctx, layer.Material)
		if err != nil {
			return nil, err
		}
		if entry.Category != catalog.Material {
			return nil, fmt.Errorf("%w: %q is not a material", nbc.ErrInvalidInput, layer.Material)
		}
		load, err := entry.Pressure(layer.ThicknessMM)
		if err != nil {
			return nil, err
		}
		b.Layers = append(b.Layers, LayerLoad{Layer: layer, Load: load})
		total += load
	}

	b.Total = nbc.Round(total, 2)
	return b, nil
}
