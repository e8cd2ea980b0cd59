package batch

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gonbc/internal/climate"
	"github.com/alexiusacademia/gonbc/internal/limitstate"
	"github.com/alexiusacademia/gonbc/internal/snow"
)

// Outcome is the evaluation of one member.
type Outcome struct {
	Member      Member
	Snow        *snow.Result // nil when the snow load was given
	Combination *limitstate.Result
}

// Runner evaluates members concurrently against one climate source.
type Runner struct {
	source  climate.Source
	workers int
	logger  *zap.SugaredLogger
}

// NewRunner creates a runner with at most workers members in flight.
func NewRunner(source climate.Source, workers int, logger *zap.SugaredLogger) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{source: source, workers: workers, logger: logger}
}

// Run evaluates every member. Outcomes keep the input order. The first
// failure cancels the remaining members and is returned with the member name.
func (r *Runner) Run(ctx context.Context, members []Member) ([]Outcome, error) {
	outcomes := make([]Outcome, len(members))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, m := range members {
		g.Go(func() error {
			out, err := r.evaluate(ctx, m)
			if err != nil {
				return fmt.Errorf("member %q: %w", m.Name, err)
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *Runner) evaluate(ctx context.Context, m Member) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if err := m.Validate(); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Member: m}
	specified := m.Loads

	if m.Snow != nil {
		opts := []snow.Option{snow.WithLogger(r.logger)}
		if m.Snow.Upper != nil {
			opts = append(opts, snow.WithAccumulationRules(snow.RulesWithMultiLevel(*m.Snow.Upper)...))
		}
		res, err := snow.NewCalculator(r.source, opts...).Calculate(ctx, m.Snow.Site, m.Snow.Roof, m.Snow.Exposure)
		if err != nil {
			return Outcome{}, err
		}
		out.Snow = res
		specified = specified.WithSnow(res.Specified)
	}

	comb, err := limitstate.Evaluate(specified, m.Context)
	if err != nil {
		return Outcome{}, err
	}
	out.Combination = comb

	r.logger.Debugw("member evaluated",
		"member", m.Name, "uls", comb.ULS, "uls_case", comb.GoverningULS.ID,
		"sls", comb.SLS, "sls_case", comb.GoverningSLS.ID)
	return out, nil
}
