package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/catalog"
	"github.com/alexiusacademia/gonbc/internal/diagram"
	"github.com/alexiusacademia/gonbc/internal/loads"
	"github.com/alexiusacademia/gonbc/internal/log"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

var (
	// Dead load
	deadMaterials  []string
	deadPartitions bool
	deadAdditional float64

	// Live load
	liveUse        string
	liveArea       float64
	liveImportance string

	listCategory string
)

var loadsCmd = &cobra.Command{
	Use:   "loads",
	Short: "Dead and live loads from the load catalog",
	Long: `Derive specified dead loads (Article 4.1.4.1) and live loads
(Article 4.1.5.3) from the load_catalog table of the loads database.`,
}

var loadsImportCmd = &cobra.Command{
	Use:   "import <catalog.yaml>",
	Short: "Import or update catalog entries from a YAML seed file",
	Long: `Import catalog entries from a YAML seed file. Existing entries are
replaced.

Seed file format:
  entries:
    - id: concrete
      category: material     # or occupancy
      load: 23600
      unit: N/m3             # kPa, N/m2, N/m3 or N/m2/mm`,
	Args: cobra.ExactArgs(1),
	RunE: runLoadsImport,
}

var loadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	RunE:  runLoadsList,
}

var loadsDeadCmd = &cobra.Command{
	Use:   "dead",
	Short: "Sum the dead load of an assembly",
	Long: `Sum the weights of the materials of an assembly, plus the partition
allowance of Sentence 4.1.4.1.(3) and any other permanent load.

Materials given per volume (N/m3) or per mm (N/m2/mm) need a thickness in
mm after a colon.

Examples:
  gonbc loads dead -m concrete:150 -m "built-up roofing" --partitions
  gonbc loads dead -m plywood:19 -m "gypsum board:13" --additional 0.25`,
	RunE: runLoadsDead,
}

var loadsLiveCmd = &cobra.Command{
	Use:   "live",
	Short: "Uniform live load for an occupancy",
	Long: `Look up the uniform live load of an occupancy (Table 4.1.5.3).
Low importance buildings use 0.8 of the load. Dining areas up to 100 m²
use 2.4 kPa (Sentence 4.1.5.6).

Examples:
  gonbc loads live --use office
  gonbc loads live --use "dining area" --area 80 --importance low`,
	RunE: runLoadsLive,
}

func init() {
	rootCmd.AddCommand(loadsCmd)
	loadsCmd.AddCommand(loadsImportCmd, loadsListCmd, loadsDeadCmd, loadsLiveCmd)

	loadsListCmd.Flags().StringVar(&listCategory, "category", "", "Only list one category: material or occupancy")

	loadsDeadCmd.Flags().StringArrayVarP(&deadMaterials, "material", "m", nil, "Material id, with :thickness in mm when needed (repeatable)")
	loadsDeadCmd.Flags().BoolVar(&deadPartitions, "partitions", false, "Add the 1.0 kPa partition allowance")
	loadsDeadCmd.Flags().Float64Var(&deadAdditional, "additional", 0, "Other permanent loads (kPa)")

	loadsLiveCmd.Flags().StringVarP(&liveUse, "use", "u", "", "Occupancy id [required]")
	loadsLiveCmd.Flags().Float64Var(&liveArea, "area", 0, "Loaded area (m²)")
	loadsLiveCmd.Flags().StringVar(&liveImportance, "importance", "normal", "Importance category: low, normal, high, post-disaster")
	loadsLiveCmd.MarkFlagRequired("use")
}

func runLoadsImport(cmd *cobra.Command, args []string) error {
	entries, err := catalog.LoadSeedFile(args[0])
	if err != nil {
		return err
	}

	store, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Upsert(cmd.Context(), entries...); err != nil {
		return err
	}
	log.Infow("load catalog imported", "entries", len(entries), "db", cfg.DatabasePath)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d catalog entries into %s\n", len(entries), cfg.DatabasePath)
	return nil
}

func runLoadsList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), listCategory)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Id\tCategory\tLoad\tUnit\n")
	fmt.Fprintf(w, "  ──\t────────\t────\t────\n")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%s\t%g\t%s\n", e.ID, e.Category, e.Load, e.Unit)
	}
	return w.Flush()
}

// parseLayer splits "material:thickness". Ids may contain colons; only
// a numeric suffix is read as a thickness.
func parseLayer(s string) loads.Layer {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return loads.Layer{Material: s}
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
	if err != nil {
		return loads.Layer{Material: s}
	}
	return loads.Layer{Material: strings.TrimSpace(s[:i]), ThicknessMM: t}
}

func runLoadsDead(cmd *cobra.Command, args []string) error {
	layers := make([]loads.Layer, len(deadMaterials))
	for i, m := range deadMaterials {
		layers[i] = parseLayer(m)
	}

	store, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	b, err := loads.DeadLoad(cmd.Context(), store, layers, loads.DeadLoadOptions{
		Partitions: deadPartitions,
		Additional: deadAdditional,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "DEAD LOAD (4.1.4.1):")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, l := range b.Layers {
		name := l.Material
		if l.ThicknessMM > 0 {
			name = fmt.Sprintf("%s %g mm", l.Material, l.ThicknessMM)
		}
		fmt.Fprintf(w, "  %s\t%.2f kPa\n", name, l.Load)
	}
	if b.Partitions > 0 {
		fmt.Fprintf(w, "  Partitions\t%.2f kPa\n", b.Partitions)
	}
	if b.Additional > 0 {
		fmt.Fprintf(w, "  Additional\t%.2f kPa\n", b.Additional)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("DEAD LOAD", []string{fmt.Sprintf("D = %.2f kPa", b.Total)}))
	fmt.Fprintln(out)
	return nil
}

func runLoadsLive(cmd *cobra.Command, args []string) error {
	importance, err := nbc.ParseImportance(liveImportance)
	if err != nil {
		return err
	}

	store, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	l, err := loads.LiveLoad(cmd.Context(), store, liveUse, liveArea, importance)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("LIVE LOAD (4.1.5.3)", []string{
		fmt.Sprintf("Use        %s", liveUse),
		fmt.Sprintf("Importance %s", importance),
		fmt.Sprintf("L = %.1f kPa", l),
	}))
	fmt.Fprintln(out)
	return nil
}
