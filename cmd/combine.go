package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/diagram"
	"github.com/alexiusacademia/gonbc/internal/limitstate"
	"github.com/alexiusacademia/gonbc/internal/loads"
	"github.com/alexiusacademia/gonbc/internal/log"
	"github.com/alexiusacademia/gonbc/internal/nbc"
)

var (
	// Specified loads (kPa)
	combineDead       float64
	combineLive       float64
	combineSnow       float64
	combineWind       float64
	combineEarthquake float64

	// Combination context
	combineCounterDead bool
	combineLiquid      bool
	combineSoilDepth   float64
	combineStorage     bool
	combineExterior    bool
	combineVehicle     bool

	// Options
	combineShowAll     bool
	combineShowDiagram bool
	combineExportFile  string
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Find the governing ULS and SLS load combinations",
	Long: `Combine specified loads into the governing ultimate limit state
(Table 4.1.3.2.-A) and serviceability limit state (Table 4.1.3.4.) loads.

Load Types:
  D - Dead load
  L - Live load
  S - Snow load, including ice and associated rain
  W - Wind load
  E - Earthquake load

Examples:
  # Office floor
  gonbc combine --dead 3.5 --live 2.4

  # Storage roof with all combinations
  gonbc combine -d 0.5 -l 4.8 -s 2.5 -w 1 -e 1 --storage --exterior --all

  # Bar chart of every case
  gonbc combine -d 1.2 -l 1.9 -s 2.6 --diagram -o combinations.png`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().Float64VarP(&combineDead, "dead", "d", 0, "Specified dead load D (kPa)")
	combineCmd.Flags().Float64VarP(&combineLive, "live", "l", 0, "Specified live load L (kPa)")
	combineCmd.Flags().Float64VarP(&combineSnow, "snow", "s", 0, "Specified snow load S (kPa)")
	combineCmd.Flags().Float64VarP(&combineWind, "wind", "w", 0, "Specified wind load W (kPa)")
	combineCmd.Flags().Float64VarP(&combineEarthquake, "earthquake", "e", 0, "Specified earthquake load E (kPa)")

	combineCmd.Flags().BoolVar(&combineCounterDead, "counter-dead", false, "Dead load resists overturning, uplift or load reversal")
	combineCmd.Flags().BoolVar(&combineLiquid, "liquid", false, "Live load from liquids in tanks")
	combineCmd.Flags().Float64Var(&combineSoilDepth, "soil-depth", 0, "Depth of soil supported by the structure (m)")
	combineCmd.Flags().BoolVar(&combineStorage, "storage", false, "Storage area, equipment area or service room")
	combineCmd.Flags().BoolVar(&combineExterior, "exterior", false, "Roof or exterior area")
	combineCmd.Flags().BoolVar(&combineVehicle, "vehicle-access", false, "Exterior area accessible to vehicles")

	combineCmd.Flags().BoolVarP(&combineShowAll, "all", "a", false, "Show all load combination results")
	combineCmd.Flags().BoolVar(&combineShowDiagram, "diagram", false, "Show ASCII bar charts of the combinations")
	combineCmd.Flags().StringVarP(&combineExportFile, "output", "o", "", "Export the ULS chart to file (png, svg, pdf)")
}

func runCombine(cmd *cobra.Command, args []string) error {
	specified, err := loads.New(combineDead, combineLive, combineSnow, combineWind, combineEarthquake)
	if err != nil {
		return err
	}
	ctx := limitstate.Context{
		CounterDead:       combineCounterDead,
		LiquidContainment: combineLiquid,
		SoilDepth:         combineSoilDepth,
		StorageOccupancy:  combineStorage,
		ExteriorExposure:  combineExterior,
		VehicleAccess:     combineVehicle,
	}

	r, err := limitstate.Evaluate(specified, ctx)
	if err != nil {
		return err
	}
	log.Debugw("combinations evaluated", "loads", specified.String(), "factors", fmt.Sprintf("%+v", r.Factors))

	out := cmd.OutOrStdout()

	// Print header
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "          %s LIMIT STATE LOAD COMBINATIONS\n", nbc.Edition)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SPECIFIED LOADS (kPa):")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Dead Load (D)", specified.Dead},
		{"Live Load (L)", specified.Live},
		{"Snow Load (S)", specified.Snow},
		{"Wind Load (W)", specified.Wind},
		{"Earthquake Load (E)", specified.Earthquake},
	} {
		if row.value != 0 {
			fmt.Fprintf(w, "  %s:\t%.2f\n", row.name, row.value)
		}
	}
	w.Flush()
	fmt.Fprintln(out)

	if combineShowAll {
		printFactors(out, r)
		printCases(out, "ULTIMATE LIMIT STATE (Table 4.1.3.2.-A):", r.ULSCases)
		printCases(out, "SERVICEABILITY LIMIT STATE (Table 4.1.3.4.):", r.SLSCases)
	}

	if combineShowDiagram {
		fmt.Fprint(out, diagram.DrawASCIIBarChart("ULS COMBINATIONS", "kPa", caseBars(r.ULSCases)))
		fmt.Fprint(out, diagram.DrawASCIIBarChart("SLS COMBINATIONS", "kPa", caseBars(r.SLSCases)))
		fmt.Fprintln(out)
	}

	// Print result
	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Governing ULS Combination: %s (%s)\n", r.GoverningULS.ID, r.GoverningULS.Description)
	fmt.Fprintf(out, "  Governing SLS Combination: %s (%s)\n", r.GoverningSLS.ID, r.GoverningSLS.Description)
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("GOVERNING LOADS", []string{
		fmt.Sprintf("ULS = %.2f kPa", r.ULS),
		fmt.Sprintf("SLS = %.2f kPa", r.SLS),
	}))
	fmt.Fprintln(out)

	if combineExportFile != "" {
		path, err := diagram.ExportBarChart("ULS Load Combinations", "Factored load (kPa)", caseBars(r.ULSCases), combineExportFile)
		if err != nil {
			return fmt.Errorf("exporting chart: %w", err)
		}
		fmt.Fprintf(out, "  Chart exported to: %s\n\n", path)
	}
	return nil
}

func printFactors(out io.Writer, r *limitstate.Result) {
	f := r.Factors
	fmt.Fprintln(out, "LOAD FACTORS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Dead:\tcase 1 %.2f\tcases 2-4 %.2f\t\n", f.D1, f.D234)
	fmt.Fprintf(w, "  Live:\tcase 2 %.2f\tcase 3 %.2f\tcase 4 %.2f\tcase 5 %.2f\n", f.L2, f.L3, f.L4, f.L5)
	fmt.Fprintf(w, "  Snow:\tcase 2 %.2f\tcase 4 %.2f\tcase 5 %.2f\t\n", f.S2, f.S4, f.S5)
	fmt.Fprintf(w, "  SLS live:\t%.2f\t\t\n", r.SLSLiveFactor)
	w.Flush()
	fmt.Fprintln(out)
}

func printCases(out io.Writer, title string, cases []limitstate.Case) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tLoad (kPa)\n")
	fmt.Fprintf(w, "  ─\t───────────\t──────────\n")
	for _, c := range cases {
		marker := ""
		if c.Governs {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", c.ID, c.Description, c.Value, marker)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func caseBars(cases []limitstate.Case) []diagram.Bar {
	bars := make([]diagram.Bar, len(cases))
	for i, c := range cases {
		bars[i] = diagram.Bar{Label: c.ID, Value: c.Value, Highlight: c.Governs}
	}
	return bars
}
