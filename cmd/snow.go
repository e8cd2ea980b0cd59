package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/diagram"
	"github.com/alexiusacademia/gonbc/internal/log"
	"github.com/alexiusacademia/gonbc/internal/nbc"
	"github.com/alexiusacademia/gonbc/internal/snow"
)

var (
	// Site
	snowSite      string
	snowSitesFile string

	// Roof geometry
	snowHeight float64
	snowLength float64
	snowWidth  float64
	snowSlope  float64

	// Exposure
	snowImportance          string
	snowLimitState          string
	snowExposed             bool
	snowNorth               bool
	snowRural               bool
	snowSlippery            bool
	snowObstructionHeight   float64
	snowObstructionDistance float64
	snowDriftDistance       float64
	snowProjection          float64
	snowDome                bool
	snowSliding             bool
	snowValley              bool
	snowMeltwater           bool

	snowShowAll bool
)

var snowCmd = &cobra.Command{
	Use:   "snow",
	Short: "Calculate the specified snow load on a roof",
	Long: `Calculate the specified snow load S on a roof per NBC 2020
Sentence 4.1.6.2.(1):

  S = Is·[Ss·(Cb·Cw·Cs·Ca) + Sr]

where Sr is capped at Ss·(Cb·Cw·Cs·Ca). The rain-only load of
Sentence 4.1.6.4.(1) is reported too; the larger of the two governs.

Ground snow load Ss, rain load Sr and one-day rainfall are read from the
climate table of the database (see 'gonbc climate') or from --sites.

Examples:
  # Sheltered flat roof in Montréal
  gonbc snow --site Montréal --height 6 --length 30 --width 20

  # Exposed slippery roof in a rural area, with all factors
  gonbc snow --site Gaspé -H 5 -l 5 -w 5 --slope 25 --slippery \
    --exposed --rural --obstruction-height 0.86 --obstruction-distance 1 --all

  # Post-disaster building at SLS
  gonbc snow --site Québec -H 8 -l 40 -w 25 --importance post-disaster --limit-state SLS`,
	RunE: runSnow,
}

func init() {
	rootCmd.AddCommand(snowCmd)

	snowCmd.PersistentFlags().StringVarP(&snowSite, "site", "s", "", "Location name in the climate table [required]")
	snowCmd.PersistentFlags().StringVar(&snowSitesFile, "sites", "", "Read climate data from a YAML seed file instead of the database")

	snowCmd.Flags().Float64VarP(&snowHeight, "height", "H", 0, "Mean roof height above grade (m) [required]")
	snowCmd.Flags().Float64VarP(&snowLength, "length", "l", 0, "Larger plan dimension of the roof l (m) [required]")
	snowCmd.Flags().Float64VarP(&snowWidth, "width", "w", 0, "Smaller plan dimension of the roof w (m) [required]")
	snowCmd.Flags().Float64Var(&snowSlope, "slope", 0, "Roof slope α (degrees)")

	snowCmd.Flags().StringVar(&snowImportance, "importance", "normal", "Importance category: low, normal, high, post-disaster")
	snowCmd.Flags().StringVar(&snowLimitState, "limit-state", "ULS", "Limit state: ULS or SLS")
	snowCmd.Flags().BoolVar(&snowExposed, "exposed", false, "Roof exposed to the wind on all sides")
	snowCmd.Flags().BoolVar(&snowNorth, "north", false, "Site north of the tree line")
	snowCmd.Flags().BoolVar(&snowRural, "rural", false, "Site in an open rural area")
	snowCmd.Flags().BoolVar(&snowSlippery, "slippery", false, "Unobstructed slippery roof")
	snowCmd.Flags().Float64Var(&snowObstructionHeight, "obstruction-height", 0, "Height of the obstruction above the roof (m)")
	snowCmd.Flags().Float64Var(&snowObstructionDistance, "obstruction-distance", 0, "Distance to the obstruction (m)")
	snowCmd.Flags().Float64Var(&snowDriftDistance, "drift-distance", -1, "Distance to a higher roof or other drift source (m), negative when none")
	snowCmd.Flags().Float64Var(&snowProjection, "projection", 0, "Height of a rooftop projection (m)")
	snowCmd.Flags().BoolVar(&snowDome, "dome", false, "Gable, dome or multi-slope roof")
	snowCmd.Flags().BoolVar(&snowSliding, "sliding", false, "Snow slides onto the roof from a higher roof")
	snowCmd.Flags().BoolVar(&snowValley, "valley", false, "Roof valley")
	snowCmd.Flags().BoolVar(&snowMeltwater, "meltwater", false, "Meltwater from an adjacent roof")

	snowCmd.Flags().BoolVarP(&snowShowAll, "all", "a", false, "Show every factor")

	snowCmd.MarkPersistentFlagRequired("site")
	snowCmd.MarkFlagRequired("height")
	snowCmd.MarkFlagRequired("length")
	snowCmd.MarkFlagRequired("width")
}

func snowExposure() (snow.ExposureConditions, error) {
	importance, err := nbc.ParseImportance(snowImportance)
	if err != nil {
		return snow.ExposureConditions{}, err
	}
	state, err := nbc.ParseLimitState(snowLimitState)
	if err != nil {
		return snow.ExposureConditions{}, err
	}

	exp := snow.ExposureConditions{
		Importance:          importance,
		LimitState:          state,
		ExposedToWind:       snowExposed,
		NorthOfTreeLine:     snowNorth,
		RuralArea:           snowRural,
		SlipperyRoof:        snowSlippery,
		ObstructionDistance: snowObstructionDistance,
		ObstructionHeight:   snowObstructionHeight,
		ProjectionHeight:    snowProjection,
		Dome:                snowDome,
		Sliding:             snowSliding,
		Valley:              snowValley,
		Meltwater:           snowMeltwater,
	}
	if snowDriftDistance >= 0 {
		exp.Drifting = true
		exp.DriftingDistance = snowDriftDistance
	}
	return exp, nil
}

func runSnow(cmd *cobra.Command, args []string) error {
	exp, err := snowExposure()
	if err != nil {
		return err
	}
	geom := snow.RoofGeometry{
		Height:           snowHeight,
		LargerDimension:  snowLength,
		SmallerDimension: snowWidth,
		SlopeDegrees:     snowSlope,
	}

	source, closeSource, err := openClimate(cmd.Context(), snowSitesFile)
	if err != nil {
		return err
	}
	defer closeSource()

	calc := snow.NewCalculator(source, snow.WithLogger(log.GetSugaredLogger()))
	r, err := calc.Calculate(cmd.Context(), snowSite, geom, exp)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// Print header
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "          %s SPECIFIED SNOW LOAD (4.1.6)\n", nbc.Edition)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SITE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Location:\t%s\n", r.Site.ID)
	fmt.Fprintf(w, "  Ground snow load (Ss):\t%.2f kPa\n", r.Site.GroundSnowLoad)
	fmt.Fprintf(w, "  Associated rain load (Sr):\t%.2f kPa\n", r.Site.AssociatedRainLoad)
	fmt.Fprintf(w, "  One-day rainfall:\t%.0f mm\n", r.Site.RainfallMM)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "ROOF:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Height:\t%.2f m\n", geom.Height)
	fmt.Fprintf(w, "  Plan (l × w):\t%.2f × %.2f m\n", geom.LargerDimension, geom.SmallerDimension)
	fmt.Fprintf(w, "  Characteristic length (lc):\t%.2f m\n", geom.CharacteristicLength())
	fmt.Fprintf(w, "  Slope (α):\t%.1f°\n", geom.SlopeDegrees)
	fmt.Fprintf(w, "  Importance:\t%s (%s)\n", exp.Importance, exp.LimitState)
	w.Flush()
	fmt.Fprintln(out)

	if snowShowAll {
		fmt.Fprintln(out, "FACTORS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Factor\tValue\tReference\n")
		fmt.Fprintf(w, "  ──────\t─────\t─────────\n")
		fmt.Fprintf(w, "  γ (kN/m³)\t%.3f\t4.1.6.13.(1)\n", r.Gamma)
		fmt.Fprintf(w, "  Is\t%.2f\tTable 4.1.6.2.-A\n", r.Is)
		fmt.Fprintf(w, "  Cw\t%.2f\t4.1.6.2.(3), (4)\n", r.Cw)
		fmt.Fprintf(w, "  Cb\t%.3f\t4.1.6.2.(2)\n", r.Cb)
		fmt.Fprintf(w, "  Ca\t%.2f\t4.1.6.2.(8)\n", r.Ca)
		fmt.Fprintf(w, "  Cs\t%.3f\t4.1.6.2.(5) to (7)\n", r.Cs)
		fmt.Fprintf(w, "  Ss·Cb·Cw·Cs·Ca\t%.3f\t\n", r.SnowTerm)
		capped := ""
		if r.RainCapped {
			capped = " (Sr)"
		}
		fmt.Fprintf(w, "  Rain term\t%.3f%s\t\n", r.RainTerm, capped)
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	governs := "snow and rain, 4.1.6.2.(1)"
	if r.GoverningRain {
		governs = "rain only, 4.1.6.4.(1)"
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("SPECIFIED LOAD", []string{
		fmt.Sprintf("Snow load S   = %.2f kPa", r.SnowLoad),
		fmt.Sprintf("Rain load     = %.2f kPa", r.RainLoad),
		fmt.Sprintf("Governing     = %.2f kPa (%s)", r.Specified, governs),
	}))
	fmt.Fprintln(out)
	return nil
}
