package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/diagram"
	"github.com/alexiusacademia/gonbc/internal/snow"
)

const driftProfileSamples = 10

var (
	driftStepHeight   float64
	driftParapet      float64
	driftSourceLength float64
	driftCase         int
	driftX            float64
	driftCb           float64
	driftCws          float64

	driftShowProfile bool
	driftExportFile  string
)

var snowDriftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Calculate the drift accumulation factor on a multi-level roof",
	Long: `Calculate the accumulation factor Ca on a lower roof next to a
higher roof, Article 4.1.6.5.

Ca is largest at the step (Ca0) and decays linearly to 1.0 at the drift
length xd. Load case 1 uses β = 1.0, cases 2 and 3 use β = 0.67.

Examples:
  # Factor 2 m from a 3 m step, upper roof 30 m long
  gonbc snow drift --site Gaspé --step-height 3 --source-length 30 --x 2

  # Full profile, exported as an image
  gonbc snow drift -s Gaspé --step-height 3 --source-length 30 --profile -o drift.png`,
	RunE: runSnowDrift,
}

func init() {
	snowCmd.AddCommand(snowDriftCmd)

	snowDriftCmd.Flags().Float64Var(&driftStepHeight, "step-height", 0, "Height of the upper roof above the lower roof h (m) [required]")
	snowDriftCmd.Flags().Float64Var(&driftParapet, "parapet", 0, "Parapet height on the upper roof hp (m)")
	snowDriftCmd.Flags().Float64Var(&driftSourceLength, "source-length", 0, "Characteristic length of the upper roof lcs (m) [required]")
	snowDriftCmd.Flags().IntVar(&driftCase, "case", 1, "Load case 1, 2 or 3")
	snowDriftCmd.Flags().Float64Var(&driftX, "x", 0, "Distance from the step (m)")
	snowDriftCmd.Flags().Float64Var(&driftCb, "cb", 1, "Basic roof snow load factor of the lower roof")
	snowDriftCmd.Flags().Float64Var(&driftCws, "cws", 1, "Wind exposure factor of the upper roof")

	snowDriftCmd.Flags().BoolVar(&driftShowProfile, "profile", false, "Show the Ca profile along the lower roof")
	snowDriftCmd.Flags().StringVarP(&driftExportFile, "output", "o", "", "Export the profile to file (png, svg, pdf)")

	snowDriftCmd.MarkFlagRequired("step-height")
	snowDriftCmd.MarkFlagRequired("source-length")
}

func runSnowDrift(cmd *cobra.Command, args []string) error {
	source, closeSource, err := openClimate(cmd.Context(), snowSitesFile)
	if err != nil {
		return err
	}
	defer closeSource()

	site, err := source.Lookup(cmd.Context(), snowSite)
	if err != nil {
		return err
	}

	upper := snow.UpperRoof{
		StepHeight:    driftStepHeight,
		ParapetHeight: driftParapet,
		SourceLength:  driftSourceLength,
		Case:          driftCase,
	}
	ss := site.GroundSnowLoad

	ca, err := snow.MultiLevelDriftFactor(upper, driftX, ss, driftCb, driftCws)
	if err != nil {
		return err
	}
	ca0, xd, err := snow.DriftExtent(upper, ss, driftCb, driftCws)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "MULTI-LEVEL ROOF (4.1.6.5):")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Location:\t%s (Ss = %.2f kPa)\n", site.ID, ss)
	fmt.Fprintf(w, "  Step height (h):\t%.2f m\n", upper.StepHeight)
	fmt.Fprintf(w, "  Upper roof length (lcs):\t%.2f m\n", upper.SourceLength)
	fmt.Fprintf(w, "  Load case:\t%d\n", upper.Case)
	fmt.Fprintf(w, "  Peak factor (Ca0):\t%.3f\n", ca0)
	fmt.Fprintf(w, "  Drift length (xd):\t%.2f m\n", xd)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("ACCUMULATION FACTOR", []string{
		fmt.Sprintf("Ca at x = %.2f m  = %.3f", driftX, ca),
	}))

	if !driftShowProfile && driftExportFile == "" {
		return nil
	}

	points, err := driftProfile(upper, ss, xd)
	if err != nil {
		return err
	}
	if driftShowProfile {
		fmt.Fprint(out, diagram.DrawDriftProfile(points))
	}
	if driftExportFile != "" {
		path, err := diagram.ExportDriftProfile(points, driftExportFile)
		if err != nil {
			return fmt.Errorf("exporting drift profile: %w", err)
		}
		fmt.Fprintf(out, "\n  Profile exported to: %s\n", path)
	}
	fmt.Fprintln(out)
	return nil
}

// driftProfile samples Ca from the step to just past the drift length.
func driftProfile(upper snow.UpperRoof, ss, xd float64) ([]diagram.ProfilePoint, error) {
	length := xd
	if length <= 0 {
		length = 1
	}
	step := length / driftProfileSamples

	points := make([]diagram.ProfilePoint, 0, driftProfileSamples+2)
	for i := 0; i <= driftProfileSamples+1; i++ {
		x := float64(i) * step
		ca, err := snow.MultiLevelDriftFactor(upper, x, ss, driftCb, driftCws)
		if err != nil {
			return nil, err
		}
		points = append(points, diagram.ProfilePoint{X: x, Value: ca})
	}
	return points, nil
}
