package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/batch"
	"github.com/alexiusacademia/gonbc/internal/log"
)

var (
	batchWorkers   int
	batchSitesFile string
)

var batchCmd = &cobra.Command{
	Use:   "batch <members.yaml>",
	Short: "Evaluate many members from a YAML file in parallel",
	Long: `Evaluate every member of a scenario file: its specified snow load
(when a snow block is given) and its governing ULS and SLS combinations.

The first failing member stops the batch.

Scenario file format:
  members:
    - name: R1
      loads: {dead: 1.2, live: 1.0}
      snow:
        site: Gaspé
        roof: {height: 5, larger_dimension: 20, smaller_dimension: 12, slope: 10}
        exposure: {importance: normal, exposed_to_wind: true, rural_area: true}
        upper_roof: {step_height: 3, source_length: 30, case: 1}   # optional
      context: {exterior: true, storage: false, soil_depth: 0}

Examples:
  gonbc batch members.yaml
  gonbc batch members.yaml --workers 4 --sites sites.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "j", 0, "Members evaluated in parallel (env GONBC_WORKERS)")
	batchCmd.Flags().StringVar(&batchSitesFile, "sites", "", "Read climate data from a YAML seed file instead of the database")
}

func runBatch(cmd *cobra.Command, args []string) error {
	members, err := batch.LoadFile(args[0])
	if err != nil {
		return err
	}

	source, closeSource, err := openClimate(cmd.Context(), batchSitesFile)
	if err != nil {
		return err
	}
	defer closeSource()

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = batchWorkers
	}

	log.Debugf("evaluating %d members with %d workers", len(members), workers)
	outcomes, err := batch.NewRunner(source, workers, log.GetSugaredLogger()).Run(cmd.Context(), members)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Member\tS (kPa)\tULS (kPa)\tCase\tSLS (kPa)\tCase\n")
	fmt.Fprintf(w, "  ──────\t───────\t─────────\t────\t─────────\t────\n")
	for _, o := range outcomes {
		c := o.Combination
		mark := ""
		if o.Snow != nil {
			mark = " *"
		}
		fmt.Fprintf(w, "  %s\t%.2f%s\t%.2f\t%s\t%.2f\t%s\n",
			o.Member.Name, c.Loads.Snow, mark, c.ULS, c.GoverningULS.ID, c.SLS, c.GoverningSLS.ID)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  * snow load computed from the site and roof")
	fmt.Fprintln(out)
	return nil
}
