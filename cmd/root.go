package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gonbc/internal/catalog"
	"github.com/alexiusacademia/gonbc/internal/climate"
	"github.com/alexiusacademia/gonbc/internal/config"
	"github.com/alexiusacademia/gonbc/internal/log"
	"github.com/alexiusacademia/gonbc/internal/nbc"
	"github.com/alexiusacademia/gonbc/internal/version"
)

var (
	cfg *config.Config

	// Persistent flags, override the environment
	dbPath    string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "gonbc",
	Short: "NBC 2020 snow load and limit state combination tool",
	Long: `gonbc - Go National Building Code load calculator

A CLI tool for structural design loads per the National Building Code
of Canada (NBC 2020, Part 4, Section 4.1).

This tool helps structural engineers determine:
  - Specified snow and rain loads on roofs (Subsection 4.1.6)
  - Drift accumulation on multi-level roofs (Article 4.1.6.5)
  - Dead and live loads from a material and occupancy catalog
  - Governing ULS and SLS load combinations (Subsection 4.1.3)

Climate data and the load catalog are kept in a SQLite database
(GONBC_DB, default loads.db).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.DatabasePath = dbPath
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debugMode
		}
		return log.Init(cfg.Debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gonbc v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go National Building Code Load Calculator               ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", nbc.Edition+", Part 4, Section 4.1")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Specified snow and rain loads with every roof factor")
		fmt.Fprintln(out, "    • Multi-level roof drift profiles")
		fmt.Fprintln(out, "    • Dead and live loads from the load catalog")
		fmt.Fprintln(out, "    • Governing ULS and SLS load combinations")
		fmt.Fprintln(out, "    • Batch evaluation of members from a YAML file")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gonbc --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "loads.db", "SQLite database with climate data and the load catalog (env GONBC_DB)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Trace every factor of a calculation (env GONBC_DEBUG)")
}

// openClimate opens the climate table behind an LRU cache, or a seed file
// when one is given.
func openClimate(ctx context.Context, seedFile string) (climate.Source, func(), error) {
	if seedFile != "" {
		sites, err := climate.LoadSeedFile(seedFile)
		if err != nil {
			return nil, nil, err
		}
		log.Debugf("loaded %d sites from %s", len(sites), seedFile)
		return climate.NewMapSource(sites...), func() {}, nil
	}

	store, err := climate.OpenSQLite(ctx, cfg.DatabasePath, cfg.LookupTimeout)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := store.Close(); err != nil {
			log.Warnf("closing %s: %v", cfg.DatabasePath, err)
		}
	}
	return climate.NewCachedSource(store, cfg.CacheSize), closer, nil
}

func openCatalog(ctx context.Context) (*catalog.SQLiteStore, error) {
	return catalog.OpenSQLite(ctx, cfg.DatabasePath, cfg.LookupTimeout)
}
