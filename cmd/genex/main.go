package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/cmd/genex/commands"
	"github.com/cameronehrlich/genex/logger"
)

var rootCmd = &cobra.Command{
	Use:   "genex",
	Short: "genex - Local genetic data explorer",
	Long: `genex - Explore consumer genotype exports and GEDCOM family trees.

Everything runs locally against a SQLite database; no data ever leaves
this machine.

Available commands:
  init    - Import genotype and GEDCOM files from a directory
  snp     - Look up one SNP by rsid
  health  - Health risk and carrier panels (including APOE)
  pharma  - Drug metabolism panel
  traits  - Trait panel
  tree    - Family tree queries (summary, ancestors, search)
  status  - Show what has been imported
  db      - Database statistics

Examples:
  genex init ~/genetic-data     # Import everything in a directory
  genex snp rs429358            # Interpret one SNP
  genex health                  # Run the health panel
  genex tree ancestors "Robert" # Walk a person's ancestry`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.SnpCmd)
	rootCmd.AddCommand(commands.HealthCmd)
	rootCmd.AddCommand(commands.PharmaCmd)
	rootCmd.AddCommand(commands.TraitsCmd)
	rootCmd.AddCommand(commands.TreeCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
