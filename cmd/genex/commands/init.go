package commands

import (
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/config"
	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/ingest"
	"github.com/cameronehrlich/genex/logger"
)

// InitCmd imports a directory of genetic data files into the local database.
var InitCmd = &cobra.Command{
	Use:   "init <directory>",
	Short: "Import genotype and GEDCOM files from a directory",
	Long: `Scan a directory recursively, detect genotype exports and GEDCOM family
tree files by content, and import them into the local database.

Files are classified by sniffing their contents, not by extension.
Unrecognized files are skipped and reported. Re-running against a
populated database requires --force, which replaces the prior import
wholesale.

Examples:
  genex init ~/genetic-data          # First import
  genex init ~/genetic-data --force  # Replace a prior import`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var initForceFlag bool

func init() {
	InitCmd.Flags().BoolVar(&initForceFlag, "force", false, "Replace existing imported data")
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := config.WriteDefault(); err != nil {
		logger.Warnw("Could not write default config", "error", err)
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	orch := ingest.New(s, logger.Logger, ingest.Options{
		Genotype: genotypeOptions(cfg),
		Force:    initForceFlag,
	})

	report, err := orch.Run(args[0])
	if err != nil {
		if report != nil && errors.IsUnrecognizedFormat(err) && display.ShouldOutputJSON(cmd) {
			_ = display.OutputJSON(report)
		}
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(report)
	}
	display.RenderImportReport(report)
	return nil
}
