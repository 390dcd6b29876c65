package commands

import (
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/analysis"
	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/snpdb"
)

// PharmaCmd runs the pharmacogenomics panel.
var PharmaCmd = &cobra.Command{
	Use:   "pharma",
	Short: "Analyze drug metabolism SNPs",
	Long: `Interpret the curated pharmacogenomic SNPs present in the imported
genome: CYP2C19, CYP2D6, CYP2C9, SLCO1B1, VKORC1, DPYD and related genes.

Examples:
  genex pharma
  genex pharma --json`,
	RunE: runCategory(snpdb.CategoryPharma),
}

// TraitsCmd runs the trait panel.
var TraitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "Show curated trait SNPs",
	Long: `Show the curated trait SNPs present in the imported genome: caffeine
metabolism, lactase persistence, alcohol flush, muscle fiber type, taste
perception and similar non-clinical traits.

Examples:
  genex traits
  genex traits --json`,
	RunE: runCategory(snpdb.CategoryTrait),
}

func runCategory(category string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := analysis.AnalyzeCategory(s, category)
		if err != nil {
			return err
		}

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(report)
		}
		display.RenderCategoryReport(report)
		return nil
	}
}
