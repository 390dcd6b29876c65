package commands

import (
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/analysis"
	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/snpdb"
)

// HealthCmd runs the health and carrier panels plus APOE status.
var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Analyze health risk and carrier status SNPs",
	Long: `Interpret every curated health and carrier SNP present in the imported
genome, including combined APOE epsilon status from rs429358 and rs7412.

Results are screening signals from a consumer array, not diagnoses.

Examples:
  genex health
  genex health --carrier-only
  genex health --json`,
	RunE: runHealth,
}

var healthCarrierOnlyFlag bool

func init() {
	HealthCmd.Flags().BoolVar(&healthCarrierOnlyFlag, "carrier-only", false, "Show only the carrier status panel")
}

type healthOutput struct {
	APOE    *analysis.APOEReport     `json:"apoe,omitempty"`
	Health  *analysis.CategoryReport `json:"health,omitempty"`
	Carrier *analysis.CategoryReport `json:"carrier,omitempty"`
}

func runHealth(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out := healthOutput{}

	if !healthCarrierOnlyFlag {
		apoe, err := analysis.DetermineAPOEStatus(s)
		if err != nil && !errors.Is(err, errors.ErrNotTested) {
			return err
		}
		out.APOE = apoe

		health, err := analysis.AnalyzeCategory(s, snpdb.CategoryHealth)
		if err != nil {
			return err
		}
		out.Health = health
	}

	carrier, err := analysis.AnalyzeCategory(s, snpdb.CategoryCarrier)
	if err != nil {
		return err
	}
	out.Carrier = carrier

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out)
	}
	if out.APOE != nil {
		display.RenderAPOE(out.APOE)
	}
	if out.Health != nil {
		display.RenderCategoryReport(out.Health)
	}
	display.RenderCategoryReport(out.Carrier)
	return nil
}
