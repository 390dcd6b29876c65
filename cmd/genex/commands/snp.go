package commands

import (
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/analysis"
	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/errors"
)

// SnpCmd looks up and interprets a single SNP by rsid.
var SnpCmd = &cobra.Command{
	Use:   "snp <rsid>",
	Short: "Look up one SNP and interpret it against the curated table",
	Long: `Fetch the genotype call for an rsid and interpret it against the curated
annotation table: zygosity, risk allele count, risk level and a plain-text
interpretation.

A SNP the array did not test reports "not tested". A tested SNP with no
curated annotation shows the raw genotype.

Examples:
  genex snp rs429358
  genex snp rs4988235 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSnp,
}

func runSnp(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	finding, err := analysis.LookupSNP(s, args[0])
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrNotTested):
		return errors.WithHint(err, "This rsid is not in the imported genome; the array may not test it")
	case errors.Is(err, errors.ErrNotAnnotated):
		// raw call still available
	default:
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(finding)
	}
	if !finding.Annotated {
		display.RenderRawCall(&finding.Call)
		return nil
	}
	display.RenderFinding(finding)
	return nil
}
