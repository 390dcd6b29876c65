package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/store"
)

// StatusCmd shows what has been imported.
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show imported data summary",
	Long: `Show what the local database currently holds: SNP and individual counts,
source files, annotation table version and import timestamps.

Examples:
  genex status
  genex status --json`,
	RunE: runStatus,
}

type statusOutput struct {
	DatabasePath string            `json:"database_path"`
	SNPs         int               `json:"snps"`
	Annotations  int               `json:"annotations"`
	Individuals  int               `json:"individuals"`
	Families     int               `json:"families"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out := statusOutput{DatabasePath: cfg.Database.Path}
	if out.SNPs, err = s.CountSNPs(); err != nil {
		return err
	}
	if out.Annotations, err = s.CountAnnotations(); err != nil {
		return err
	}
	if out.Individuals, err = s.CountIndividuals(); err != nil {
		return err
	}
	if out.Families, err = s.CountFamilies(); err != nil {
		return err
	}
	if out.Metadata, err = s.AllMetadata(); err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out)
	}

	pterm.DefaultSection.Println("genex status")
	pterm.Info.Printf("Database: %s\n", out.DatabasePath)

	if out.SNPs == 0 && out.Individuals == 0 {
		pterm.Warning.Println("No data imported yet. Run 'genex init <dir>' to get started.")
		return nil
	}

	if out.SNPs > 0 {
		pterm.Info.Printf("Genome: %d SNPs from %s (imported %s)\n",
			out.SNPs, out.Metadata[store.MetaGenomeSource], out.Metadata[store.MetaGenomeImportedAt])
		pterm.Info.Printf("Annotations: %d (curated table v%s)\n",
			out.Annotations, out.Metadata[store.MetaSNPDBVersion])
	} else {
		pterm.Warning.Println("No genome imported")
	}

	if out.Individuals > 0 {
		pterm.Info.Printf("Family tree: %d individuals, %d families from %s (imported %s)\n",
			out.Individuals, out.Families, out.Metadata[store.MetaTreeSource], out.Metadata[store.MetaTreeImportedAt])
	} else {
		pterm.Warning.Println("No family tree imported")
	}
	return nil
}
