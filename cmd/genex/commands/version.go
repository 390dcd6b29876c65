package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/snpdb"
	"github.com/cameronehrlich/genex/version"
)

// VersionCmd prints version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show genex version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()

		if display.ShouldOutputJSON(cmd) {
			_ = display.OutputJSON(struct {
				version.Info
				SNPDBVersion string `json:"snpdb_version"`
			}{info, snpdb.Version})
			return
		}
		fmt.Println(info.String())
		fmt.Printf("Platform: %s\n", info.Platform)
		fmt.Printf("Go: %s\n", info.GoVersion)
		fmt.Printf("Curated SNP table: v%s (%s)\n", snpdb.Version, snpdb.Date)
	},
}
