package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/errors"
)

// DbCmd groups database maintenance operations.
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the genex database",
	Long: `Database operations: statistics and diagnostics.

Examples:
  genex db stats    # Show table counts and storage size`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbStatsCmd)
}

type dbStats struct {
	Path       string         `json:"path"`
	SizeBytes  int64          `json:"size_bytes"`
	Tables     map[string]int `json:"tables"`
	Migrations int            `json:"migrations"`
}

func runDbStats(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	stats := dbStats{
		Path:   cfg.Database.Path,
		Tables: make(map[string]int),
	}
	if info, err := os.Stat(cfg.Database.Path); err == nil {
		stats.SizeBytes = info.Size()
	}

	for _, table := range []string{"snps", "annotations", "individuals", "families", "family_children", "metadata"} {
		var count int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return errors.Wrapf(err, "failed to count %s", table)
		}
		stats.Tables[table] = count
	}
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&stats.Migrations); err != nil {
		return errors.Wrap(err, "failed to count migrations")
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(stats)
	}

	pterm.DefaultSection.Println("Database Statistics")
	pterm.Info.Printf("Path: %s\n", stats.Path)
	pterm.Info.Printf("Size: %.1f KiB\n", float64(stats.SizeBytes)/1024)
	pterm.Info.Printf("Migrations applied: %d\n", stats.Migrations)
	for _, table := range []string{"snps", "annotations", "individuals", "families", "family_children", "metadata"} {
		pterm.Info.Printf("  %-16s %d rows\n", table, stats.Tables[table])
	}
	return nil
}
