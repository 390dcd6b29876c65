// Package commands holds the cobra command tree for the genex CLI.
package commands

import (
	"github.com/cameronehrlich/genex/config"
	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/logger"
	"github.com/cameronehrlich/genex/store"
	"github.com/cameronehrlich/genex/tree"
)

// openStore opens the configured database with migrations applied.
// Callers own the returned store and must Close it.
func openStore() (*store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}
	s, err := store.Open(cfg.Database.Path, logger.Logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}
	return s, cfg, nil
}

// buildEngine loads the family graph for one query session.
func buildEngine(s *store.Store) (*tree.Engine, error) {
	n, err := s.CountIndividuals()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.WithHint(
			errors.New("no family tree imported"),
			"Run 'genex init <dir>' with a GEDCOM file first")
	}
	return tree.NewEngine(s)
}

func genotypeOptions(cfg *config.Config) genotype.Options {
	return genotype.Options{
		SniffLines:   cfg.Import.SniffLines,
		MaxSkipRatio: cfg.Import.MaxSkipRatio,
	}
}
