// Package ingest drives whole-directory imports: it sniffs each file,
// routes it to the right parser and writes the results through the store.
package ingest

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/gedcom"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/snpdb"
	"github.com/cameronehrlich/genex/store"
)

// FileKind is the sniffed classification of one file.
type FileKind string

const (
	KindGenome       FileKind = "genome"
	KindGedcom       FileKind = "gedcom"
	KindUnrecognized FileKind = "unrecognized"
)

// FileReport describes what happened to one scanned file.
type FileReport struct {
	Path     string   `json:"path"`
	Kind     FileKind `json:"kind"`
	Records  int      `json:"records"`
	Skipped  int      `json:"skipped,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
	Imported bool     `json:"imported"`
}

// Report summarizes one import run.
type Report struct {
	RunID       string       `json:"run_id"`
	Root        string       `json:"root"`
	Files       []FileReport `json:"files"`
	SNPs        int          `json:"snps"`
	Individuals int          `json:"individuals"`
	Families    int          `json:"families"`
	Annotations int          `json:"annotations"`
}

// Options control one run.
type Options struct {
	Genotype genotype.Options
	// Force replaces existing imported data; without it a populated
	// database aborts the run before anything is written.
	Force bool
}

// Orchestrator scans directories and imports what it recognizes.
type Orchestrator struct {
	store  *store.Store
	logger *zap.SugaredLogger
	opts   Options
}

func New(s *store.Store, logger *zap.SugaredLogger, opts Options) *Orchestrator {
	return &Orchestrator{store: s, logger: logger, opts: opts}
}

// Run scans root recursively, classifies every regular file by content
// and imports recognized ones. Multiple files of the same kind import in
// path order, so the last one wins. If nothing in the directory is
// recognized the run fails with ErrUnrecognizedFormat and the store is
// left untouched.
func (o *Orchestrator) Run(root string) (*Report, error) {
	report := &Report{
		RunID: uuid.NewString(),
		Root:  root,
	}

	paths, err := o.scan(root)
	if err != nil {
		return nil, err
	}

	var genomes, trees []string
	for _, path := range paths {
		kind := classify(path, o.opts.Genotype)
		switch kind {
		case KindGenome:
			genomes = append(genomes, path)
		case KindGedcom:
			trees = append(trees, path)
		default:
			report.Files = append(report.Files, FileReport{Path: path, Kind: KindUnrecognized})
		}
	}

	if len(genomes) == 0 && len(trees) == 0 {
		return report, errors.NewFormatError("no genotype or GEDCOM files found in %s", root)
	}

	if !o.opts.Force {
		if err := o.checkEmpty(len(genomes) > 0, len(trees) > 0); err != nil {
			return report, err
		}
	}

	for _, path := range genomes {
		report.Files = append(report.Files, o.importGenome(path, report))
	}
	for _, path := range trees {
		report.Files = append(report.Files, o.importTree(path, report))
	}

	if report.SNPs > 0 {
		count, err := o.store.LoadAnnotations(snpdb.All())
		if err != nil {
			return report, errors.Wrap(err, "failed to load annotations")
		}
		report.Annotations = count
	}

	if err := o.store.SetMetadata(store.MetaLastImportID, report.RunID); err != nil {
		return report, err
	}

	if o.logger != nil {
		o.logger.Infow("Import run finished",
			"run_id", report.RunID,
			"files", len(report.Files),
			"snps", report.SNPs,
			"individuals", report.Individuals,
		)
	}
	return report, nil
}

func (o *Orchestrator) scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot scan %s", root)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// skip hidden directories like .git
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}
	return paths, nil
}

func classify(path string, opts genotype.Options) FileKind {
	if gedcom.Detect(path) {
		return KindGedcom
	}
	if genotype.Detect(path, opts) {
		return KindGenome
	}
	return KindUnrecognized
}

// checkEmpty rejects the run when it would overwrite existing data.
func (o *Orchestrator) checkEmpty(importingGenome, importingTree bool) error {
	if importingGenome {
		n, err := o.store.CountSNPs()
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.WithHint(
				errors.New("database already contains a genome"),
				"Re-run with --force to replace the existing import")
		}
	}
	if importingTree {
		n, err := o.store.CountIndividuals()
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.WithHint(
				errors.New("database already contains a family tree"),
				"Re-run with --force to replace the existing import")
		}
	}
	return nil
}

func (o *Orchestrator) importGenome(path string, report *Report) FileReport {
	fr := FileReport{Path: path, Kind: KindGenome}

	f, err := os.Open(path)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	defer f.Close()

	calls, result, err := genotype.ParseAll(f, filepath.Base(path), o.opts.Genotype)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	fr.Skipped = result.Skipped
	for _, w := range result.Warnings {
		fr.Warnings = append(fr.Warnings, w.String())
	}

	count, err := o.store.ImportGenome(calls, filepath.Base(path))
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	fr.Records = count
	fr.Imported = true
	report.SNPs = count
	return fr
}

func (o *Orchestrator) importTree(path string, report *Report) FileReport {
	fr := FileReport{Path: path, Kind: KindGedcom}

	result, err := gedcom.ParseFile(path)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	for _, w := range result.Warnings {
		fr.Warnings = append(fr.Warnings, w.String())
	}

	individuals, families, err := o.store.ImportTree(result, filepath.Base(path))
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	fr.Records = individuals
	fr.Imported = true
	report.Individuals = individuals
	report.Families = families
	return fr
}
