// Package genotype parses consumer genotype export files (23andMe-style)
// into typed genotype calls.
//
// The format is weakly specified: comment-prefixed header lines followed by
// tab- or space-delimited lines of rsid, chromosome, position, genotype.
// Malformed lines are skipped with warnings; a file whose malformed-line
// ratio exceeds the configured ceiling is rejected wholesale so an unrelated
// text file is never silently accepted.
package genotype

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cameronehrlich/genex/errors"
)

// Options controls sniffing and tolerance thresholds.
type Options struct {
	// SniffLines is how many leading lines must contain either a recognized
	// header comment or a well-formed data line before the file is rejected.
	SniffLines int
	// MaxSkipRatio is the malformed-data-line ratio above which the whole
	// file is rejected as unrecognized.
	MaxSkipRatio float64
}

// DefaultOptions match the config package defaults.
func DefaultOptions() Options {
	return Options{SniffLines: 20, MaxSkipRatio: 0.5}
}

// Result summarizes one parsed file.
type Result struct {
	Calls    int
	Skipped  int
	Warnings []Warning
}

// headerMarkers are comment fragments that identify a genotype export header.
var headerMarkers = []string{
	"23andme",
	"rsid\tchromosome\tposition\tgenotype",
	"rsid chromosome position genotype",
}

// Detect reports whether the file at path looks like a genotype export:
// a recognized header comment or a well-formed data line within the sniff
// window.
func Detect(path string, opts Options) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < opts.SniffLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if isHeaderComment(line) {
				return true
			}
			continue
		}
		if _, err := parseLine(line); err == nil {
			return true
		}
	}
	return false
}

// Parse reads a genotype export from r, emitting each call through emit.
// Emission is lazy: calls are produced line by line and never buffered.
// Duplicate rsids are emitted in file order; the store's replacement
// semantics give last-occurrence-wins.
//
// Returns ErrUnrecognizedFormat if the sniff window contains neither a
// recognized header nor a well-formed data line, or if the malformed-line
// ratio exceeds opts.MaxSkipRatio.
func Parse(r io.Reader, sourceFile string, opts Options, emit func(Call) error) (*Result, error) {
	if opts.SniffLines <= 0 {
		opts.SniffLines = DefaultOptions().SniffLines
	}
	if opts.MaxSkipRatio <= 0 {
		opts.MaxSkipRatio = DefaultOptions().MaxSkipRatio
	}

	result := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	recognized := false
	lineNo := 0
	dataLines := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if isHeaderComment(line) {
				recognized = true
			}
			continue
		}

		dataLines++
		call, err := parseLine(line)
		if err != nil {
			if !recognized && lineNo > opts.SniffLines && result.Calls == 0 {
				return nil, errors.NewFormatError(
					"%s: no recognized header or data line in first %d lines", sourceFile, opts.SniffLines)
			}
			result.Skipped++
			result.Warnings = append(result.Warnings, Warning{
				File:    sourceFile,
				Line:    lineNo,
				Message: err.Error(),
			})
			continue
		}

		recognized = true
		call.SourceFile = sourceFile
		if err := emit(call); err != nil {
			return nil, err
		}
		result.Calls++
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", sourceFile)
	}

	if !recognized {
		return nil, errors.NewFormatError("%s: no recognized header or data lines", sourceFile)
	}

	if dataLines > 0 {
		skipRatio := float64(result.Skipped) / float64(dataLines)
		if skipRatio > opts.MaxSkipRatio {
			return nil, errors.NewFormatError(
				"%s: %d of %d data lines malformed (%.0f%% > %.0f%% ceiling)",
				sourceFile, result.Skipped, dataLines, skipRatio*100, opts.MaxSkipRatio*100)
		}
	}

	return result, nil
}

// ParseAll reads the whole file into memory, applying last-occurrence-wins
// for duplicate rsids. Intended for small files and tests; imports should
// stream through Parse.
func ParseAll(r io.Reader, sourceFile string, opts Options) ([]Call, *Result, error) {
	var order []string
	byRSID := make(map[string]Call)

	result, err := Parse(r, sourceFile, opts, func(c Call) error {
		if _, seen := byRSID[c.RSID]; !seen {
			order = append(order, c.RSID)
		}
		byRSID[c.RSID] = c
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	calls := make([]Call, 0, len(order))
	for _, rsid := range order {
		calls = append(calls, byRSID[rsid])
	}
	return calls, result, nil
}

// CountLines returns the number of data lines (comments excluded) in the
// file at path. Used for progress reporting before an import.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		count++
	}
	return count, scanner.Err()
}

func isHeaderComment(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range headerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// parseLine splits one data line into a Call. Column order is fixed:
// rsid, chromosome, position, genotype.
func parseLine(line string) (Call, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Call{}, errors.Newf("expected 4 columns, got %d", len(fields))
	}

	rsid, chromosome, posStr, gt := fields[0], fields[1], fields[2], fields[3]

	position, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil {
		return Call{}, errors.Newf("unparseable position %q", posStr)
	}

	if !validGenotype(gt) {
		return Call{}, errors.Newf("invalid genotype %q", gt)
	}

	return Call{
		RSID:       rsid,
		Chromosome: chromosome,
		Position:   position,
		Genotype:   gt,
	}, nil
}

// validGenotype accepts two-character diploid calls over {A,C,G,T,D,I},
// single-character haploid calls (mitochondrial, Y), and the no-call
// placeholder.
func validGenotype(gt string) bool {
	if gt == NoCall {
		return true
	}
	if len(gt) < 1 || len(gt) > 2 {
		return false
	}
	for _, ch := range gt {
		switch ch {
		case 'A', 'C', 'G', 'T', 'D', 'I':
		default:
			return false
		}
	}
	return true
}
