// Package gedcom parses GEDCOM genealogy interchange files into individual
// and family records.
//
// The format is hierarchical but flattened into level-tagged lines with no
// explicit nesting delimiters: a line's scope is everything that follows
// with strictly greater level until a line of equal or lesser level appears.
// The parser keeps an explicit stack of open lines and attaches each new
// line to the correct ancestor; records are stored in maps addressed by
// their parsed @id@ pointers and cross-references are resolved in a second
// pass, so dangling pointers degrade to warnings instead of corrupt graphs.
package gedcom

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cameronehrlich/genex/errors"
)

// frame is one open line on the nesting stack.
type frame struct {
	level int
	tag   string
}

// Detect reports whether the file at path starts with a valid GEDCOM header
// line (first non-blank line is "0 HEAD").
func Detect(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return line == "0 HEAD"
	}
	return false
}

// Parse reads a GEDCOM byte stream and returns individuals, families and
// warnings. Returns ErrUnrecognizedFormat if the first non-blank line is not
// a valid "0 HEAD" header. After the line pass, every pointer is resolved
// against the parsed record set and structural cycles are detected; both
// produce warnings rather than failures.
func Parse(r io.Reader, sourceFile string) (*Result, error) {
	result := &Result{
		Individuals: make(map[string]*Individual),
		Families:    make(map[string]*Family),
	}

	var (
		stack      []frame
		currentInd *Individual
		currentFam *Family
		sawHeader  bool
		lineNo     int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

scan:
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		level, pointer, tag, value, err := splitLine(line)
		if err != nil {
			if !sawHeader {
				return nil, errors.NewFormatError("%s: first line is not a GEDCOM header", sourceFile)
			}
			result.Warnings = append(result.Warnings, Warning{
				File: sourceFile, Line: lineNo, Message: err.Error(),
			})
			continue
		}

		if !sawHeader {
			if level != 0 || tag != "HEAD" {
				return nil, errors.NewFormatError("%s: first line is not a GEDCOM header", sourceFile)
			}
			sawHeader = true
			stack = []frame{{level: 0, tag: "HEAD"}}
			continue
		}

		// Pop until the stack top is the new line's parent
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if level > 0 && len(stack) == 0 {
			result.Warnings = append(result.Warnings, Warning{
				File: sourceFile, Line: lineNo,
				Message: "line has no open parent record, skipped",
			})
			continue
		}
		parent := ""
		if len(stack) > 0 {
			parent = stack[len(stack)-1].tag
		}
		stack = append(stack, frame{level: level, tag: tag})

		switch level {
		case 0:
			currentInd, currentFam = nil, nil
			switch tag {
			case "TRLR":
				break scan
			case "INDI":
				if pointer == "" {
					result.Warnings = append(result.Warnings, Warning{
						File: sourceFile, Line: lineNo,
						Message: "INDI record without pointer id, skipped",
					})
					continue
				}
				currentInd = &Individual{ID: pointer, Sex: SexUnknown}
				result.Individuals[pointer] = currentInd
			case "FAM":
				if pointer == "" {
					result.Warnings = append(result.Warnings, Warning{
						File: sourceFile, Line: lineNo,
						Message: "FAM record without pointer id, skipped",
					})
					continue
				}
				currentFam = &Family{ID: pointer}
				result.Families[pointer] = currentFam
			default:
				// HEAD already consumed; SUBM, SOUR, NOTE etc. are ignored
			}

		default:
			switch {
			case currentInd != nil:
				applyIndividualTag(currentInd, level, parent, tag, value)
			case currentFam != nil:
				applyFamilyTag(currentFam, level, parent, tag, value)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", sourceFile)
	}
	if !sawHeader {
		return nil, errors.NewFormatError("%s: first line is not a GEDCOM header", sourceFile)
	}

	resolveReferences(result, sourceFile)
	detectCycles(result, sourceFile)

	return result, nil
}

// ParseFile parses the GEDCOM file at path.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Parse(f, path)
}

// CountIndividuals returns the number of INDI records in the file at path
// without a full parse. Used for progress reporting before an import.
func CountIndividuals(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "0 ") && strings.HasSuffix(line, " INDI") {
			count++
		}
	}
	return count, scanner.Err()
}

// splitLine parses "level [@pointer@] tag [value]". For level-0 record
// openers the pointer precedes the tag ("0 @I1@ INDI"); for cross-reference
// values the pointer is the value ("1 FAMC @F1@") and is returned in value.
func splitLine(line string) (level int, pointer, tag, value string, err error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0, "", "", "", errors.Newf("malformed line %q", line)
	}

	level, convErr := strconv.Atoi(parts[0])
	if convErr != nil || level < 0 {
		return 0, "", "", "", errors.Newf("invalid level %q", parts[0])
	}

	second := parts[1]
	rest := ""
	if len(parts) == 3 {
		rest = strings.TrimSpace(parts[2])
	}

	if strings.HasPrefix(second, "@") && strings.HasSuffix(second, "@") {
		// "0 @I1@ INDI"
		if rest == "" {
			return 0, "", "", "", errors.Newf("pointer %q without record tag", second)
		}
		tagParts := strings.SplitN(rest, " ", 2)
		tag = tagParts[0]
		if len(tagParts) == 2 {
			value = strings.TrimSpace(tagParts[1])
		}
		return level, second, tag, value, nil
	}

	return level, "", second, rest, nil
}

// applyIndividualTag folds one sub-line into an INDI record. parent is the
// enclosing line's tag, which disambiguates DATE/PLAC under BIRT vs DEAT.
func applyIndividualTag(ind *Individual, level int, parent, tag, value string) {
	if level == 1 {
		switch tag {
		case "NAME":
			given, surname, full := splitName(value)
			ind.Name = full
			if ind.GivenName == "" {
				ind.GivenName = given
			}
			if ind.Surname == "" {
				ind.Surname = surname
			}
		case "SEX":
			switch value {
			case "M":
				ind.Sex = SexMale
			case "F":
				ind.Sex = SexFemale
			}
		case "BIRT", "DEAT":
			// container tags; DATE/PLAC arrive one level deeper
		case "FAMC":
			ind.FamilyChild = value
		case "FAMS":
			ind.SpouseFamilies = append(ind.SpouseFamilies, value)
		default:
			if value != "" {
				if ind.RawTags == nil {
					ind.RawTags = make(map[string]string)
				}
				ind.RawTags[tag] = value
			}
		}
		return
	}

	// Deeper sub-tags attach to their container
	switch tag {
	case "GIVN":
		ind.GivenName = value
	case "SURN":
		ind.Surname = value
	case "DATE":
		switch parent {
		case "BIRT":
			ind.BirthDate = value
		case "DEAT":
			ind.DeathDate = value
		}
	case "PLAC":
		switch parent {
		case "BIRT":
			ind.BirthPlace = value
		case "DEAT":
			ind.DeathPlace = value
		}
	}
}

// applyFamilyTag folds one sub-line into a FAM record.
func applyFamilyTag(fam *Family, level int, parent, tag, value string) {
	if level == 1 {
		switch tag {
		case "HUSB":
			fam.HusbandID = value
		case "WIFE":
			fam.WifeID = value
		case "CHIL":
			fam.Children = append(fam.Children, value)
		case "MARR":
			// container tag; DATE/PLAC arrive one level deeper
		}
		return
	}

	switch tag {
	case "DATE":
		if parent == "MARR" {
			fam.MarriageDate = value
		}
	case "PLAC":
		if parent == "MARR" {
			fam.MarriagePlace = value
		}
	}
}

// splitName parses a GEDCOM NAME value of the form "given /surname/".
func splitName(value string) (given, surname, full string) {
	first := strings.Index(value, "/")
	if first >= 0 {
		second := strings.Index(value[first+1:], "/")
		given = strings.TrimSpace(value[:first])
		if second >= 0 {
			surname = strings.TrimSpace(value[first+1 : first+1+second])
		} else {
			surname = strings.TrimSpace(value[first+1:])
		}
	} else {
		given = strings.TrimSpace(value)
	}

	full = strings.TrimSpace(strings.Join(strings.Fields(strings.ReplaceAll(value, "/", " ")), " "))
	return given, surname, full
}

// resolveReferences validates every pointer against the parsed record set.
// Unresolved pointers become warnings and the referencing edge is dropped;
// the individual or family itself is always kept.
func resolveReferences(result *Result, sourceFile string) {
	warn := func(format string, args ...interface{}) {
		result.Warnings = append(result.Warnings, Warning{
			File:    sourceFile,
			Message: errors.Newf(format, args...).Error(),
		})
	}

	for _, ind := range result.Individuals {
		if ind.FamilyChild != "" {
			if _, ok := result.Families[ind.FamilyChild]; !ok {
				warn("individual %s references unknown child family %s, edge dropped", ind.ID, ind.FamilyChild)
				ind.FamilyChild = ""
			}
		}
		kept := ind.SpouseFamilies[:0]
		for _, famID := range ind.SpouseFamilies {
			if _, ok := result.Families[famID]; ok {
				kept = append(kept, famID)
			} else {
				warn("individual %s references unknown spouse family %s, edge dropped", ind.ID, famID)
			}
		}
		ind.SpouseFamilies = kept
	}

	for _, fam := range result.Families {
		if fam.HusbandID != "" {
			if _, ok := result.Individuals[fam.HusbandID]; !ok {
				warn("family %s references unknown husband %s, edge dropped", fam.ID, fam.HusbandID)
				fam.HusbandID = ""
			}
		}
		if fam.WifeID != "" {
			if _, ok := result.Individuals[fam.WifeID]; !ok {
				warn("family %s references unknown wife %s, edge dropped", fam.ID, fam.WifeID)
				fam.WifeID = ""
			}
		}
		kept := fam.Children[:0]
		for _, childID := range fam.Children {
			if _, ok := result.Individuals[childID]; ok {
				kept = append(kept, childID)
			} else {
				warn("family %s references unknown child %s, edge dropped", fam.ID, childID)
			}
		}
		fam.Children = kept
	}
}

// detectCycles finds individuals reachable as their own ancestors. The
// GEDCOM format does not forbid cycles in malformed files, and the tree
// engine requires termination, so affected individuals are reported as
// warnings here without rejecting the import.
func detectCycles(result *Result, sourceFile string) {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // fully explored
	)
	color := make(map[string]int, len(result.Individuals))
	onCycle := make(map[string]bool)

	parents := func(id string) []string {
		ind, ok := result.Individuals[id]
		if !ok || ind.FamilyChild == "" {
			return nil
		}
		fam, ok := result.Families[ind.FamilyChild]
		if !ok {
			return nil
		}
		var out []string
		if fam.HusbandID != "" {
			out = append(out, fam.HusbandID)
		}
		if fam.WifeID != "" {
			out = append(out, fam.WifeID)
		}
		return out
	}

	var visit func(id string, path []string)
	visit = func(id string, path []string) {
		color[id] = gray
		path = append(path, id)
		for _, parentID := range parents(id) {
			switch color[parentID] {
			case white:
				visit(parentID, path)
			case gray:
				// Back edge: everyone from parentID to the path end is on a cycle
				start := 0
				for i, pathID := range path {
					if pathID == parentID {
						start = i
						break
					}
				}
				for _, pathID := range path[start:] {
					onCycle[pathID] = true
				}
			}
		}
		color[id] = black
	}

	for id := range result.Individuals {
		if color[id] == white {
			visit(id, nil)
		}
	}

	for id := range onCycle {
		result.Warnings = append(result.Warnings, Warning{
			File:    sourceFile,
			Message: errors.Newf("individual %s is reachable as their own ancestor (cycle)", id).Error(),
		})
	}
}
