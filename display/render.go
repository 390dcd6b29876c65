package display

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/cameronehrlich/genex/analysis"
	"github.com/cameronehrlich/genex/gedcom"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/ingest"
)

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func riskBadge(level analysis.RiskLevel) string {
	switch level {
	case analysis.RiskHigh:
		return pterm.FgRed.Sprint("HIGH")
	case analysis.RiskElevated:
		return pterm.FgYellow.Sprint("ELEVATED")
	case analysis.RiskCarrier:
		return pterm.FgYellow.Sprint("CARRIER")
	case analysis.RiskNormal:
		return pterm.FgGreen.Sprint("NORMAL")
	default:
		return pterm.FgGray.Sprint("UNKNOWN")
	}
}

// RenderFinding prints one interpreted SNP.
func RenderFinding(f *analysis.Finding) {
	pterm.DefaultSection.Printf("%s", f.Call.RSID)
	pterm.Info.Printf("Genotype: %s  (chr %s, pos %d)\n",
		f.Call.Genotype, f.Call.Chromosome, f.Call.Position)
	if !f.Annotated {
		pterm.Warning.Println("No curated annotation for this SNP")
		return
	}
	pterm.Info.Printf("Gene: %s  Category: %s\n", f.Annotation.Gene, f.Annotation.Category)
	if f.Annotation.Condition != "" {
		pterm.Info.Printf("Condition: %s\n", f.Annotation.Condition)
	}
	pterm.Info.Printf("Risk: %s  (%s, %d risk allele(s))\n",
		riskBadge(f.RiskLevel), f.Zygosity, f.RiskAlleleCount)
	fmt.Println(f.Interpretation)
	if f.Recommendation != "" {
		pterm.Info.Printf("Recommendation: %s\n", f.Recommendation)
	}
}

// RenderRawCall prints a call that has no annotation coverage.
func RenderRawCall(call *genotype.Call) {
	pterm.DefaultSection.Printf("%s", call.RSID)
	pterm.Info.Printf("Genotype: %s  (chr %s, pos %d)\n",
		call.Genotype, call.Chromosome, call.Position)
	pterm.Info.Printf("Source: %s\n", call.SourceFile)
	pterm.Warning.Println("No curated annotation for this SNP")
}

// RenderAPOE prints the combined epsilon status panel.
func RenderAPOE(r *analysis.APOEReport) {
	pterm.DefaultSection.Println("APOE Status")
	if r.Genotype429358 != "" {
		pterm.Info.Printf("rs429358: %s\n", r.Genotype429358)
	}
	if r.Genotype7412 != "" {
		pterm.Info.Printf("rs7412:   %s\n", r.Genotype7412)
	}
	pterm.Info.Printf("Status: %s  Risk: %s\n", r.Status, riskBadge(r.RiskLevel))
	if !r.Complete {
		pterm.Warning.Println("Partial data: only one of the two APOE SNPs was tested")
	}
	fmt.Println(r.Interpretation)
}

// RenderCategoryReport prints every finding in a category, notable ones
// first, then the untested panel SNPs.
func RenderCategoryReport(r *analysis.CategoryReport) {
	pterm.DefaultSection.Printf("%s findings", titleCase(r.Category))

	notable := r.Notable()
	if len(notable) == 0 {
		pterm.Success.Println("No elevated findings in this category")
	}
	for _, f := range notable {
		pterm.Info.Printf("%s  %s %s (%s): %s\n",
			riskBadge(f.RiskLevel), f.Annotation.Gene, f.Call.RSID, f.Call.Genotype, f.Interpretation)
		if f.Recommendation != "" {
			fmt.Printf("       %s\n", f.Recommendation)
		}
	}

	var normal []analysis.Finding
	for _, f := range r.Findings {
		if f.RiskLevel == analysis.RiskNormal || f.RiskLevel == analysis.RiskUnknown {
			normal = append(normal, f)
		}
	}
	if len(normal) > 0 {
		fmt.Println()
		for _, f := range normal {
			fmt.Printf("  %s  %s %s (%s): %s\n",
				riskBadge(f.RiskLevel), f.Annotation.Gene, f.Call.RSID, f.Call.Genotype, f.Interpretation)
		}
	}

	if len(r.Untested) > 0 {
		fmt.Println()
		pterm.Info.Printf("%d panel SNP(s) not tested by this array:\n", len(r.Untested))
		for _, a := range r.Untested {
			fmt.Printf("  %s (%s)\n", a.RSID, a.Gene)
		}
	}
}

// DisplayName returns a printable name for an individual.
func DisplayName(ind *gedcom.Individual) string {
	if ind.Name != "" {
		return ind.Name
	}
	return "(unnamed " + ind.ID + ")"
}

func lifespan(ind *gedcom.Individual) string {
	switch {
	case ind.BirthDate != "" && ind.DeathDate != "":
		return fmt.Sprintf("%s - %s", ind.BirthDate, ind.DeathDate)
	case ind.BirthDate != "":
		return "b. " + ind.BirthDate
	case ind.DeathDate != "":
		return "d. " + ind.DeathDate
	}
	return ""
}

// RenderAncestors prints generations of ancestors for one individual.
func RenderAncestors(root *gedcom.Individual, generations [][]gedcom.Individual) {
	pterm.DefaultSection.Printf("Ancestors of %s", DisplayName(root))
	if len(generations) == 0 {
		pterm.Info.Println("No known ancestors")
		return
	}
	labels := []string{"Parents", "Grandparents", "Great-grandparents"}
	for i, gen := range generations {
		label := fmt.Sprintf("Generation %d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		pterm.Info.Printf("%s:\n", label)
		for _, ind := range gen {
			line := "  " + DisplayName(&ind)
			if ls := lifespan(&ind); ls != "" {
				line += "  (" + ls + ")"
			}
			fmt.Println(line)
		}
	}
}

// RenderSearchResults prints search matches with ids for follow-up queries.
func RenderSearchResults(query string, results []gedcom.Individual) {
	if len(results) == 0 {
		pterm.Warning.Printf("No individuals match %q\n", query)
		return
	}
	pterm.Info.Printf("%d match(es) for %q:\n", len(results), query)
	for _, ind := range results {
		line := fmt.Sprintf("  %s  %s", ind.ID, DisplayName(&ind))
		if ls := lifespan(&ind); ls != "" {
			line += "  (" + ls + ")"
		}
		if ind.BirthPlace != "" {
			line += "  " + ind.BirthPlace
		}
		fmt.Println(line)
	}
}

// RenderImportReport prints the outcome of one import run.
func RenderImportReport(r *ingest.Report) {
	for _, f := range r.Files {
		switch {
		case f.Error != "":
			pterm.Error.Printf("%s: %s\n", f.Path, f.Error)
		case f.Kind == ingest.KindUnrecognized:
			pterm.Warning.Printf("%s: unrecognized format, skipped\n", f.Path)
		case f.Imported:
			pterm.Success.Printf("%s: imported %d record(s)\n", f.Path, f.Records)
		}
		for _, w := range f.Warnings {
			pterm.Warning.Printf("  %s\n", w)
		}
	}

	fmt.Println()
	if r.SNPs > 0 {
		pterm.Info.Printf("Genome: %d SNPs\n", r.SNPs)
		pterm.Info.Printf("Annotations loaded: %d\n", r.Annotations)
	}
	if r.Individuals > 0 {
		pterm.Info.Printf("Family tree: %d individuals, %d families\n", r.Individuals, r.Families)
	}
}
