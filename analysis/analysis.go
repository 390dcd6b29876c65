// Package analysis interprets genotype calls against curated annotations.
// Matching is allele-order independent: AG and GA are the same genotype.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/snpdb"
)

// Zygosity classifies a call relative to an annotation's risk allele.
type Zygosity string

const (
	ZygosityHomozygous   Zygosity = "homozygous"
	ZygosityHeterozygous Zygosity = "heterozygous"
	ZygosityNoCall       Zygosity = "no-call"
)

// RiskLevel summarizes a finding for display.
type RiskLevel string

const (
	RiskNormal   RiskLevel = "normal"
	RiskCarrier  RiskLevel = "carrier"
	RiskElevated RiskLevel = "elevated"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown"
)

// Finding is one interpreted SNP: the raw call joined with its annotation
// and the derived risk classification.
type Finding struct {
	Call            genotype.Call    `json:"call"`
	Annotation      snpdb.Annotation `json:"annotation,omitempty"`
	Annotated       bool             `json:"annotated"`
	Zygosity        Zygosity         `json:"zygosity"`
	RiskAlleleCount int              `json:"risk_allele_count"`
	RiskLevel       RiskLevel        `json:"risk_level"`
	Interpretation  string           `json:"interpretation"`
	Recommendation  string           `json:"recommendation,omitempty"`
}

// Source is the read surface the analyzers need. *store.Store satisfies it.
type Source interface {
	GetCall(rsid string) (*genotype.Call, error)
	GetAnnotation(rsid string) (*snpdb.Annotation, error)
	GetAnnotationsByCategory(category string) ([]snpdb.Annotation, error)
	GetCallsByRSIDs(rsids []string) (map[string]genotype.Call, error)
}

// NormalizeGenotype returns the genotype with alleles in sorted order,
// so AG and GA compare equal. Haploid and no-call genotypes pass through.
func NormalizeGenotype(g string) string {
	if len(g) != 2 || g == genotype.NoCall {
		return g
	}
	a, b := string(g[0]), string(g[1])
	if a > b {
		return b + a
	}
	return g
}

// ZygosityOf classifies a call on its own alleles.
func ZygosityOf(call genotype.Call) Zygosity {
	if call.Genotype == genotype.NoCall || call.Genotype == "" {
		return ZygosityNoCall
	}
	a, b := call.Alleles()
	if a == b {
		return ZygosityHomozygous
	}
	return ZygosityHeterozygous
}

// Match interprets one call against its annotation.
func Match(call genotype.Call, ann snpdb.Annotation) Finding {
	f := Finding{
		Call:       call,
		Annotation: ann,
		Annotated:  true,
		Zygosity:   ZygosityOf(call),
	}

	if f.Zygosity == ZygosityNoCall {
		f.RiskLevel = RiskUnknown
		f.Interpretation = "No call at this position; the array could not read it."
		return f
	}

	if ann.RiskAllele == "" {
		f.RiskLevel = RiskUnknown
		f.Interpretation = fmt.Sprintf("Genotype %s; no risk allele defined for this SNP.",
			NormalizeGenotype(call.Genotype))
		return f
	}

	f.RiskAlleleCount = call.CountAllele(ann.RiskAllele)
	f.RiskLevel = classify(ann.Category, f.RiskAlleleCount)
	f.Interpretation = interpret(ann, f.RiskAlleleCount)
	if f.RiskAlleleCount > 0 {
		f.Recommendation = recommendations[ann.Condition]
	}
	return f
}

// classify maps risk allele count to a level. Carrier SNPs use carrier
// semantics: one copy is carrier status, two copies is the condition.
func classify(category string, count int) RiskLevel {
	switch category {
	case snpdb.CategoryCarrier:
		switch count {
		case 0:
			return RiskNormal
		case 1:
			return RiskCarrier
		default:
			return RiskHigh
		}
	case snpdb.CategoryTrait:
		return RiskNormal
	default:
		switch count {
		case 0:
			return RiskNormal
		case 1:
			return RiskElevated
		default:
			return RiskHigh
		}
	}
}

func interpret(ann snpdb.Annotation, count int) string {
	switch ann.Category {
	case snpdb.CategoryCarrier:
		switch count {
		case 0:
			return fmt.Sprintf("Not a carrier of the tested %s variant.", ann.Condition)
		case 1:
			return fmt.Sprintf("Carrier of one copy of the %s variant. No symptoms expected; relevant for family planning.", ann.Condition)
		default:
			return fmt.Sprintf("Two copies of the %s variant detected. Consult a genetic counselor.", ann.Condition)
		}
	case snpdb.CategoryPharma:
		switch count {
		case 0:
			return fmt.Sprintf("Typical %s function expected.", ann.Gene)
		case 1:
			return fmt.Sprintf("One copy of the %s variant (%s). Intermediate effect on: %s.", ann.Gene, ann.ClinicalSignificance, ann.Drugs)
		default:
			return fmt.Sprintf("Two copies of the %s variant (%s). Strong effect on: %s.", ann.Gene, ann.ClinicalSignificance, ann.Drugs)
		}
	case snpdb.CategoryTrait:
		switch count {
		case 0:
			return fmt.Sprintf("%s: typical genotype.", ann.Condition)
		case 1:
			return fmt.Sprintf("%s: one copy of the variant allele.", ann.Condition)
		default:
			return fmt.Sprintf("%s: two copies of the variant allele.", ann.Condition)
		}
	default:
		switch count {
		case 0:
			return fmt.Sprintf("No %s risk alleles at this position.", ann.Condition)
		case 1:
			return fmt.Sprintf("One %s risk allele. Modestly increased risk.", ann.Condition)
		default:
			return fmt.Sprintf("Two %s risk alleles. Significantly increased risk.", ann.Condition)
		}
	}
}

// Recommendations shown when at least one risk allele is present.
// Array results are screening signals, not diagnoses.
var recommendations = map[string]string{
	"Factor V Leiden Thrombophilia":        "Discuss clotting risk with a physician before surgery, prolonged immobility, or hormone therapy.",
	"Prothrombin Thrombophilia":            "Discuss clotting risk with a physician; relevant before surgery or hormone therapy.",
	"Hereditary Hemochromatosis":           "Consider ferritin and transferrin saturation testing to check iron levels.",
	"Age-related Macular Degeneration":     "Schedule regular eye exams and avoid smoking.",
	"Celiac Disease":                       "Susceptibility only; serology and biopsy are needed for diagnosis.",
	"MTHFR Deficiency":                     "Adequate dietary folate covers most genotype effects.",
	"Hereditary Breast and Ovarian Cancer": "Confirm with clinical-grade sequencing; array results can be false positives.",
	"Alzheimer's Disease Risk":             "APOE status is a risk factor, not a diagnosis. Consider genetic counseling before acting on it.",
}

// LookupSNP fetches and interprets one SNP.
//
// A missing call returns ErrNotTested. A call without an annotation returns
// the raw finding alongside ErrNotAnnotated so callers can still display
// the genotype.
func LookupSNP(src Source, rsid string) (*Finding, error) {
	rsid = strings.ToLower(strings.TrimSpace(rsid))

	call, err := src.GetCall(rsid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.Wrapf(errors.ErrNotTested, "%s", rsid)
		}
		return nil, err
	}

	ann, err := src.GetAnnotation(rsid)
	if err != nil {
		if errors.IsNotFoundError(err) {
			f := &Finding{
				Call:           *call,
				Zygosity:       ZygosityOf(*call),
				RiskLevel:      RiskUnknown,
				Interpretation: "No curated annotation for this SNP.",
			}
			return f, errors.Wrapf(errors.ErrNotAnnotated, "%s", rsid)
		}
		return nil, err
	}

	f := Match(*call, *ann)
	return &f, nil
}

// CategoryReport is the result of analyzing every curated SNP in a category.
type CategoryReport struct {
	Category string             `json:"category"`
	Findings []Finding          `json:"findings"`
	Untested []snpdb.Annotation `json:"untested,omitempty"`
}

// AnalyzeCategory interprets every curated SNP in a category against the
// stored genome. Curated SNPs absent from the genome land in Untested.
// Findings are ordered by gene then rsid.
func AnalyzeCategory(src Source, category string) (*CategoryReport, error) {
	anns, err := src.GetAnnotationsByCategory(category)
	if err != nil {
		return nil, err
	}

	rsids := make([]string, len(anns))
	for i, a := range anns {
		rsids[i] = a.RSID
	}
	calls, err := src.GetCallsByRSIDs(rsids)
	if err != nil {
		return nil, err
	}

	report := &CategoryReport{Category: category}
	for _, ann := range anns {
		call, ok := calls[ann.RSID]
		if !ok {
			report.Untested = append(report.Untested, ann)
			continue
		}
		report.Findings = append(report.Findings, Match(call, ann))
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i].Annotation, report.Findings[j].Annotation
		if a.Gene != b.Gene {
			return a.Gene < b.Gene
		}
		return a.RSID < b.RSID
	})
	return report, nil
}

// Notable returns the findings worth surfacing first: anything above normal.
func (r *CategoryReport) Notable() []Finding {
	var notable []Finding
	for _, f := range r.Findings {
		switch f.RiskLevel {
		case RiskCarrier, RiskElevated, RiskHigh:
			notable = append(notable, f)
		}
	}
	return notable
}
