package analysis

import (
	"github.com/cameronehrlich/genex/errors"
)

// The two SNPs that jointly determine APOE epsilon status.
const (
	APOERS429358 = "rs429358"
	APOERS7412   = "rs7412"
)

// APOEReport is the combined epsilon-allele call for Alzheimer's risk.
type APOEReport struct {
	Genotype429358 string    `json:"rs429358"`
	Genotype7412   string    `json:"rs7412"`
	Status         string    `json:"status"` // e.g. "ε3/ε3"
	E4Count        int       `json:"e4_count"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Interpretation string    `json:"interpretation"`
	Complete       bool      `json:"complete"`
}

// apoeStatus maps order-normalized genotype pairs to epsilon calls.
// rs429358 C determines ε4; rs7412 T determines ε2.
var apoeStatus = map[[2]string]string{
	{"TT", "CC"}: "ε3/ε3",
	{"TT", "CT"}: "ε2/ε3",
	{"TT", "TT"}: "ε2/ε2",
	{"CT", "CC"}: "ε3/ε4",
	{"CT", "CT"}: "ε2/ε4",
	{"CC", "CC"}: "ε4/ε4",
}

// DetermineAPOEStatus computes epsilon status from the stored genome.
// With only one of the two SNPs present, a partial report is returned
// based on the ε4-determining SNP alone. With neither, ErrNotTested.
func DetermineAPOEStatus(src Source) (*APOEReport, error) {
	calls, err := src.GetCallsByRSIDs([]string{APOERS429358, APOERS7412})
	if err != nil {
		return nil, err
	}

	c429358, have429358 := calls[APOERS429358]
	c7412, have7412 := calls[APOERS7412]
	if have429358 && !c429358.IsCalled() {
		have429358 = false
	}
	if have7412 && !c7412.IsCalled() {
		have7412 = false
	}

	if !have429358 && !have7412 {
		return nil, errors.Wrap(errors.ErrNotTested, "APOE SNPs rs429358 and rs7412")
	}

	report := &APOEReport{}
	if have429358 {
		report.Genotype429358 = NormalizeGenotype(c429358.Genotype)
		report.E4Count = c429358.CountAllele("C")
	}
	if have7412 {
		report.Genotype7412 = NormalizeGenotype(c7412.Genotype)
	}

	if have429358 && have7412 {
		report.Complete = true
		key := [2]string{report.Genotype429358, report.Genotype7412}
		if status, ok := apoeStatus[key]; ok {
			report.Status = status
		} else {
			// e.g. rs429358 CC with rs7412 CT implies an ε1 or ε3r allele
			report.Status = "atypical"
		}
	} else if have429358 {
		report.Status = partialStatus(report.E4Count)
	} else {
		report.Status = "incomplete"
	}

	report.RiskLevel, report.Interpretation = apoeRisk(report)
	return report, nil
}

func partialStatus(e4Count int) string {
	switch e4Count {
	case 0:
		return "no ε4 (partial)"
	case 1:
		return "one ε4 (partial)"
	default:
		return "two ε4 (partial)"
	}
}

func apoeRisk(r *APOEReport) (RiskLevel, string) {
	if !r.Complete {
		if r.Genotype429358 == "" {
			return RiskUnknown, "Only rs7412 was tested; ε4 status cannot be determined."
		}
		switch r.E4Count {
		case 0:
			return RiskNormal, "No ε4 alleles detected (rs7412 untested, so ε2 vs ε3 is unresolved)."
		case 1:
			return RiskElevated, "One ε4 allele detected. Moderately increased Alzheimer's risk."
		default:
			return RiskHigh, "Two ε4 alleles detected. Significantly increased Alzheimer's risk."
		}
	}

	switch r.Status {
	case "ε2/ε2":
		return RiskNormal, "ε2/ε2: the protective genotype. Reduced Alzheimer's risk; mildly elevated hyperlipoproteinemia risk."
	case "ε2/ε3":
		return RiskNormal, "ε2/ε3: reduced Alzheimer's risk relative to ε3/ε3."
	case "ε3/ε3":
		return RiskNormal, "ε3/ε3: the most common genotype. Average Alzheimer's risk."
	case "ε3/ε4":
		return RiskElevated, "ε3/ε4: one ε4 allele. Moderately increased Alzheimer's risk."
	case "ε2/ε4":
		return RiskElevated, "ε2/ε4: one ε4 allele partially offset by ε2. Modestly increased Alzheimer's risk."
	case "ε4/ε4":
		return RiskHigh, "ε4/ε4: two ε4 alleles. Significantly increased Alzheimer's risk."
	default:
		return RiskUnknown, "Genotype combination does not match a standard epsilon pattern."
	}
}
