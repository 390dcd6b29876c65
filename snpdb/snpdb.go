// Package snpdb holds the curated SNP annotation table.
//
// The table is static reference data compiled into the binary: a mapping
// from rsid to gene, category and interpretation metadata. It is loaded
// into the store once per import and never mutated by queries.
package snpdb

// Version info for the curated table
const (
	Version = "1.0.0"
	Date    = "2026-01-02"
)

// Categories group annotations by the kind of finding they describe.
const (
	CategoryHealth  = "health"
	CategoryCarrier = "carrier"
	CategoryPharma  = "pharma"
	CategoryTrait   = "trait"
)

// Annotation is curated reference metadata for one SNP.
type Annotation struct {
	RSID                 string `json:"rsid"`
	Gene                 string `json:"gene"`
	Category             string `json:"category"`
	Description          string `json:"description"`
	RiskAllele           string `json:"risk_allele,omitempty"`
	NormalAllele         string `json:"normal_allele,omitempty"`
	Condition            string `json:"condition,omitempty"`
	Source               string `json:"source"`
	SourceVersion        string `json:"source_version"`
	ClinicalSignificance string `json:"clinical_significance,omitempty"`
	Drugs                string `json:"drugs,omitempty"` // pharma SNPs only
}

// All returns every curated annotation with source fields stamped.
func All() []Annotation {
	var all []Annotation
	all = append(all, apoe()...)
	all = append(all, health()...)
	all = append(all, carrier()...)
	all = append(all, pharma()...)
	all = append(all, traits()...)
	for i := range all {
		if all[i].Source == "" {
			all[i].Source = "genex-curated"
		}
		if all[i].SourceVersion == "" {
			all[i].SourceVersion = Version
		}
	}
	return all
}

// ByRSID returns the curated table indexed by rsid.
func ByRSID() map[string]Annotation {
	all := All()
	m := make(map[string]Annotation, len(all))
	for _, a := range all {
		m[a.RSID] = a
	}
	return m
}

// apoe returns the APOE ε-allele determining SNPs for Alzheimer's risk.
func apoe() []Annotation {
	return []Annotation{
		{
			RSID:                 "rs429358",
			Gene:                 "APOE",
			Category:             CategoryHealth,
			Description:          "APOE epsilon-4 determining SNP",
			RiskAllele:           "C",
			NormalAllele:         "T",
			Condition:            "Alzheimer's Disease Risk",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs7412",
			Gene:                 "APOE",
			Category:             CategoryHealth,
			Description:          "APOE epsilon-2 determining SNP",
			RiskAllele:           "T", // epsilon-2 is protective
			NormalAllele:         "C",
			Condition:            "Alzheimer's Disease Risk",
			ClinicalSignificance: "protective factor",
		},
	}
}

func health() []Annotation {
	return []Annotation{
		{
			RSID:                 "rs6025",
			Gene:                 "F5",
			Category:             CategoryHealth,
			Description:          "Factor V Leiden - blood clotting disorder",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Condition:            "Factor V Leiden Thrombophilia",
			ClinicalSignificance: "pathogenic",
		},
		{
			RSID:                 "rs1799963",
			Gene:                 "F2",
			Category:             CategoryHealth,
			Description:          "Prothrombin G20210A mutation",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Condition:            "Prothrombin Thrombophilia",
			ClinicalSignificance: "pathogenic",
		},
		{
			RSID:                 "rs1800562",
			Gene:                 "HFE",
			Category:             CategoryHealth,
			Description:          "HFE C282Y mutation - iron overload",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Condition:            "Hereditary Hemochromatosis",
			ClinicalSignificance: "pathogenic",
		},
		{
			RSID:                 "rs1799945",
			Gene:                 "HFE",
			Category:             CategoryHealth,
			Description:          "HFE H63D mutation - mild iron overload",
			RiskAllele:           "G",
			NormalAllele:         "C",
			Condition:            "Hereditary Hemochromatosis",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs1061170",
			Gene:                 "CFH",
			Category:             CategoryHealth,
			Description:          "CFH Y402H - major AMD risk factor",
			RiskAllele:           "C",
			NormalAllele:         "T",
			Condition:            "Age-related Macular Degeneration",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs10490924",
			Gene:                 "ARMS2",
			Category:             CategoryHealth,
			Description:          "ARMS2/HTRA1 - second major AMD risk factor",
			RiskAllele:           "T",
			NormalAllele:         "G",
			Condition:            "Age-related Macular Degeneration",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs2187668",
			Gene:                 "HLA-DQ2.5",
			Category:             CategoryHealth,
			Description:          "HLA-DQA1*05 tag SNP for celiac susceptibility",
			RiskAllele:           "T",
			NormalAllele:         "C",
			Condition:            "Celiac Disease",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs1801133",
			Gene:                 "MTHFR",
			Category:             CategoryHealth,
			Description:          "MTHFR C677T - reduced folate metabolism",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Condition:            "MTHFR Deficiency",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs1801131",
			Gene:                 "MTHFR",
			Category:             CategoryHealth,
			Description:          "MTHFR A1298C - mild folate metabolism reduction",
			RiskAllele:           "G",
			NormalAllele:         "T",
			Condition:            "MTHFR Deficiency",
			ClinicalSignificance: "risk factor",
		},
		{
			RSID:                 "rs80357906",
			Gene:                 "BRCA1",
			Category:             CategoryHealth,
			Description:          "BRCA1 185delAG Ashkenazi founder mutation",
			RiskAllele:           "D",
			NormalAllele:         "I",
			Condition:            "Hereditary Breast and Ovarian Cancer",
			ClinicalSignificance: "pathogenic",
		},
		{
			RSID:                 "rs80357713",
			Gene:                 "BRCA1",
			Category:             CategoryHealth,
			Description:          "BRCA1 5382insC Ashkenazi founder mutation",
			RiskAllele:           "I",
			NormalAllele:         "D",
			Condition:            "Hereditary Breast and Ovarian Cancer",
			ClinicalSignificance: "pathogenic",
		},
		{
			RSID:                 "rs80359550",
			Gene:                 "BRCA2",
			Category:             CategoryHealth,
			Description:          "BRCA2 6174delT Ashkenazi founder mutation",
			RiskAllele:           "D",
			NormalAllele:         "I",
			Condition:            "Hereditary Breast and Ovarian Cancer",
			ClinicalSignificance: "pathogenic",
		},
	}
}

// carrier returns the recessive carrier panel.
func carrier() []Annotation {
	return []Annotation{
		{
			RSID:                 "i4000408",
			Gene:                 "HEXA",
			Category:             CategoryCarrier,
			Description:          "Tay-Sachs disease carrier marker",
			Condition:            "Tay-Sachs Disease",
			ClinicalSignificance: "carrier",
		},
		{
			RSID:                 "rs76763715",
			Gene:                 "GBA",
			Category:             CategoryCarrier,
			Description:          "Gaucher disease N370S mutation",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Condition:            "Gaucher Disease",
			ClinicalSignificance: "carrier",
		},
		{
			RSID:                 "rs113993960",
			Gene:                 "CFTR",
			Category:             CategoryCarrier,
			Description:          "CFTR F508del - most common CF mutation",
			Condition:            "Cystic Fibrosis",
			ClinicalSignificance: "carrier",
		},
		{
			RSID:                 "rs75527207",
			Gene:                 "CFTR",
			Category:             CategoryCarrier,
			Description:          "CFTR W1282X - common in Ashkenazi",
			Condition:            "Cystic Fibrosis",
			ClinicalSignificance: "carrier",
		},
		{
			RSID:                 "rs111033559",
			Gene:                 "IKBKAP",
			Category:             CategoryCarrier,
			Description:          "Familial Dysautonomia IVS20+6T>C",
			Condition:            "Familial Dysautonomia",
			ClinicalSignificance: "carrier",
		},
		{
			RSID:                 "rs12946976",
			Gene:                 "ASPA",
			Category:             CategoryCarrier,
			Description:          "Canavan disease E285A mutation",
			Condition:            "Canavan Disease",
			ClinicalSignificance: "carrier",
		},
		{
			RSID:                 "rs113993959",
			Gene:                 "BLM",
			Category:             CategoryCarrier,
			Description:          "Bloom syndrome blmAsh mutation",
			Condition:            "Bloom Syndrome",
			ClinicalSignificance: "carrier",
		},
	}
}

func pharma() []Annotation {
	return []Annotation{
		{
			RSID:                 "rs4244285",
			Gene:                 "CYP2C19",
			Category:             CategoryPharma,
			Description:          "CYP2C19*2 - poor metabolizer allele",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Drugs:                "clopidogrel, omeprazole, citalopram, escitalopram",
			ClinicalSignificance: "poor metabolizer",
		},
		{
			RSID:                 "rs4986893",
			Gene:                 "CYP2C19",
			Category:             CategoryPharma,
			Description:          "CYP2C19*3 - poor metabolizer allele",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Drugs:                "clopidogrel, PPIs",
			ClinicalSignificance: "poor metabolizer",
		},
		{
			RSID:                 "rs12248560",
			Gene:                 "CYP2C19",
			Category:             CategoryPharma,
			Description:          "CYP2C19*17 - ultra-rapid metabolizer allele",
			RiskAllele:           "T",
			NormalAllele:         "C",
			Drugs:                "clopidogrel (increased effect), escitalopram",
			ClinicalSignificance: "ultra-rapid metabolizer",
		},
		{
			RSID:                 "rs3892097",
			Gene:                 "CYP2D6",
			Category:             CategoryPharma,
			Description:          "CYP2D6*4 - poor metabolizer allele",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Drugs:                "codeine, tramadol, tamoxifen, antidepressants",
			ClinicalSignificance: "poor metabolizer",
		},
		{
			RSID:        "rs16947",
			Gene:        "CYP2D6",
			Category:    CategoryPharma,
			Description: "CYP2D6*2 allele marker",
			Drugs:       "various",
		},
		{
			RSID:                 "rs4149056",
			Gene:                 "SLCO1B1",
			Category:             CategoryPharma,
			Description:          "SLCO1B1*5 - statin myopathy risk",
			RiskAllele:           "C",
			NormalAllele:         "T",
			Drugs:                "simvastatin, atorvastatin, rosuvastatin",
			ClinicalSignificance: "increased toxicity risk",
		},
		{
			RSID:                 "rs9923231",
			Gene:                 "VKORC1",
			Category:             CategoryPharma,
			Description:          "VKORC1 -1639G>A - warfarin sensitivity",
			RiskAllele:           "T",
			NormalAllele:         "C",
			Drugs:                "warfarin",
			ClinicalSignificance: "increased sensitivity",
		},
		{
			RSID:                 "rs1799853",
			Gene:                 "CYP2C9",
			Category:             CategoryPharma,
			Description:          "CYP2C9*2 - warfarin sensitivity",
			RiskAllele:           "T",
			NormalAllele:         "C",
			Drugs:                "warfarin, NSAIDs, phenytoin",
			ClinicalSignificance: "poor metabolizer",
		},
		{
			RSID:                 "rs1057910",
			Gene:                 "CYP2C9",
			Category:             CategoryPharma,
			Description:          "CYP2C9*3 - warfarin sensitivity",
			RiskAllele:           "C",
			NormalAllele:         "A",
			Drugs:                "warfarin, NSAIDs, phenytoin",
			ClinicalSignificance: "poor metabolizer",
		},
		{
			RSID:                 "rs3918290",
			Gene:                 "DPYD",
			Category:             CategoryPharma,
			Description:          "DPYD*2A - severe 5-FU toxicity risk",
			RiskAllele:           "A",
			NormalAllele:         "G",
			Drugs:                "5-fluorouracil, capecitabine",
			ClinicalSignificance: "increased toxicity risk",
		},
		{
			RSID:        "rs776746",
			Gene:        "CYP3A5",
			Category:    CategoryPharma,
			Description: "CYP3A5*3 - non-expressor allele",
			Drugs:       "tacrolimus, cyclosporine, some statins",
		},
	}
}

func traits() []Annotation {
	return []Annotation{
		{
			RSID:         "rs762551",
			Gene:         "CYP1A2",
			Category:     CategoryTrait,
			Description:  "Caffeine metabolism speed",
			RiskAllele:   "C",
			NormalAllele: "A",
			Condition:    "Caffeine Metabolism",
		},
		{
			RSID:         "rs4988235",
			Gene:         "MCM6",
			Category:     CategoryTrait,
			Description:  "Lactase persistence (lactose tolerance)",
			RiskAllele:   "C",
			NormalAllele: "T",
			Condition:    "Lactose Intolerance",
		},
		{
			RSID:         "rs671",
			Gene:         "ALDH2",
			Category:     CategoryTrait,
			Description:  "Alcohol flush reaction",
			RiskAllele:   "A",
			NormalAllele: "G",
			Condition:    "Alcohol Flush Reaction",
		},
		{
			RSID:         "rs1815739",
			Gene:         "ACTN3",
			Category:     CategoryTrait,
			Description:  "Muscle fiber composition (R577X)",
			RiskAllele:   "T",
			NormalAllele: "C",
			Condition:    "Muscle Fiber Type",
		},
		{
			RSID:        "rs713598",
			Gene:        "TAS2R38",
			Category:    CategoryTrait,
			Description: "Bitter taste perception (PTC/PROP)",
			Condition:   "Bitter Taste Perception",
		},
		{
			RSID:        "rs1726866",
			Gene:        "TAS2R38",
			Category:    CategoryTrait,
			Description: "Bitter taste perception",
			Condition:   "Bitter Taste Perception",
		},
		{
			RSID:        "rs10246939",
			Gene:        "TAS2R38",
			Category:    CategoryTrait,
			Description: "Bitter taste perception",
			Condition:   "Bitter Taste Perception",
		},
		{
			RSID:         "rs72921001",
			Gene:         "OR6A2",
			Category:     CategoryTrait,
			Description:  "Cilantro taste perception",
			RiskAllele:   "A",
			NormalAllele: "C",
			Condition:    "Cilantro Aversion",
		},
		{
			RSID:        "rs12913832",
			Gene:        "HERC2",
			Category:    CategoryTrait,
			Description: "Eye color determination",
			Condition:   "Eye Color",
		},
		{
			RSID:        "rs17822931",
			Gene:        "ABCC11",
			Category:    CategoryTrait,
			Description: "Earwax type (wet vs dry)",
			Condition:   "Earwax Type",
		},
		{
			RSID:        "rs4481887",
			Gene:        "OR2M7",
			Category:    CategoryTrait,
			Description: "Asparagus metabolite smell detection",
			Condition:   "Asparagus Anosmia",
		},
		{
			RSID:        "rs2282679",
			Gene:        "GC",
			Category:    CategoryTrait,
			Description: "Vitamin D binding protein levels",
			Condition:   "Vitamin D Levels",
		},
		{
			RSID:        "rs10741657",
			Gene:        "CYP2R1",
			Category:    CategoryTrait,
			Description: "Vitamin D metabolism",
			Condition:   "Vitamin D Levels",
		},
	}
}
