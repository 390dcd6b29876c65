package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/snpdb"
)

// fakeSource is an in-memory Source for tests.
type fakeSource struct {
	calls map[string]genotype.Call
	anns  map[string]snpdb.Annotation
}

func (f *fakeSource) GetCall(rsid string) (*genotype.Call, error) {
	c, ok := f.calls[rsid]
	if !ok {
		return nil, errors.NewNotFoundError("snp %s", rsid)
	}
	return &c, nil
}

func (f *fakeSource) GetAnnotation(rsid string) (*snpdb.Annotation, error) {
	a, ok := f.anns[rsid]
	if !ok {
		return nil, errors.NewNotFoundError("annotation %s", rsid)
	}
	return &a, nil
}

func (f *fakeSource) GetAnnotationsByCategory(category string) ([]snpdb.Annotation, error) {
	var anns []snpdb.Annotation
	for _, a := range snpdb.All() {
		if a.Category == category {
			if _, override := f.anns[a.RSID]; override {
				a = f.anns[a.RSID]
			}
			anns = append(anns, a)
		}
	}
	return anns, nil
}

func (f *fakeSource) GetCallsByRSIDs(rsids []string) (map[string]genotype.Call, error) {
	calls := make(map[string]genotype.Call)
	for _, rsid := range rsids {
		if c, ok := f.calls[rsid]; ok {
			calls[rsid] = c
		}
	}
	return calls, nil
}

func TestNormalizeGenotype(t *testing.T) {
	assert.Equal(t, "AG", NormalizeGenotype("GA"))
	assert.Equal(t, "AG", NormalizeGenotype("AG"))
	assert.Equal(t, "CT", NormalizeGenotype("TC"))
	assert.Equal(t, "T", NormalizeGenotype("T"))
	assert.Equal(t, genotype.NoCall, NormalizeGenotype(genotype.NoCall))
}

func TestMatchAlleleOrderInvariance(t *testing.T) {
	ann := snpdb.Annotation{
		RSID: "rs1801133", Gene: "MTHFR", Category: snpdb.CategoryHealth,
		RiskAllele: "A", NormalAllele: "G", Condition: "MTHFR Deficiency",
	}
	ag := Match(genotype.Call{RSID: "rs1801133", Genotype: "AG"}, ann)
	ga := Match(genotype.Call{RSID: "rs1801133", Genotype: "GA"}, ann)

	assert.Equal(t, ag.RiskLevel, ga.RiskLevel)
	assert.Equal(t, ag.RiskAlleleCount, ga.RiskAlleleCount)
	assert.Equal(t, ag.Interpretation, ga.Interpretation)
	assert.Equal(t, 1, ag.RiskAlleleCount)
	assert.Equal(t, RiskElevated, ag.RiskLevel)
}

func TestMatchHealthClassification(t *testing.T) {
	ann := snpdb.Annotation{
		RSID: "rs6025", Gene: "F5", Category: snpdb.CategoryHealth,
		RiskAllele: "A", NormalAllele: "G", Condition: "Factor V Leiden Thrombophilia",
	}

	tests := []struct {
		genotype string
		level    RiskLevel
		count    int
	}{
		{"GG", RiskNormal, 0},
		{"AG", RiskElevated, 1},
		{"AA", RiskHigh, 2},
	}
	for _, tt := range tests {
		t.Run(tt.genotype, func(t *testing.T) {
			f := Match(genotype.Call{RSID: "rs6025", Genotype: tt.genotype}, ann)
			assert.Equal(t, tt.level, f.RiskLevel)
			assert.Equal(t, tt.count, f.RiskAlleleCount)
		})
	}
}

func TestMatchCarrierClassification(t *testing.T) {
	ann := snpdb.Annotation{
		RSID: "rs76763715", Gene: "GBA", Category: snpdb.CategoryCarrier,
		RiskAllele: "A", NormalAllele: "G", Condition: "Gaucher Disease",
	}

	f := Match(genotype.Call{Genotype: "AG"}, ann)
	assert.Equal(t, RiskCarrier, f.RiskLevel)
	assert.Contains(t, f.Interpretation, "Carrier")

	f = Match(genotype.Call{Genotype: "AA"}, ann)
	assert.Equal(t, RiskHigh, f.RiskLevel)

	f = Match(genotype.Call{Genotype: "GG"}, ann)
	assert.Equal(t, RiskNormal, f.RiskLevel)
}

func TestMatchTraitStaysNormal(t *testing.T) {
	ann := snpdb.Annotation{
		RSID: "rs762551", Gene: "CYP1A2", Category: snpdb.CategoryTrait,
		RiskAllele: "C", NormalAllele: "A", Condition: "Caffeine Metabolism",
	}
	f := Match(genotype.Call{Genotype: "CC"}, ann)
	assert.Equal(t, RiskNormal, f.RiskLevel)
	assert.Equal(t, 2, f.RiskAlleleCount)
}

func TestMatchNoCall(t *testing.T) {
	ann := snpdb.Annotation{
		RSID: "rs6025", Category: snpdb.CategoryHealth, RiskAllele: "A",
	}
	f := Match(genotype.Call{Genotype: genotype.NoCall}, ann)
	assert.Equal(t, RiskUnknown, f.RiskLevel)
	assert.Equal(t, ZygosityNoCall, f.Zygosity)
}

func TestMatchRecommendationOnlyWithRiskAllele(t *testing.T) {
	ann := snpdb.Annotation{
		RSID: "rs1800562", Gene: "HFE", Category: snpdb.CategoryHealth,
		RiskAllele: "A", NormalAllele: "G", Condition: "Hereditary Hemochromatosis",
	}

	f := Match(genotype.Call{Genotype: "AG"}, ann)
	assert.NotEmpty(t, f.Recommendation)

	f = Match(genotype.Call{Genotype: "GG"}, ann)
	assert.Empty(t, f.Recommendation)
}

func TestZygosityOf(t *testing.T) {
	assert.Equal(t, ZygosityHomozygous, ZygosityOf(genotype.Call{Genotype: "AA"}))
	assert.Equal(t, ZygosityHeterozygous, ZygosityOf(genotype.Call{Genotype: "AG"}))
	assert.Equal(t, ZygosityHomozygous, ZygosityOf(genotype.Call{Genotype: "T"}))
	assert.Equal(t, ZygosityNoCall, ZygosityOf(genotype.Call{Genotype: genotype.NoCall}))
}

func TestLookupSNP(t *testing.T) {
	src := &fakeSource{
		calls: map[string]genotype.Call{
			"rs6025":   {RSID: "rs6025", Genotype: "GG"},
			"rs999001": {RSID: "rs999001", Genotype: "CT"},
		},
		anns: map[string]snpdb.Annotation{
			"rs6025": {RSID: "rs6025", Gene: "F5", Category: snpdb.CategoryHealth,
				RiskAllele: "A", Condition: "Factor V Leiden Thrombophilia"},
		},
	}

	t.Run("annotated snp", func(t *testing.T) {
		f, err := LookupSNP(src, "rs6025")
		require.NoError(t, err)
		assert.True(t, f.Annotated)
		assert.Equal(t, RiskNormal, f.RiskLevel)
	})

	t.Run("rsid is case insensitive", func(t *testing.T) {
		f, err := LookupSNP(src, "  RS6025 ")
		require.NoError(t, err)
		assert.Equal(t, "rs6025", f.Call.RSID)
	})

	t.Run("untested snp", func(t *testing.T) {
		_, err := LookupSNP(src, "rs000000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotTested))
	})

	t.Run("unannotated snp still returns the raw call", func(t *testing.T) {
		f, err := LookupSNP(src, "rs999001")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotAnnotated))
		require.NotNil(t, f)
		assert.Equal(t, "CT", f.Call.Genotype)
		assert.False(t, f.Annotated)
	})
}

func TestAnalyzeCategory(t *testing.T) {
	src := &fakeSource{
		calls: map[string]genotype.Call{
			"rs6025":    {RSID: "rs6025", Genotype: "AG"},
			"rs1800562": {RSID: "rs1800562", Genotype: "GG"},
		},
	}

	report, err := AnalyzeCategory(src, snpdb.CategoryHealth)
	require.NoError(t, err)
	assert.Len(t, report.Findings, 2)
	assert.NotEmpty(t, report.Untested)

	// Ordered by gene: F5 before HFE
	assert.Equal(t, "F5", report.Findings[0].Annotation.Gene)
	assert.Equal(t, "HFE", report.Findings[1].Annotation.Gene)

	notable := report.Notable()
	require.Len(t, notable, 1)
	assert.Equal(t, "rs6025", notable[0].Call.RSID)
}

func TestDetermineAPOEStatus(t *testing.T) {
	apoeSource := func(g429358, g7412 string) *fakeSource {
		calls := map[string]genotype.Call{}
		if g429358 != "" {
			calls[APOERS429358] = genotype.Call{RSID: APOERS429358, Genotype: g429358}
		}
		if g7412 != "" {
			calls[APOERS7412] = genotype.Call{RSID: APOERS7412, Genotype: g7412}
		}
		return &fakeSource{calls: calls}
	}

	tests := []struct {
		name     string
		g429358  string
		g7412    string
		status   string
		level    RiskLevel
		complete bool
	}{
		{"most common genotype", "TT", "CC", "ε3/ε3", RiskNormal, true},
		{"protective pair", "TT", "TT", "ε2/ε2", RiskNormal, true},
		{"one protective allele", "TT", "CT", "ε2/ε3", RiskNormal, true},
		{"one e4 allele", "CT", "CC", "ε3/ε4", RiskElevated, true},
		{"e4 offset by e2", "CT", "CT", "ε2/ε4", RiskElevated, true},
		{"two e4 alleles", "CC", "CC", "ε4/ε4", RiskHigh, true},
		{"order normalized input", "TC", "CC", "ε3/ε4", RiskElevated, true},
		{"atypical combination", "CC", "TT", "atypical", RiskUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := DetermineAPOEStatus(apoeSource(tt.g429358, tt.g7412))
			require.NoError(t, err)
			assert.Equal(t, tt.status, report.Status)
			assert.Equal(t, tt.level, report.RiskLevel)
			assert.Equal(t, tt.complete, report.Complete)
		})
	}

	t.Run("partial data from rs429358 only", func(t *testing.T) {
		report, err := DetermineAPOEStatus(apoeSource("CT", ""))
		require.NoError(t, err)
		assert.False(t, report.Complete)
		assert.Equal(t, 1, report.E4Count)
		assert.Equal(t, RiskElevated, report.RiskLevel)
	})

	t.Run("neither snp tested", func(t *testing.T) {
		_, err := DetermineAPOEStatus(apoeSource("", ""))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotTested))
	})

	t.Run("no-call counts as untested", func(t *testing.T) {
		_, err := DetermineAPOEStatus(apoeSource("--", "--"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotTested))
	})
}
