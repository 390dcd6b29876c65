package snpdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStampsSourceFields(t *testing.T) {
	for _, a := range All() {
		assert.Equal(t, "genex-curated", a.Source, a.RSID)
		assert.Equal(t, Version, a.SourceVersion, a.RSID)
		assert.NotEmpty(t, a.Gene, a.RSID)
		assert.NotEmpty(t, a.Category, a.RSID)
		assert.NotEmpty(t, a.Description, a.RSID)
	}
}

func TestNoDuplicateRSIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range All() {
		assert.False(t, seen[a.RSID], "duplicate rsid %s", a.RSID)
		seen[a.RSID] = true
	}
}

func TestAPOEPairPresent(t *testing.T) {
	byRSID := ByRSID()

	e4, ok := byRSID["rs429358"]
	require.True(t, ok)
	assert.Equal(t, "APOE", e4.Gene)
	assert.Equal(t, "C", e4.RiskAllele)

	e2, ok := byRSID["rs7412"]
	require.True(t, ok)
	assert.Equal(t, "APOE", e2.Gene)
}

func TestEveryCategoryPopulated(t *testing.T) {
	counts := map[string]int{}
	for _, a := range All() {
		counts[a.Category]++
	}
	for _, cat := range []string{CategoryHealth, CategoryCarrier, CategoryPharma, CategoryTrait} {
		assert.Greater(t, counts[cat], 0, cat)
	}
}

func TestPharmaAnnotationsCarryDrugs(t *testing.T) {
	for _, a := range All() {
		if a.Category == CategoryPharma {
			assert.NotEmpty(t, a.Drugs, a.RSID)
		}
	}
}
