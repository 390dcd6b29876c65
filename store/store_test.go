package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/gedcom"
	"github.com/cameronehrlich/genex/genotype"
	"github.com/cameronehrlich/genex/snpdb"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testCalls() []genotype.Call {
	return []genotype.Call{
		{RSID: "rs429358", Chromosome: "19", Position: 45411941, Genotype: "TT", SourceFile: "genome.txt"},
		{RSID: "rs7412", Chromosome: "19", Position: 45412079, Genotype: "CC", SourceFile: "genome.txt"},
		{RSID: "rs1801133", Chromosome: "1", Position: 11856378, Genotype: "AG", SourceFile: "genome.txt"},
	}
}

func testTree() *gedcom.Result {
	return &gedcom.Result{
		Individuals: map[string]*gedcom.Individual{
			"@I1@": {
				ID: "@I1@", Name: "Alex TestPerson", GivenName: "Alex", Surname: "TestPerson",
				Sex: gedcom.SexMale, BirthDate: "15 MAR 1990", FamilyChild: "@F1@",
				RawTags: map[string]string{"OCCU": "Cartographer"},
			},
			"@I2@": {
				ID: "@I2@", Name: "Robert TestPerson", GivenName: "Robert", Surname: "TestPerson",
				Sex: gedcom.SexMale, SpouseFamilies: []string{"@F1@"},
			},
			"@I3@": {
				ID: "@I3@", Name: "Sarah Maiden", GivenName: "Sarah", Surname: "Maiden",
				Sex: gedcom.SexFemale, SpouseFamilies: []string{"@F1@"},
			},
		},
		Families: map[string]*gedcom.Family{
			"@F1@": {
				ID: "@F1@", HusbandID: "@I2@", WifeID: "@I3@",
				MarriageDate: "12 JUL 1985", Children: []string{"@I1@"},
			},
		},
	}
}

func TestImportGenomeAndLookup(t *testing.T) {
	s := newTestStore(t)

	count, err := s.ImportGenome(testCalls(), "genome.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	call, err := s.GetCall("rs429358")
	require.NoError(t, err)
	assert.Equal(t, "TT", call.Genotype)
	assert.Equal(t, "19", call.Chromosome)
	assert.Equal(t, uint64(45411941), call.Position)

	_, err = s.GetCall("rs999999")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	n, err := s.CountSNPs()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	source, err := s.GetMetadata(MetaGenomeSource)
	require.NoError(t, err)
	assert.Equal(t, "genome.txt", source)
}

func TestImportGenomeReplacesPriorGeneration(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ImportGenome(testCalls(), "old.txt")
	require.NoError(t, err)

	newCalls := []genotype.Call{
		{RSID: "rs762551", Chromosome: "15", Position: 75041917, Genotype: "AA", SourceFile: "new.txt"},
	}
	_, err = s.ImportGenome(newCalls, "new.txt")
	require.NoError(t, err)

	n, err := s.CountSNPs()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "prior generation should be gone")

	_, err = s.GetCall("rs429358")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestImportGenomeIdempotent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ImportGenome(testCalls(), "genome.txt")
	require.NoError(t, err)
	_, err = s.ImportGenome(testCalls(), "genome.txt")
	require.NoError(t, err)

	n, err := s.CountSNPs()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGetCallsByRSIDs(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ImportGenome(testCalls(), "genome.txt")
	require.NoError(t, err)

	calls, err := s.GetCallsByRSIDs([]string{"rs429358", "rs7412", "rs000000"})
	require.NoError(t, err)
	assert.Len(t, calls, 2)
	assert.Equal(t, "CC", calls["rs7412"].Genotype)
	assert.NotContains(t, calls, "rs000000")
}

func TestLoadAnnotations(t *testing.T) {
	s := newTestStore(t)

	count, err := s.LoadAnnotations(snpdb.All())
	require.NoError(t, err)
	assert.Equal(t, len(snpdb.All()), count)

	a, err := s.GetAnnotation("rs429358")
	require.NoError(t, err)
	assert.Equal(t, "APOE", a.Gene)
	assert.Equal(t, snpdb.CategoryHealth, a.Category)
	assert.Equal(t, "genex-curated", a.Source)

	_, err = s.GetAnnotation("rs000000")
	assert.True(t, errors.IsNotFoundError(err))

	pharma, err := s.GetAnnotationsByCategory(snpdb.CategoryPharma)
	require.NoError(t, err)
	assert.NotEmpty(t, pharma)
	for _, p := range pharma {
		assert.Equal(t, snpdb.CategoryPharma, p.Category)
	}

	version, err := s.GetMetadata(MetaSNPDBVersion)
	require.NoError(t, err)
	assert.Equal(t, snpdb.Version, version)
}

func TestImportTreeAndLookup(t *testing.T) {
	s := newTestStore(t)

	individuals, families, err := s.ImportTree(testTree(), "family.ged")
	require.NoError(t, err)
	assert.Equal(t, 3, individuals)
	assert.Equal(t, 1, families)

	alex, err := s.GetIndividual("@I1@")
	require.NoError(t, err)
	assert.Equal(t, "Alex TestPerson", alex.Name)
	assert.Equal(t, "@F1@", alex.FamilyChild)
	assert.Equal(t, "Cartographer", alex.RawTags["OCCU"])

	robert, err := s.GetIndividual("@I2@")
	require.NoError(t, err)
	assert.Equal(t, []string{"@F1@"}, robert.SpouseFamilies)

	_, err = s.GetIndividual("@I99@")
	assert.True(t, errors.IsNotFoundError(err))

	fams, err := s.AllFamilies()
	require.NoError(t, err)
	require.Len(t, fams, 1)
	assert.Equal(t, "@I2@", fams[0].HusbandID)
	assert.Equal(t, []string{"@I1@"}, fams[0].Children)
}

func TestImportTreeReplacesPriorGeneration(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.ImportTree(testTree(), "old.ged")
	require.NoError(t, err)

	replacement := &gedcom.Result{
		Individuals: map[string]*gedcom.Individual{
			"@I9@": {ID: "@I9@", Name: "Solo Person", Surname: "Person", Sex: gedcom.SexUnknown},
		},
		Families: map[string]*gedcom.Family{},
	}
	_, _, err = s.ImportTree(replacement, "new.ged")
	require.NoError(t, err)

	n, err := s.CountIndividuals()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetIndividual("@I1@")
	assert.True(t, errors.IsNotFoundError(err))

	families, err := s.CountFamilies()
	require.NoError(t, err)
	assert.Equal(t, 0, families)
}

func TestSearchIndividualsOrdering(t *testing.T) {
	s := newTestStore(t)

	tree := &gedcom.Result{
		Individuals: map[string]*gedcom.Individual{
			"@I1@": {ID: "@I1@", Name: "Robert Smith", GivenName: "Robert", Surname: "Smith"},
			"@I2@": {ID: "@I2@", Name: "Jennifer Smith", GivenName: "Jennifer", Surname: "Smith"},
			"@I3@": {ID: "@I3@", Name: "Michael Smith", GivenName: "Michael", Surname: "Smith"},
			"@I4@": {ID: "@I4@", Name: "Mary Jones", GivenName: "Mary", Surname: "Jones", BirthPlace: "Smithville"},
		},
		Families: map[string]*gedcom.Family{},
	}
	_, _, err := s.ImportTree(tree, "family.ged")
	require.NoError(t, err)

	results, err := s.SearchIndividuals("smith", 20)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Jones via birth place sorts first by surname, then Smiths by given name.
	assert.Equal(t, "@I4@", results[0].ID)
	assert.Equal(t, "Jennifer", results[1].GivenName)
	assert.Equal(t, "Michael", results[2].GivenName)
	assert.Equal(t, "Robert", results[3].GivenName)
}

func TestSearchIndividualsLimit(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.ImportTree(testTree(), "family.ged")
	require.NoError(t, err)

	results, err := s.SearchIndividuals("TestPerson", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMetadataRoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetMetadata("answer", "42"))
	require.NoError(t, s.SetMetadata("answer", "43"))

	value, err := s.GetMetadata("answer")
	require.NoError(t, err)
	assert.Equal(t, "43", value)

	_, err = s.GetMetadata("missing")
	assert.True(t, errors.IsNotFoundError(err))

	all, err := s.AllMetadata()
	require.NoError(t, err)
	assert.Equal(t, "43", all["answer"])
}
