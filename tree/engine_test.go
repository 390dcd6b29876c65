package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/gedcom"
)

// fakeSource feeds the engine from memory.
type fakeSource struct {
	individuals []gedcom.Individual
	families    []gedcom.Family
}

func (f *fakeSource) AllIndividuals() ([]gedcom.Individual, error) { return f.individuals, nil }
func (f *fakeSource) AllFamilies() ([]gedcom.Family, error)        { return f.families, nil }

// threeGenerations builds grandparents -> parents -> child.
func threeGenerations() *fakeSource {
	return &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "Alex TestPerson", GivenName: "Alex", Surname: "TestPerson", BirthDate: "1990"},
			{ID: "@I2@", Name: "Robert TestPerson", GivenName: "Robert", Surname: "TestPerson", BirthDate: "1960"},
			{ID: "@I3@", Name: "Sarah TestPerson", GivenName: "Sarah", Surname: "TestPerson", BirthDate: "1962"},
			{ID: "@I4@", Name: "William TestPerson", GivenName: "William", Surname: "TestPerson", BirthDate: "1930", BirthPlace: "Springfield"},
			{ID: "@I5@", Name: "Margaret TestPerson", GivenName: "Margaret", Surname: "TestPerson", BirthDate: "1932"},
		},
		families: []gedcom.Family{
			{ID: "@F1@", HusbandID: "@I2@", WifeID: "@I3@", Children: []string{"@I1@"}},
			{ID: "@F2@", HusbandID: "@I4@", WifeID: "@I5@", Children: []string{"@I2@"}},
		},
	}
}

func TestAncestorsByGeneration(t *testing.T) {
	e, err := NewEngine(threeGenerations())
	require.NoError(t, err)

	generations, err := e.Ancestors("@I1@", 0)
	require.NoError(t, err)
	require.Len(t, generations, 2)

	require.Len(t, generations[0], 2)
	assert.Equal(t, "@I2@", generations[0][0].ID)
	assert.Equal(t, "@I3@", generations[0][1].ID)

	require.Len(t, generations[1], 2)
	assert.Equal(t, "@I4@", generations[1][0].ID)
	assert.Equal(t, "@I5@", generations[1][1].ID)
}

func TestAncestorsMaxGenerations(t *testing.T) {
	e, err := NewEngine(threeGenerations())
	require.NoError(t, err)

	generations, err := e.Ancestors("@I1@", 1)
	require.NoError(t, err)
	require.Len(t, generations, 1)
	assert.Len(t, generations[0], 2)
}

func TestAncestorsUnknownIndividual(t *testing.T) {
	e, err := NewEngine(threeGenerations())
	require.NoError(t, err)

	_, err = e.Ancestors("@I99@", 0)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestAncestorsVisitEachIndividualOnce(t *testing.T) {
	// I1 and I2 are each other's parents through two families.
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "Paradox Person"},
			{ID: "@I2@", Name: "Parent Person"},
		},
		families: []gedcom.Family{
			{ID: "@F1@", HusbandID: "@I2@", Children: []string{"@I1@"}},
			{ID: "@F2@", HusbandID: "@I1@", Children: []string{"@I2@"}},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	generations, err := e.Ancestors("@I1@", 0)
	require.NoError(t, err)

	seen := map[string]int{}
	total := 0
	for _, gen := range generations {
		for _, ind := range gen {
			seen[ind.ID]++
			total++
		}
	}
	assert.Equal(t, 1, total, "the cycle must not revisit the start individual")
	assert.LessOrEqual(t, seen["@I2@"], 1)
}

func TestRootInference(t *testing.T) {
	e, err := NewEngine(threeGenerations())
	require.NoError(t, err)

	root, err := e.Root()
	require.NoError(t, err)
	// William has birth place set; Margaret has the same descendant count
	// but a less complete record.
	assert.Equal(t, "@I4@", root.ID)
}

func TestRootTieBreakByID(t *testing.T) {
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "A Person", BirthDate: "1950"},
			{ID: "@I2@", Name: "B Person", BirthDate: "1951"},
			{ID: "@I3@", Name: "Child Person"},
		},
		families: []gedcom.Family{
			{ID: "@F1@", HusbandID: "@I1@", WifeID: "@I2@", Children: []string{"@I3@"}},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	root, err := e.Root()
	require.NoError(t, err)
	assert.Equal(t, "@I1@", root.ID)
}

func TestRootAmbiguousWithDisconnectedComponents(t *testing.T) {
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "Alone One"},
			{ID: "@I2@", Name: "Alone Two"},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	_, err = e.Root()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousRoot))
}

func TestRootEmptyTree(t *testing.T) {
	e, err := NewEngine(&fakeSource{})
	require.NoError(t, err)

	_, err = e.Root()
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRootlessIndividualHasNoAncestors(t *testing.T) {
	// A dangling FAMC was dropped at parse time, so the individual carries
	// no parent edge at all.
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "Orphan Annie"},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	generations, err := e.Ancestors("@I1@", 0)
	require.NoError(t, err)
	assert.Empty(t, generations)
}

func TestSearchOrdering(t *testing.T) {
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "Robert Smith", GivenName: "Robert", Surname: "Smith"},
			{ID: "@I2@", Name: "Jennifer Smith", GivenName: "Jennifer", Surname: "Smith"},
			{ID: "@I3@", Name: "Michael Smith", GivenName: "Michael", Surname: "Smith"},
			{ID: "@I4@", Name: "Mary Smith", GivenName: "Mary", Surname: "Smith"},
			{ID: "@I5@", Name: "Jane Jones", GivenName: "Jane", Surname: "Jones"},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	results := e.Search("smith", 0)
	require.Len(t, results, 4)
	assert.Equal(t, "Jennifer", results[0].GivenName)
	assert.Equal(t, "Mary", results[1].GivenName)
	assert.Equal(t, "Michael", results[2].GivenName)
	assert.Equal(t, "Robert", results[3].GivenName)
}

func TestSearchByBirthPlaceAndLimit(t *testing.T) {
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "A Person", Surname: "Person", BirthPlace: "Springfield"},
			{ID: "@I2@", Name: "B Person", Surname: "Person", BirthPlace: "Springfield"},
			{ID: "@I3@", Name: "C Other", Surname: "Other", BirthPlace: "Shelbyville"},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	results := e.Search("springfield", 0)
	assert.Len(t, results, 2)

	results = e.Search("springfield", 1)
	assert.Len(t, results, 1)

	assert.Empty(t, e.Search("  ", 0))
}

func TestChildrenOrder(t *testing.T) {
	src := &fakeSource{
		individuals: []gedcom.Individual{
			{ID: "@I1@", Name: "Parent Person"},
			{ID: "@I2@", Name: "First Child"},
			{ID: "@I3@", Name: "Second Child"},
		},
		families: []gedcom.Family{
			{ID: "@F1@", HusbandID: "@I1@", Children: []string{"@I2@", "@I3@"}},
		},
	}
	e, err := NewEngine(src)
	require.NoError(t, err)

	children := e.Children("@I1@")
	require.Len(t, children, 2)
	assert.Equal(t, "@I2@", children[0].ID)
	assert.Equal(t, "@I3@", children[1].ID)
}
