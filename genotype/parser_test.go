package genotype

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronehrlich/genex/errors"
)

const sampleGenome = `# This data file generated by 23andMe at: Mon Jan 05 12:00:00 2026
#
# rsid	chromosome	position	genotype
rs429358	19	45411941	TT
rs7412	19	45412079	CC
rs1801133	1	11856378	AG
rs4988235	2	136608646	GA
rs762551	15	75041917	AA
i3000001	MT	16519	T
rs199999	Y	2655180	G
rs533331	1	1000000	--
`

func TestParseAll(t *testing.T) {
	calls, result, err := ParseAll(strings.NewReader(sampleGenome), "genome.txt", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, calls, 8)
	assert.Equal(t, 8, result.Calls)
	assert.Empty(t, result.Warnings)

	apoe := calls[0]
	assert.Equal(t, "rs429358", apoe.RSID)
	assert.Equal(t, "19", apoe.Chromosome)
	assert.Equal(t, uint64(45411941), apoe.Position)
	assert.Equal(t, "TT", apoe.Genotype)
	assert.Equal(t, "genome.txt", apoe.SourceFile)
}

func TestParseDuplicateRSIDLastWins(t *testing.T) {
	input := `# rsid	chromosome	position	genotype
rs1801133	1	11856378	AG
rs1801133	1	11856378	GG
`
	calls, _, err := ParseAll(strings.NewReader(input), "genome.txt", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "GG", calls[0].Genotype)
}

func TestParseSkipsMalformedLinesWithWarnings(t *testing.T) {
	input := `# This data file generated by 23andMe
rs100	1	1000	AA
rs101	1	notanumber	AA
rs102	1	2000
rs103	1	3000	ZZ
rs104	1	4000	CT
`
	calls, result, err := ParseAll(strings.NewReader(input), "genome.txt", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, calls, 2)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Warnings, 3)
	assert.Equal(t, 3, result.Warnings[0].Line)
	assert.Contains(t, result.Warnings[0].Message, "position")
	assert.Contains(t, result.Warnings[2].Message, "genotype")
}

func TestParseRejectsUnrelatedFile(t *testing.T) {
	input := `This is not a genetic data file.
Just some random prose that happens to be in a text file.
Nothing here resembles tab separated genotype rows at all.
`
	_, _, err := ParseAll(strings.NewReader(input), "notes.txt", DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.IsUnrecognizedFormat(err))
}

func TestParseSkipRateCeiling(t *testing.T) {
	t.Run("just under the ceiling imports with warnings", func(t *testing.T) {
		// 2 malformed of 5 data lines = 40%
		input := `# This data file generated by 23andMe
rs100	1	1000	AA
rs101	1	2000	CT
rs102	1	3000	GG
bad line one
bad line two here
`
		calls, result, err := ParseAll(strings.NewReader(input), "genome.txt", DefaultOptions())
		require.NoError(t, err)
		assert.Len(t, calls, 3)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("over the ceiling rejects the file", func(t *testing.T) {
		// 3 malformed of 5 data lines = 60%
		input := `# This data file generated by 23andMe
rs100	1	1000	AA
rs101	1	2000	CT
bad line one
bad line two here
bad line three again
`
		_, _, err := ParseAll(strings.NewReader(input), "genome.txt", DefaultOptions())
		require.Error(t, err)
		assert.True(t, errors.IsUnrecognizedFormat(err))
	})
}

func TestParseHaploidAndIndelCalls(t *testing.T) {
	input := `# rsid	chromosome	position	genotype
i4000408	15	72346580	DI
rs80357906	17	41209079	II
i3000001	MT	16519	T
`
	calls, _, err := ParseAll(strings.NewReader(input), "genome.txt", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, calls, 3)
	assert.Equal(t, "DI", calls[0].Genotype)
	assert.Equal(t, "II", calls[1].Genotype)
	assert.Equal(t, "T", calls[2].Genotype)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()

	genomePath := filepath.Join(dir, "genome.txt")
	require.NoError(t, os.WriteFile(genomePath, []byte(sampleGenome), 0o644))
	assert.True(t, Detect(genomePath, DefaultOptions()))

	fakePath := filepath.Join(dir, "fake.txt")
	require.NoError(t, os.WriteFile(fakePath, []byte("This is not a genetic data file\nJust some random text.\n"), 0o644))
	assert.False(t, Detect(fakePath, DefaultOptions()))

	assert.False(t, Detect(filepath.Join(dir, "missing.txt"), DefaultOptions()))
}

func TestCountLines(t *testing.T) {
	dir := t.TempDir()
	genomePath := filepath.Join(dir, "genome.txt")
	require.NoError(t, os.WriteFile(genomePath, []byte(sampleGenome), 0o644))

	count, err := CountLines(genomePath)
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}

func TestCallHelpers(t *testing.T) {
	t.Run("alleles of diploid call", func(t *testing.T) {
		c := Call{Genotype: "AG"}
		a, b := c.Alleles()
		assert.Equal(t, "A", a)
		assert.Equal(t, "G", b)
		assert.Equal(t, 1, c.CountAllele("A"))
		assert.Equal(t, 0, c.CountAllele("C"))
	})

	t.Run("alleles of haploid call", func(t *testing.T) {
		c := Call{Genotype: "T"}
		a, b := c.Alleles()
		assert.Equal(t, "T", a)
		assert.Equal(t, "T", b)
	})

	t.Run("is called", func(t *testing.T) {
		assert.True(t, Call{Genotype: "AG"}.IsCalled())
		assert.False(t, Call{Genotype: NoCall}.IsCalled())
		assert.False(t, Call{Genotype: "DD"}.IsCalled())
		assert.False(t, Call{Genotype: "II"}.IsCalled())
	})
}
