package genotype

import "fmt"

// NoCall is the placeholder genotype for positions the array could not read.
const NoCall = "--"

// Call is a single genotype call from a consumer export file.
// Calls are created in bulk during import and immutable afterwards.
type Call struct {
	RSID       string `json:"rsid"`
	Chromosome string `json:"chromosome"`
	Position   uint64 `json:"position"`
	Genotype   string `json:"genotype"`
	SourceFile string `json:"source_file"`
}

// IsCalled reports whether the call carries usable alleles
// (not a no-call and not a pure insertion/deletion placeholder).
func (c Call) IsCalled() bool {
	switch c.Genotype {
	case NoCall, "", "NC", "II", "DD":
		return false
	}
	return true
}

// Alleles splits the genotype into its two alleles. Haploid calls
// (mitochondrial, Y) are reported as two copies of the single allele.
func (c Call) Alleles() (string, string) {
	if len(c.Genotype) == 2 {
		return string(c.Genotype[0]), string(c.Genotype[1])
	}
	return c.Genotype, c.Genotype
}

// CountAllele returns how many copies of allele the genotype carries.
func (c Call) CountAllele(allele string) int {
	if allele == "" {
		return 0
	}
	count := 0
	a, b := c.Alleles()
	if a == allele {
		count++
	}
	if b == allele {
		count++
	}
	return count
}

// Warning records a non-fatal parse problem: the offending line was skipped
// and the import proceeded.
type Warning struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Message)
}
