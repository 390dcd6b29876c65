package gedcom

import "fmt"

// Sex is the recorded sex of an individual.
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// Individual is one INDI record. The ID is the canonical identifier resolved
// from the file's @id@ pointer syntax. Dates are opaque partial strings; no
// date arithmetic happens at parse time.
type Individual struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	GivenName      string            `json:"given_name"`
	Surname        string            `json:"surname"`
	Sex            Sex               `json:"sex"`
	BirthDate      string            `json:"birth_date,omitempty"`
	BirthPlace     string            `json:"birth_place,omitempty"`
	DeathDate      string            `json:"death_date,omitempty"`
	DeathPlace     string            `json:"death_place,omitempty"`
	FamilyChild    string            `json:"family_child,omitempty"` // family in which this individual is a child
	SpouseFamilies []string          `json:"spouse_families,omitempty"`
	RawTags        map[string]string `json:"raw_tags,omitempty"` // unrecognized sub-tags, retained verbatim
}

// Family is one FAM record. Children preserves CHIL order from the file.
type Family struct {
	ID            string   `json:"id"`
	HusbandID     string   `json:"husband_id,omitempty"`
	WifeID        string   `json:"wife_id,omitempty"`
	MarriageDate  string   `json:"marriage_date,omitempty"`
	MarriagePlace string   `json:"marriage_place,omitempty"`
	Children      []string `json:"children,omitempty"`
}

// Warning records a non-fatal parse problem: a skipped line, a dropped
// dangling pointer, or a structural cycle.
type Warning struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.File, w.Message)
}

// Result holds a full parse pass: records addressed by their parsed ids
// plus accumulated warnings. Pointer fields are ids into the maps, never
// direct object references, so dangling or cyclic references cannot
// produce invalid graphs.
type Result struct {
	Individuals map[string]*Individual
	Families    map[string]*Family
	Warnings    []Warning
}
