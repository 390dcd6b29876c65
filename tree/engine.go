// Package tree answers ancestry and search queries over imported GEDCOM
// records. An Engine is built from a full store scan per query session;
// derived indexes are rebuilt from scratch, never incrementally maintained.
package tree

import (
	"sort"
	"strings"

	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/gedcom"
)

// ErrAmbiguousRoot is returned by Root when the tree has multiple
// disconnected components and no individual was named.
var ErrAmbiguousRoot = errors.ErrAmbiguousRoot

// Source is the read surface the engine is built from. *store.Store
// satisfies it.
type Source interface {
	AllIndividuals() ([]gedcom.Individual, error)
	AllFamilies() ([]gedcom.Family, error)
}

// Engine holds the in-memory family graph for one query session.
type Engine struct {
	individuals map[string]*gedcom.Individual
	families    map[string]*gedcom.Family

	// derived back-indexes
	childFamily    map[string]string   // child id -> family the child belongs to
	spouseFamilies map[string][]string // individual id -> families where they are a spouse
}

// NewEngine scans the source and builds the graph with its back-indexes.
// Edges pointing at records absent from the store are ignored.
func NewEngine(src Source) (*Engine, error) {
	inds, err := src.AllIndividuals()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load individuals")
	}
	fams, err := src.AllFamilies()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load families")
	}

	e := &Engine{
		individuals:    make(map[string]*gedcom.Individual, len(inds)),
		families:       make(map[string]*gedcom.Family, len(fams)),
		childFamily:    make(map[string]string),
		spouseFamilies: make(map[string][]string),
	}
	for i := range inds {
		e.individuals[inds[i].ID] = &inds[i]
	}
	for i := range fams {
		e.families[fams[i].ID] = &fams[i]
	}

	for _, fam := range e.families {
		for _, childID := range fam.Children {
			if _, ok := e.individuals[childID]; ok {
				e.childFamily[childID] = fam.ID
			}
		}
		for _, spouseID := range []string{fam.HusbandID, fam.WifeID} {
			if spouseID == "" {
				continue
			}
			if _, ok := e.individuals[spouseID]; ok {
				e.spouseFamilies[spouseID] = append(e.spouseFamilies[spouseID], fam.ID)
			}
		}
	}
	for id := range e.spouseFamilies {
		sort.Strings(e.spouseFamilies[id])
	}
	return e, nil
}

// IndividualCount returns the number of individuals in the graph.
func (e *Engine) IndividualCount() int { return len(e.individuals) }

// FamilyCount returns the number of families in the graph.
func (e *Engine) FamilyCount() int { return len(e.families) }

// Get returns one individual by id.
func (e *Engine) Get(id string) (*gedcom.Individual, error) {
	ind, ok := e.individuals[id]
	if !ok {
		return nil, errors.NewNotFoundError("individual %s", id)
	}
	return ind, nil
}

// Parents returns the parents of an individual, husband first. Missing
// parent links simply yield fewer results.
func (e *Engine) Parents(id string) []*gedcom.Individual {
	famID, ok := e.childFamily[id]
	if !ok {
		return nil
	}
	fam := e.families[famID]
	var parents []*gedcom.Individual
	for _, pid := range []string{fam.HusbandID, fam.WifeID} {
		if p, ok := e.individuals[pid]; ok {
			parents = append(parents, p)
		}
	}
	return parents
}

// Children returns the children of an individual across all their spouse
// families, in original CHIL order per family.
func (e *Engine) Children(id string) []*gedcom.Individual {
	var children []*gedcom.Individual
	for _, famID := range e.spouseFamilies[id] {
		for _, childID := range e.families[famID].Children {
			if c, ok := e.individuals[childID]; ok {
				children = append(children, c)
			}
		}
	}
	return children
}

// Ancestors enumerates ancestors of id grouped by generation: index 0 is
// the parents, index 1 the grandparents, and so on. Each individual
// appears at most once even when the graph contains cycles or pedigree
// collapse. maxGenerations <= 0 means unbounded.
func (e *Engine) Ancestors(id string, maxGenerations int) ([][]gedcom.Individual, error) {
	if _, err := e.Get(id); err != nil {
		return nil, err
	}

	var generations [][]gedcom.Individual
	visited := map[string]bool{id: true}
	frontier := []string{id}

	for len(frontier) > 0 {
		if maxGenerations > 0 && len(generations) >= maxGenerations {
			break
		}
		var next []string
		var gen []gedcom.Individual
		for _, cur := range frontier {
			for _, parent := range e.Parents(cur) {
				if visited[parent.ID] {
					continue
				}
				visited[parent.ID] = true
				gen = append(gen, *parent)
				next = append(next, parent.ID)
			}
		}
		if len(gen) == 0 {
			break
		}
		sort.Slice(gen, func(i, j int) bool { return gen[i].ID < gen[j].ID })
		generations = append(generations, gen)
		frontier = next
	}
	return generations, nil
}

// Root infers the most likely root of the tree: the individual with the
// greatest number of reachable descendants. Ties fall to the more complete
// record (birth date, then birth place), then to ascending id. A graph
// with multiple disconnected components is ambiguous.
func (e *Engine) Root() (*gedcom.Individual, error) {
	if len(e.individuals) == 0 {
		return nil, errors.NewNotFoundError("no individuals in tree")
	}
	if n := e.componentCount(); n > 1 {
		return nil, errors.Wrapf(ErrAmbiguousRoot, "%d disconnected components", n)
	}

	var best *gedcom.Individual
	bestCount := -1
	for _, id := range e.sortedIndividualIDs() {
		ind := e.individuals[id]
		count := e.descendantCount(id)
		if count > bestCount || (count == bestCount && moreComplete(ind, best)) {
			best = ind
			bestCount = count
		}
	}
	return best, nil
}

// descendantCount walks spouse-family children with a visited set.
func (e *Engine) descendantCount(id string) int {
	visited := map[string]bool{id: true}
	count := 0
	frontier := []string{id}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, child := range e.Children(cur) {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			count++
			frontier = append(frontier, child.ID)
		}
	}
	return count
}

// moreComplete reports whether a should win a descendant-count tie over b.
func moreComplete(a, b *gedcom.Individual) bool {
	if b == nil {
		return true
	}
	if (a.BirthDate != "") != (b.BirthDate != "") {
		return a.BirthDate != ""
	}
	if (a.BirthPlace != "") != (b.BirthPlace != "") {
		return a.BirthPlace != ""
	}
	return a.ID < b.ID
}

// componentCount counts connected components treating every family edge
// as undirected.
func (e *Engine) componentCount() int {
	visited := make(map[string]bool, len(e.individuals))
	count := 0
	for _, id := range e.sortedIndividualIDs() {
		if visited[id] {
			continue
		}
		count++
		frontier := []string{id}
		visited[id] = true
		for len(frontier) > 0 {
			cur := frontier[0]
			frontier = frontier[1:]
			for _, n := range e.neighbors(cur) {
				if !visited[n] {
					visited[n] = true
					frontier = append(frontier, n)
				}
			}
		}
	}
	return count
}

func (e *Engine) neighbors(id string) []string {
	var out []string
	for _, p := range e.Parents(id) {
		out = append(out, p.ID)
	}
	for _, c := range e.Children(id) {
		out = append(out, c.ID)
	}
	for _, famID := range e.spouseFamilies[id] {
		fam := e.families[famID]
		for _, sid := range []string{fam.HusbandID, fam.WifeID} {
			if sid != "" && sid != id {
				if _, ok := e.individuals[sid]; ok {
					out = append(out, sid)
				}
			}
		}
	}
	// siblings share the child family edge
	if famID, ok := e.childFamily[id]; ok {
		for _, sibID := range e.families[famID].Children {
			if sibID != id {
				if _, ok := e.individuals[sibID]; ok {
					out = append(out, sibID)
				}
			}
		}
	}
	return out
}

// Search does a case-insensitive substring match over full name, given
// name, surname and birth place. Results are ordered by surname, given
// name, then id. limit <= 0 means no limit.
func (e *Engine) Search(query string, limit int) []gedcom.Individual {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var matches []gedcom.Individual
	for _, id := range e.sortedIndividualIDs() {
		ind := e.individuals[id]
		haystacks := []string{ind.Name, ind.GivenName, ind.Surname, ind.BirthPlace}
		for _, h := range haystacks {
			if h != "" && strings.Contains(strings.ToLower(h), needle) {
				matches = append(matches, *ind)
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !strings.EqualFold(a.Surname, b.Surname) {
			return strings.ToLower(a.Surname) < strings.ToLower(b.Surname)
		}
		if !strings.EqualFold(a.GivenName, b.GivenName) {
			return strings.ToLower(a.GivenName) < strings.ToLower(b.GivenName)
		}
		return a.ID < b.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (e *Engine) sortedIndividualIDs() []string {
	ids := make([]string, 0, len(e.individuals))
	for id := range e.individuals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
