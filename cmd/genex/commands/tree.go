package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cameronehrlich/genex/display"
	"github.com/cameronehrlich/genex/errors"
	"github.com/cameronehrlich/genex/gedcom"
	"github.com/cameronehrlich/genex/tree"
)

// TreeCmd groups the family tree queries.
var TreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Query the imported family tree",
	Long: `Query the family tree imported from GEDCOM files: summary statistics,
ancestor enumeration by generation, and name search.

Examples:
  genex tree summary
  genex tree ancestors              # From the inferred root person
  genex tree ancestors "Robert"     # From a named person
  genex tree ancestors @I12@ -g 3   # Three generations from a record id
  genex tree search smith`,
}

var treeSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show tree size and the inferred root person",
	RunE:  runTreeSummary,
}

var treeAncestorsCmd = &cobra.Command{
	Use:   "ancestors [person]",
	Short: "List ancestors by generation",
	Long: `List ancestors of a person grouped by generation. The person can be a
record id (@I12@), a name fragment, or omitted to start from the inferred
root of the tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTreeAncestors,
}

var treeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search individuals by name or birth place",
	Args:  cobra.ExactArgs(1),
	RunE:  runTreeSearch,
}

var treeGenerationsFlag int

func init() {
	TreeCmd.AddCommand(treeSummaryCmd)
	TreeCmd.AddCommand(treeAncestorsCmd)
	TreeCmd.AddCommand(treeSearchCmd)
	treeAncestorsCmd.Flags().IntVarP(&treeGenerationsFlag, "generations", "g", 0,
		"Maximum generations to walk (0 = unlimited)")
}

type treeSummary struct {
	Individuals int                `json:"individuals"`
	Families    int                `json:"families"`
	Root        *gedcom.Individual `json:"root,omitempty"`
	RootNote    string             `json:"root_note,omitempty"`
}

func runTreeSummary(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := buildEngine(s)
	if err != nil {
		return err
	}

	summary := treeSummary{
		Individuals: engine.IndividualCount(),
		Families:    engine.FamilyCount(),
	}
	root, err := engine.Root()
	switch {
	case err == nil:
		summary.Root = root
	case errors.Is(err, tree.ErrAmbiguousRoot):
		summary.RootNote = err.Error()
	default:
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(summary)
	}

	pterm.DefaultSection.Println("Family Tree")
	pterm.Info.Printf("Individuals: %d\n", summary.Individuals)
	pterm.Info.Printf("Families:    %d\n", summary.Families)
	if summary.Root != nil {
		pterm.Info.Printf("Root person: %s (%s)\n", display.DisplayName(summary.Root), summary.Root.ID)
	} else {
		pterm.Warning.Printf("Root person: %s\n", summary.RootNote)
	}
	return nil
}

func runTreeAncestors(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := buildEngine(s)
	if err != nil {
		return err
	}

	var person *gedcom.Individual
	if len(args) == 0 {
		person, err = engine.Root()
		if err != nil {
			if errors.Is(err, tree.ErrAmbiguousRoot) {
				return errors.WithHint(err, "Name a person: genex tree ancestors \"<name or @id@>\"")
			}
			return err
		}
	} else {
		person, err = resolvePerson(engine, args[0])
		if err != nil {
			return err
		}
	}

	maxGen := treeGenerationsFlag
	if maxGen == 0 {
		maxGen = cfg.Tree.MaxGenerations
	}
	generations, err := engine.Ancestors(person.ID, maxGen)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(struct {
			Person      *gedcom.Individual    `json:"person"`
			Generations [][]gedcom.Individual `json:"generations"`
		}{person, generations})
	}
	display.RenderAncestors(person, generations)
	return nil
}

// resolvePerson accepts a record id or a name fragment. A name fragment
// resolving to several people is an error listing the candidates.
func resolvePerson(engine *tree.Engine, ref string) (*gedcom.Individual, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "@") {
		return engine.Get(ref)
	}

	matches := engine.Search(ref, 0)
	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("no individual matches %q", ref)
	case 1:
		return engine.Get(matches[0].ID)
	default:
		var ids []string
		for _, m := range matches {
			ids = append(ids, m.ID+" "+display.DisplayName(&m))
		}
		return nil, errors.WithHintf(
			errors.Newf("%q matches %d people", ref, len(matches)),
			"Use a record id instead:\n  %s", strings.Join(ids, "\n  "))
	}
}

func runTreeSearch(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := buildEngine(s)
	if err != nil {
		return err
	}

	results := engine.Search(args[0], cfg.Tree.SearchLimit)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(results)
	}
	display.RenderSearchResults(args[0], results)
	return nil
}
