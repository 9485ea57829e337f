package group

import (
	"log/slog"
	"slices"

	"github.com/coolbeans/bookindex/pkg/collation"
	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/groupconfig"
)

// Result is the outcome of a partition run.
type Result struct {
	// Groups holds the top-level groups with at least one entry, in
	// definition order.
	Groups []*Group
	// Unclassified lists entries no group accepted, in input order.
	Unclassified []entry.ID
	// OK is false when strict mode is on and some entry was unclassified.
	OK bool
}

// Partitioner distributes entries over group definitions.
type Partitioner struct {
	Collator collation.Collator
	Logger   *slog.Logger
	// Strict turns unclassified entries into a failed Result.
	Strict bool
}

// NewPartitioner creates a partitioner with the given collator.
func NewPartitioner(c collation.Collator, logger *slog.Logger) *Partitioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Partitioner{Collator: c, Logger: logger}
}

// Partition builds the group hierarchy for defs and distributes entries
// over it. Definitions claim entries in order; a claimed entry is not
// offered to later definitions.
func (p *Partitioner) Partition(store *entry.Store, entries []entry.ID, defs []groupconfig.Definition) Result {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := p.Collator
	if c == nil {
		c = collation.Binary
	}

	defs = slices.Clone(defs)
	groups := make([]*Group, len(defs))
	for i := range defs {
		groups[i] = New(&defs[i])
	}
	top := BuildHierarchy(groups)

	pool := slices.Clone(entries)
	for i, g := range groups {
		if !slices.Contains(top, g) {
			continue
		}
		claims := p.claimer(c, defs, i)
		pool = slices.DeleteFunc(pool, func(id entry.ID) bool {
			if !claims(store.Get(id)) {
				return false
			}
			g.Assign(store, id)
			return true
		})
	}

	if specials := findSpecials(top); specials != nil {
		pool = slices.DeleteFunc(pool, func(id entry.ID) bool {
			e := store.Get(id)
			if e.Value == "" {
				return false
			}
			logger.Info("placing unmatched index term in special characters group",
				"term", e.SortKeyOrValue(),
				"group", specials.Label)
			specials.Entries = append(specials.Entries, id)
			return true
		})
	}

	result := Result{OK: true}
	for _, id := range pool {
		e := store.Get(id)
		if e.Value == "" {
			continue
		}
		logger.Error("index term does not belong to any group", "term", e.String())
		result.Unclassified = append(result.Unclassified, id)
	}
	if p.Strict && len(result.Unclassified) > 0 {
		logger.Error("index processing failed", "unclassified", len(result.Unclassified))
		result.OK = false
	}

	for _, g := range top {
		if g.Len() == 0 {
			continue
		}
		g.Walk(func(g *Group, _ int) {
			store.Sort(g.Entries, c)
		})
		result.Groups = append(result.Groups, g)
	}
	return result
}

// claimer returns the predicate deciding whether defs[i] claims an entry.
// Definitions without members take the alphabetic window from their own
// key up to, but excluding, the next definition's key.
func (p *Partitioner) claimer(c collation.Collator, defs []groupconfig.Definition, i int) func(*entry.Entry) bool {
	def := defs[i]
	if len(def.Members) > 0 || len(def.Ranges) > 0 {
		return func(e *entry.Entry) bool {
			return def.Matches(e.SortKeyOrValue(), c)
		}
	}

	last := i == len(defs)-1
	return func(e *entry.Entry) bool {
		value := e.SortKeyOrValue()
		if c.Compare(def.Key, value) > 0 {
			return false
		}
		return last || c.Compare(defs[i+1].Key, value) > 0
	}
}

func findSpecials(groups []*Group) *Group {
	var found *Group
	for _, g := range groups {
		g.Walk(func(g *Group, _ int) {
			if found == nil && g.Definition.IsSpecials() {
				found = g
			}
		})
	}
	return found
}
