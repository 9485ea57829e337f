package index

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/coolbeans/bookindex/pkg/collation"
	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/group"
	"github.com/coolbeans/bookindex/pkg/groupconfig"
	"github.com/coolbeans/bookindex/pkg/marker"
	"github.com/coolbeans/bookindex/pkg/markup"
)

var (
	// ErrNoDocument is returned when there is no document to index.
	ErrNoDocument = errors.New("no document")
	// ErrNoGroups is returned when no group definitions are given.
	ErrNoGroups = errors.New("no group definitions")
)

// Result holds the outcome of indexing one document.
type Result struct {
	Store *entry.Store
	// Entries are the distinct top-level entries in document order.
	Entries []entry.ID
	// Markers is the number of top-level entries found before merging.
	Markers      int
	Groups       []*group.Group
	Unclassified []entry.ID
	OK           bool
}

// Processor runs the full index pipeline for a document.
type Processor struct {
	Collator     collation.Collator
	Logger       *slog.Logger
	IncludeDraft bool
	Strict       bool
	// Found, when set, sees every top-level entry as it is parsed.
	Found func(e *entry.Entry)
}

// NewProcessor creates a processor using c for ordering and grouping.
func NewProcessor(c collation.Collator, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Collator: c, Logger: logger}
}

// ProcessReader parses an XML document from r and processes it.
func (p *Processor) ProcessReader(r io.Reader, defs []groupconfig.Definition) (*Result, error) {
	doc, err := markup.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return p.Process(doc, defs)
}

// Process extracts the markers of doc, merges duplicate terms and
// partitions them over defs.
func (p *Processor) Process(doc *markup.Node, defs []groupconfig.Definition) (*Result, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if len(defs) == 0 {
		return nil, ErrNoGroups
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := entry.NewStore()
	collector := NewCollector(store)
	markers := 0

	walker := &Walker{
		Parser:       marker.NewParser(store, logger),
		IncludeDraft: p.IncludeDraft,
		Found: func(id entry.ID) {
			markers++
			if p.Found != nil {
				p.Found(store.Get(id))
			}
			collector.Add(id)
		},
	}
	walker.Walk(doc)

	logger.Debug("collected index terms", "markers", markers, "terms", collector.Len())

	partitioner := group.NewPartitioner(p.Collator, logger)
	partitioner.Strict = p.Strict
	grouped := partitioner.Partition(store, collector.Entries(), defs)

	return &Result{
		Store:        store,
		Entries:      collector.Entries(),
		Markers:      markers,
		Groups:       grouped.Groups,
		Unclassified: grouped.Unclassified,
		OK:           grouped.OK,
	}, nil
}
