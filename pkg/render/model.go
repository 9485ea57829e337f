// Package render writes partitioned index groups as XML, JSON or YAML.
package render

import (
	"github.com/google/uuid"

	"github.com/coolbeans/bookindex/pkg/collation"
	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/group"
	"github.com/coolbeans/bookindex/pkg/markup"
)

// Namespace is the namespace of the XML index vocabulary.
const Namespace = "http://www.idiominc.com/opentopic/index"

const indexIDPrefix = "indexid"

var refSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(Namespace))

// IndexID returns the stable anchor id for a reference id.
func IndexID(refID string) string {
	return indexIDPrefix + uuid.NewSHA1(refSpace, []byte(refID)).String()
}

// Document is the rendered form of a whole index.
type Document struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Group is one rendered group with its nested groups.
type Group struct {
	Label   string  `json:"label" yaml:"label"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Groups  []Group `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Ref is a reference id and its anchor.
type Ref struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Entry is one rendered index entry. See and SeeAlso are nil when the entry
// has no cross-reference container, and point at an empty list when the
// container exists without members.
type Entry struct {
	Value          string   `json:"value" yaml:"value"`
	SortKey        *string  `json:"sortKey,omitempty" yaml:"sortKey,omitempty"`
	FormattedValue string   `json:"formattedValue" yaml:"formattedValue"`
	StartsRange    bool     `json:"startsRange,omitempty" yaml:"startsRange,omitempty"`
	EndsRange      bool     `json:"endsRange,omitempty" yaml:"endsRange,omitempty"`
	NoPage         bool     `json:"noPage,omitempty" yaml:"noPage,omitempty"`
	SinglePage     bool     `json:"singlePage,omitempty" yaml:"singlePage,omitempty"`
	Refs           []Ref    `json:"refs,omitempty" yaml:"refs,omitempty"`
	Children       []Entry  `json:"children,omitempty" yaml:"children,omitempty"`
	See            *[]Entry `json:"see,omitempty" yaml:"see,omitempty"`
	SeeAlso        *[]Entry `json:"seeAlso,omitempty" yaml:"seeAlso,omitempty"`

	contents []*markup.Node
}

// Build converts groups into the rendered model. Entry lists are sorted
// with c at every level.
func Build(store *entry.Store, groups []*group.Group, c collation.Collator) *Document {
	if c == nil {
		c = collation.Binary
	}
	b := builder{store: store, collator: c}

	doc := &Document{Groups: make([]Group, 0, len(groups))}
	for _, g := range groups {
		doc.Groups = append(doc.Groups, b.group(g))
	}
	return doc
}

type builder struct {
	store    *entry.Store
	collator collation.Collator
}

func (b builder) group(g *group.Group) Group {
	out := Group{Label: g.Label, Entries: b.entries(g.Entries)}
	for _, child := range g.Children {
		out.Groups = append(out.Groups, b.group(child))
	}
	return out
}

func (b builder) entries(ids []entry.ID) []Entry {
	sorted := b.store.Sorted(ids, b.collator)
	out := make([]Entry, 0, len(sorted))
	for _, id := range sorted {
		out = append(out, b.entry(b.store.Get(id)))
	}
	return out
}

func (b builder) entry(e *entry.Entry) Entry {
	out := Entry{
		Value:          e.Value,
		FormattedValue: formattedValue(e),
		contents:       e.Contents,
	}
	if key, ok := e.SortKey(); ok {
		out.SortKey = &key
	}

	if e.StartsRange() {
		out.StartsRange = true
	} else if e.EndsRange() {
		out.EndsRange = true
	}
	if e.SuppressesPageNumber() {
		out.NoPage = true
	} else if e.RestoresPageNumber() {
		out.SinglePage = true
	}

	for _, refID := range e.RefIDs.Values() {
		out.Refs = append(out.Refs, Ref{ID: IndexID(refID), Value: refID})
	}

	if e.Children.Len() > 0 {
		out.Children = b.entries(e.Children.IDs())
	}
	if e.See.Present() {
		see := b.entries(e.See.IDs())
		out.See = &see
	}
	if e.SeeAlso.Present() {
		seeAlso := b.entries(e.SeeAlso.IDs())
		out.SeeAlso = &seeAlso
	}
	return out
}

func formattedValue(e *entry.Entry) string {
	if len(e.Contents) == 0 {
		return e.FormattedText
	}
	var text string
	for _, node := range e.Contents {
		text += node.StringValue()
	}
	return trimTrailingSpace(text)
}
