// Package entry models index entries: the terms, sub-terms and
// cross-references extracted from index markers, stored in an arena and
// merged by value.
package entry

import (
	"strings"

	"github.com/coolbeans/bookindex/pkg/markup"
)

// ID addresses an Entry inside a Store.
type ID int

// None never addresses an entry.
const None ID = -1

// Entry is one occurrence of an index term.
type Entry struct {
	// Value is the normalized display text.
	Value string
	// FormattedText is the value as it should render.
	FormattedText string
	// Contents is the markup the term was written with, if any.
	Contents []*markup.Node

	RefIDs   RefSet
	Children ChildSet
	See      OptionalSet
	SeeAlso  OptionalSet

	sortKey    string
	hasSortKey bool

	startsRange          bool
	endsRange            bool
	suppressesPageNumber bool
	restoresPageNumber   bool

	absorbedInto ID
}

// SortKey returns the sort-as override and whether one is set.
func (e *Entry) SortKey() (string, bool) {
	return e.sortKey, e.hasSortKey
}

// SetSortKey sets the sort-as override.
func (e *Entry) SetSortKey(key string) {
	e.sortKey = key
	e.hasSortKey = true
}

// ClearSortKey removes the sort-as override.
func (e *Entry) ClearSortKey() {
	e.sortKey = ""
	e.hasSortKey = false
}

// SortKeyOrValue returns the non-empty sort key, falling back to the value.
func (e *Entry) SortKeyOrValue() string {
	if e.hasSortKey && e.sortKey != "" {
		return e.sortKey
	}
	return e.Value
}

func (e *Entry) StartsRange() bool          { return e.startsRange }
func (e *Entry) EndsRange() bool            { return e.endsRange }
func (e *Entry) SuppressesPageNumber() bool { return e.suppressesPageNumber }
func (e *Entry) RestoresPageNumber() bool   { return e.restoresPageNumber }

// SetStartsRange sets the range-start flag. Setting it clears EndsRange.
func (e *Entry) SetStartsRange(v bool) {
	if v {
		e.endsRange = false
	}
	e.startsRange = v
}

// SetEndsRange sets the range-end flag. Setting it clears StartsRange.
func (e *Entry) SetEndsRange(v bool) {
	if v {
		e.startsRange = false
	}
	e.endsRange = v
}

// SetSuppressesPageNumber sets the no-page flag. Setting it clears
// RestoresPageNumber.
func (e *Entry) SetSuppressesPageNumber(v bool) {
	if v {
		e.restoresPageNumber = false
	}
	e.suppressesPageNumber = v
}

// SetRestoresPageNumber sets the single-page flag. Setting it clears
// SuppressesPageNumber.
func (e *Entry) SetRestoresPageNumber(v bool) {
	if v {
		e.suppressesPageNumber = false
	}
	e.restoresPageNumber = v
}

// AbsorbedInto returns the entry this one was merged into, if any.
func (e *Entry) AbsorbedInto() (ID, bool) {
	return e.absorbedInto, e.absorbedInto != None
}

// String renders the entry in marker notation, e.g. "Foo<$nopage>[foo]".
func (e *Entry) String() string {
	var builder strings.Builder
	builder.WriteString(e.Value)
	if e.suppressesPageNumber {
		builder.WriteString("<$nopage>")
	}
	if e.restoresPageNumber {
		builder.WriteString("<$singlepage>")
	}
	if e.startsRange {
		builder.WriteString("<$startrange>")
	}
	if e.endsRange {
		builder.WriteString("<$endrange>")
	}
	if e.hasSortKey && e.sortKey != "" {
		builder.WriteString("[" + e.sortKey + "]")
	}
	return builder.String()
}

// RefSet is a set of reference ids. Iteration follows insertion order.
type RefSet struct {
	seen  map[string]struct{}
	order []string
}

// Add inserts id; duplicates are ignored.
func (r *RefSet) Add(id string) {
	if r.seen == nil {
		r.seen = make(map[string]struct{})
	}
	if _, ok := r.seen[id]; ok {
		return
	}
	r.seen[id] = struct{}{}
	r.order = append(r.order, id)
}

// Union adds every id of other.
func (r *RefSet) Union(other RefSet) {
	for _, id := range other.order {
		r.Add(id)
	}
}

// Has reports whether id is in the set.
func (r RefSet) Has(id string) bool {
	_, ok := r.seen[id]
	return ok
}

// Len returns the number of ids.
func (r RefSet) Len() int { return len(r.order) }

// Values returns the ids in insertion order.
func (r RefSet) Values() []string {
	return append([]string(nil), r.order...)
}

// ChildSet maps entry values to entries, holding at most one entry per value.
type ChildSet struct {
	byValue map[string]ID
	order   []ID
}

// Lookup returns the member with the given value.
func (c ChildSet) Lookup(value string) (ID, bool) {
	id, ok := c.byValue[value]
	return id, ok
}

// Len returns the number of members.
func (c ChildSet) Len() int { return len(c.order) }

// IDs returns the members in insertion order.
func (c ChildSet) IDs() []ID {
	return append([]ID(nil), c.order...)
}

func (c *ChildSet) put(value string, id ID) {
	if c.byValue == nil {
		c.byValue = make(map[string]ID)
	}
	c.byValue[value] = id
	c.order = append(c.order, id)
}

// OptionalSet is a ChildSet that may be absent. An absent set is distinct
// from a present, empty one.
type OptionalSet struct {
	set     ChildSet
	present bool
}

// Present reports whether the set exists.
func (o OptionalSet) Present() bool { return o.present }

// Set returns the members; the zero ChildSet when absent.
func (o OptionalSet) Set() ChildSet { return o.set }

// Len returns the number of members; zero when absent.
func (o OptionalSet) Len() int { return o.set.Len() }

// IDs returns the members in insertion order; nil when absent.
func (o OptionalSet) IDs() []ID { return o.set.IDs() }

// ensure marks the set present and returns it for insertion.
func (o *OptionalSet) ensure() *ChildSet {
	o.present = true
	return &o.set
}
