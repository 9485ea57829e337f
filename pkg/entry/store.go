package entry

import (
	"fmt"

	"github.com/coolbeans/bookindex/pkg/markup"
)

// Store is the arena that owns every entry of one index pass. Entries are
// never removed; merged entries stay addressable and record their owner.
type Store struct {
	entries []*Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// New creates an entry. An empty sortKey means no sort-as override.
func (s *Store) New(value, sortKey, formattedText string, contents []*markup.Node) ID {
	e := &Entry{
		Value:         value,
		FormattedText: formattedText,
		Contents:      contents,
		absorbedInto:  None,
	}
	if sortKey != "" {
		e.SetSortKey(sortKey)
	}
	s.entries = append(s.entries, e)
	return ID(len(s.entries) - 1)
}

// Get returns the entry for id. It panics on a handle the store never
// issued, like an out-of-range slice index.
func (s *Store) Get(id ID) *Entry {
	if id < 0 || int(id) >= len(s.entries) {
		panic(fmt.Sprintf("entry: invalid id %d", id))
	}
	return s.entries[id]
}

// Len returns the number of entries ever created.
func (s *Store) Len() int {
	return len(s.entries)
}

// AddChild attaches child under parent. When parent already has a child
// with the same value, child is merged into it and the existing id is
// returned.
func (s *Store) AddChild(parent, child ID) ID {
	return s.attach(&s.Get(parent).Children, child)
}

// AddSee attaches a "see" cross-reference, marking parent's see set present.
func (s *Store) AddSee(parent, see ID) ID {
	return s.attach(s.Get(parent).See.ensure(), see)
}

// AddSeeAlso attaches a "see also" cross-reference, marking parent's
// see-also set present.
func (s *Store) AddSeeAlso(parent, seeAlso ID) ID {
	return s.attach(s.Get(parent).SeeAlso.ensure(), seeAlso)
}

func (s *Store) attach(set *ChildSet, id ID) ID {
	value := s.Get(id).Value
	if existing, ok := set.Lookup(value); ok {
		return s.MergeInto(existing, id)
	}
	set.put(value, id)
	return id
}

// MergeInto folds candidate into owner and returns owner. The candidate is
// left in the store, marked as absorbed.
//
// Page-number suppression merges with AND: a candidate that does not
// suppress the page number clears the owner's flag, even when the owner set
// it independently.
func (s *Store) MergeInto(owner, candidate ID) ID {
	if owner == candidate {
		return owner
	}
	dst := s.Get(owner)
	src := s.Get(candidate)

	for _, child := range src.Children.IDs() {
		s.AddChild(owner, child)
	}
	if src.See.Present() {
		set := dst.See.ensure()
		for _, see := range src.See.IDs() {
			s.attach(set, see)
		}
	}
	if src.SeeAlso.Present() {
		set := dst.SeeAlso.ensure()
		for _, seeAlso := range src.SeeAlso.IDs() {
			s.attach(set, seeAlso)
		}
	}

	if src.RestoresPageNumber() {
		dst.SetRestoresPageNumber(true)
	}
	dst.RefIDs.Union(src.RefIDs)
	if !src.SuppressesPageNumber() {
		dst.SetSuppressesPageNumber(false)
	}
	if src.StartsRange() {
		dst.SetStartsRange(true)
	}
	if key, ok := src.SortKey(); ok {
		dst.SetSortKey(key)
	}

	src.absorbedInto = owner
	return owner
}

// Clone copies id and its whole subtree into new entries of the same store.
func (s *Store) Clone(id ID) ID {
	src := s.Get(id)
	cloneID := s.New(src.Value, "", src.FormattedText, src.Contents)
	dst := s.Get(cloneID)
	if key, ok := src.SortKey(); ok {
		dst.SetSortKey(key)
	}
	dst.startsRange = src.startsRange
	dst.endsRange = src.endsRange
	dst.suppressesPageNumber = src.suppressesPageNumber
	dst.restoresPageNumber = src.restoresPageNumber
	dst.RefIDs.Union(src.RefIDs)

	for _, child := range src.Children.IDs() {
		dst.Children.put(s.Get(child).Value, s.Clone(child))
	}
	if src.See.Present() {
		set := dst.See.ensure()
		for _, see := range src.See.IDs() {
			set.put(s.Get(see).Value, s.Clone(see))
		}
	}
	if src.SeeAlso.Present() {
		set := dst.SeeAlso.ensure()
		for _, seeAlso := range src.SeeAlso.IDs() {
			set.put(s.Get(seeAlso).Value, s.Clone(seeAlso))
		}
	}
	return cloneID
}
