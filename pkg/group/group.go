// Package group partitions merged index entries into the configured groups
// and orders them for rendering.
package group

import (
	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/groupconfig"
)

// Group is the runtime bucket for one definition.
type Group struct {
	Label      string
	Definition *groupconfig.Definition
	Entries    []entry.ID
	Children   []*Group
}

// New creates an empty group for def.
func New(def *groupconfig.Definition) *Group {
	return &Group{Label: def.Label, Definition: def}
}

// Assign places id in the first child group whose members the entry's sort
// key (or value) starts with, recursively, or in g itself when no child
// takes it.
func (g *Group) Assign(store *entry.Store, id entry.ID) {
	value := store.Get(id).SortKeyOrValue()
	for _, child := range g.Children {
		if child.Definition.HasMemberPrefix(value) {
			child.Assign(store, id)
			return
		}
	}
	g.Entries = append(g.Entries, id)
}

// Len returns the number of entries held by g and its descendants.
func (g *Group) Len() int {
	n := len(g.Entries)
	for _, child := range g.Children {
		n += child.Len()
	}
	return n
}

// Walk calls fn for g and every descendant, parents first.
func (g *Group) Walk(fn func(g *Group, depth int)) {
	g.walk(fn, 0)
}

func (g *Group) walk(fn func(g *Group, depth int), depth int) {
	fn(g, depth)
	for _, child := range g.Children {
		child.walk(fn, depth+1)
	}
}

// BuildHierarchy nests groups whose definitions extend another group's
// definition and returns the remaining top-level groups, in their original
// order.
//
// Every move re-opens the receiving parent's child list, since the newly
// inserted group may itself subsume or be subsumed by its new siblings. A
// parent stays on the worklist until its children reach a fixed point.
// Nesting strictly lengthens the shortest member, so moves are bounded.
func BuildHierarchy(groups []*Group) []*Group {
	root := &Group{Children: append([]*Group(nil), groups...)}

	worklist := []*Group{root}
	for len(worklist) > 0 {
		parent := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if target := nestOnce(parent); target != nil {
			worklist = append(worklist, parent, target)
		}
	}

	return root.Children
}

// nestOnce moves the first child that extends a sibling under that sibling
// and returns the sibling, or nil when parent's children are stable.
func nestOnce(parent *Group) *Group {
	for i, a := range parent.Children {
		for j, b := range parent.Children {
			if i == j || !a.Definition.Extends(*b.Definition) {
				continue
			}
			parent.Children = append(parent.Children[:i:i], parent.Children[i+1:]...)
			b.Children = append(b.Children, a)
			return b
		}
	}
	return nil
}
