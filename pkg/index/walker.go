// Package index extracts index markers from a document, folds duplicate
// terms together and partitions the result into groups.
package index

import (
	"strings"

	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/marker"
	"github.com/coolbeans/bookindex/pkg/markup"
)

// Walker finds index markers in a document tree.
type Walker struct {
	Parser *marker.Parser
	// IncludeDraft also reads markers inside draft-comment and
	// required-cleanup sections.
	IncludeDraft bool
	// Found is called with every top-level entry in document order.
	Found func(id entry.ID)
}

// Walk parses every marker below root and returns the top-level entries.
func (w *Walker) Walk(root *markup.Node) []entry.ID {
	var found []entry.ID
	w.walk(root, false, &found)
	return found
}

func (w *Walker) walk(node *markup.Node, excluded bool, found *[]entry.ID) {
	if !node.IsElement() {
		return
	}
	if isIndexElement(node) && !excluded {
		for _, id := range w.marker(node) {
			if w.Found != nil {
				w.Found(id)
			}
			*found = append(*found, id)
		}
		return
	}

	if !w.IncludeDraft && isDraft(node) {
		excluded = true
	}
	for _, child := range node.Children {
		w.walk(child, excluded, found)
	}
}

// marker parses one index element. Elements with nested index elements or
// range attributes are structured terms; anything else is read as a plain
// string marker.
func (w *Walker) marker(node *markup.Node) []entry.ID {
	if isStructured(node) {
		return w.Parser.ParseTerm(node, "")
	}

	var (
		text     strings.Builder
		contents []*markup.Node
	)
	for _, child := range node.Children {
		text.WriteString(child.StringValue())
		contents = append(contents, child)
	}

	value := marker.Normalize(text.String())
	if value == "" {
		return nil
	}
	return w.Parser.ParseString(value, contents)
}

func isStructured(node *markup.Node) bool {
	if _, ok := node.Attr("start"); ok {
		return true
	}
	if _, ok := node.Attr("end"); ok {
		return true
	}
	for _, child := range node.Children {
		if isIndexElement(child) {
			return true
		}
	}
	return false
}

func isIndexElement(node *markup.Node) bool {
	return node.Matches(markup.IndexTerm) ||
		node.Matches(markup.IndexSortAs) ||
		node.Matches(markup.IndexSee) ||
		node.Matches(markup.IndexSeeAlso)
}

func isDraft(node *markup.Node) bool {
	return node.Matches(markup.DraftComment) || node.Matches(markup.RequiredCleanup)
}
