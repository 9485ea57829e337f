// Package marker turns index markers into entries. Structured markers carry
// nested terms, sort-as overrides and cross-references as markup; string
// markers are a single literal term.
package marker

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/markup"
)

// Separator joins the levels of a term path in reference ids.
const Separator = ":"

const (
	attrStart = "start"
	attrEnd   = "end"
	sortStart = "["
	sortEnd   = "]"
)

// Parser creates entries from markers into a Store.
type Parser struct {
	Store  *entry.Store
	Logger *slog.Logger
}

// NewParser creates a parser writing to store. A nil logger uses
// slog.Default().
func NewParser(store *entry.Store, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{Store: store, Logger: logger}
}

// ParseString creates the single entry for a free-text marker.
func (p *Parser) ParseString(text string, contents []*markup.Node) []entry.ID {
	value := Normalize(text)
	id := p.Store.New(value, "", value, contents)
	p.Store.Get(id).RefIDs.Add(value + Separator)
	return []entry.ID{id}
}

// ParseTerm reads an index-term element. parentPath is the separator-joined
// path of enclosing terms and becomes the prefix of derived reference ids.
//
// A term without text and without range attributes contributes no entry of
// its own: its nested terms are returned in its place.
func (p *Parser) ParseTerm(node *markup.Node, parentPath string) []entry.ID {
	var (
		text     strings.Builder
		sortKey  strings.Builder
		contents []*markup.Node
		children []entry.ID
		see      []entry.ID
		seeAlso  []entry.ID
	)

	startValue, startRange := node.Attr(attrStart)
	endValue, endRange := node.Attr(attrEnd)

	for _, child := range node.Children {
		switch {
		case child.Kind == markup.TextNode:
			contents = append(contents, child)
			text.WriteString(child.Text)

		case child.Matches(markup.IndexTerm):
			current := Normalize(text.String())
			prefix := ""
			if current != "" {
				prefix = current + Separator
			}
			children = append(children, p.ParseTerm(child, parentPath+prefix)...)

		case child.Matches(markup.IndexSortAs):
			for _, sortChild := range child.Children {
				if sortChild.Kind == markup.TextNode {
					sortKey.WriteString(sortChild.Text)
				}
			}

		case child.Matches(markup.IndexSee):
			see = append(see, p.ParseTerm(child, "")...)

		case child.Matches(markup.IndexSeeAlso):
			seeAlso = append(seeAlso, p.ParseTerm(child, "")...)

		default:
			contents = append(contents, child)
			text.WriteString(child.StringValue())
		}
	}

	value := Normalize(text.String())
	sortAs := sortKey.String()
	if sortAs == "" {
		value, sortAs = splitLegacySortKey(value)
	}

	if len(children) > 0 && len(see) > 0 {
		for _, id := range see {
			p.Logger.Warn("discarding see reference on a term with subterms",
				"see", p.Store.Get(id).FormattedText, "term", value)
		}
		see = nil
	}
	if len(children) > 0 && len(seeAlso) > 0 {
		for _, id := range seeAlso {
			p.Logger.Warn("discarding see-also reference on a term with subterms",
				"see_also", p.Store.Get(id).FormattedText, "term", value)
		}
		seeAlso = nil
	}

	if value == "" && !startRange && !endRange {
		return children
	}

	id := p.Store.New(value, sortAs, value, contents)
	e := p.Store.Get(id)
	e.SetStartsRange(startRange)
	e.SetEndsRange(endRange)
	switch {
	case startRange:
		e.RefIDs.Add(startValue)
	case endRange:
		e.RefIDs.Add(endValue)
	default:
		e.RefIDs.Add(Normalize(parentPath + value + Separator))
	}

	if len(see) > 0 {
		for _, seeID := range see {
			p.Store.AddSee(id, seeID)
		}
		e.SetSuppressesPageNumber(true)
	}
	for _, seeAlsoID := range seeAlso {
		p.Store.AddSeeAlso(id, seeAlsoID)
	}
	for _, childID := range children {
		p.Store.AddChild(id, childID)
	}

	return []entry.ID{id}
}

// splitLegacySortKey handles the "value[sort key]" notation.
func splitLegacySortKey(text string) (string, string) {
	openAt := strings.Index(text, sortStart)
	closeAt := strings.Index(text, sortEnd)
	if openAt < 0 || closeAt < 0 || openAt > closeAt {
		return text, ""
	}
	return text[:openAt], text[openAt+1 : closeAt]
}

var whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r ]+`)

// Normalize collapses runs of whitespace to a single space and trims the
// ends, like XPath normalize-space().
func Normalize(text string) string {
	if text == "" {
		return text
	}
	return strings.Trim(whitespaceRun.ReplaceAllString(text, " "), " ")
}
