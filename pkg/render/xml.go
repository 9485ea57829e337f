package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/coolbeans/bookindex/pkg/markup"
)

// Prefix is the namespace prefix used for index elements.
const Prefix = "opentopic-index"

const (
	elemIndexGroups    = "index.groups"
	elemIndexGroup     = "index.group"
	elemLabel          = "label"
	elemIndexEntry     = "index.entry"
	elemFormattedValue = "formatted-value"
	elemRefID          = "refID"
	elemSeeChilds      = "see-childs"
	elemSeeAlsoChilds  = "see-also-childs"
)

// WriteXML writes doc as an index.groups element. Output is not indented
// so that mixed content in formatted values is copied unchanged.
func WriteXML(w io.Writer, doc *Document) error {
	enc := xml.NewEncoder(w)

	x := xmlWriter{enc: enc}
	root := x.start(elemIndexGroups, attr("xmlns:"+Prefix, Namespace))
	x.token(root)
	for _, g := range doc.Groups {
		x.group(g)
	}
	x.token(root.End())

	if x.err != nil {
		return fmt.Errorf("writing XML index: %w", x.err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("writing XML index: %w", err)
	}
	return nil
}

// xmlWriter keeps the first encoding error so that the element tree can be
// written without checking every token.
type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func (x *xmlWriter) token(t xml.Token) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(t)
}

func (x *xmlWriter) start(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: Prefix + ":" + name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func (x *xmlWriter) group(g Group) {
	start := x.start(elemIndexGroup)
	x.token(start)

	label := x.start(elemLabel)
	x.token(label)
	x.token(xml.CharData(g.Label))
	x.token(label.End())

	for _, e := range g.Entries {
		x.entry(e)
	}
	for _, child := range g.Groups {
		x.group(child)
	}
	x.token(start.End())
}

func (x *xmlWriter) entry(e Entry) {
	attrs := []xml.Attr{attr("value", e.Value)}
	if e.SortKey != nil {
		attrs = append(attrs, attr("sort-string", *e.SortKey))
	}
	if e.StartsRange {
		attrs = append(attrs, attr("start-range", "true"))
	}
	if e.EndsRange {
		attrs = append(attrs, attr("end-range", "true"))
	}
	if e.NoPage {
		attrs = append(attrs, attr("no-page", "true"))
	}
	if e.SinglePage {
		attrs = append(attrs, attr("single-page", "true"))
	}

	start := x.start(elemIndexEntry, attrs...)
	x.token(start)

	x.formattedValue(e)

	for _, ref := range e.Refs {
		refID := x.start(elemRefID, attr("indexid", ref.ID), attr("value", ref.Value))
		x.token(refID)
		x.token(refID.End())
	}

	for _, child := range e.Children {
		x.entry(child)
	}
	if e.See != nil {
		x.container(elemSeeChilds, *e.See)
	}
	if e.SeeAlso != nil {
		x.container(elemSeeAlsoChilds, *e.SeeAlso)
	}

	x.token(start.End())
}

func (x *xmlWriter) container(name string, entries []Entry) {
	start := x.start(name)
	x.token(start)
	for _, e := range entries {
		x.entry(e)
	}
	x.token(start.End())
}

// formattedValue copies the rich contents of an entry, trimming trailing
// whitespace from a final text node.
func (x *xmlWriter) formattedValue(e Entry) {
	start := x.start(elemFormattedValue)
	x.token(start)

	if len(e.contents) == 0 {
		x.token(xml.CharData(e.FormattedValue))
	}
	for i, node := range e.contents {
		if x.err != nil {
			break
		}
		if i == len(e.contents)-1 && node.Kind == markup.TextNode {
			x.token(xml.CharData(trimTrailingSpace(node.Text)))
			continue
		}
		x.err = node.Encode(x.enc)
	}

	x.token(start.End())
}

func trimTrailingSpace(s string) string {
	return strings.TrimRight(s, " \t\n\r\f\v")
}
