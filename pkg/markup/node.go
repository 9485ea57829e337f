// Package markup holds the lightweight document tree that index markers are
// read from and that rich index content is written back out as.
package markup

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Kind distinguishes element nodes from text nodes.
type Kind int

const (
	// ElementNode is an XML element with attributes and children.
	ElementNode Kind = iota
	// TextNode is character data.
	TextNode
)

// Node is one node of a parsed document.
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []xml.Attr
	Children []*Node
	Text     string
}

// Class identifies a DITA element type. Token is the class attribute token
// (e.g. "topic/indexterm"); Name is the element name used when a node has
// no class attribute.
type Class struct {
	Token string
	Name  string
}

// Element classes recognized by the index pipeline.
var (
	IndexTerm       = Class{Token: "topic/indexterm", Name: "indexterm"}
	IndexSortAs     = Class{Token: "indexing-d/index-sort-as", Name: "index-sort-as"}
	IndexSee        = Class{Token: "indexing-d/index-see", Name: "index-see"}
	IndexSeeAlso    = Class{Token: "indexing-d/index-see-also", Name: "index-see-also"}
	DraftComment    = Class{Token: "topic/draft-comment", Name: "draft-comment"}
	RequiredCleanup = Class{Token: "topic/required-cleanup", Name: "required-cleanup"}
)

// Text creates a text node.
func Text(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// Elem creates an element node with the given children.
func Elem(name string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Name: name, Children: children}
}

// WithAttr sets an attribute and returns the node for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name.Local == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return n
}

// Attr returns the value of the named attribute. The boolean reports
// whether the attribute is present, so an empty value can be told apart
// from a missing one.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == ElementNode
}

// Matches reports whether n is an element of class c.
func (n *Node) Matches(c Class) bool {
	if !n.IsElement() {
		return false
	}
	if class, ok := n.Attr("class"); ok {
		for _, token := range strings.Fields(class) {
			if token == c.Token {
				return true
			}
		}
		return false
	}
	return n.Name == c.Name
}

// StringValue returns the concatenated text of n and all its descendants.
func (n *Node) StringValue() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Text
	}
	var builder strings.Builder
	n.writeText(&builder)
	return builder.String()
}

func (n *Node) writeText(builder *strings.Builder) {
	for _, child := range n.Children {
		if child.Kind == TextNode {
			builder.WriteString(child.Text)
		} else {
			child.writeText(builder)
		}
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{Kind: n.Kind, Name: n.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		clone.Attrs = append([]xml.Attr(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.Clone())
	}
	return clone
}

// Parse decodes an XML document and returns its root element.
func Parse(reader io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = false

	var stack []*Node
	var root *Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Kind: ElementNode, Name: t.Name.Local}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				node.Attrs = append(node.Attrs, xml.Attr{Name: xml.Name{Local: attr.Name.Local}, Value: attr.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			appendText(stack[len(stack)-1], string(t))
		}
	}

	if root == nil {
		return nil, fmt.Errorf("failed to parse XML: no root element")
	}
	return root, nil
}

// appendText adds character data to parent, merging it into a preceding
// text node so that comments and processing instructions do not split text.
func appendText(parent *Node, text string) {
	if n := len(parent.Children); n > 0 && parent.Children[n-1].Kind == TextNode {
		parent.Children[n-1].Text += text
		return
	}
	parent.Children = append(parent.Children, Text(text))
}

// Encode writes n to the encoder.
func (n *Node) Encode(encoder *xml.Encoder) error {
	if n.Kind == TextNode {
		return encoder.EncodeToken(xml.CharData(n.Text))
	}

	start := xml.StartElement{Name: xml.Name{Local: n.Name}, Attr: n.Attrs}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.Encode(encoder); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}
