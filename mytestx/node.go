// Package mytestx parses MyTestX quiz-export XML and locates question
// records inside it.
package mytestx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is one XML attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a decoded MyTestX document. The exporter gives no
// schema guarantees, so the tree keeps every element as-is: recognized shapes
// are matched by name later, everything else stays opaque.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Parse decodes a whole document into a Node tree. It returns the document
// element; a document with multiple top-level elements is wrapped in a
// synthetic root.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	root := &Node{Name: "#document"}
	stack := []*Node{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse quiz file: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].Text += string(t)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("failed to parse quiz file: unclosed element %s", stack[len(stack)-1].Name)
	}
	if len(root.Children) == 1 {
		return root.Children[0], nil
	}
	return root, nil
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child element with the given name in document
// order. A single instance comes back as a one-element slice.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// AttrValue returns the named attribute's value and whether it is present.
func (n *Node) AttrValue(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasField reports whether the node carries the named field as an attribute
// or as a child element. Presence counts even when the value is empty.
func (n *Node) HasField(name string) bool {
	if _, ok := n.AttrValue(name); ok {
		return true
	}
	return n.Child(name) != nil
}

// TrimmedText returns the node's own character data with surrounding
// whitespace removed.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text)
}
