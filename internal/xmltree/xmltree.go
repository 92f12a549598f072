package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Node is one element of a parsed document tree.
type Node struct {
	Label    string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Parse decodes raw bytes into a document tree rooted at the single top-level
// element. Namespace prefixes are dropped; attribute and element names are
// kept local.
func Parse(content []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var root *Node
	var stack []*Node
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Label: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, attr := range t.Attr {
				node.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("malformed document: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("malformed document: no root element")
	}
	return root, nil
}

// Child returns the first direct child with the given label, or nil.
func (n *Node) Child(label string) *Node {
	for _, child := range n.Children {
		if child.Label == label {
			return child
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given label, in document
// order.
func (n *Node) ChildrenNamed(label string) []*Node {
	var children []*Node
	for _, child := range n.Children {
		if child.Label == label {
			children = append(children, child)
		}
	}
	return children
}

// Attr returns the attribute value, or empty text when absent.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}
