// Package xmlnode implements the dynamically-shaped, order-preserving XML
// tree the rest of the compiler operates on. The declarative configuration
// files and the template `controls` payloads have no fixed schema — tags,
// attributes and nesting are data, not Go types — so a generic tagged tree
// is used instead of encoding/xml struct tags. Parsing reuses
// encoding/xml's tokenizer (it already yields attributes in source order
// and handles entity decoding correctly); only the in-memory tree shape
// and the indented writer are bespoke.
package xmlnode

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is a single XML attribute, kept in source order.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the tree. Text holds the character data
// immediately inside the element before its first child (or its entire
// text content, for a leaf); Tail holds character data that follows the
// node but is still inside its parent (mixed content).
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Tail     string
}

// New creates a bare node with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// Attr returns the value of the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute's value, or def if absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// SetAttr sets (or appends) the named attribute, preserving the position
// of an existing attribute of the same name.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute, if present.
func (n *Node) RemoveAttr(name string) {
	out := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name != name {
			out = append(out, a)
		}
	}
	n.Attrs = out
}

// AppendChild appends a child node.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Find returns the first direct child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given tag.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Clone deep-copies the node and its entire subtree. The template
// processor (C8) does not call it per item: its element pass builds new
// output nodes and never mutates the template body.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Tag:   n.Tag,
		Text:  n.Text,
		Tail:  n.Tail,
		Attrs: append([]Attr(nil), n.Attrs...),
	}
	c.Children = make([]*Node, len(n.Children))
	for i, ch := range n.Children {
		c.Children[i] = ch.Clone()
	}
	return c
}

// Parse decodes an XML document into a single root Node, preserving
// attribute order and mixed text/tail content.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var root *Node
	var stack []*Node
	var lastChild *Node // tracks where pending CharData should land (Text vs Tail)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml parse error: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: localName(t.Name)}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: localName(a.Name), Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
			lastChild = nil

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			lastChild = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" && strings.Contains(text, "\n") {
				// Pure formatting whitespace between tags; drop it so the
				// writer's own indentation is authoritative.
				continue
			}
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			if lastChild != nil && len(current.Children) > 0 && current.Children[len(current.Children)-1] == lastChild {
				lastChild.Tail += text
			} else if len(current.Children) == 0 {
				current.Text += text
			} else {
				current.Children[len(current.Children)-1].Tail += text
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xml parse error: empty document")
	}
	return root, nil
}

func localName(n xml.Name) string {
	return n.Local
}

// Write serializes the tree with two-space indentation; an element with
// only text content (no children) stays on one line.
func Write(w io.Writer, root *Node) error {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	writeNode(buf, root, 0)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// String renders the tree to an XML string (no declaration).
func String(n *Node) string {
	buf := &bytes.Buffer{}
	writeNode(buf, n, 0)
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 && n.Text == "" {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')

	if len(n.Children) == 0 {
		xml.EscapeText(buf, []byte(n.Text))
		buf.WriteString("</")
		buf.WriteString(n.Tag)
		buf.WriteByte('>')
		return
	}

	if n.Text != "" {
		xml.EscapeText(buf, []byte(n.Text))
	}
	for _, c := range n.Children {
		buf.WriteByte('\n')
		writeNode(buf, c, depth+1)
		if c.Tail != "" {
			xml.EscapeText(buf, []byte(c.Tail))
		}
	}
	buf.WriteByte('\n')
	buf.WriteString(indent)
	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}
