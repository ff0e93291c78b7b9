// Package xmltree parses XML into a navigable element tree that records the
// source line and column of every element.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Attr is an attribute with its local name.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the tree. Names are local names; namespaces are kept in
// Space for callers that need them.
type Node struct {
	Name     string
	Space    string
	Attrs    []Attr
	Text     string
	Children []*Node
	Parent   *Node
	Line     int
	Column   int

	// Position is the 1-based index among the parent's element children with the
	// same name.
	Position int
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or "" when absent.
func (n *Node) AttrOr(name string) string {
	v, _ := n.Attr(name)
	return v
}

// ID returns the value of the id attribute.
func (n *Node) ID() string {
	return n.AttrOr("id")
}

// ObjectID returns the id of the nearest ancestor-or-self carrying an id attribute.
func (n *Node) ObjectID() string {
	for cur := n; cur != nil; cur = cur.Parent {
		if id, ok := cur.Attr("id"); ok {
			return id
		}
	}
	return ""
}

// Child returns the first child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the child elements with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text of the first child with the given name.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Path returns the slash separated element path from the root to n.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// Document is a parsed XML document.
type Document struct {
	FileName string
	Root     *Node
}

// SyntaxError reports malformed XML.
type SyntaxError struct {
	FileName string
	Line     int
	Column   int
	Msg      string
}

// Error implements error.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FileName, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
}

// NewDecoder returns a strict decoder over content that understands the
// character encodings declared in NeTEx documents, such as ISO-8859-1.
func NewDecoder(content []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = true
	dec.CharsetReader = CharsetReader
	return dec
}

// CharsetReader converts input in the named encoding to UTF-8. It is suitable
// for xml.Decoder.CharsetReader.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		enc = fallbackEncoding(label)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func fallbackEncoding(label string) encoding.Encoding {
	switch strings.ToLower(label) {
	case "latin1", "latin-1", "iso8859-1", "iso_8859-1":
		return charmap.ISO8859_1
	case "latin9", "iso8859-15", "iso_8859-15":
		return charmap.ISO8859_15
	case "cp1252", "windows1252":
		return charmap.Windows1252
	}
	return nil
}

// Parse builds the element tree of content. Malformed content yields a
// *SyntaxError.
func Parse(fileName string, content []byte) (*Document, error) {
	dec := NewDecoder(content)

	var (
		root  *Node
		stack []*Node
		texts []*strings.Builder
		// seen counts the element children of each open element by name.
		seen []map[string]int
	)

	for {
		line, column := dec.InputPos()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(fileName, dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Name:   t.Name.Local,
				Space:  t.Name.Space,
				Line:   line,
				Column: column,
			}
			if len(t.Attr) > 0 {
				node.Attrs = make([]Attr, 0, len(t.Attr))
				for _, a := range t.Attr {
					if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
						continue
					}
					node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &SyntaxError{FileName: fileName, Line: line, Column: column, Msg: "multiple root elements"}
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				node.Parent = parent
				counts := seen[len(seen)-1]
				if counts == nil {
					counts = make(map[string]int)
					seen[len(seen)-1] = counts
				}
				counts[node.Name]++
				node.Position = counts[node.Name]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			texts = append(texts, &strings.Builder{})
			seen = append(seen, nil)
		case xml.EndElement:
			top := len(stack) - 1
			stack[top].Text = strings.TrimSpace(texts[top].String())
			stack = stack[:top]
			texts = texts[:top]
			seen = seen[:top]
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
		}
	}

	if root == nil {
		return nil, &SyntaxError{FileName: fileName, Msg: "document has no root element"}
	}
	return &Document{FileName: fileName, Root: root}, nil
}

func syntaxError(fileName string, dec *xml.Decoder, err error) *SyntaxError {
	line, column := dec.InputPos()
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{FileName: fileName, Line: se.Line, Column: column, Msg: se.Msg}
	}
	return &SyntaxError{FileName: fileName, Line: line, Column: column, Msg: err.Error()}
}
