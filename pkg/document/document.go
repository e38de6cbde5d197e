// Package document parses raw page bytes into a queryable tree.
//
// A Document is read-only once parsed. Queries return nodes in document
// order and may be repeated any number of times.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Kind int

const (
	// KindDocument parses a full page, synthesizing html/head/body as needed.
	KindDocument Kind = iota
	// KindFragment parses a markup snippet in a body context.
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindFragment:
		return "fragment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw markup.
func Parse(raw []byte, kind Kind) (*Document, error) {
	switch kind {
	case KindDocument:
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		return &Document{doc: doc}, nil
	case KindFragment:
		root, err := parseFragment(raw)
		if err != nil {
			return nil, err
		}
		return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
	default:
		return nil, fmt.Errorf("parse: unknown kind %s", kind)
	}
}

// parseFragment parses raw in a <body> context and hangs the resulting
// nodes under a synthetic <html> element so selectors see a single tree.
func parseFragment(raw []byte) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(bytes.NewReader(raw), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	root := &html.Node{Type: html.DocumentNode}
	top := &html.Node{
		Type:     html.ElementNode,
		Data:     "html",
		DataAtom: atom.Html,
	}
	root.AppendChild(top)
	for _, n := range nodes {
		top.AppendChild(n)
	}
	return root, nil
}

// Query returns every node matching m, in document order.
func (d *Document) Query(m cascadia.Selector) []Node {
	return collect(d.doc.Selection, m)
}

// First returns the first node matching m.
func (d *Document) First(m cascadia.Selector) (Node, bool) {
	nodes := d.Query(m)
	if len(nodes) == 0 {
		return Node{}, false
	}
	return nodes[0], true
}

func collect(sel *goquery.Selection, m cascadia.Selector) []Node {
	found := sel.FindMatcher(m)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, Node{sel: s})
	})
	return nodes
}

// Node is a single element of a parsed Document.
type Node struct {
	sel *goquery.Selection
}

func (n Node) raw() *html.Node {
	if n.sel == nil {
		return nil
	}
	return n.sel.Get(0)
}

// Attr looks up an attribute by name.
func (n Node) Attr(name string) (string, bool) {
	if n.sel == nil {
		return "", false
	}
	return n.sel.Attr(name)
}

// Query returns the descendants of n matching m, in document order.
func (n Node) Query(m cascadia.Selector) []Node {
	if n.sel == nil {
		return nil
	}
	return collect(n.sel, m)
}

// Text concatenates every descendant text node in document order. When
// skipFirstChild is set the subtree of the first child node is left out.
func (n Node) Text(skipFirstChild bool) string {
	node := n.raw()
	if node == nil {
		return ""
	}

	var b strings.Builder
	child := node.FirstChild
	if skipFirstChild && child != nil {
		child = child.NextSibling
	}
	for ; child != nil; child = child.NextSibling {
		writeText(&b, child)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

// FirstText returns the first descendant text node.
func (n Node) FirstText() (string, bool) {
	var walk func(*html.Node) (string, bool)
	walk = func(cur *html.Node) (string, bool) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				return c.Data, true
			}
			if s, ok := walk(c); ok {
				return s, true
			}
		}
		return "", false
	}

	node := n.raw()
	if node == nil {
		return "", false
	}
	return walk(node)
}

// InnerHTML renders the markup of n's children.
func (n Node) InnerHTML() (string, error) {
	if n.sel == nil {
		return "", nil
	}
	return n.sel.Html()
}

// FirstElementChild skips over text and comment children.
func (n Node) FirstElementChild() (Node, bool) {
	if n.sel == nil {
		return Node{}, false
	}
	child := n.sel.Children().First()
	if child.Length() == 0 {
		return Node{}, false
	}
	return Node{sel: child}, true
}

// Classes splits the class attribute into its tokens.
func (n Node) Classes() ([]string, bool) {
	class, ok := n.Attr("class")
	if !ok {
		return nil, false
	}
	return strings.Fields(class), true
}
