// Package parsing turns GogoAnime pages into typed entities.
//
// Every extractor is a pure function of its input: it either returns a fully
// populated value or the first error it hit, never both.
package parsing

import (
	"math"
	"strconv"

	"github.com/andybalholm/cascadia"
	"github.com/kerbaras/enjoi/pkg/document"
)

func first(doc *document.Document, m cascadia.Selector, field string) (document.Node, error) {
	node, ok := doc.First(m)
	if !ok {
		return document.Node{}, &MissingElementError{Field: field}
	}
	return node, nil
}

func attr(node document.Node, field, name string) (string, error) {
	v, ok := node.Attr(name)
	if !ok {
		return "", &MissingAttributeError{Field: field, Attr: name}
	}
	return v, nil
}

func firstAttr(doc *document.Document, m cascadia.Selector, field, name string) (string, error) {
	node, err := first(doc, m, field)
	if err != nil {
		return "", err
	}
	return attr(node, field, name)
}

// parseCount accepts base-10 non-negative integers only. Surrounding
// whitespace is rejected.
func parseCount(field, s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > math.MaxInt {
		return 0, &InvalidNumberError{Field: field, Value: s}
	}
	return int(n), nil
}

// cut drops head bytes from the front and tail bytes from the back of s.
func cut(s string, head, tail int, context string) (string, error) {
	if len(s) < head+tail {
		return "", &StructuralError{Context: context}
	}
	return s[head : len(s)-tail], nil
}

// mapNodes applies fn to every node in order and stops at the first error.
func mapNodes[T any](nodes []document.Node, fn func(document.Node) (T, error)) ([]T, error) {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		v, err := fn(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
