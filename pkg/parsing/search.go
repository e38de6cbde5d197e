package parsing

import (
	"bytes"
	"strings"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/document"
	"github.com/kerbaras/enjoi/pkg/selectors"
)

// The search endpoint answers {"content":"<escaped html>"}.
const (
	envelopePrefixLen = len(`{"content":"`)
	envelopeSuffixLen = len(`"}`)
)

// The cover sits in a style attribute shaped like
// background: url("https://...").
const (
	coverStylePrefixLen = len(`background: url("`)
	coverStyleSuffixLen = len(`")`)
)

var envelopeUnescaper = strings.NewReplacer(`\/`, `/`, `\"`, `"`)

// UnwrapSearchEnvelope strips the JSON envelope around the search markup and
// undoes its \/ and \" escapes.
func UnwrapSearchEnvelope(raw []byte) ([]byte, error) {
	trimmed := string(bytes.TrimSpace(raw))
	inner, err := cut(trimmed, envelopePrefixLen, envelopeSuffixLen, "search response shorter than its json envelope")
	if err != nil {
		return nil, err
	}
	return []byte(envelopeUnescaper.Replace(inner)), nil
}

// ParseSearchResults extracts the hits from a raw search response.
func ParseSearchResults(raw []byte) ([]data.SearchResult, error) {
	markup, err := UnwrapSearchEnvelope(raw)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(markup, document.KindFragment)
	if err != nil {
		return nil, err
	}
	return SearchResults(doc)
}

// SearchResults extracts hits from an already unwrapped fragment.
func SearchResults(doc *document.Document) ([]data.SearchResult, error) {
	return mapNodes(doc.Query(selectors.Search.Items), func(item document.Node) (data.SearchResult, error) {
		thumb, ok := item.FirstElementChild()
		if !ok {
			return data.SearchResult{}, &MissingElementError{Field: "cover image"}
		}
		style, err := attr(thumb, "cover image", "style")
		if err != nil {
			return data.SearchResult{}, err
		}
		cover, err := cut(style, coverStylePrefixLen, coverStyleSuffixLen, "cover image style shorter than its url() wrapper")
		if err != nil {
			return data.SearchResult{}, err
		}

		title, ok := item.FirstText()
		if !ok {
			return data.SearchResult{}, &MissingElementError{Field: "title"}
		}

		href, err := attr(item, "slug", "href")
		if err != nil {
			return data.SearchResult{}, err
		}
		slug := href[strings.LastIndexByte(href, '/')+1:]
		if slug == "" {
			return data.SearchResult{}, &StructuralError{Context: "search result href has an empty slug"}
		}

		return data.SearchResult{
			Slug:          slug,
			Title:         title,
			CoverImageURL: cover,
		}, nil
	})
}
