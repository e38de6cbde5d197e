package parsing

import (
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/document"
	"github.com/kerbaras/enjoi/pkg/selectors"
)

// categoryPrefixLen is len("/category/"). The prefix itself is not checked.
const categoryPrefixLen = 10

// ParseAnimeList extracts the catalog rows of an anime-list page.
func ParseAnimeList(raw []byte) ([]data.Anime, error) {
	doc, err := document.Parse(raw, document.KindDocument)
	if err != nil {
		return nil, err
	}
	return AnimeList(doc)
}

func AnimeList(doc *document.Document) ([]data.Anime, error) {
	return mapNodes(doc.Query(selectors.AnimeList.Items), func(item document.Node) (data.Anime, error) {
		title, err := item.InnerHTML()
		if err != nil {
			return data.Anime{}, &StructuralError{Context: "anime title markup: " + err.Error()}
		}

		href, err := attr(item, "slug", "href")
		if err != nil {
			return data.Anime{}, err
		}
		slug, err := cut(href, categoryPrefixLen, 0, "anime href shorter than /category/ prefix")
		if err != nil {
			return data.Anime{}, err
		}
		if slug == "" {
			return data.Anime{}, &StructuralError{Context: "anime href has an empty slug"}
		}

		return data.Anime{Slug: slug, Title: title}, nil
	})
}
