package parsing

import (
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/document"
	"github.com/kerbaras/enjoi/pkg/selectors"
)

// ParseEpisode extracts the video providers listed on an episode page.
func ParseEpisode(raw []byte) (data.Episode, error) {
	doc, err := document.Parse(raw, document.KindDocument)
	if err != nil {
		return data.Episode{}, err
	}
	return Episode(doc)
}

func Episode(doc *document.Document) (data.Episode, error) {
	providers, err := mapNodes(doc.Query(selectors.Episode.Providers), provider)
	if err != nil {
		return data.Episode{}, err
	}
	return data.Episode{Providers: providers}, nil
}

func provider(item document.Node) (data.Provider, error) {
	links := item.Query(selectors.Episode.Link)
	if len(links) == 0 {
		return data.Provider{}, &MissingElementError{Field: "provider link"}
	}
	videoURL, err := attr(links[0], "provider link", "data-video")
	if err != nil {
		return data.Provider{}, err
	}

	classes, ok := item.Classes()
	if !ok {
		return data.Provider{}, &MissingAttributeError{Field: "provider", Attr: "class"}
	}
	if len(classes) == 0 {
		return data.Provider{}, &StructuralError{Context: "provider item has an empty class list"}
	}

	return data.Provider{ID: classes[0], VideoURL: videoURL}, nil
}
