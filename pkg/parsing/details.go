package parsing

import (
	"strings"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/document"
	"github.com/kerbaras/enjoi/pkg/selectors"
)

// EpisodeRange is one pagination marker of a details page.
type EpisodeRange struct {
	Start int
	End   int
}

// ParseAnimeDetails extracts an anime's details page.
func ParseAnimeDetails(raw []byte) (data.AnimeDetails, error) {
	doc, err := document.Parse(raw, document.KindDocument)
	if err != nil {
		return data.AnimeDetails{}, err
	}
	return AnimeDetails(doc)
}

func AnimeDetails(doc *document.Document) (data.AnimeDetails, error) {
	sel := selectors.Details
	var d data.AnimeDetails

	rawID, err := firstAttr(doc, sel.ID, "id", "value")
	if err != nil {
		return data.AnimeDetails{}, err
	}
	if d.ID, err = parseCount("id", rawID); err != nil {
		return data.AnimeDetails{}, err
	}

	title, err := first(doc, sel.Title, "title")
	if err != nil {
		return data.AnimeDetails{}, err
	}
	d.Title = title.Text(false)

	if d.CoverImageURL, err = firstAttr(doc, sel.CoverImage, "cover image", "src"); err != nil {
		return data.AnimeDetails{}, err
	}

	summary, err := first(doc, sel.Summary, "summary")
	if err != nil {
		return data.AnimeDetails{}, err
	}
	d.Summary = summary.Text(true)

	d.Genres, err = mapNodes(doc.Query(sel.Genres), func(n document.Node) (string, error) {
		return attr(n, "genres", "title")
	})
	if err != nil {
		return data.AnimeDetails{}, err
	}

	released, err := first(doc, sel.Released, "release year")
	if err != nil {
		return data.AnimeDetails{}, err
	}
	if d.ReleaseYear, err = parseCount("release year", strings.TrimSpace(released.Text(true))); err != nil {
		return data.AnimeDetails{}, err
	}

	rawDefault, err := firstAttr(doc, sel.DefaultEpisode, "default episode", "value")
	if err != nil {
		return data.AnimeDetails{}, err
	}
	if d.DefaultEpisode, err = parseCount("default episode", rawDefault); err != nil {
		return data.AnimeDetails{}, err
	}

	pages, err := EpisodeRanges(doc)
	if err != nil {
		return data.AnimeDetails{}, err
	}
	if len(pages) == 0 {
		return data.AnimeDetails{}, &MissingElementError{Field: "episode pages"}
	}
	d.EpisodeCount = pages[len(pages)-1].End

	return d, nil
}

// EpisodeRanges reads every ep_start/ep_end pagination pair in document order.
func EpisodeRanges(doc *document.Document) ([]EpisodeRange, error) {
	return mapNodes(doc.Query(selectors.Details.EpisodePages), func(n document.Node) (EpisodeRange, error) {
		rawStart, err := attr(n, "episode page", "ep_start")
		if err != nil {
			return EpisodeRange{}, err
		}
		start, err := parseCount("ep_start", rawStart)
		if err != nil {
			return EpisodeRange{}, err
		}

		rawEnd, err := attr(n, "episode page", "ep_end")
		if err != nil {
			return EpisodeRange{}, err
		}
		end, err := parseCount("ep_end", rawEnd)
		if err != nil {
			return EpisodeRange{}, err
		}

		return EpisodeRange{Start: start, End: end}, nil
	})
}
