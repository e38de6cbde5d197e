// Package selectors holds the compiled selector sets used by the extractors.
//
// Every set is compiled when the package is initialized. A malformed literal
// panics there and can never surface while a page is being extracted. If the
// site markup drifts away from these selectors, queries simply come back
// empty.
package selectors

import "github.com/andybalholm/cascadia"

type AnimeListSet struct {
	// Items matches one anchor per catalog row.
	Items cascadia.Selector
}

type SearchSet struct {
	Items cascadia.Selector
}

type DetailsSet struct {
	ID             cascadia.Selector
	Title          cascadia.Selector
	CoverImage     cascadia.Selector
	Summary        cascadia.Selector
	Genres         cascadia.Selector
	Released       cascadia.Selector
	DefaultEpisode cascadia.Selector
	EpisodePages   cascadia.Selector
}

type EpisodeSet struct {
	Providers cascadia.Selector
	Link      cascadia.Selector
}

var (
	AnimeList = AnimeListSet{
		Items: cascadia.MustCompile(".listing li a"),
	}

	Search = SearchSet{
		Items: cascadia.MustCompile("a"),
	}

	Details = DetailsSet{
		ID:             cascadia.MustCompile("#movie_id"),
		Title:          cascadia.MustCompile(".anime_info_body_bg > h1:nth-child(2)"),
		CoverImage:     cascadia.MustCompile(".anime_info_body_bg > img:nth-child(1)"),
		Summary:        cascadia.MustCompile("p.type:nth-child(5)"),
		Genres:         cascadia.MustCompile("p.type:nth-child(6) > a"),
		Released:       cascadia.MustCompile("p.type:nth-child(7)"),
		DefaultEpisode: cascadia.MustCompile("#default_ep"),
		EpisodePages:   cascadia.MustCompile("#episode_page li a"),
	}

	Episode = EpisodeSet{
		Providers: cascadia.MustCompile(".anime_muti_link > ul > li"),
		Link:      cascadia.MustCompile("a"),
	}
)
