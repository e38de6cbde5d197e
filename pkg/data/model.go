package data

import "time"

// Anime is one row of the catalog listing.
type Anime struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type SearchResult struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	CoverImageURL string `json:"cover_image_url"`
}

type AnimeDetails struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	CoverImageURL  string   `json:"cover_image_url"`
	Summary        string   `json:"summary"`
	Genres         []string `json:"genres"`
	ReleaseYear    int      `json:"release_year"`
	DefaultEpisode int      `json:"default_episode"`
	EpisodeCount   int      `json:"episode_count"`
}

// Provider is a third-party host serving an episode.
type Provider struct {
	ID       string `json:"id"`
	VideoURL string `json:"video_url"`
}

type Episode struct {
	Providers []Provider `json:"providers"`
}

// LibraryEntry is an anime the user saved locally.
type LibraryEntry struct {
	Slug        string
	Details     AnimeDetails
	LastEpisode int
	AddedAt     time.Time
}

// NextEpisode is the episode to resume from: the one after LastEpisode, or
// the site's default when nothing was watched yet. It never goes past
// EpisodeCount.
func (e LibraryEntry) NextEpisode() int {
	if e.LastEpisode <= 0 {
		if e.Details.DefaultEpisode > 0 {
			return e.Details.DefaultEpisode
		}
		return 1
	}
	next := e.LastEpisode + 1
	if e.Details.EpisodeCount > 0 && next > e.Details.EpisodeCount {
		return e.Details.EpisodeCount
	}
	return next
}
