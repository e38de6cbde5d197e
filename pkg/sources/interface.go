package sources

import (
	"context"

	"github.com/kerbaras/enjoi/pkg/data"
)

// Source is an anime catalog site.
type Source interface {
	Name() string
	AnimeList(ctx context.Context, page int) ([]data.Anime, error)
	Search(ctx context.Context, text string) ([]data.SearchResult, error)
	Details(ctx context.Context, slug string) (data.AnimeDetails, error)
	Episode(ctx context.Context, slug string, episode int) (data.Episode, error)
}
