package screens

import (
	"context"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/services"
)

// Controller is the part of services.AnimeController the screens drive.
type Controller interface {
	Search(ctx context.Context, query string) ([]data.SearchResult, error)
	Details(ctx context.Context, slug string) (data.AnimeDetails, error)
	Episode(ctx context.Context, slug string, episode int) (data.Episode, error)
	AddToLibrary(ctx context.Context, slug string) (*data.LibraryEntry, error)
	RemoveFromLibrary(slug string) error
	LibraryEntry(slug string) (*data.LibraryEntry, error)
	Library() ([]*data.LibraryEntry, error)
	RefreshLibrary(ctx context.Context) error
	RefreshProgress() <-chan services.RefreshProgress
}

var _ Controller = (*services.AnimeController)(nil)
