package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kerbaras/enjoi/pkg/config"
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/sources"
)

var (
	ErrEmptyQuery     = errors.New("query cannot be empty")
	ErrEmptySlug      = errors.New("slug cannot be empty")
	ErrInvalidPage    = errors.New("page must be at least 1")
	ErrInvalidEpisode = errors.New("episode must be at least 1")
)

// NotInLibraryError is returned for library operations on unknown slugs.
type NotInLibraryError struct {
	Slug string
}

func (e *NotInLibraryError) Error() string {
	return fmt.Sprintf("%s is not in the library", e.Slug)
}

// AnimeController ties a catalog source to the local library.
type AnimeController struct {
	source    sources.Source
	repo      Repository
	refresher *Refresher
	closer    func() error
}

// NewAnimeController wires the GogoAnime source and the DuckDB library
// described by cfg.
func NewAnimeController(cfg config.Config) (*AnimeController, error) {
	transport := sources.NewRestyTransport(cfg.Source.Timeout(), cfg.Source.UserAgent)
	source := sources.NewGogoAnime(transport, cfg.Source.BaseURL, cfg.Source.AjaxURL)

	repo, err := data.NewDuckDBRepository(cfg.Library.Path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	c := NewAnimeControllerWith(source, repo)
	c.closer = repo.Close
	return c, nil
}

func NewAnimeControllerWith(source sources.Source, repo Repository) *AnimeController {
	return &AnimeController{
		source:    source,
		repo:      repo,
		refresher: NewRefresher(source, repo),
	}
}

func (c *AnimeController) SourceName() string {
	return c.source.Name()
}

func (c *AnimeController) Search(ctx context.Context, query string) ([]data.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return c.source.Search(ctx, query)
}

func (c *AnimeController) Catalog(ctx context.Context, page int) ([]data.Anime, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	return c.source.AnimeList(ctx, page)
}

func (c *AnimeController) Details(ctx context.Context, slug string) (data.AnimeDetails, error) {
	if slug == "" {
		return data.AnimeDetails{}, ErrEmptySlug
	}
	return c.source.Details(ctx, slug)
}

// Episode fetches the providers of one episode and, for library entries,
// remembers it as the last one watched.
func (c *AnimeController) Episode(ctx context.Context, slug string, episode int) (data.Episode, error) {
	if slug == "" {
		return data.Episode{}, ErrEmptySlug
	}
	if episode < 1 {
		return data.Episode{}, ErrInvalidEpisode
	}

	ep, err := c.source.Episode(ctx, slug, episode)
	if err != nil {
		return data.Episode{}, err
	}
	if c.repo != nil {
		if err := c.repo.SetLastEpisode(slug, episode); err != nil {
			return ep, fmt.Errorf("record progress: %w", err)
		}
	}
	return ep, nil
}

// AddToLibrary fetches the current details for slug and stores them. Adding
// a slug twice refreshes its details and keeps its progress.
func (c *AnimeController) AddToLibrary(ctx context.Context, slug string) (*data.LibraryEntry, error) {
	if slug == "" {
		return nil, ErrEmptySlug
	}

	details, err := c.source.Details(ctx, slug)
	if err != nil {
		return nil, err
	}

	entry, err := c.repo.GetAnime(slug)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &data.LibraryEntry{Slug: slug, AddedAt: time.Now().UTC()}
	}
	entry.Details = details

	if err := c.repo.SaveAnime(entry); err != nil {
		return nil, fmt.Errorf("failed to save anime: %w", err)
	}
	return entry, nil
}

func (c *AnimeController) RemoveFromLibrary(slug string) error {
	if _, err := c.LibraryEntry(slug); err != nil {
		return err
	}
	return c.repo.DeleteAnime(slug)
}

func (c *AnimeController) LibraryEntry(slug string) (*data.LibraryEntry, error) {
	if slug == "" {
		return nil, ErrEmptySlug
	}
	entry, err := c.repo.GetAnime(slug)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, &NotInLibraryError{Slug: slug}
	}
	return entry, nil
}

func (c *AnimeController) Library() ([]*data.LibraryEntry, error) {
	return c.repo.ListAnimes()
}

// RefreshLibrary re-fetches details for every library entry. Progress is
// published on RefreshProgress().
func (c *AnimeController) RefreshLibrary(ctx context.Context) error {
	entries, err := c.repo.ListAnimes()
	if err != nil {
		return err
	}
	return c.refresher.Refresh(ctx, entries)
}

func (c *AnimeController) RefreshProgress() <-chan RefreshProgress {
	return c.refresher.Progress()
}

func (c *AnimeController) Close() error {
	c.refresher.Close()
	if c.closer != nil {
		return c.closer()
	}
	return nil
}
