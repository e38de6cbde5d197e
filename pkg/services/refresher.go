package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/logger"
	"github.com/kerbaras/enjoi/pkg/sources"
	"github.com/rs/zerolog"
)

// Refresh statuses reported on the progress channel.
const (
	StatusRefreshing = "refreshing"
	StatusUpdated    = "updated"
	StatusUnchanged  = "unchanged"
	StatusError      = "error"
)

const maxConcurrentRefreshes = 3

// RefreshProgress reports on one library entry during a refresh.
type RefreshProgress struct {
	Slug         string
	Status       string
	EpisodeCount int
	Err          error
}

// Repository is the library storage the services need.
type Repository interface {
	SaveAnime(entry *data.LibraryEntry) error
	GetAnime(slug string) (*data.LibraryEntry, error)
	ListAnimes() ([]*data.LibraryEntry, error)
	DeleteAnime(slug string) error
	SetLastEpisode(slug string, episode int) error
}

// ErrRefresherClosed is returned by Refresh after Close.
var ErrRefresherClosed = errors.New("refresher is closed")

// Refresher re-fetches details for library entries and stores what changed.
type Refresher struct {
	source       sources.Source
	repo         Repository
	progressChan chan RefreshProgress
	log          zerolog.Logger

	// ctx is cancelled by Close and bounds every running Refresh.
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	closed  bool
	running sync.WaitGroup
}

func NewRefresher(source sources.Source, repo Repository) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		source:       source,
		repo:         repo,
		progressChan: make(chan RefreshProgress, 100),
		log:          logger.WithComponent("refresher"),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Progress returns the channel receiving refresh updates. Updates are
// dropped rather than blocking when nobody reads.
func (r *Refresher) Progress() <-chan RefreshProgress {
	return r.progressChan
}

// Refresh updates every entry, at most three at a time. It waits for all of
// them and returns the failures joined together.
func (r *Refresher) Refresh(ctx context.Context, entries []*data.LibraryEntry) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRefresherClosed
	}
	r.running.Add(1)
	r.mu.Unlock()
	defer r.running.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.ctx, cancel)
	defer stop()

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentRefreshes)
	errorChan := make(chan error, len(entries))

	for _, entry := range entries {
		wg.Add(1)
		go func(entry *data.LibraryEntry) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				errorChan <- fmt.Errorf("%s: %w", entry.Slug, ctx.Err())
				return
			}
			defer func() { <-semaphore }()

			if err := r.refreshOne(ctx, entry); err != nil {
				r.log.Warn().Err(err).Str("slug", entry.Slug).Msg("refresh failed")
				errorChan <- fmt.Errorf("%s: %w", entry.Slug, err)
				r.sendProgress(RefreshProgress{
					Slug:   entry.Slug,
					Status: StatusError,
					Err:    err,
				})
			}
		}(entry)
	}

	wg.Wait()
	close(errorChan)

	var refreshErrors []error
	for err := range errorChan {
		refreshErrors = append(refreshErrors, err)
	}
	return errors.Join(refreshErrors...)
}

func (r *Refresher) refreshOne(ctx context.Context, entry *data.LibraryEntry) error {
	r.sendProgress(RefreshProgress{Slug: entry.Slug, Status: StatusRefreshing})

	details, err := r.source.Details(ctx, entry.Slug)
	if err != nil {
		return err
	}

	if reflect.DeepEqual(details, entry.Details) {
		r.sendProgress(RefreshProgress{
			Slug:         entry.Slug,
			Status:       StatusUnchanged,
			EpisodeCount: details.EpisodeCount,
		})
		return nil
	}

	updated := *entry
	updated.Details = details
	if err := r.repo.SaveAnime(&updated); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	r.sendProgress(RefreshProgress{
		Slug:         entry.Slug,
		Status:       StatusUpdated,
		EpisodeCount: details.EpisodeCount,
	})
	return nil
}

func (r *Refresher) sendProgress(progress RefreshProgress) {
	select {
	case r.progressChan <- progress:
	default:
	}
}

// Close cancels running refreshes, waits for them to return and then closes
// the progress channel. Later calls are no-ops.
func (r *Refresher) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.running.Wait()
	close(r.progressChan)
}
