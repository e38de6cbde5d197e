package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kerbaras/enjoi/pkg/config"
)

// E2E tests against a fake site and a real library

func TestE2E_LibraryPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	details, err := os.ReadFile(filepath.Join("..", "parsing", "testdata", "anime_details.html"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	episode, err := os.ReadFile(filepath.Join("..", "parsing", "testdata", "episode.html"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		switch r.URL.Path {
		case "/category/cowboy-bebop":
			w.Write(details)
		case "/cowboy-bebop-episode-3":
			w.Write(episode)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Source.BaseURL = server.URL
	cfg.Source.AjaxURL = server.URL
	cfg.Source.TimeoutSeconds = 5
	cfg.Library.Path = filepath.Join(t.TempDir(), "library.db")

	controller, err := NewAnimeController(cfg)
	if err != nil {
		t.Fatalf("NewAnimeController() error = %v", err)
	}
	defer controller.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entry, err := controller.AddToLibrary(ctx, "cowboy-bebop")
	if err != nil {
		t.Fatalf("AddToLibrary() error = %v", err)
	}
	if entry.Details.EpisodeCount != 26 {
		t.Errorf("Expected 26 episodes, got %d", entry.Details.EpisodeCount)
	}

	if _, err := controller.Episode(ctx, "cowboy-bebop", 3); err != nil {
		t.Fatalf("Episode() error = %v", err)
	}
	saved, err := controller.LibraryEntry("cowboy-bebop")
	if err != nil {
		t.Fatalf("LibraryEntry() error = %v", err)
	}
	if saved.LastEpisode != 3 {
		t.Errorf("Expected last episode 3, got %d", saved.LastEpisode)
	}
	if saved.NextEpisode() != 4 {
		t.Errorf("Expected next episode 4, got %d", saved.NextEpisode())
	}

	if _, err := controller.AddToLibrary(ctx, "missing-show"); err == nil {
		t.Error("AddToLibrary() should fail for a 404")
	}

	if err := controller.RefreshLibrary(ctx); err != nil {
		t.Fatalf("RefreshLibrary() error = %v", err)
	}

	library, err := controller.Library()
	if err != nil {
		t.Fatalf("Library() error = %v", err)
	}
	if len(library) != 1 {
		t.Fatalf("Expected 1 library entry, got %d", len(library))
	}
	if library[0].LastEpisode != 3 {
		t.Errorf("Refresh should keep progress, got %d", library[0].LastEpisode)
	}

	if atomic.LoadInt32(&requestCount) < 4 {
		t.Errorf("Expected at least 4 requests, got %d", requestCount)
	}
}
