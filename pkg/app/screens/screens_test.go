package screens

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	details  data.AnimeDetails
	entries  map[string]*data.LibraryEntry
	results  []data.SearchResult
	episodes []int
	progress chan services.RefreshProgress
}

func newFakeController() *fakeController {
	return &fakeController{
		details: data.AnimeDetails{
			ID:             281,
			Title:          "Cowboy Bebop",
			Genres:         []string{"Action", "Space"},
			ReleaseYear:    1998,
			DefaultEpisode: 1,
			EpisodeCount:   3,
		},
		entries:  map[string]*data.LibraryEntry{},
		progress: make(chan services.RefreshProgress, 10),
	}
}

func (f *fakeController) Search(_ context.Context, query string) ([]data.SearchResult, error) {
	return f.results, nil
}

func (f *fakeController) Details(_ context.Context, slug string) (data.AnimeDetails, error) {
	return f.details, nil
}

func (f *fakeController) Episode(_ context.Context, slug string, episode int) (data.Episode, error) {
	f.episodes = append(f.episodes, episode)
	return data.Episode{Providers: []data.Provider{{ID: "vidcdn", VideoURL: "https://v/" + slug}}}, nil
}

func (f *fakeController) AddToLibrary(_ context.Context, slug string) (*data.LibraryEntry, error) {
	e := &data.LibraryEntry{Slug: slug, Details: f.details}
	f.entries[slug] = e
	return e, nil
}

func (f *fakeController) RemoveFromLibrary(slug string) error {
	delete(f.entries, slug)
	return nil
}

func (f *fakeController) LibraryEntry(slug string) (*data.LibraryEntry, error) {
	if e, ok := f.entries[slug]; ok {
		return e, nil
	}
	return nil, &services.NotInLibraryError{Slug: slug}
}

func (f *fakeController) Library() ([]*data.LibraryEntry, error) {
	var out []*data.LibraryEntry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeController) RefreshLibrary(ctx context.Context) error { return ctx.Err() }

func (f *fakeController) RefreshProgress() <-chan services.RefreshProgress { return f.progress }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestDetailsScreenEpisodeStepper(t *testing.T) {
	ctrl := newFakeController()
	s := NewDetailsScreen(context.Background(), ctrl, "cowboy-bebop")
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(t, s, s.Init())

	require.NotNil(t, s.details)
	assert.Equal(t, 1, s.episode)

	s.Update(key("h"))
	assert.Equal(t, 1, s.episode, "cannot go below the first episode")

	s.Update(key("l"))
	s.Update(key("l"))
	s.Update(key("l"))
	assert.Equal(t, 3, s.episode, "cannot go past the episode count")

	_, cmd := s.Update(key("enter"))
	run(t, s, cmd)
	assert.Equal(t, []int{3}, ctrl.episodes)
	require.Len(t, s.providers, 1)
	assert.Contains(t, s.View(), "https://v/cowboy-bebop")

	s.Update(key("h"))
	assert.Empty(t, s.providers, "stepping clears providers of the previous episode")
}

func TestDetailsScreenResumesLibraryEntry(t *testing.T) {
	ctrl := newFakeController()
	ctrl.entries["cowboy-bebop"] = &data.LibraryEntry{Slug: "cowboy-bebop", LastEpisode: 1, Details: ctrl.details}

	s := NewDetailsScreen(context.Background(), ctrl, "cowboy-bebop")
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(t, s, s.Init())

	assert.Equal(t, 2, s.episode)
	assert.Contains(t, s.View(), "In library")
}

func TestDetailsScreenAddToLibrary(t *testing.T) {
	ctrl := newFakeController()
	s := NewDetailsScreen(context.Background(), ctrl, "cowboy-bebop")
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(t, s, s.Init())
	assert.Contains(t, s.View(), "Not in library")

	_, cmd := s.Update(key("a"))
	run(t, s, cmd)

	assert.Contains(t, ctrl.entries, "cowboy-bebop")
	assert.NotNil(t, s.entry)
}

func TestSearchScreenFlow(t *testing.T) {
	ctrl := newFakeController()
	ctrl.results = []data.SearchResult{
		{Slug: "cowboy-bebop", Title: "Cowboy Bebop"},
		{Slug: "cowboy-bebop-movie", Title: "Cowboy Bebop: The Movie"},
	}
	s := NewSearchScreen(context.Background(), ctrl)
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	s.input.SetValue("bebop")

	_, cmd := s.Update(key("enter"))
	run(t, s, cmd)
	require.Len(t, s.results, 2)
	assert.False(t, s.input.Focused())
	assert.Contains(t, s.View(), "Found 2 results")

	s.Update(key("j"))
	_, cmd = s.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(SwitchScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "details", msg.Screen)
	assert.Equal(t, "cowboy-bebop-movie", msg.Data)
}

func TestLibraryScreenRemove(t *testing.T) {
	ctrl := newFakeController()
	ctrl.entries["a"] = &data.LibraryEntry{Slug: "a", Details: data.AnimeDetails{Title: "A"}}
	s := NewLibraryScreen(context.Background(), ctrl)
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(t, s, s.Init())
	require.Len(t, s.animeList.Items, 1)

	_, cmd := s.Update(key("d"))
	_, cmd = s.Update(cmd())
	run(t, s, cmd)

	assert.Empty(t, s.animeList.Items)
	assert.True(t, strings.Contains(s.View(), "No anime in library"))
}

func TestLibraryRefreshUsesScreenContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewLibraryScreen(ctx, newFakeController())
	cancel()

	msg, ok := s.refreshLibrary().(refreshDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.err, context.Canceled)
}

func TestRootScreenNavigation(t *testing.T) {
	ctrl := newFakeController()
	r := NewRootScreen(context.Background(), ctrl)
	r.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	r.Update(key("tab"))
	assert.Equal(t, searchView, r.currentView)

	_, cmd := r.Update(SwitchScreenMsg{Screen: "details", Data: "cowboy-bebop"})
	assert.Equal(t, detailsView, r.currentView)
	run(t, r, cmd)
	assert.Contains(t, r.View(), "Cowboy Bebop")

	_, cmd = r.Update(key("esc"))
	run(t, r, cmd)
	assert.Equal(t, searchView, r.currentView)

	r.Update(key("q"))
	assert.Equal(t, "q", r.search.input.Value(), "q is typed into the focused search input")
}
