package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/enjoi/pkg/app/components"
	"github.com/kerbaras/enjoi/pkg/app/styles"
	"github.com/kerbaras/enjoi/pkg/services"
)

type LibraryScreen struct {
	ctx        context.Context
	controller Controller
	animeList  *components.AnimeList
	refresh    *components.RefreshTracker
	refreshing bool
	listening  bool
	width      int
	height     int
	err        error
}

// NewLibraryScreen runs refreshes under ctx, so cancelling it stops them.
func NewLibraryScreen(ctx context.Context, controller Controller) *LibraryScreen {
	return &LibraryScreen{
		ctx:        ctx,
		controller: controller,
		animeList:  components.NewAnimeList(),
		refresh:    components.NewRefreshTracker(80),
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadLibrary
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.animeList.Width = msg.Width - 4
		s.animeList.Height = msg.Height - 10
		s.refresh = components.NewRefreshTracker(msg.Width - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.animeList.Prev()
		case "down", "j":
			s.animeList.Next()
		case "r":
			return s, s.loadLibrary
		case "u":
			if s.refreshing || len(s.animeList.Items) == 0 {
				break
			}
			s.refreshing = true
			s.refresh.Start(len(s.animeList.Items))
			cmds := []tea.Cmd{s.refreshLibrary}
			if !s.listening {
				s.listening = true
				cmds = append(cmds, s.listenForProgress)
			}
			return s, tea.Batch(cmds...)
		case "d":
			selected := s.animeList.Selected()
			if selected != nil {
				return s, s.removeAnime(selected.Entry.Slug)
			}
		case "enter":
			selected := s.animeList.Selected()
			if selected != nil {
				slug := selected.Entry.Slug
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		}

	case libraryLoadedMsg:
		s.animeList.SetItems(msg.items)
		s.err = msg.err

	case refreshProgressMsg:
		s.refresh.Update(services.RefreshProgress(msg))
		return s, s.listenForProgress

	case refreshDoneMsg:
		s.refreshing = false
		s.err = msg.err
		return s, s.loadLibrary

	case animeRemovedMsg:
		if msg.err != nil {
			s.err = msg.err
		}
		return s, s.loadLibrary
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("📺 Anime Library (%d)", len(s.animeList.Items)))

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	listView := s.animeList.View()
	refreshView := s.refresh.View()

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: details • d: remove • u: update from site • r: reload • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s\n%s", header, errorMsg, listView, refreshView, help)
}

// Messages
type libraryLoadedMsg struct {
	items []components.AnimeListItem
	err   error
}

type refreshProgressMsg services.RefreshProgress

type refreshDoneMsg struct {
	err error
}

type animeRemovedMsg struct {
	err error
}

// Commands
func (s *LibraryScreen) loadLibrary() tea.Msg {
	entries, err := s.controller.Library()
	if err != nil {
		return libraryLoadedMsg{err: err}
	}

	items := make([]components.AnimeListItem, len(entries))
	for i, entry := range entries {
		items[i] = components.AnimeListItem{Entry: entry}
	}
	return libraryLoadedMsg{items: items}
}

func (s *LibraryScreen) refreshLibrary() tea.Msg {
	return refreshDoneMsg{err: s.controller.RefreshLibrary(s.ctx)}
}

func (s *LibraryScreen) listenForProgress() tea.Msg {
	progress, ok := <-s.controller.RefreshProgress()
	if !ok {
		return nil
	}
	return refreshProgressMsg(progress)
}

func (s *LibraryScreen) removeAnime(slug string) tea.Cmd {
	return func() tea.Msg {
		return animeRemovedMsg{err: s.controller.RemoveFromLibrary(slug)}
	}
}
