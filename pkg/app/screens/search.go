package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/enjoi/pkg/app/styles"
	"github.com/kerbaras/enjoi/pkg/data"
)

type SearchScreen struct {
	ctx        context.Context
	controller Controller
	input      textinput.Model
	results    []data.SearchResult
	selected   int
	searching  bool
	searched   bool
	notice     string
	width      int
	height     int
	err        error
}

func NewSearchScreen(ctx context.Context, controller Controller) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search anime..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &SearchScreen{
		ctx:        ctx,
		controller: controller,
		input:      ti,
		results:    []data.SearchResult{},
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.searching {
			return s, nil
		}

		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				query := strings.TrimSpace(s.input.Value())
				if query != "" {
					s.searching = true
					s.notice = ""
					return s, s.performSearch(query)
				}
			} else if len(s.results) > 0 {
				slug := s.results[s.selected].Slug
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}

		case "a":
			if !s.input.Focused() && len(s.results) > 0 {
				return s, s.addToLibrary(s.results[s.selected].Slug)
			}

		case "esc":
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}
			return s, cmd

		case "up", "k":
			if !s.input.Focused() && len(s.results) > 0 {
				s.selected--
				if s.selected < 0 {
					s.selected = len(s.results) - 1
				}
			}

		case "down", "j":
			if !s.input.Focused() && len(s.results) > 0 {
				s.selected++
				if s.selected >= len(s.results) {
					s.selected = 0
				}
			}
		}

	case searchResultMsg:
		s.searching = false
		s.searched = true
		s.results = msg.results
		s.selected = 0
		s.err = msg.err
		if len(s.results) > 0 {
			s.input.Blur()
		}

	case addedToLibraryMsg:
		s.err = msg.err
		if msg.err == nil {
			s.notice = fmt.Sprintf("Added %s to the library", msg.entry.Details.Title)
		}
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}

	return s, cmd
}

func (s *SearchScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("🔍 Search Anime")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	} else if s.notice != "" {
		errorMsg = styles.StatusCompleted.Render(s.notice) + "\n\n"
	}

	var resultsView string
	if s.searching {
		resultsView = styles.StatusRefreshing.Render("Searching...")
	} else if len(s.results) > 0 {
		resultsView = s.renderResults()
	} else if s.searched && s.err == nil {
		resultsView = styles.MutedStyle.Render("No results found")
	}

	help := styles.HelpStyle.Render(
		"enter: search/details • a: add to library • esc: switch focus • ↑/k ↓/j: navigate • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n\n%s",
		header,
		inputView,
		errorMsg,
		resultsView,
		help,
	)
}

func (s *SearchScreen) renderResults() string {
	var result string
	result += styles.SubtitleStyle.Render(fmt.Sprintf("Found %d results:", len(s.results)))
	result += "\n\n"

	for i, anime := range s.results {
		cardStyle := styles.CardStyle
		if i == s.selected && !s.input.Focused() {
			cardStyle = styles.ActiveCardStyle
		}

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TitleStyle.Render(anime.Title),
			styles.MutedStyle.Render(fmt.Sprintf("Slug: %s", anime.Slug)),
			styles.LinkStyle.Render(anime.CoverImageURL),
		)

		result += cardStyle.Width(s.width-6).Render(cardContent) + "\n"
	}

	return result
}

// Messages
type searchResultMsg struct {
	results []data.SearchResult
	err     error
}

type addedToLibraryMsg struct {
	entry *data.LibraryEntry
	err   error
}

// SwitchScreenMsg asks the root screen to change view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// Commands
func (s *SearchScreen) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := s.controller.Search(s.ctx, query)
		return searchResultMsg{results: results, err: err}
	}
}

func (s *SearchScreen) addToLibrary(slug string) tea.Cmd {
	return func() tea.Msg {
		entry, err := s.controller.AddToLibrary(s.ctx, slug)
		return addedToLibraryMsg{entry: entry, err: err}
	}
}
