package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/enjoi/pkg/app/styles"
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/services"
	"github.com/kerbaras/enjoi/pkg/utils"
)

type DetailsScreen struct {
	ctx        context.Context
	controller Controller
	slug       string
	details    *data.AnimeDetails
	entry      *data.LibraryEntry
	episode    int
	providers  []data.Provider
	loading    bool
	width      int
	height     int
	err        error
}

func NewDetailsScreen(ctx context.Context, controller Controller, slug string) *DetailsScreen {
	return &DetailsScreen{
		ctx:        ctx,
		controller: controller,
		slug:       slug,
		episode:    1,
		loading:    true,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.loadDetails
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			s.stepEpisode(-1)
		case "right", "l":
			s.stepEpisode(1)
		case "enter":
			if s.details != nil && !s.loading {
				s.loading = true
				return s, s.loadEpisode(s.episode)
			}
		case "a":
			if s.details != nil && s.entry == nil {
				return s, s.addToLibrary
			}
		case "r":
			s.loading = true
			return s, s.loadDetails
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "back", Data: nil}
			}
		}

	case detailsLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err != nil {
			break
		}
		s.details = &msg.details
		s.entry = msg.entry
		if s.entry != nil {
			s.episode = s.entry.NextEpisode()
		} else if msg.details.DefaultEpisode > 0 {
			s.episode = msg.details.DefaultEpisode
		}

	case episodeLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.providers = msg.episode.Providers
			if s.entry != nil {
				s.entry.LastEpisode = msg.number
			}
		}

	case addedToLibraryMsg:
		s.err = msg.err
		if msg.err == nil {
			s.entry = msg.entry
		}
	}

	return s, nil
}

// stepEpisode moves the selected episode, staying within the known range.
func (s *DetailsScreen) stepEpisode(delta int) {
	next := s.episode + delta
	if next < 1 {
		return
	}
	if s.details != nil && s.details.EpisodeCount > 0 && next > s.details.EpisodeCount {
		return
	}
	if next != s.episode {
		s.episode = next
		s.providers = nil
	}
}

func (s *DetailsScreen) View() string {
	if s.width == 0 || (s.details == nil && s.err == nil) {
		return "Loading..."
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}
	if s.details == nil {
		return errorMsg + styles.HelpStyle.Render("r: retry • esc: back • q: quit")
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("🎬 %s", s.details.Title))

	help := styles.HelpStyle.Render(
		"←/h →/l: episode • enter: load providers • a: add to library • r: reload • esc: back • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s\n%s",
		header,
		errorMsg,
		s.renderInfo(),
		s.renderEpisode(),
		help,
	)
}

func (s *DetailsScreen) renderInfo() string {
	d := s.details

	genres := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = styles.GenreStyle.Render(g)
	}

	library := styles.MutedStyle.Render("Not in library")
	if s.entry != nil {
		library = styles.StatusCompleted.Render(
			fmt.Sprintf("In library • last watched: %d", s.entry.LastEpisode),
		)
	}

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextStyle.Render(utils.Truncate(d.Summary, 300)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, genres...),
		"",
		fmt.Sprintf("%s %d", styles.LabelStyle.Render("Released:"), d.ReleaseYear),
		fmt.Sprintf("%s %d", styles.LabelStyle.Render("Episodes:"), d.EpisodeCount),
		fmt.Sprintf("%s %s", styles.LabelStyle.Render("Cover:"), styles.LinkStyle.Render(d.CoverImageURL)),
		library,
	)

	return styles.CardStyle.Width(s.width - 4).Render(info)
}

func (s *DetailsScreen) renderEpisode() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Episode %d of %d", s.episode, s.details.EpisodeCount)))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(styles.StatusRefreshing.Render("Loading..."))
	case len(s.providers) == 0:
		b.WriteString(styles.MutedStyle.Render("Press enter to list providers"))
	default:
		for _, p := range s.providers {
			b.WriteString(fmt.Sprintf("%s %s\n",
				styles.LabelStyle.Render(p.ID),
				styles.LinkStyle.Render(p.VideoURL),
			))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Messages
type detailsLoadedMsg struct {
	details data.AnimeDetails
	entry   *data.LibraryEntry
	err     error
}

type episodeLoadedMsg struct {
	number  int
	episode data.Episode
	err     error
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	details, err := s.controller.Details(s.ctx, s.slug)
	if err != nil {
		return detailsLoadedMsg{err: err}
	}

	entry, err := s.controller.LibraryEntry(s.slug)
	var notIn *services.NotInLibraryError
	if errors.As(err, &notIn) {
		return detailsLoadedMsg{details: details}
	}
	return detailsLoadedMsg{details: details, entry: entry, err: err}
}

func (s *DetailsScreen) loadEpisode(number int) tea.Cmd {
	return func() tea.Msg {
		episode, err := s.controller.Episode(s.ctx, s.slug, number)
		return episodeLoadedMsg{number: number, episode: episode, err: err}
	}
}

func (s *DetailsScreen) addToLibrary() tea.Msg {
	entry, err := s.controller.AddToLibrary(s.ctx, s.slug)
	return addedToLibraryMsg{entry: entry, err: err}
}
