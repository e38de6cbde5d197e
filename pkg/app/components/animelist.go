package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/enjoi/pkg/app/styles"
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/utils"
)

type AnimeListItem struct {
	Entry *data.LibraryEntry
}

type AnimeList struct {
	Items         []AnimeListItem
	SelectedIndex int
	Width         int
	Height        int
}

func NewAnimeList() *AnimeList {
	return &AnimeList{
		Items:         []AnimeListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *AnimeList) SetItems(items []AnimeListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *AnimeList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *AnimeList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *AnimeList) Selected() *AnimeListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

func (m *AnimeList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No anime in library")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder

	for i, item := range m.Items {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		details := item.Entry.Details
		title := styles.TitleStyle.Render(details.Title)
		summary := styles.TextStyle.Render(utils.Truncate(details.Summary, 80))

		progress := styles.MutedStyle.Render(
			fmt.Sprintf("Episodes: %d / %d watched", item.Entry.LastEpisode, details.EpisodeCount),
		)

		meta := styles.MutedStyle.Render(fmt.Sprintf("Released: %d • Genres: %s",
			details.ReleaseYear, strings.Join(details.Genres, ", ")))

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			summary,
			"",
			progress,
			meta,
		)

		card := cardStyle.Width(m.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}
