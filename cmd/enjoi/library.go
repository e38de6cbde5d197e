package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/utils"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"list"},
	Short:   "List all anime in your library",
	Long:    "Display all anime in your library in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := controller.Library()
		if err != nil {
			cobra.CheckErr(err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "📺 No anime in library. Use 'enjoi search' to find anime to add.")
			return
		}

		fmt.Fprintf(out, "\n📺 Library (%d anime)\n\n", len(entries))
		fmt.Fprintln(out, renderLibrary(entries))
	},
}

func renderLibrary(entries []*data.LibraryEntry) string {
	columns := []table.Column{
		{Title: "Title", Width: 40},
		{Title: "Slug", Width: 30},
		{Title: "Year", Width: 6},
		{Title: "Episodes", Width: 10},
		{Title: "Next", Width: 6},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			utils.Truncate(e.Details.Title, 38),
			utils.Truncate(e.Slug, 28),
			fmt.Sprintf("%d", e.Details.ReleaseYear),
			fmt.Sprintf("%d", e.Details.EpisodeCount),
			fmt.Sprintf("%d", e.NextEpisode()),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t.View()
}
