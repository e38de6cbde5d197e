package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/utils"
	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details [title]",
	Short: "Show details of an anime",
	Long:  "Show details of an anime. The title is turned into a slug, e.g. \"Cowboy Bebop\" becomes cowboy-bebop",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug := utils.Slugify(strings.Join(args, " "))

		details, err := controller.Details(cmd.Context(), slug)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("details of %s: %w", slug, err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderDetails(details))
	},
}

func renderDetails(d data.AnimeDetails) string {
	rows := []struct {
		label string
		value string
	}{
		{"Id", fmt.Sprintf("%d", d.ID)},
		{"Title", d.Title},
		{"Cover Image", linkStyle.Render(d.CoverImageURL)},
		{"Released in", fmt.Sprintf("%d", d.ReleaseYear)},
		{"Episodes", fmt.Sprintf("%d", d.EpisodeCount)},
		{"Genres", strings.Join(d.Genres, ", ")},
		{"Summary", d.Summary},
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s: %s\n", labelStyle.Render(r.label), r.value)
	}
	return strings.TrimRight(b.String(), "\n")
}
