package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/enjoi/pkg/utils"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an anime to your library",
	Long:  "Fetch the details of an anime and store them in your local library",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug := utils.Slugify(strings.Join(args, " "))
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "🔍 Fetching '%s'...\n", slug)

		entry, err := controller.AddToLibrary(cmd.Context(), slug)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to add %s: %w", slug, err))
		}

		fmt.Fprintf(out, "✅ Added '%s' to library with %d episodes\n", entry.Details.Title, entry.Details.EpisodeCount)
		fmt.Fprintf(out, "💡 To list providers, use: enjoi episode %s %d\n", slug, entry.NextEpisode())
	},
}
