package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/utils"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for anime",
	Long:  "Search GogoAnime and display the results in a table",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		results, err := controller.Search(cmd.Context(), query)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("search failed: %w", err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderSearchResults(results))
	},
}

func renderSearchResults(results []data.SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	t := newTable("#", "Title", "Slug")
	for i, r := range results {
		t.Row(fmt.Sprintf("%d", i+1), utils.Truncate(r.Title, 58), r.Slug)
	}
	return t.String()
}
