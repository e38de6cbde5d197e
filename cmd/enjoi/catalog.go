package cmd

import (
	"fmt"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/utils"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the anime list",
	Long:  "Show one page of the alphabetical GogoAnime catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")

		animes, err := controller.Catalog(cmd.Context(), page)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("catalog page %d: %w", page, err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(animes))
	},
}

func renderCatalog(animes []data.Anime) string {
	if len(animes) == 0 {
		return "Nothing on this page."
	}

	t := newTable("Title", "Slug")
	for _, a := range animes {
		t.Row(utils.Truncate(a.Title, 58), a.Slug)
	}
	return t.String()
}

func init() {
	catalogCmd.Flags().IntP("page", "p", 1, "Catalog page number")
}
