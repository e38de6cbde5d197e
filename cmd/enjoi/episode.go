package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/utils"
	"github.com/spf13/cobra"
)

var episodeCmd = &cobra.Command{
	Use:   "episode [title] [number]",
	Short: "List the video providers of an episode",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		slug, number, err := parseEpisodeArgs(args)
		cobra.CheckErr(err)

		episode, err := controller.Episode(cmd.Context(), slug, number)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("episode %d of %s: %w", number, slug, err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderProviders(episode))
	},
}

// parseEpisodeArgs reads "<title words...> <number>".
func parseEpisodeArgs(args []string) (string, int, error) {
	last := args[len(args)-1]
	number, err := strconv.Atoi(last)
	if err != nil || number < 1 {
		return "", 0, fmt.Errorf("invalid episode number %q", last)
	}
	slug := utils.Slugify(strings.Join(args[:len(args)-1], " "))
	if slug == "" {
		return "", 0, fmt.Errorf("title %q has no usable characters", strings.Join(args[:len(args)-1], " "))
	}
	return slug, number, nil
}

func renderProviders(episode data.Episode) string {
	if len(episode.Providers) == 0 {
		return "No providers listed."
	}

	t := newTable("Provider", "Video")
	for _, p := range episode.Providers {
		t.Row(p.ID, p.VideoURL)
	}
	return t.String()
}
