package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [slug]",
	Short: "Remove an anime from your library",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(controller.RemoveFromLibrary(args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "🗑  Removed '%s'\n", args[0])
	},
}
