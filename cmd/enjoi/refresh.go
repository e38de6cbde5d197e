package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/kerbaras/enjoi/pkg/services"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Update every library entry from the site",
	Long:  "Re-fetch the details of every anime in your library, three at a time",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		done := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			printProgress(out, controller.RefreshProgress(), done)
		}()

		err := controller.RefreshLibrary(cmd.Context())
		close(done)
		wg.Wait()

		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("Some entries could not be refreshed:"))
			cobra.CheckErr(err)
		}
		fmt.Fprintln(out, "✅ Library is up to date")
	},
}

// printProgress prints updates until done is closed, then flushes what is
// still buffered.
func printProgress(out io.Writer, progress <-chan services.RefreshProgress, done <-chan struct{}) {
	for {
		select {
		case p, ok := <-progress:
			if !ok {
				return
			}
			printOne(out, p)
		case <-done:
			for {
				select {
				case p, ok := <-progress:
					if !ok {
						return
					}
					printOne(out, p)
				default:
					return
				}
			}
		}
	}
}

func printOne(out io.Writer, p services.RefreshProgress) {
	switch p.Status {
	case services.StatusUpdated:
		fmt.Fprintf(out, "  %s: updated, %d episodes\n", p.Slug, p.EpisodeCount)
	case services.StatusUnchanged:
		fmt.Fprintf(out, "  %s: unchanged\n", p.Slug)
	case services.StatusError:
		fmt.Fprintf(out, "  %s: %s\n", p.Slug, errorStyle.Render(p.Err.Error()))
	}
}
