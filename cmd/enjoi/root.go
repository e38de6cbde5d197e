package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/kerbaras/enjoi/pkg/app"
	"github.com/kerbaras/enjoi/pkg/config"
	"github.com/kerbaras/enjoi/pkg/logger"
	"github.com/kerbaras/enjoi/pkg/services"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg        config.Config
	controller *services.AnimeController
	closeLog   = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:           "enjoi",
	Short:         "Browse GogoAnime from your terminal",
	Long:          "Search the GogoAnime catalog, read anime details, list episode providers and keep a local library",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer closeLog()
		if controller == nil {
			return nil
		}
		return controller.Close()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		a := app.NewApp(controller)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		// bubbletea owns the terminal when no subcommand runs
		tui := cmd == rootCmd
		var out io.Writer
		out, closeLog = logOutput(tui, config.Dir())
		logger.InitTo(out, cfg.Log.Level, cfg.Log.IsPretty() && !tui)

		controller, err = services.NewAnimeController(cfg)
		return err
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(episodeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(refreshCmd)
}

// logOutput picks where log lines go. The TUI logs to enjoi.log in dir, or
// nowhere when that file cannot be opened.
func logOutput(tui bool, dir string) (io.Writer, func() error) {
	noop := func() error { return nil }
	if !tui {
		return os.Stderr, noop
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, noop
	}
	f, err := os.OpenFile(filepath.Join(dir, "enjoi.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, noop
	}
	return f, f.Close
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
