package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"newsdesk/internal/config"
	"newsdesk/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagDB      string
	flagColor   string
	flagVerbose bool

	cfg     *config.Config
	printer *output.Printer
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Local news article aggregator",
	Long: `newsdesk keeps a local store of news articles: ingest batches with
per-link deduplication, search them by source, keyword and date, and export
the results to CSV, Excel or JSON.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the article database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
}

// initRoot wires logging, colors and config before any subcommand runs.
func initRoot(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, err := output.ParseColorMode(flagColor)
	if err != nil {
		return err
	}
	printer = output.NewPrinter(output.ResolveColors(mode))

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

// storagePath resolves the database location: --db wins over config, which
// falls back to the XDG data directory.
func storagePath() string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.StoragePath()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsdesk %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
