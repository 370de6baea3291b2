package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newsdesk/internal/store"
)

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old articles from the store",
	Long: `Delete articles published before the cutoff and reclaim disk space.

The cutoff is given with --older-than (e.g. 90d, 720h).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, err := parseDuration(flagPruneOlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}

		st, err := store.Open(storagePath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		deleted, err := st.Prune(olderThan)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			printer.Print("Nothing to prune.")
			return nil
		}
		printer.Success("Pruned %d article(s) older than %s.", deleted, formatDuration(olderThan))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := storagePath()
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		count, size, err := st.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		printer.Print("Store: %s", dbPath)
		printer.Print("Articles: %d", count)
		printer.Print("Size: %s", formatBytes(size))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)

	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "90d", "age cutoff (e.g., 30d, 720h)")
}

// parseDuration extends time.ParseDuration with a day suffix, since
// retention is usually thought of in days.
func parseDuration(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
