package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/internal/store"
	"newsdesk/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse matching articles interactively",
	Long: `Open a two-pane article browser over the store.

The same filter flags as query apply; / starts an additional keyword search
inside the browser.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addFilterFlags(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	st, err := store.Open(storagePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	f := filterFromFlags()

	// Surface filter degradation before the alternate screen takes over.
	_, _, warnings := store.BuildQuery(f)
	for _, w := range warnings {
		printer.Warning("%s", w)
	}

	return tui.Run(st, f)
}
