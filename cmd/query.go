package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsdesk/internal/article"
	"newsdesk/internal/export"
	"newsdesk/internal/store"
)

var (
	flagFilterSource  string
	flagFilterKeyword string
	flagFilterDate    string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search stored articles",
	Long: `Search the store and print the matches as a table.

Filters combine with AND: --source and --keyword match case-insensitive
substrings (keyword looks at title and summary), --date matches a single
calendar day exactly. Results come back newest first.`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	addFilterFlags(queryCmd)
}

// addFilterFlags registers the search filters shared by query, export and
// browse. Only one subcommand runs per invocation, so the flag variables can
// be shared too.
func addFilterFlags(c *cobra.Command) {
	c.Flags().StringVarP(&flagFilterSource, "source", "s", "", "filter by source substring (case-insensitive)")
	c.Flags().StringVarP(&flagFilterKeyword, "keyword", "k", "", "filter by keyword in title or summary")
	c.Flags().StringVarP(&flagFilterDate, "date", "d", "", "filter by exact publication date (YYYY-MM-DD)")
}

func filterFromFlags() article.Filter {
	return article.Filter{
		Source:  flagFilterSource,
		Keyword: flagFilterKeyword,
		Date:    flagFilterDate,
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	st, err := store.Open(storagePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	articles, warnings, err := st.Search(filterFromFlags())
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	for _, w := range warnings {
		printer.Warning("%s", w)
	}

	if len(articles) == 0 {
		printer.Print("No articles match.")
		return nil
	}

	if err := export.RenderTable(os.Stdout, articles); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	printer.Print("\n%d article(s).", len(articles))
	return nil
}
