package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/internal/export"
	"newsdesk/internal/store"
)

var flagExportFormat string

var exportCmd = &cobra.Command{
	Use:   "export OUTFILE",
	Short: "Export matching articles to a file",
	Long: `Search the store and write the matches to OUTFILE.

Formats: csv, excel, json. The format is validated before anything is
written, and an empty result set leaves the filesystem untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "output format: csv, excel or json (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	outfile := args[0]

	format := flagExportFormat
	if format == "" {
		format = cfg.Format()
	}
	if err := export.ValidateFormat(format); err != nil {
		return err
	}

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
		printer.Print("Nothing to export.")
		return nil
	}

	if err := export.WriteFile(articles, outfile, format); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	printer.Success("Saved %d article(s) to %s.", len(articles), outfile)
	return nil
}
