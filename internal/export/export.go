package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"newsdesk/internal/article"
)

// ErrUnsupportedFormat is returned for format names outside csv, excel and
// json. It fires before any file is created.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatJSON  = "json"
)

// header lists the visible columns, in order. The store's id is an
// implementation detail and never appears in any output.
var header = []string{"title", "summary", "link", "source", "published_date"}

func row(a article.Article) []string {
	return []string{a.Title, a.Summary, a.Link, a.Source, a.DateString()}
}

// ValidateFormat returns ErrUnsupportedFormat unless format names a known
// file encoding.
func ValidateFormat(format string) error {
	switch format {
	case FormatCSV, FormatExcel, FormatJSON:
		return nil
	}
	return fmt.Errorf("%w: %q (supported: csv, excel, json)", ErrUnsupportedFormat, format)
}

// Supported reports whether format names a known file encoding.
func Supported(format string) bool {
	return ValidateFormat(format) == nil
}

// WriteFile serializes records to path in the given format. The format is
// checked first, so an unsupported name leaves the filesystem untouched.
func WriteFile(records []article.Article, path, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = writeCSV(f, records)
	case FormatExcel:
		err = writeExcel(f, records)
	case FormatJSON:
		err = writeJSON(f, records)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, records []article.Article) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range records {
		if err := cw.Write(row(a)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, records []article.Article) error {
	type record struct {
		Title         string `json:"title"`
		Summary       string `json:"summary"`
		Link          string `json:"link"`
		Source        string `json:"source"`
		PublishedDate string `json:"published_date"`
	}

	out := make([]record, len(records))
	for i, a := range records {
		out[i] = record{
			Title:         a.Title,
			Summary:       a.Summary,
			Link:          a.Link,
			Source:        a.Source,
			PublishedDate: a.DateString(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeExcel(w io.Writer, records []article.Article) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Articles"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, col := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", end, bold); err != nil {
		return err
	}

	for r, a := range records {
		for c, val := range row(a) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
