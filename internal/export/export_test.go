package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"newsdesk/internal/article"
)

func exportArticles() []article.Article {
	return []article.Article{
		{
			ID:        "secret-id-1",
			Title:     "Council Approves Transit Levy",
			Summary:   "Voters will see the measure on the fall ballot.",
			Link:      "https://herald.example/transit-levy",
			Source:    "Morning Herald",
			Published: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "secret-id-2",
			Title:     "Harbor Cleanup Enters Second Phase",
			Summary:   "",
			Link:      "https://coastal.example/harbor-cleanup",
			Source:    "Coastal Wire",
			Published: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestSupported(t *testing.T) {
	for _, format := range []string{"csv", "excel", "json"} {
		if !Supported(format) {
			t.Errorf("expected %q to be supported", format)
		}
	}
	for _, format := range []string{"xml", "yaml", "CSV", ""} {
		if Supported(format) {
			t.Errorf("expected %q to be unsupported", format)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	records := exportArticles()

	if err := WriteFile(records, path, FormatCSV); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"title", "summary", "link", "source", "published_date"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	// Same visible values, same order
	if rows[1][0] != "Council Approves Transit Levy" || rows[1][4] != "2025-06-03" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "Harbor Cleanup Enters Second Phase" || rows[2][1] != "" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := WriteFile(exportArticles(), path, FormatJSON); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var out []map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0]["title"] != "Council Approves Transit Levy" {
		t.Errorf("unexpected first record: %v", out[0])
	}
	if out[0]["published_date"] != "2025-06-03" {
		t.Errorf("expected calendar date, got %q", out[0]["published_date"])
	}
	if _, ok := out[0]["id"]; ok {
		t.Error("id must not be exported")
	}
}

func TestWriteExcel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	if err := WriteFile(exportArticles(), path, FormatExcel); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Articles")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "title" {
		t.Errorf("expected title header, got %q", rows[0][0])
	}
	if rows[1][0] != "Council Approves Transit Levy" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
}

func TestIDNeverExported(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{FormatCSV, FormatJSON} {
		path := filepath.Join(dir, "out."+format)
		if err := WriteFile(exportArticles(), path, format); err != nil {
			t.Fatalf("write %s: %v", format, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", format, err)
		}
		if strings.Contains(string(data), "secret-id") {
			t.Errorf("%s output leaks the internal id", format)
		}
	}
}

func TestUnsupportedFormatCreatesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")

	err := WriteFile(exportArticles(), path, "xml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected no file to be created for an unsupported format")
	}
}

func TestUnsupportedFormatLeavesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.dat")
	if err := os.WriteFile(path, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	err := WriteFile(exportArticles(), path, "xml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "keep me" {
		t.Error("expected existing file left untouched")
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, exportArticles()); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Council Approves Transit Levy") {
		t.Error("expected first title in table output")
	}
	if !strings.Contains(out, "https://coastal.example/harbor-cleanup") {
		t.Error("expected link column in table output")
	}
	if strings.Contains(out, "secret-id") {
		t.Error("table output leaks the internal id")
	}
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
}
