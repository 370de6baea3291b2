package store

import (
	"strings"
	"testing"

	"newsdesk/internal/article"
)

func TestBuildQueryNoFilters(t *testing.T) {
	query, args, warnings := BuildQuery(article.Filter{})

	if strings.Contains(query, "WHERE") {
		t.Errorf("expected no WHERE clause, got %q", query)
	}
	if !strings.HasSuffix(query, "ORDER BY published_date DESC, rowid ASC") {
		t.Errorf("expected descending date order, got %q", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestBuildQuerySource(t *testing.T) {
	query, args, _ := BuildQuery(article.Filter{Source: "Herald"})

	if !strings.Contains(query, "LOWER(source) LIKE ?") {
		t.Errorf("expected source clause, got %q", query)
	}
	if len(args) != 1 || args[0] != "%herald%" {
		t.Errorf("expected lowercased wrapped pattern, got %v", args)
	}
}

func TestBuildQueryKeyword(t *testing.T) {
	query, args, _ := BuildQuery(article.Filter{Keyword: "Transit"})

	if !strings.Contains(query, "LOWER(title) LIKE ?") || !strings.Contains(query, "LOWER(COALESCE(summary, '')) LIKE ?") {
		t.Errorf("expected keyword clause over title and summary, got %q", query)
	}
	if len(args) != 2 || args[0] != "%transit%" || args[1] != "%transit%" {
		t.Errorf("expected pattern bound twice, got %v", args)
	}
}

func TestBuildQueryValidDate(t *testing.T) {
	query, args, warnings := BuildQuery(article.Filter{Date: "2025-06-02"})

	if !strings.Contains(query, "published_date = ?") {
		t.Errorf("expected exact date clause, got %q", query)
	}
	if len(args) != 1 || args[0] != "2025-06-02" {
		t.Errorf("expected date arg, got %v", args)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestBuildQueryInvalidDate(t *testing.T) {
	query, args, warnings := BuildQuery(article.Filter{Date: "2024-13-40"})

	if strings.Contains(query, "published_date") && strings.Contains(query, "WHERE") {
		t.Errorf("expected date constraint dropped, got %q", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "2024-13-40") {
		t.Errorf("expected warning naming the bad date, got %v", warnings)
	}
}

func TestBuildQueryRejectsImpossibleCalendarDates(t *testing.T) {
	// Right shape, impossible day
	_, _, warnings := BuildQuery(article.Filter{Date: "2025-02-30"})
	if len(warnings) != 1 {
		t.Errorf("expected warning for Feb 30, got %v", warnings)
	}

	// Unpadded forms are not the required layout
	_, _, warnings = BuildQuery(article.Filter{Date: "2025-6-2"})
	if len(warnings) != 1 {
		t.Errorf("expected warning for unpadded date, got %v", warnings)
	}
}

func TestBuildQueryCombinesWithAND(t *testing.T) {
	query, args, _ := BuildQuery(article.Filter{Source: "wire", Keyword: "harbor", Date: "2025-06-02"})

	if strings.Count(query, " AND ") != 2 {
		t.Errorf("expected three ANDed clauses, got %q", query)
	}
	// source pattern, keyword twice, then date
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
	if args[0] != "%wire%" || args[1] != "%harbor%" || args[2] != "%harbor%" || args[3] != "2025-06-02" {
		t.Errorf("unexpected arg order: %v", args)
	}
}

func TestBuildQueryInvalidDateKeepsOtherFilters(t *testing.T) {
	query, args, warnings := BuildQuery(article.Filter{Source: "wire", Date: "not-a-date"})

	if !strings.Contains(query, "LOWER(source) LIKE ?") {
		t.Errorf("expected source clause to survive, got %q", query)
	}
	if len(args) != 1 {
		t.Errorf("expected only the source arg, got %v", args)
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", warnings)
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Tech", "%tech%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		got := pattern(tt.input)
		if got != tt.want {
			t.Errorf("pattern(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
