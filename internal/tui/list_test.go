package tui

import (
	"strings"
	"testing"
	"time"

	"newsdesk/internal/article"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateStrUTF8(t *testing.T) {
	got := truncateStr("日本語テスト", 5)
	want := "日本..."
	if got != want {
		t.Errorf("truncateStr(Japanese, 5) = %q, want %q", got, want)
	}
}

func TestRenderListEmpty(t *testing.T) {
	got := renderList(nil, 0, 10, 40)
	if !strings.Contains(got, "No articles found") {
		t.Errorf("expected empty-state message, got %q", got)
	}
}

func TestRenderListShowsDate(t *testing.T) {
	articles := []article.Article{
		{Title: "Council Approves Transit Levy", Source: "Morning Herald", Published: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
	}
	got := renderList(articles, 0, 10, 60)
	if !strings.Contains(got, "2025-06-03") {
		t.Errorf("expected calendar date in list item, got %q", got)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("", 10); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}
