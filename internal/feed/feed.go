package feed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdesk/internal/article"
)

// Provider produces a batch of candidate articles for ingestion. Providers
// are offline; none of them touches the network.
type Provider interface {
	Fetch(ctx context.Context) ([]article.Candidate, error)
	Name() string
}

// Static serves the built-in sample dataset. It stands in for a wire fetcher
// and deliberately carries a pair of candidates sharing a link, so ingestion
// always has something to deduplicate.
type Static struct {
	// Source narrows the dataset to a single source by exact name,
	// case-insensitive. Empty means every source.
	Source string
}

func (s Static) Name() string { return "builtin" }

func (s Static) Fetch(ctx context.Context) ([]article.Candidate, error) {
	all := sampleBatch()
	if s.Source == "" {
		return all, nil
	}
	var out []article.Candidate
	for _, c := range all {
		if strings.EqualFold(c.Source, s.Source) {
			out = append(out, c)
		}
	}
	return out, nil
}

func sampleBatch() []article.Candidate {
	today := day(0)
	yesterday := day(-1)
	return []article.Candidate{
		{
			Title:     "City Council Approves Riverside Park Expansion",
			Summary:   "The council voted 7-2 to extend the riverside greenway by two miles.",
			Link:      "https://herald.example/riverside-park",
			Source:    "Morning Herald",
			Published: today,
		},
		{
			Title:     "Local Startup Raises Series A for Grid Batteries",
			Summary:   "The round values the five-year-old company at eighty million dollars.",
			Link:      "https://wiredaily.example/grid-batteries",
			Source:    "Wire Daily",
			Published: today,
		},
		{
			Title:     "Transit Authority Delays Fare Changes to Spring",
			Summary:   "",
			Link:      "https://herald.example/fare-changes",
			Source:    "Morning Herald",
			Published: yesterday,
		},
		{
			// Same story as the first entry, syndicated under the same link
			Title:     "Riverside Park Expansion Clears Final Vote",
			Summary:   "Construction on the greenway extension is expected to start in June.",
			Link:      "https://herald.example/riverside-park",
			Source:    "Wire Daily",
			Published: today,
		},
		{
			Title:     "Museum Night Market Returns This Weekend",
			Summary:   "Forty vendors and three stages are planned for the courtyard.",
			Link:      "https://wiredaily.example/night-market",
			Source:    "Wire Daily",
			Published: yesterday,
		},
	}
}

func day(offset int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()+offset, 0, 0, 0, 0, time.UTC)
}

// FeedFile parses a local RSS or Atom document from disk and maps its items
// to candidates.
type FeedFile struct {
	Path string
	// SourceName overrides the feed's own title when set.
	SourceName string
}

func (f FeedFile) Name() string { return f.Path }

func (f FeedFile) Fetch(ctx context.Context) ([]article.Candidate, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening feed file: %w", err)
	}
	defer file.Close()

	parsed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.Path, err)
	}

	source := f.SourceName
	if source == "" {
		source = parsed.Title
	}

	var skipped int
	candidates := make([]article.Candidate, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			skipped++
			continue
		}

		pub := time.Now()
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		candidates = append(candidates, article.Candidate{
			Title:     item.Title,
			Summary:   truncate(stripHTML(summary), 300),
			Link:      item.Link,
			Source:    source,
			Published: pub,
		})
	}
	if skipped > 0 {
		slog.Debug("skipped feed items without links", "feed", f.Path, "count", skipped)
	}
	return candidates, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
