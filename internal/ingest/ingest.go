package ingest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"newsdesk/internal/article"
	"newsdesk/internal/store"
)

// Inserter is the slice of the store that ingestion writes through.
type Inserter interface {
	Insert(a article.Article) error
}

// Dedupe removes in-batch duplicates by link, keeping the first occurrence
// and preserving order. Later candidates sharing a link are dropped even when
// their content differs; the drop is logged so the collision stays visible.
func Dedupe(batch []article.Candidate) []article.Candidate {
	seen := make(map[string]bool, len(batch))
	var out []article.Candidate
	for _, c := range batch {
		if seen[c.Link] {
			slog.Debug("dropping in-batch duplicate", "link", c.Link, "title", c.Title)
			continue
		}
		seen[c.Link] = true
		out = append(out, c)
	}
	return out
}

// Run deduplicates the batch, assigns each survivor a fresh ID, and inserts
// them one by one. A link already present in the store counts as a duplicate
// and the batch continues; any other insert failure aborts. An empty batch
// returns a zero report without touching the store.
func Run(st Inserter, batch []article.Candidate) (article.IngestReport, error) {
	report := article.IngestReport{Attempted: len(batch)}
	if len(batch) == 0 {
		return report, nil
	}

	accepted := Dedupe(batch)
	report.Duplicates = len(batch) - len(accepted)

	for _, c := range accepted {
		a := article.Article{
			ID:        uuid.NewString(),
			Title:     c.Title,
			Summary:   c.Summary,
			Link:      c.Link,
			Source:    c.Source,
			Published: c.Published,
		}
		err := st.Insert(a)
		switch {
		case errors.Is(err, store.ErrDuplicateLink):
			report.Duplicates++
		case err != nil:
			return report, fmt.Errorf("inserting %q: %w", c.Link, err)
		default:
			report.Inserted++
		}
	}
	return report, nil
}
