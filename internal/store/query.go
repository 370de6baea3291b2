package store

import (
	"fmt"
	"strings"
	"time"

	"newsdesk/internal/article"
)

// BuildQuery translates a filter into a parameterized SELECT over the
// articles table. Filter parts are independent and combine with AND; with no
// parts set the query matches every record. It never fails: a date that does
// not parse as a real calendar date is dropped from the predicate and
// reported as a warning instead.
func BuildQuery(f article.Filter) (string, []any, []string) {
	var (
		where    []string
		args     []any
		warnings []string
	)

	if f.Source != "" {
		where = append(where, `LOWER(source) LIKE ? ESCAPE '\'`)
		args = append(args, pattern(f.Source))
	}

	if f.Keyword != "" {
		where = append(where, `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(COALESCE(summary, '')) LIKE ? ESCAPE '\')`)
		term := pattern(f.Keyword)
		args = append(args, term, term)
	}

	if f.Date != "" {
		if _, err := time.Parse(article.DateLayout, f.Date); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring invalid date %q (want YYYY-MM-DD)", f.Date))
		} else {
			where = append(where, "published_date = ?")
			args = append(args, f.Date)
		}
	}

	query := "SELECT id, title, summary, link, source, published_date FROM articles"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	// Dates are stored as ISO text, so lexicographic order is chronological.
	// rowid breaks same-day ties by insertion order.
	query += " ORDER BY published_date DESC, rowid ASC"

	return query, args, warnings
}

// pattern lowercases a substring filter and escapes LIKE metacharacters so
// user input always matches literally.
func pattern(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + s + "%"
}
