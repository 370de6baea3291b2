package article

import "time"

// DateLayout is the calendar-date form used wherever an article date crosses
// a boundary: the published_date column, the --date flag, and all rendered
// output.
const DateLayout = "2006-01-02"

type Article struct {
	ID        string
	Title     string
	Summary   string
	Link      string
	Source    string
	Published time.Time
}

// DateString returns the published date in the canonical calendar form.
func (a Article) DateString() string {
	return a.Published.Format(DateLayout)
}

// Candidate is an article as produced by a provider, before ingestion has
// assigned it an ID.
type Candidate struct {
	Title     string
	Summary   string
	Link      string
	Source    string
	Published time.Time
}

type Filter struct {
	Source  string
	Keyword string
	Date    string
}

type IngestReport struct {
	Attempted  int
	Inserted   int
	Duplicates int
}
