package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"newsdesk/internal/article"
)

// ErrDuplicateLink is returned by Insert when the article's link is already
// present in the store. Callers must not treat it as fatal.
var ErrDuplicateLink = errors.New("duplicate link")

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			summary        TEXT,
			link           TEXT UNIQUE NOT NULL,
			source         TEXT NOT NULL,
			published_date TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_published_date ON articles(published_date DESC);
		CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Insert persists a single article. The link column carries a UNIQUE
// constraint; a violation maps to ErrDuplicateLink.
func (s *Store) Insert(a article.Article) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO articles (id, title, summary, link, source, published_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, a.Title, nullIfEmpty(a.Summary), a.Link, a.Source, a.Published.Format(article.DateLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateLink, a.Link)
		}
		return fmt.Errorf("inserting article: %w", err)
	}
	return nil
}

// Search runs the filter against the store. Records come back in descending
// published_date order with insertion order breaking ties. Warnings report
// filter parts that were ignored (an invalid date) rather than applied.
func (s *Store) Search(f article.Filter) ([]article.Article, []string, error) {
	query, args, warnings := BuildQuery(f)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, warnings, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []article.Article
	for rows.Next() {
		var (
			a       article.Article
			summary sql.NullString
			date    string
		)
		if err := rows.Scan(&a.ID, &a.Title, &summary, &a.Link, &a.Source, &date); err != nil {
			return nil, warnings, fmt.Errorf("scanning article: %w", err)
		}
		a.Summary = summary.String
		a.Published, _ = time.Parse(article.DateLayout, date)
		articles = append(articles, a)
	}
	return articles, warnings, rows.Err()
}

func (s *Store) Count() (int, error) {
	var n int
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Format(article.DateLayout)
	res, err := s.writeDB.Exec("DELETE FROM articles WHERE published_date < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning articles: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) Stats(dbPath string) (int, int64, error) {
	count, err := s.Count()
	if err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("reading db file: %w", err)
	}
	return count, info.Size(), nil
}

// Link uniqueness violations carry SQLITE_CONSTRAINT_UNIQUE; id collisions
// report SQLITE_CONSTRAINT_PRIMARYKEY and stay plain store errors.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
