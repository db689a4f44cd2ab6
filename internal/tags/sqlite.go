package tags

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/atomicstack/pkgsorter/internal/logging/events"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS package_tags (
	package TEXT NOT NULL,
	tag     TEXT NOT NULL,
	PRIMARY KEY (package, tag)
);
CREATE INDEX IF NOT EXISTS idx_package_tags_tag ON package_tags(tag);
`

// SQLStore keeps tags in a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (or creates) the database at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	if path != ":memory:" {
		if err := ensureDir(path); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open tag db: %w", err)
	}
	// one connection keeps :memory: databases shared and serialises writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tag schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Load() (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT package, tag FROM package_tags ORDER BY package, tag`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()
	out := map[string][]string{}
	for rows.Next() {
		var pkg, tag string
		if err := rows.Scan(&pkg, &tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out[pkg] = append(out[pkg], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return out, nil
}

func (s *SQLStore) All() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT tag FROM package_tags ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return out, nil
}

func (s *SQLStore) Add(pkg, tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", ErrEmptyTag
	}
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO package_tags (package, tag) VALUES (?, ?)`, pkg, tag); err != nil {
		return "", fmt.Errorf("add tag: %w", err)
	}
	events.Tags.Added(pkg, tag)
	return addedMessage(pkg, tag), nil
}

func (s *SQLStore) Remove(pkg, tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", ErrEmptyTag
	}
	res, err := s.db.Exec(`DELETE FROM package_tags WHERE package = ? AND tag = ?`, pkg, tag)
	if err != nil {
		return "", fmt.Errorf("remove tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("remove tag: %w", err)
	}
	if n == 0 {
		return "", notTagged(pkg, tag)
	}
	events.Tags.Removed(pkg, tag)
	return removedMessage(pkg, tag), nil
}
