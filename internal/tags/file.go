package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	json "github.com/goccy/go-json"
)

// FileStore keeps tags in a single JSON object of package → tags. Every
// mutation rewrites the file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path reports the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) All() ([]string, error) {
	s.mu.Lock()
	db, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var all []string
	for _, tags := range db {
		all = append(all, tags...)
	}
	return catalog.NormalizeTags(all), nil
}

func (s *FileStore) Add(pkg, tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", ErrEmptyTag
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.read()
	if err != nil {
		return "", err
	}
	db[pkg] = catalog.NormalizeTags(append(db[pkg], tag))
	if err := s.write(db); err != nil {
		return "", err
	}
	events.Tags.Added(pkg, tag)
	return addedMessage(pkg, tag), nil
}

func (s *FileStore) Remove(pkg, tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", ErrEmptyTag
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.read()
	if err != nil {
		return "", err
	}
	current := db[pkg]
	kept := make([]string, 0, len(current))
	for _, t := range current {
		if t != tag {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(current) {
		return "", notTagged(pkg, tag)
	}
	if len(kept) == 0 {
		delete(db, pkg)
	} else {
		db[pkg] = kept
	}
	if err := s.write(db); err != nil {
		return "", err
	}
	events.Tags.Removed(pkg, tag)
	return removedMessage(pkg, tag), nil
}

func (s *FileStore) read() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	db := map[string][]string{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return db, nil
	}
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return db, nil
}

func (s *FileStore) write(db map[string][]string) error {
	for pkg, tags := range db {
		if len(tags) == 0 {
			delete(db, pkg)
		}
	}
	if err := ensureDir(s.path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	return nil
}
