// Package highscore keeps the top scores in a small binary file.
package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// MaxNameLen is the longest name stored with a score, in characters.
const MaxNameLen = 15

// Entry is one high score.
type Entry struct {
	Time  time.Time
	Score int
	Name  string
}

// Compare orders entries by score descending, then by time ascending so an
// earlier entry ranks above a later one with the same score.
func Compare(a, b Entry) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	default:
		return a.Time.Compare(b.Time)
	}
}

// TrimName cuts a name to MaxNameLen characters.
func TrimName(name string) string {
	if utf8.RuneCountInString(name) <= MaxNameLen {
		return name
	}
	return string([]rune(name)[:MaxNameLen])
}

// Store is a bounded, sorted list of high scores persisted to a file.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	path    string
	max     int
	entries []Entry
	logger  *log.Logger
}

// Open loads the store at path. A missing file is an empty store; an
// unreadable or corrupt file is logged and the store starts empty.
// An empty path keeps scores in memory only.
func Open(path string, maxScores int, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{path: path, max: max(maxScores, 1), logger: logger}
	if path == "" {
		return s
	}

	entries, err := load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		logger.Warn("resetting high scores", "path", path, "err", err)
	default:
		s.entries = entries
		s.sortLocked()
	}
	return s
}

func load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Max returns the maximum number of entries kept.
func (s *Store) Max() int {
	return s.max
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the entries, best first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// IsHighScore reports whether a score would enter the table: there is a free
// slot, or it beats the lowest stored score.
func (s *Store) IsHighScore(score int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isHighScoreLocked(score)
}

func (s *Store) isHighScoreLocked(score int) bool {
	if len(s.entries) < s.max {
		return true
	}
	lowest := s.entries[0].Score
	for _, e := range s.entries[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// Add inserts an entry if it qualifies and saves the table. It reports
// whether the entry was added. The entry stays in memory even when saving
// fails; the error is returned.
func (s *Store) Add(e Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isHighScoreLocked(e.Score) {
		return false, nil
	}
	e.Name = TrimName(e.Name)
	s.entries = append(s.entries, e)
	s.sortLocked()
	return true, s.saveLocked()
}

// Clear removes all entries and deletes the backing file. Deletion errors
// are ignored.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if s.path != "" {
		_ = os.Remove(s.path)
	}
}

func (s *Store) sortLocked() {
	slices.SortStableFunc(s.entries, Compare)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}
}

// saveLocked rewrites the whole file through a temp file and rename.
func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("highscore: failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, s.entries); err != nil {
		tmp.Close()
		return fmt.Errorf("highscore: failed to write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore: failed to write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("highscore: failed to replace %s: %w", s.path, err)
	}
	s.logger.Debug("saved high scores", "path", s.path, "count", len(s.entries))
	return nil
}
