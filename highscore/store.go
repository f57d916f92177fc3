// Package highscore persists ranked player scores as name<TAB>score lines
package highscore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultPath is the score file used when -scores is not given
const DefaultPath = "highscores.txt"

const separator = "\t"

var (
	ErrBlankName = errors.New("'Player Name' field cannot be blank")
	ErrMalformed = errors.New("malformed high score line")
)

// Entry is one ranked score
type Entry struct {
	Name  string
	Score int
}

// Store reads and rewrites the score file; safe for concurrent use
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by path; the file is created on first submit
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// List returns all entries in file order, best first; empty when no file exists
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Submit ranks a new score and rewrites the file
// Returns the 1-based rank of the new entry
func (s *Store) Submit(name string, score int) (int, error) {
	name = sanitizeName(name)
	if name == "" {
		return 0, ErrBlankName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		return 0, err
	}

	entries, idx := Insert(entries, Entry{Name: name, Score: score})
	if err := s.writeLocked(entries); err != nil {
		return 0, err
	}
	return idx + 1, nil
}

// Insert places e before the first entry with a strictly lower score, else at the end
// Equal scores keep submission order
func Insert(entries []Entry, e Entry) ([]Entry, int) {
	idx := len(entries)
	for i, cur := range entries {
		if e.Score > cur.Score {
			idx = i
			break
		}
	}

	entries = append(entries, Entry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = e
	return entries, idx
}

func (s *Store) readLocked() ([]Entry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("highscore open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads name<TAB>score lines, skipping blank lines
// The score is taken after the last tab so names may not break parsing
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		cut := strings.LastIndex(text, separator)
		if cut < 0 {
			return nil, fmt.Errorf("%w: line %d: missing separator", ErrMalformed, line)
		}
		score, err := strconv.Atoi(strings.TrimSpace(text[cut+1:]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
		entries = append(entries, Entry{Name: text[:cut], Score: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("highscore read: %w", err)
	}
	return entries, nil
}

// writeLocked replaces the file through a temp file in the same directory
func (s *Store) writeLocked(entries []Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("highscore dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".highscores-*")
	if err != nil {
		return fmt.Errorf("highscore temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		fmt.Fprintf(w, "%s%s%d\n", e.Name, separator, e.Score)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("highscore write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("highscore replace: %w", err)
	}
	return nil
}

func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}

// Format renders a ranked listing, one "rank. name  score" line per entry
func Format(entries []Entry) string {
	if len(entries) == 0 {
		return "No high scores yet\n"
	}

	width := 0
	for _, e := range entries {
		if n := len([]rune(e.Name)); n > width {
			width = n
		}
	}

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%3d. %-*s  %d\n", i+1, width, e.Name, e.Score)
	}
	return b.String()
}
