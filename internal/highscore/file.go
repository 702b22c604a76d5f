// Package highscore persists the best score as a single decimal number in a
// plain text file.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// DefaultPath is where the high score lives unless configured otherwise.
const DefaultPath = "~/.t2048/highscore.txt"

// File stores the high score in a text file. It is safe for concurrent use.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a store backed by the file at path. A leading ~ is expanded
// to the user's home directory. The file itself is not touched until the
// first Load or Save.
func Open(path string) (*File, error) {
	if path == "" {
		path = DefaultPath
	}
	expanded, err := core.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("highscore: %w", err)
	}
	return &File{path: expanded}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the stored high score. A missing file is not an error and
// yields 0. Unreadable or malformed content yields 0 and an error.
func (f *File) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Save writes value as decimal text. The write goes through a temporary
// file in the same directory and is renamed into place.
func (f *File) Save(value int) error {
	if value < 0 {
		return fmt.Errorf("highscore: refusing to save negative value %d", value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(value)
}

// SaveIfHigher writes value only when it beats the stored score, checking
// and writing under one lock. It returns the best score after the call and
// whether value was written. Unreadable content counts as 0 and is
// replaced.
func (f *File) SaveIfHigher(value int) (best int, saved bool, err error) {
	if value < 0 {
		return 0, false, fmt.Errorf("highscore: refusing to save negative value %d", value)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, _ := f.read()
	if value <= current {
		return current, false, nil
	}
	if err := f.write(value); err != nil {
		return current, false, err
	}
	return value, true, nil
}

func (f *File) read() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read %s: %w", f.path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("highscore: malformed content in %s: %w", f.path, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("highscore: negative value %d in %s", value, f.path)
	}
	return value, nil
}

func (f *File) write(value int) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("highscore: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strconv.Itoa(value)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("highscore: cannot write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("highscore: cannot close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("highscore: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Reset removes the stored high score. Removing a missing file succeeds.
func (f *File) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("highscore: cannot remove %s: %w", f.path, err)
	}
	return nil
}
