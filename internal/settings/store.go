package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the settings document created in the working directory.
const DefaultFileName = "settings.json"

// ErrWrite means the document could not be written.
var ErrWrite = errors.New("settings write failed")

// Store defines the persistence interface for the settings document.
// Abstracted for testability (DIP).
type Store interface {
	Load() *Settings
	Save(s *Settings) error
}

// FileStore implements Store on a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  *slog.Logger
}

// NewFileStore creates a file-backed settings store. An empty path uses
// DefaultFileName; a nil logger discards output.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileStore{path: path, log: logger}
}

// Path returns the document location.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the document. A missing, unreadable or malformed file yields
// the defaults; a malformed one is logged. Empty lists are filled with
// their defaults. Load does not write anything back.
func (fs *FileStore) Load() *Settings {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	s := &Settings{}
	data, err := os.ReadFile(fs.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fs.log.Debug("settings file not found, using defaults", "path", fs.path)
	case err != nil:
		fs.log.Warn("reading settings failed, using defaults", "path", fs.path, "error", err)
	default:
		if err := json.Unmarshal(data, s); err != nil {
			fs.log.Warn("malformed settings document, using defaults", "path", fs.path, "error", err)
			s = &Settings{}
		}
	}

	s.ApplyDefaults()
	return s
}

// Save overwrites the document with s as indented JSON. The bytes go to a
// temporary file in the same directory which is then renamed over the
// target, so a reader sees either the old or the new document.
func (fs *FileStore) Save(s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings: save: %w: nil settings", ErrWrite)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w: %w", ErrWrite, err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: create directory: %w: %w", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fs.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("settings: create temp file: %w: %w", ErrWrite, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("settings: write: %w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("settings: close: %w: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmpName, fs.mode()); err != nil {
		cleanup()
		return fmt.Errorf("settings: chmod: %w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		cleanup()
		return fmt.Errorf("settings: replace %s: %w: %w", fs.path, ErrWrite, err)
	}

	fs.log.Debug("settings saved", "path", fs.path)
	return nil
}

// mode keeps the permissions of an existing document.
func (fs *FileStore) mode() os.FileMode {
	if info, err := os.Stat(fs.path); err == nil {
		return info.Mode().Perm()
	}
	return defaultFileMode
}

const defaultFileMode os.FileMode = 0o644
