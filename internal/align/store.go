package align

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"facereel/internal/framename"
)

const jpegQuality = 90

// Store persists aligned frames under a source's adjustments directory and
// answers which ordinals are already done, for resumable runs.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is created until Ensure
// or Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// Ensure creates the store directory if needed.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create adjustments dir: %w", err)
	}
	return nil
}

// Clear wipes the store and recreates it empty.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clear adjustments dir: %w", err)
	}
	return s.Ensure()
}

// CompletedOrdinals scans the store for frames already persisted, keyed by
// ordinal regardless of the ratio suffix. A missing directory reads as
// empty.
func (s *Store) CompletedOrdinals() (map[int]struct{}, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int]struct{}{}, nil
		}
		return nil, fmt.Errorf("scan adjustments dir: %w", err)
	}
	done := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ordinal, err := framename.Ordinal(entry.Name()); err == nil {
			done[ordinal] = struct{}{}
		}
	}
	return done, nil
}

// Save writes the aligned frame under its ratio-tagged filename. A failed
// encode leaves no partial file behind.
func (s *Store) Save(ordinal, ratio int, img image.Image) error {
	path := filepath.Join(s.dir, framename.Format(ordinal, ratio))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create aligned frame: %w", err)
	}
	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("encode aligned frame %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("write aligned frame %q: %w", path, err)
	}
	return nil
}
