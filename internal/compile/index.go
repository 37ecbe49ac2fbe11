package compile

import (
	"os"
	"path/filepath"

	"facereel/internal/framename"
	"facereel/internal/library"
)

// RatioIndex maps each mouth-open ratio to every aligned frame in the
// library carrying that ratio, across all sources.
type RatioIndex struct {
	candidates map[int][]string
	total      int
}

// BuildIndex scans every source's aligned frames under root. Sources without
// an adjustments directory are skipped. The index is rebuilt from the
// filenames on every run, so it can never drift from the files on disk.
func BuildIndex(root string) (*RatioIndex, error) {
	sources, err := library.Sources(root)
	if err != nil {
		return nil, err
	}
	index := &RatioIndex{candidates: make(map[int][]string)}
	for _, source := range sources {
		dir := library.AdjustmentsDir(source)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if _, ratio, err := framename.Parse(name); err == nil {
				index.candidates[ratio] = append(index.candidates[ratio], filepath.Join(dir, name))
				index.total++
			}
		}
	}
	return index, nil
}

// Candidates returns the frame paths indexed under ratio. The returned slice
// is shared and must not be mutated.
func (x *RatioIndex) Candidates(ratio int) []string {
	return x.candidates[ratio]
}

// Len returns the total number of indexed frames.
func (x *RatioIndex) Len() int { return x.total }
