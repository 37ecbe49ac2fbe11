package compile

import (
	"os"
	"path/filepath"
	"sort"

	"facereel/internal/framename"
	"facereel/internal/library"
	"facereel/internal/services"
)

// Frame is one aligned frame referenced by its ratio-tagged filename.
type Frame struct {
	Name    string
	Path    string
	Ordinal int
	Ratio   int
}

// Bucket is a maximal gap-free run of a source's aligned frames. Bridged
// holes repeat the preceding tail frame, so Frames is dense: every entry
// occupies exactly one output slot.
type Bucket struct {
	Frames []Frame
}

// Len returns the number of output slots in the bucket.
func (b Bucket) Len() int { return len(b.Frames) }

// FirstOrdinal returns the source ordinal of the first frame.
func (b Bucket) FirstOrdinal() int { return b.Frames[0].Ordinal }

// LastOrdinal returns the source ordinal of the last frame.
func (b Bucket) LastOrdinal() int { return b.Frames[len(b.Frames)-1].Ordinal }

// MinLen returns the minimum finalized bucket length, ceil(fps/2): anything
// shorter than half a second of footage is discarded.
func MinLen(fps int) int {
	return (fps + 1) / 2
}

// ListAdjusted reads a source's aligned frames sorted by ordinal. Files that
// do not match the filename contract are ignored.
func ListAdjusted(sourceDir string) ([]Frame, error) {
	dir := library.AdjustmentsDir(sourceDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "compile", "list adjusted", dir, err)
		}
		return nil, err
	}
	frames := make([]Frame, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ordinal, ratio, err := framename.Parse(name)
		if err != nil {
			continue
		}
		frames = append(frames, Frame{
			Name:    name,
			Path:    filepath.Join(dir, name),
			Ordinal: ordinal,
			Ratio:   ratio,
		})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Ordinal < frames[j].Ordinal })
	return frames, nil
}

// Bucketize segments ordinal-sorted frames into continuity buckets.
//
// A gap of one ordinal between neighbours means contiguous footage. Gaps of
// two or three are bridged by repeating the bucket's tail frame once or
// twice. A larger gap closes the bucket: if the closed bucket is shorter
// than MinLen(fps) it is deleted outright, never merged. The trailing
// in-progress bucket is returned without a length check.
//
// The discarded return counts deleted buckets.
func Bucketize(frames []Frame, fps int) (buckets []Bucket, discarded int) {
	if len(frames) == 0 {
		return nil, 0
	}
	minLen := MinLen(fps)
	current := Bucket{Frames: []Frame{frames[0]}}
	for _, frame := range frames[1:] {
		tail := current.Frames[len(current.Frames)-1]
		switch gap := frame.Ordinal - tail.Ordinal; gap {
		case 1:
			current.Frames = append(current.Frames, frame)
		case 2:
			current.Frames = append(current.Frames, tail, frame)
		case 3:
			current.Frames = append(current.Frames, tail, tail, frame)
		default:
			if current.Len() >= minLen {
				buckets = append(buckets, current)
			} else {
				discarded++
			}
			current = Bucket{Frames: []Frame{frame}}
		}
	}
	buckets = append(buckets, current)
	return buckets, discarded
}
