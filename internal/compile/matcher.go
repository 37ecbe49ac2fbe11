package compile

import (
	"math/rand"
	"path/filepath"
)

// matchWindow bounds the ratio neighbourhood probed around a frame's own
// ratio: offsets 0, +1, -1, ... +19, -19.
const matchWindow = 20

func matchOffsets() []int {
	offsets := make([]int, 0, matchWindow*2-1)
	offsets = append(offsets, 0)
	for magnitude := 1; magnitude < matchWindow; magnitude++ {
		offsets = append(offsets, magnitude, -magnitude)
	}
	return offsets
}

// Matcher replaces each source frame with a randomly drawn library frame of
// a nearby mouth-open ratio.
type Matcher struct {
	index *RatioIndex
	intn  func(n int) int
}

// NewMatcher returns a matcher drawing from index with math/rand.
func NewMatcher(index *RatioIndex) *Matcher {
	return &Matcher{index: index, intn: rand.Intn}
}

// WithIntN replaces the random draw, for deterministic tests.
func (m *Matcher) WithIntN(intn func(n int) int) *Matcher {
	m.intn = intn
	return m
}

// Match returns the replacement path for frame.
//
// Every offset in the probe window draws once; a draw whose filename differs
// from the frame's own overwrites the running result, so the last successful
// draw wins. The probe at offset zero is skipped when the frame itself is
// the only candidate. When no draw succeeds the frame's own path is
// returned.
func (m *Matcher) Match(frame Frame) string {
	result := frame.Path
	for _, offset := range matchOffsets() {
		ratio := frame.Ratio + offset
		if ratio < 1 || ratio > 100 {
			continue
		}
		candidates := m.index.Candidates(ratio)
		if len(candidates) == 0 {
			continue
		}
		if offset == 0 && len(candidates) == 1 && filepath.Base(candidates[0]) == frame.Name {
			continue
		}
		pick := candidates[m.intn(len(candidates))]
		if filepath.Base(pick) != frame.Name {
			result = pick
		}
	}
	return result
}
