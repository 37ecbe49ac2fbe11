package compile

import (
	"os"
	"path/filepath"
	"testing"

	"facereel/internal/framename"
	"facereel/internal/library"
)

func TestMatchOffsetsOrder(t *testing.T) {
	offsets := matchOffsets()
	if len(offsets) != 39 {
		t.Fatalf("got %d offsets, want 39", len(offsets))
	}
	if offsets[0] != 0 {
		t.Fatalf("first offset = %d, want 0", offsets[0])
	}
	for magnitude := 1; magnitude < matchWindow; magnitude++ {
		if got := offsets[magnitude*2-1]; got != magnitude {
			t.Errorf("offsets[%d] = %d, want %d", magnitude*2-1, got, magnitude)
		}
		if got := offsets[magnitude*2]; got != -magnitude {
			t.Errorf("offsets[%d] = %d, want %d", magnitude*2, got, -magnitude)
		}
	}
}

func indexOf(entries map[int][]string) *RatioIndex {
	total := 0
	for _, candidates := range entries {
		total += len(candidates)
	}
	return &RatioIndex{candidates: entries, total: total}
}

func TestMatchEmptyIndexReturnsFrameItself(t *testing.T) {
	matcher := NewMatcher(indexOf(nil))
	frame := framesAt(5)[0]
	if got := matcher.Match(frame); got != frame.Path {
		t.Fatalf("got %q, want the frame's own path %q", got, frame.Path)
	}
}

func TestMatchSkipsSelfOnlyCandidate(t *testing.T) {
	frame := framesAt(5)[0]
	matcher := NewMatcher(indexOf(map[int][]string{
		frame.Ratio: {filepath.Join("other", "source", frame.Name)},
	}))
	matcher.WithIntN(func(n int) int {
		t.Fatal("no draw should happen for a self-only candidate list")
		return 0
	})
	if got := matcher.Match(frame); got != frame.Path {
		t.Fatalf("got %q, want %q", got, frame.Path)
	}
}

func TestMatchDrawsSameNameWithoutOverwriting(t *testing.T) {
	frame := framesAt(5)[0]
	twin := filepath.Join("other", frame.Name)
	other := filepath.Join("other", framename.Format(9, frame.Ratio))
	matcher := NewMatcher(indexOf(map[int][]string{
		frame.Ratio: {twin, other},
	}))

	// a draw landing on a same-named frame leaves the result untouched
	matcher.WithIntN(func(n int) int { return 0 })
	if got := matcher.Match(frame); got != frame.Path {
		t.Fatalf("same-name draw: got %q, want %q", got, frame.Path)
	}

	matcher.WithIntN(func(n int) int { return 1 })
	if got := matcher.Match(frame); got != other {
		t.Fatalf("distinct draw: got %q, want %q", got, other)
	}
}

func TestMatchLastDrawWins(t *testing.T) {
	frame := framesAt(5)[0] // ratio 50
	near := filepath.Join("lib", framename.Format(2, 50))
	farAbove := filepath.Join("lib", framename.Format(3, 69))
	farBelow := filepath.Join("lib", framename.Format(4, 31))
	matcher := NewMatcher(indexOf(map[int][]string{
		50: {near},
		69: {farAbove}, // probed at offset +19
		31: {farBelow}, // probed at offset -19, the final probe
	}))
	matcher.WithIntN(func(n int) int { return 0 })
	if got := matcher.Match(frame); got != farBelow {
		t.Fatalf("got %q, want the last probe's draw %q", got, farBelow)
	}
}

func TestMatchNearEdgeProbesOnlyValidRatios(t *testing.T) {
	frame := framesAt(5)[0]
	frame.Ratio = 2
	frame.Name = framename.Format(5, 2)
	// the only candidates sit beyond the probe window's valid reach,
	// so nothing may be drawn and the draw hook must stay untouched
	matcher := NewMatcher(indexOf(map[int][]string{
		22: {filepath.Join("lib", framename.Format(1, 22))},
	}))
	matcher.WithIntN(func(n int) int {
		t.Fatal("draw outside the probe window")
		return 0
	})
	if got := matcher.Match(frame); got != frame.Path {
		t.Fatalf("got %q, want %q", got, frame.Path)
	}
}

func TestBuildIndexScansAllSources(t *testing.T) {
	root := t.TempDir()
	for _, source := range []string{"a", "b"} {
		dir := library.AdjustmentsDir(filepath.Join(root, source))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeFrame := func(source, name string) {
		path := filepath.Join(library.AdjustmentsDir(filepath.Join(root, source)), name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFrame("a", "00001_40.jpg")
	writeFrame("a", "00002_40.jpg")
	writeFrame("b", "00001_41.jpg")
	writeFrame("b", "skipme.txt")

	index, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if index.Len() != 3 {
		t.Fatalf("indexed %d frames, want 3", index.Len())
	}
	if got := index.Candidates(40); len(got) != 2 {
		t.Fatalf("ratio 40 candidates = %v, want 2 entries", got)
	}
	if got := index.Candidates(41); len(got) != 1 {
		t.Fatalf("ratio 41 candidates = %v, want 1 entry", got)
	}
	if index.Candidates(42) != nil {
		t.Fatalf("ratio 42 candidates = %v, want none", index.Candidates(42))
	}
}

func TestBuildAssembliesNumbersBucketsAndSlots(t *testing.T) {
	buckets, _ := Bucketize(framesAt(1, 2, 3, 10, 11, 12), 4)
	matcher := NewMatcher(indexOf(nil))
	assemblies := BuildAssemblies(buckets, matcher, 4)
	if len(assemblies) != 2 {
		t.Fatalf("got %d assemblies, want 2", len(assemblies))
	}
	if assemblies[0].Index != 1 || assemblies[1].Index != 2 {
		t.Fatalf("indexes = %d,%d, want 1,2", assemblies[0].Index, assemblies[1].Index)
	}
	for i, frame := range assemblies[1].Frames {
		if frame.Ordinal != i+1 {
			t.Fatalf("slot %d ordinal = %d", i, frame.Ordinal)
		}
	}
	if got := assemblies[1].Span.Start; got != 9.0/4.0 {
		t.Fatalf("second span start = %v, want 2.25", got)
	}
}
