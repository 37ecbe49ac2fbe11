package compile

// AudioSpan is a half-open slice of the source audio track, in seconds.
type AudioSpan struct {
	Start float64
	End   float64
}

// Span maps the bucket's source ordinals onto the audio timeline. Ordinals
// are 1-based, timestamps 0-based, so frame n starts at (n-1)/fps.
func (b Bucket) Span(fps int) AudioSpan {
	return AudioSpan{
		Start: float64(b.FirstOrdinal()-1) / float64(fps),
		End:   float64(b.LastOrdinal()-1) / float64(fps),
	}
}

// MatchedFrame is one output slot of an assembled bucket: the library frame
// to show and its 1-based position in the bucket's image sequence.
type MatchedFrame struct {
	Path    string
	Ordinal int
}

// BucketAssembly is everything needed to render one bucket clip.
type BucketAssembly struct {
	Index  int
	Frames []MatchedFrame
	Span   AudioSpan
}

// BuildAssemblies matches every bucket slot against the library and pairs
// each bucket with its audio span. Bucket indexes are 1-based.
func BuildAssemblies(buckets []Bucket, matcher *Matcher, fps int) []BucketAssembly {
	assemblies := make([]BucketAssembly, 0, len(buckets))
	for i, bucket := range buckets {
		frames := make([]MatchedFrame, 0, bucket.Len())
		for j, frame := range bucket.Frames {
			frames = append(frames, MatchedFrame{
				Path:    matcher.Match(frame),
				Ordinal: j + 1,
			})
		}
		assemblies = append(assemblies, BucketAssembly{
			Index:  i + 1,
			Frames: frames,
			Span:   bucket.Span(fps),
		})
	}
	return assemblies
}
