package landmarks

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Point is a landmark coordinate in image pixels. The helper emits points as
// two-element JSON arrays.
type Point struct {
	X float64
	Y float64
}

// UnmarshalJSON decodes a [x, y] pair.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("landmark point: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// MarshalJSON encodes the point back to a [x, y] pair.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Set holds the landmark groups of a single detected face.
type Set struct {
	TopLip       []Point `json:"top_lip"`
	BottomLip    []Point `json:"bottom_lip"`
	LeftEyebrow  []Point `json:"left_eyebrow"`
	RightEyebrow []Point `json:"right_eyebrow"`
}

// SortByX returns the points ordered by ascending horizontal coordinate.
// The input slice is not modified.
func SortByX(points []Point) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	return sorted
}

type detection struct {
	Faces []Set `json:"faces"`
}
