package align

import (
	"math"

	"facereel/internal/services/landmarks"
)

// minLipWidth guards the ratio division against degenerate landmark sets
// where all lip points collapse onto one x position.
const minLipWidth = 1e-6

// mouthOpenRatio reduces a landmark set to the integer mouth-open ratio in
// [1, 100]: the vertical lip gap at the mouth's x-median, over the mean lip
// width, times one hundred. The boolean is false when the lips are missing
// or degenerate.
func mouthOpenRatio(set landmarks.Set) (int, bool) {
	top := landmarks.SortByX(set.TopLip)
	bottom := landmarks.SortByX(set.BottomLip)
	if len(top) == 0 || len(bottom) == 0 {
		return 0, false
	}

	topWidth := top[0].Distance(top[len(top)-1])
	bottomWidth := bottom[0].Distance(bottom[len(bottom)-1])
	lipWidth := (topWidth + bottomWidth) / 2
	if lipWidth < minLipWidth {
		return 0, false
	}

	gap := top[len(top)/2].Distance(bottom[len(bottom)/2])
	ratio := int(math.Round(gap / lipWidth * 100))
	if ratio < 1 {
		ratio = 1
	}
	if ratio > 100 {
		ratio = 100
	}
	return ratio, true
}

// faceAngle measures the head tilt in degrees from the outer eyebrow points
// via the law of cosines against a horizontal reference. The law of cosines
// yields a non-negative magnitude only; the caller rotates by its negative.
// The boolean is false when an eyebrow is missing.
func faceAngle(set landmarks.Set) (float64, bool) {
	left := landmarks.SortByX(set.LeftEyebrow)
	right := landmarks.SortByX(set.RightEyebrow)
	if len(left) == 0 || len(right) == 0 {
		return 0, false
	}
	// The subject's left eyebrow sits on the viewer's right, so its outer
	// point has the largest x; the right eyebrow's outer point the smallest.
	outerLeft := left[len(left)-1]
	outerRight := right[0]

	reference := landmarks.Point{X: outerLeft.X, Y: outerRight.Y}
	a := sq(outerRight.Distance(reference))
	b := sq(outerRight.Distance(outerLeft))
	c := sq(outerLeft.Distance(reference))
	if a == 0 || b == 0 {
		// coincident eyebrow points, treat the face as level
		return 0, true
	}
	cosine := (a + b - c) / math.Sqrt(4*a*b)
	cosine = math.Max(-1, math.Min(1, cosine))
	return math.Acos(cosine) * 180 / math.Pi, true
}

// mouthCenter returns the integer center of the bounding box around all lip
// points. The boolean is false when either lip is missing.
func mouthCenter(set landmarks.Set) (x, y int, ok bool) {
	if len(set.TopLip) == 0 || len(set.BottomLip) == 0 {
		return 0, 0, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, points := range [][]landmarks.Point{set.TopLip, set.BottomLip} {
		for _, point := range points {
			minX = math.Min(minX, point.X)
			maxX = math.Max(maxX, point.X)
			minY = math.Min(minY, point.Y)
			maxY = math.Max(maxY, point.Y)
		}
	}
	return int((minX + maxX) / 2), int((minY + maxY) / 2), true
}

func sq(v float64) float64 { return v * v }
