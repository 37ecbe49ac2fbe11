package align

import (
	"image"
	"image/color"
	"testing"

	"facereel/internal/analysis"
)

func newMarkedImage(width, height int, mark image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fillBlack(img)
	img.Set(mark.X, mark.Y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return img
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0x8000 && g > 0x8000 && b > 0x8000
}

func TestCropSquarePadsShorterSide(t *testing.T) {
	src := newMarkedImage(400, 300, image.Pt(10, 20))
	box := analysis.BoundingBox{Left: 0, Top: 0, Right: 300, Bottom: 200}

	got := cropSquare(src, box)
	if got.Bounds().Dx() != 300 || got.Bounds().Dy() != 300 {
		t.Fatalf("crop size = %dx%d, want 300x300", got.Bounds().Dx(), got.Bounds().Dy())
	}
	// the 100 pixel height deficit splits 50 up, 50 down
	if !isWhite(got.At(10, 70)) {
		t.Errorf("marked pixel not at (10,70) after vertical padding")
	}
}

func TestCropSquareSplitsOddPaddingFloorFirst(t *testing.T) {
	src := newMarkedImage(400, 300, image.Pt(100, 0))
	// width 101, height 200: deficit 99 splits 49 left, 50 right
	box := analysis.BoundingBox{Left: 100, Top: 0, Right: 201, Bottom: 200}

	got := cropSquare(src, box)
	if got.Bounds().Dx() != 200 || got.Bounds().Dy() != 200 {
		t.Fatalf("crop size = %dx%d, want 200x200", got.Bounds().Dx(), got.Bounds().Dy())
	}
	if !isWhite(got.At(49, 0)) {
		t.Errorf("marked pixel not at (49,0) after horizontal padding")
	}
}

func TestCropSquareFillsOutOfFrameBlack(t *testing.T) {
	src := newMarkedImage(100, 100, image.Pt(0, 0))
	box := analysis.BoundingBox{Left: -50, Top: 0, Right: 100, Bottom: 150}

	got := cropSquare(src, box)
	if got.Bounds().Dx() != 150 || got.Bounds().Dy() != 150 {
		t.Fatalf("crop size = %dx%d, want 150x150", got.Bounds().Dx(), got.Bounds().Dy())
	}
	if isWhite(got.At(10, 10)) {
		t.Errorf("out-of-frame region not black")
	}
	if !isWhite(got.At(50, 0)) {
		t.Errorf("source origin not shifted to (50,0)")
	}
	r, g, b, a := got.At(10, 120).RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("below-frame region = %v,%v,%v,%v, want opaque black", r, g, b, a)
	}
}

func TestRotateZeroKeepsPixels(t *testing.T) {
	src := newMarkedImage(9, 9, image.Pt(2, 3))
	got := rotate(src, 0)
	if !isWhite(got.At(2, 3)) {
		t.Errorf("zero rotation moved the marked pixel")
	}
}

func TestRotateHalfTurnMirrorsThroughCenter(t *testing.T) {
	src := newMarkedImage(3, 3, image.Pt(0, 0))
	got := rotate(src, 180)
	if !isWhite(got.At(2, 2)) {
		t.Errorf("corner pixel not mirrored to the opposite corner")
	}
	if isWhite(got.At(0, 0)) {
		t.Errorf("original corner still set after half turn")
	}
}

func TestRotateQuarterTurnIsCounterclockwise(t *testing.T) {
	src := newMarkedImage(5, 5, image.Pt(4, 2))
	// the rightmost center pixel moves to the top under a counterclockwise
	// quarter turn on a y-down raster
	got := rotate(src, 90)
	if !isWhite(got.At(2, 0)) {
		t.Errorf("quarter turn is not counterclockwise")
	}
}

func TestTranslateShifts(t *testing.T) {
	src := newMarkedImage(10, 10, image.Pt(3, 4))
	got := translate(src, 2, -1)
	if !isWhite(got.At(5, 3)) {
		t.Errorf("marked pixel not shifted to (5,3)")
	}
	if isWhite(got.At(3, 4)) {
		t.Errorf("origin pixel still set after shift")
	}
}

func TestResizeToCanonical(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 123, 77))
	got := resizeTo(src, CanonicalSize, CanonicalSize)
	if got.Bounds().Dx() != CanonicalSize || got.Bounds().Dy() != CanonicalSize {
		t.Fatalf("resized to %dx%d", got.Bounds().Dx(), got.Bounds().Dy())
	}
}

func TestGrayscaleSingleChannel(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	src.Set(1, 0, color.NRGBA{A: 0xff})

	got := grayscale(src)
	if got.GrayAt(0, 0).Y != 0xff {
		t.Errorf("white pixel = %d, want 255", got.GrayAt(0, 0).Y)
	}
	if got.GrayAt(1, 0).Y != 0 {
		t.Errorf("black pixel = %d, want 0", got.GrayAt(1, 0).Y)
	}
}
