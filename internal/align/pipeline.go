// Package align normalizes raw face frames into the canonical library form:
// a 300x300 grayscale image centered on a level mouth, keyed by the frame's
// mouth-open ratio.
package align

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"facereel/internal/analysis"
	"facereel/internal/logging"
	"facereel/internal/services"
	"facereel/internal/services/landmarks"
)

const (
	// MinFaceSize rejects face boxes too small to align usefully.
	MinFaceSize = 150
	// CanonicalSize is the edge length of every persisted frame.
	CanonicalSize = 300
)

// mouthHeightFraction places the mouth center below the vertical midline of
// the canonical frame.
const mouthHeightFraction = 2.0 / 3.0

// Aligned is a frame that survived the full pipeline.
type Aligned struct {
	Image *image.Gray
	Ratio int
}

// Pipeline runs the per-frame alignment stages. Landmark detection runs
// three times per frame, each call on the pixel data the preceding stage
// produced, so the detections cannot be fused into one.
type Pipeline struct {
	detector landmarks.Detector
	logger   *slog.Logger
}

// NewPipeline builds a pipeline around the given detector.
func NewPipeline(detector landmarks.Detector, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{detector: detector, logger: logger}
}

// Align normalizes one raw frame. A frame the pipeline cannot use comes
// back as an error satisfying services.IsUnusableFrame; the caller skips it
// and continues. Any other error is fatal for the run.
func (p *Pipeline) Align(ctx context.Context, frame image.Image, box analysis.BoundingBox) (*Aligned, error) {
	if box.Width() < MinFaceSize || box.Height() < MinFaceSize {
		return nil, unusable("crop", fmt.Sprintf("face %dx%d below %d pixel minimum",
			box.Width(), box.Height(), MinFaceSize))
	}
	cropped := cropSquare(frame, box)

	set, found, err := p.detector.Detect(ctx, cropped)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, unusable("ratio", "no face in cropped frame")
	}
	ratio, ok := mouthOpenRatio(set)
	if !ok {
		return nil, unusable("ratio", "degenerate lip landmarks")
	}

	set, found, err = p.detector.Detect(ctx, cropped)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, unusable("rotate", "no face in cropped frame")
	}
	angle, ok := faceAngle(set)
	if !ok {
		return nil, unusable("rotate", "missing eyebrow landmarks")
	}
	rotated := rotate(cropped, -angle)

	set, found, err = p.detector.Detect(ctx, rotated)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, unusable("center", "no face in rotated frame")
	}
	mouthX, mouthY, ok := mouthCenter(set)
	if !ok {
		return nil, unusable("center", "missing lip landmarks")
	}

	bounds := rotated.Bounds()
	targetX := bounds.Dx() / 2
	targetY := int(float64(bounds.Dy()) * mouthHeightFraction)
	centered := translate(rotated, targetX-mouthX, targetY-mouthY)

	final := grayscale(resizeTo(centered, CanonicalSize, CanonicalSize))
	p.logger.DebugContext(ctx, "frame aligned",
		logging.Int("ratio", ratio),
		logging.Float64("angle", angle))
	return &Aligned{Image: final, Ratio: ratio}, nil
}

func unusable(operation, message string) error {
	return services.Wrap(services.ErrUnusableFrame, "align", operation, message, nil)
}
