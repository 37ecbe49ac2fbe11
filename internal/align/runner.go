package align

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"facereel/internal/analysis"
	"facereel/internal/library"
	"facereel/internal/logging"
	"facereel/internal/services"
)

// Summary reports the outcome of one source's alignment run.
type Summary struct {
	Source   string
	Total    int
	Aligned  int
	Skipped  int
	Unusable int
}

// Runner aligns every detected frame of a source.
type Runner struct {
	pipeline *Pipeline
	logger   *slog.Logger
	progress func(done, total int)
}

// NewRunner wraps a pipeline for whole-source runs.
func NewRunner(pipeline *Pipeline, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{pipeline: pipeline, logger: logger}
}

// WithProgress installs a per-frame progress callback.
func (r *Runner) WithProgress(progress func(done, total int)) *Runner {
	r.progress = progress
	return r
}

// Run aligns all frames of sourceDir that the analysis records attribute to
// person. Already-persisted ordinals are skipped unless clear wipes the
// store first. Unusable frames are logged and skipped; any other frame
// error aborts the run.
func (r *Runner) Run(ctx context.Context, sourceDir, person string, clear bool) (Summary, error) {
	summary := Summary{Source: library.SourceID(sourceDir)}

	framesDir := library.FramesDir(sourceDir)
	if _, err := os.Stat(framesDir); err != nil {
		return summary, services.Wrap(services.ErrNotFound, "align", "frames", framesDir, err)
	}
	records, err := analysis.ReadRecords(library.AnalysisFile(sourceDir))
	if err != nil {
		return summary, err
	}
	boxes := analysis.Boxes(records, person)

	store := NewStore(library.AdjustmentsDir(sourceDir))
	if clear {
		err = store.Clear()
	} else {
		err = store.Ensure()
	}
	if err != nil {
		return summary, err
	}
	done, err := store.CompletedOrdinals()
	if err != nil {
		return summary, err
	}

	names := make([]string, 0, len(boxes))
	for name := range boxes {
		names = append(names, name)
	}
	sort.Strings(names)

	summary.Total = len(names)
	processed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ordinal, err := rawOrdinal(name)
		if err != nil {
			return summary, services.Wrap(services.ErrValidation, "align", "frame name", name, err)
		}
		if _, ok := done[ordinal]; ok {
			summary.Skipped++
			processed++
			r.report(processed, summary.Total)
			continue
		}

		frame, err := loadImage(filepath.Join(framesDir, name))
		if err != nil {
			return summary, err
		}
		aligned, err := r.pipeline.Align(ctx, frame, boxes[name])
		if err != nil {
			if services.IsUnusableFrame(err) {
				r.logger.DebugContext(ctx, "frame unusable",
					logging.String("frame", name),
					logging.Error(err))
				summary.Unusable++
				processed++
				r.report(processed, summary.Total)
				continue
			}
			return summary, err
		}
		if err := store.Save(ordinal, aligned.Ratio, aligned.Image); err != nil {
			return summary, err
		}
		summary.Aligned++
		processed++
		r.report(processed, summary.Total)
	}

	r.logger.InfoContext(ctx, "source aligned",
		logging.String("source", summary.Source),
		logging.Int("total", summary.Total),
		logging.Int("aligned", summary.Aligned),
		logging.Int("skipped", summary.Skipped),
		logging.Int("unusable", summary.Unusable))
	return summary, nil
}

func (r *Runner) report(done, total int) {
	if r.progress != nil {
		r.progress(done, total)
	}
}

// rawOrdinal parses the numeric ordinal of an extracted raw frame, named
// by its zero-padded position with no ratio suffix.
func rawOrdinal(name string) (int, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	ordinal, err := strconv.Atoi(base)
	if err != nil || ordinal < 1 {
		return 0, fmt.Errorf("raw frame %q: not ordinal-named", name)
	}
	return ordinal, nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "align", "frame", path, err)
		}
		return nil, fmt.Errorf("open frame %q: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "align", "decode", path, err)
	}
	return img, nil
}
