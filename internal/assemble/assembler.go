// Package assemble renders matched bucket assemblies into per-source videos
// and stitches the per-source videos into the final library cut.
package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"facereel/internal/compile"
	"facereel/internal/fileutil"
	"facereel/internal/library"
	"facereel/internal/logging"
	"facereel/internal/services"
	"facereel/internal/services/ffmpeg"
)

// Assembler renders bucket assemblies through the transcoder.
type Assembler struct {
	transcoder *ffmpeg.Client
	fps        int
	logger     *slog.Logger
	progress   func(done, total int)
}

// New builds an assembler rendering at the given reference frame rate.
func New(transcoder *ffmpeg.Client, fps int, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{transcoder: transcoder, fps: fps, logger: logger}
}

// WithProgress installs a per-bucket progress callback.
func (a *Assembler) WithProgress(progress func(done, total int)) *Assembler {
	a.progress = progress
	return a
}

// AssembleSource renders every bucket of a source and concatenates the clips
// into the per-source video, returning its path. The bucket working tree is
// wiped first so leftovers from an interrupted run cannot leak into the
// output.
func (a *Assembler) AssembleSource(ctx context.Context, sourceDir string, assemblies []compile.BucketAssembly) (string, error) {
	if len(assemblies) == 0 {
		return "", services.Wrap(services.ErrValidation, "assemble", "source",
			fmt.Sprintf("%s: no buckets to render", library.SourceID(sourceDir)), nil)
	}

	bucketsDir := library.BucketsDir(sourceDir)
	if err := os.RemoveAll(bucketsDir); err != nil {
		return "", fmt.Errorf("reset buckets dir: %w", err)
	}
	if err := os.MkdirAll(bucketsDir, 0o755); err != nil {
		return "", fmt.Errorf("create buckets dir: %w", err)
	}

	ordered := slices.Clone(assemblies)
	slices.SortFunc(ordered, func(x, y compile.BucketAssembly) int { return x.Index - y.Index })

	clips := make([]string, 0, len(ordered))
	for i, assembly := range ordered {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := a.renderBucket(ctx, sourceDir, assembly); err != nil {
			return "", err
		}
		clips = append(clips, library.BucketVideoFile(sourceDir, assembly.Index))
		if a.progress != nil {
			a.progress(i+1, len(ordered))
		}
	}

	manifest := library.SourceManifestFile(sourceDir)
	if err := writeManifest(manifest, clips); err != nil {
		return "", err
	}
	output := library.SourceVideoFile(sourceDir)
	if err := a.transcoder.Concat(ctx, manifest, output); err != nil {
		return "", err
	}
	a.logger.InfoContext(ctx, "source assembled",
		logging.String("source", library.SourceID(sourceDir)),
		logging.Int("buckets", len(ordered)))
	return output, nil
}

func (a *Assembler) renderBucket(ctx context.Context, sourceDir string, assembly compile.BucketAssembly) error {
	dir := library.BucketDir(sourceDir, assembly.Index)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bucket dir: %w", err)
	}

	audio := library.BucketAudioFile(sourceDir, assembly.Index)
	if err := a.transcoder.TrimAudio(ctx, library.AudioFile(sourceDir), assembly.Span.Start, assembly.Span.End, audio); err != nil {
		return err
	}

	// renumber the matched frames into a dense sequence for the muxer
	for _, frame := range assembly.Frames {
		dst := filepath.Join(dir, fmt.Sprintf("%05d.jpg", frame.Ordinal))
		if err := fileutil.CopyFile(frame.Path, dst); err != nil {
			return err
		}
	}
	pattern := filepath.Join(dir, "%05d.jpg")
	return a.transcoder.MuxSequence(ctx, pattern, audio, a.fps, library.BucketVideoFile(sourceDir, assembly.Index))
}

// StitchLibrary concatenates every per-source video under root into the
// final library video, in lexicographic source id order, and returns its
// path. Sources not yet assembled are skipped.
func (a *Assembler) StitchLibrary(ctx context.Context, root string) (string, error) {
	sources, err := library.Sources(root)
	if err != nil {
		return "", err
	}
	clips := make([]string, 0, len(sources))
	for _, source := range sources {
		clip := library.SourceVideoFile(source)
		if _, err := os.Stat(clip); err == nil {
			clips = append(clips, clip)
		}
	}
	if len(clips) == 0 {
		return "", services.Wrap(services.ErrNotFound, "assemble", "stitch",
			"no per-source videos under "+root, nil)
	}

	output := library.LibraryVideoFile(root)
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove stale library video: %w", err)
	}
	manifest := library.LibraryManifestFile(root)
	if err := writeManifest(manifest, clips); err != nil {
		return "", err
	}
	if err := a.transcoder.Concat(ctx, manifest, output); err != nil {
		return "", err
	}
	a.logger.InfoContext(ctx, "library stitched",
		logging.Int("sources", len(clips)),
		logging.String("output", output))
	return output, nil
}

// writeManifest renders a concat demuxer manifest, one clip per line.
func writeManifest(path string, clips []string) error {
	var builder strings.Builder
	for _, clip := range clips {
		fmt.Fprintf(&builder, "file '%s'\n", clip)
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}
	return nil
}
