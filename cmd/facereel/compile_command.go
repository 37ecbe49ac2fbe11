package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"facereel/internal/assemble"
	"facereel/internal/compile"
	"facereel/internal/library"
	"facereel/internal/logging"
	"facereel/internal/runctx"
	"facereel/internal/services"
	"facereel/internal/services/ffmpeg"
)

func newCompileCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var stitch bool

	cmd := &cobra.Command{
		Use:   "compile [source-id...]",
		Short: "Render per-source videos from ratio-matched library frames",
		Long: "Compile segments each source's aligned frames into continuity buckets,\n" +
			"replaces every frame with a randomly drawn library frame of a nearby\n" +
			"mouth-open ratio, and renders the buckets with their audio spans into the\n" +
			"per-source video. The ratio index covers the whole library, so sources\n" +
			"borrow frames from each other.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			sources, err := ctx.resolveSources(args, all)
			if err != nil {
				return err
			}

			run := runctx.New()
			if err := run.AcquireLock(library.LockFile(cfg.Paths.LibraryDir)); err != nil {
				return err
			}
			defer run.ReleaseLock()
			runCtx := services.WithStage(run.Bind(cmd.Context()), "compile")

			index, err := compile.BuildIndex(cfg.Paths.LibraryDir)
			if err != nil {
				return fmt.Errorf("build ratio index: %w", err)
			}
			if index.Len() == 0 {
				return fmt.Errorf("no aligned frames in %s; run adjust first", cfg.Paths.LibraryDir)
			}
			matcher := compile.NewMatcher(index)
			fps := cfg.Compile.ReferenceFPS
			transcoder := ffmpeg.New(cfg.Tools.FFmpegBinary)
			assembleLogger := logging.NewComponentLogger(logger, "assemble")

			rows := make([][]string, 0, len(sources))
			for _, sourceDir := range sources {
				id := library.SourceID(sourceDir)
				sourceCtx := services.WithSource(runCtx, id)

				frames, err := compile.ListAdjusted(sourceDir)
				if err != nil {
					return fmt.Errorf("compile %s: %w", id, err)
				}
				if len(frames) == 0 {
					return fmt.Errorf("compile %s: no aligned frames; run adjust first", id)
				}
				buckets, discarded := compile.Bucketize(frames, fps)
				assemblies := compile.BuildAssemblies(buckets, matcher, fps)

				assembler := assemble.New(transcoder, fps, assembleLogger).
					WithProgress(newProgress("Rendering " + id))
				output, err := assembler.AssembleSource(sourceCtx, sourceDir, assemblies)
				if err != nil {
					return fmt.Errorf("compile %s: %w", id, err)
				}
				rows = append(rows, []string{
					id,
					strconv.Itoa(len(frames)),
					strconv.Itoa(len(buckets)),
					strconv.Itoa(discarded),
					output,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Frames", "Buckets", "Discarded", "Video"},
				rows, 1, 2, 3))

			if stitch {
				assembler := assemble.New(transcoder, fps, assembleLogger)
				final, err := assembler.StitchLibrary(runCtx, cfg.Paths.LibraryDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Stitched library video: %s\n", final)
			}
			fmt.Fprintf(out, "Compiled %d source(s) in %s\n", len(sources), run.Elapsed())
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Compile every source in the library")
	cmd.Flags().BoolVar(&stitch, "stitch", false, "Concatenate all per-source videos afterwards")
	return cmd
}
