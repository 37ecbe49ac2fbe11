package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"facereel/internal/assemble"
	"facereel/internal/library"
	"facereel/internal/logging"
	"facereel/internal/runctx"
	"facereel/internal/services"
	"facereel/internal/services/ffmpeg"
)

func newStitchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stitch",
		Short: "Concatenate all per-source videos into the library video",
		Long: "Stitch joins every assembled per-source video, in lexicographic source id\n" +
			"order, into video.mp4 at the library root. Sources without an assembled\n" +
			"video are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			run := runctx.New()
			if err := run.AcquireLock(library.LockFile(cfg.Paths.LibraryDir)); err != nil {
				return err
			}
			defer run.ReleaseLock()
			runCtx := services.WithStage(run.Bind(cmd.Context()), "stitch")

			assembler := assemble.New(ffmpeg.New(cfg.Tools.FFmpegBinary), cfg.Compile.ReferenceFPS,
				logging.NewComponentLogger(logger, "assemble"))
			output, err := assembler.StitchLibrary(runCtx, cfg.Paths.LibraryDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stitched library video: %s (%s)\n", output, run.Elapsed())
			return nil
		},
	}
}
