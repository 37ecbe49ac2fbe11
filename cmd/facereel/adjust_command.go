package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"facereel/internal/align"
	"facereel/internal/library"
	"facereel/internal/logging"
	"facereel/internal/runctx"
	"facereel/internal/services"
	"facereel/internal/services/landmarks"
)

func newAdjustCommand(ctx *commandContext) *cobra.Command {
	var person string
	var all bool
	var clear bool

	cmd := &cobra.Command{
		Use:   "adjust [source-id...]",
		Short: "Align a source's face frames into the library form",
		Long: "Adjust crops, levels and centers every detected face frame of the named\n" +
			"sources, writing 300x300 grayscale frames keyed by mouth-open ratio into\n" +
			"each source's adjustments directory. Already-aligned frames are skipped\n" +
			"unless --clear wipes them first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			person = strings.TrimSpace(person)
			if person == "" {
				return fmt.Errorf("--person is required")
			}
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
			runCtx := services.WithStage(run.Bind(cmd.Context()), "adjust")

			detector := landmarks.NewClient(cfg.Alignment.LandmarksCommand)
			pipeline := align.NewPipeline(detector, logging.NewComponentLogger(logger, "align"))

			rows := make([][]string, 0, len(sources))
			for _, sourceDir := range sources {
				id := library.SourceID(sourceDir)
				runner := align.NewRunner(pipeline, logger).
					WithProgress(newProgress("Adjusting " + id))
				summary, err := runner.Run(services.WithSource(runCtx, id), sourceDir, person, clear)
				if err != nil {
					return fmt.Errorf("adjust %s: %w", id, err)
				}
				rows = append(rows, []string{
					summary.Source,
					strconv.Itoa(summary.Total),
					strconv.Itoa(summary.Aligned),
					strconv.Itoa(summary.Skipped),
					strconv.Itoa(summary.Unusable),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Frames", "Aligned", "Skipped", "Unusable"},
				rows, 1, 2, 3, 4))
			fmt.Fprintf(out, "Adjusted %d source(s) in %s\n", len(sources), run.Elapsed())
			return nil
		},
	}

	cmd.Flags().StringVarP(&person, "person", "p", "", "Person label to align (matches analysis records)")
	cmd.Flags().BoolVar(&all, "all", false, "Adjust every source in the library")
	cmd.Flags().BoolVar(&clear, "clear", false, "Wipe previous adjustments and start over")
	return cmd
}
