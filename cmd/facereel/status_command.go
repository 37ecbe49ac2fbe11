package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"facereel/internal/deps"
	"facereel/internal/library"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability and per-source library progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Tools:")
			statuses := deps.Check(deps.ForConfig(cfg))
			for _, status := range statuses {
				printToolLine(out, status)
			}

			fmt.Fprintf(out, "\nLibrary: %s\n", cfg.Paths.LibraryDir)
			sources, err := librarySources(cfg.Paths.LibraryDir)
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				fmt.Fprintln(out, "No sources yet")
			} else {
				rows := make([][]string, 0, len(sources))
				for _, sourceDir := range sources {
					rows = append(rows, sourceRow(sourceDir))
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Source", "Frames", "Aligned", "Assembled"},
					rows, 1, 2))
			}

			if !deps.AllAvailable(statuses) {
				return fmt.Errorf("one or more required tools are missing")
			}
			return nil
		},
	}
}

func printToolLine(out io.Writer, status deps.Status) {
	if status.Available() {
		fmt.Fprintf(out, "  %-18s OK    %s\n", status.Requirement.Name+":", status.Path)
		return
	}
	fmt.Fprintf(out, "  %-18s MISSING  %q not on PATH (%s)\n",
		status.Requirement.Name+":", status.Requirement.Binary, status.Requirement.Description)
}

func sourceRow(sourceDir string) []string {
	assembled := "no"
	if _, err := os.Stat(library.SourceVideoFile(sourceDir)); err == nil {
		assembled = "yes"
	}
	return []string{
		library.SourceID(sourceDir),
		strconv.Itoa(countFiles(library.FramesDir(sourceDir))),
		strconv.Itoa(countFiles(library.AdjustmentsDir(sourceDir))),
		assembled,
	}
}

func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return count
}
