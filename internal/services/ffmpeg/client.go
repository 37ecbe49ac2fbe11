// Package ffmpeg is the narrow transcoder boundary.
//
// Three operations cover everything the assembler needs: trimming an audio
// file to a time range, muxing a numbered image sequence with audio into a
// clip, and losslessly concatenating clips from a manifest. Exit codes are
// checked and surfaced as external-tool errors so a failed bucket aborts its
// source instead of silently producing a broken clip.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"facereel/internal/services"
)

// CommandRunner executes one transcoder invocation.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Client invokes the ffmpeg binary.
type Client struct {
	binary string
	runner CommandRunner
}

// New constructs a Client for the given ffmpeg binary.
func New(binary string) *Client {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Client{binary: binary, runner: runCommand}
}

// WithRunner sets a custom command runner (for testing).
func (c *Client) WithRunner(runner CommandRunner) *Client {
	c.runner = runner
	return c
}

// Binary returns the configured ffmpeg executable, for preflight checks.
func (c *Client) Binary() string {
	return c.binary
}

// TrimAudio extracts [startSec, endSec] of input into output.
func (c *Client) TrimAudio(ctx context.Context, input string, startSec, endSec float64, output string) error {
	if err := c.runner(ctx, c.binary, trimAudioArgs(input, startSec, endSec, output)...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "trim audio", output, err)
	}
	return nil
}

// MuxSequence renders the numbered image sequence matching pattern together
// with the audio file into output at the given frame rate. The clip is
// truncated to the shorter of the two streams and padded to even dimensions.
func (c *Client) MuxSequence(ctx context.Context, pattern, audio string, fps int, output string) error {
	if err := c.runner(ctx, c.binary, muxSequenceArgs(pattern, audio, fps, output)...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "mux sequence", output, err)
	}
	return nil
}

// Concat losslessly concatenates the clips listed in manifest into output.
func (c *Client) Concat(ctx context.Context, manifest, output string) error {
	if err := c.runner(ctx, c.binary, concatArgs(manifest, output)...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "concat", output, err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(output.String())
		if detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}
