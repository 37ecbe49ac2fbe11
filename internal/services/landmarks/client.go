// Package landmarks locates facial landmarks through an external helper
// process.
//
// The helper is invoked once per detection call as
//
//	<command> --json <image.png>
//
// and prints {"faces": [...]} on stdout, one entry per detected face with
// lip and eyebrow point lists. An empty faces list is a clean "no face"
// outcome, not an error. The alignment pipeline calls the detector three
// times per frame on progressively mutated pixel data, so each call writes
// the current working image to a scratch file first.
package landmarks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"facereel/internal/services"
)

// Detector finds facial landmarks in an image. The boolean result is false
// when no face was found.
type Detector interface {
	Detect(ctx context.Context, img image.Image) (Set, bool, error)
}

// CommandRunner executes the helper and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client runs the external landmark helper.
type Client struct {
	command string
	runner  CommandRunner
}

// NewClient constructs a landmark client for the given helper command.
func NewClient(command string) *Client {
	return &Client{command: command, runner: runCommand}
}

// WithRunner sets a custom command runner (for testing).
func (c *Client) WithRunner(runner CommandRunner) *Client {
	c.runner = runner
	return c
}

// Command returns the configured helper binary, for preflight checks.
func (c *Client) Command() string {
	return c.command
}

// Detect writes img to a scratch file, invokes the helper and parses its
// output. Only the first detected face is used.
func (c *Client) Detect(ctx context.Context, img image.Image) (Set, bool, error) {
	scratch, err := writeScratchImage(img)
	if err != nil {
		return Set{}, false, err
	}
	defer os.Remove(scratch)

	output, err := c.runner(ctx, c.command, "--json", scratch)
	if err != nil {
		return Set{}, false, services.Wrap(services.ErrExternalTool, "landmarks", "detect", c.command, err)
	}

	var result detection
	if err := json.Unmarshal(bytes.TrimSpace(output), &result); err != nil {
		return Set{}, false, services.Wrap(services.ErrExternalTool, "landmarks", "parse", c.command, err)
	}
	if len(result.Faces) == 0 {
		return Set{}, false, nil
	}
	return result.Faces[0], true, nil
}

func writeScratchImage(img image.Image) (string, error) {
	file, err := os.CreateTemp("", "facereel-landmarks-*.png")
	if err != nil {
		return "", fmt.Errorf("create scratch image: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("encode scratch image: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close scratch image: %w", err)
	}
	return file.Name(), nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s: %w: %s", filepath.Base(name), err, detail)
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return output, nil
}
