package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures from external tool invocations
	// (ffmpeg, the landmark helper).
	ErrExternalTool = errors.New("external tool error")
	// ErrUnusableFrame marks a frame the alignment pipeline rejected.
	// Recovered locally: the frame is skipped and processing continues.
	ErrUnusableFrame = errors.New("unusable frame")
	// ErrValidation marks malformed input data.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks missing inputs, fatal for the run's scope.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsUnusableFrame reports whether err represents a locally recoverable
// frame rejection rather than a run-level failure.
func IsUnusableFrame(err error) bool {
	return errors.Is(err, ErrUnusableFrame)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
