// Package logging configures slog output for facereel and carries the
// structured field conventions shared across components.
package logging
