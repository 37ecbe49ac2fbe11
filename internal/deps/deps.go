// Package deps preflights the external tools a run needs.
package deps

import (
	"os/exec"

	"facereel/internal/config"
)

// Requirement names one external binary and why it is needed.
type Requirement struct {
	Name        string
	Binary      string
	Description string
}

// Status is the probe result for one requirement.
type Status struct {
	Requirement Requirement
	Path        string
	Err         error
}

// Available reports whether the binary was found on PATH.
func (s Status) Available() bool { return s.Err == nil }

// ForConfig lists the tools the configured pipeline invokes.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "ffmpeg",
			Binary:      cfg.Tools.FFmpegBinary,
			Description: "audio trimming, clip rendering and concatenation",
		},
		{
			Name:        "landmarks helper",
			Binary:      cfg.Alignment.LandmarksCommand,
			Description: "facial landmark detection",
		},
	}
}

// Check probes every requirement on PATH.
func Check(requirements []Requirement) []Status {
	statuses := make([]Status, 0, len(requirements))
	for _, requirement := range requirements {
		path, err := exec.LookPath(requirement.Binary)
		statuses = append(statuses, Status{Requirement: requirement, Path: path, Err: err})
	}
	return statuses
}

// AllAvailable reports whether every probe succeeded.
func AllAvailable(statuses []Status) bool {
	for _, status := range statuses {
		if !status.Available() {
			return false
		}
	}
	return true
}
