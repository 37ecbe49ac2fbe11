// Package config loads, validates and normalizes the TOML configuration
// shared by every facereel command.
package config
