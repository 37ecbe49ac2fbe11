package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"facereel/internal/config"
	"facereel/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// resolveSources maps command arguments to source directories under the
// library. With all set, every source is returned.
func (c *commandContext) resolveSources(args []string, all bool) ([]string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if all {
		if len(args) > 0 {
			return nil, fmt.Errorf("--all does not take source ids")
		}
		sources, err := librarySources(cfg.Paths.LibraryDir)
		if err != nil {
			return nil, err
		}
		if len(sources) == 0 {
			return nil, fmt.Errorf("library %s holds no sources", cfg.Paths.LibraryDir)
		}
		return sources, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("name at least one source id or pass --all")
	}
	sources := make([]string, 0, len(args))
	for _, id := range args {
		sources = append(sources, filepath.Join(cfg.Paths.LibraryDir, id))
	}
	return sources, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
