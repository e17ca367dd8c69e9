package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"darkmaster/internal/logging"
	"darkmaster/internal/runconfig"
	"darkmaster/internal/runhistory"
)

// commandContext carries the flags and lazily-initialized collaborators
// every subcommand needs: the loaded configuration, a structured logger
// built from it, and the run-history ledger. Nothing in cmd/darkmaster
// reads a config file or opens the ledger directly; everything routes
// through here so every subcommand sees the same configuration.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     runconfig.Params
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	historyOnce sync.Once
	history     *runhistory.Store
	historyErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (runconfig.Params, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := runconfig.Load(path)
		if err != nil {
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
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Color:  logging.ShouldColorize(os.Stdout),
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureHistory() (*runhistory.Store, error) {
	c.historyOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.historyErr = err
			return
		}
		store, err := runhistory.Open(cfg.Paths.HistoryDB)
		if err != nil {
			c.historyErr = fmt.Errorf("open run history: %w", err)
			return
		}
		c.history = store
	})
	return c.history, c.historyErr
}

func (c *commandContext) close() {
	if c.history != nil {
		_ = c.history.Close()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
