package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"trustframe/internal/config"
	"trustframe/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyLogOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// applyLogOverrides folds --log-level and --log-format into cfg.
func (c *commandContext) applyLogOverrides(cfg *config.Config) error {
	if c.logLevelFlag != nil {
		if value := strings.TrimSpace(*c.logLevelFlag); value != "" {
			level, err := logging.ParseLevel(value)
			if err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			cfg.Logging.Level = strings.ToLower(level.String())
		}
	}
	if c.logFormatFlag != nil {
		if value := strings.TrimSpace(*c.logFormatFlag); value != "" {
			cfg.Logging.Format = strings.ToLower(value)
		}
	}
	return cfg.Validate()
}

// loggerFor builds the logger once, writing to the command's stderr.
func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	})
	return c.logger, c.loggerErr
}

// progressWriter returns stderr when it is an interactive terminal.
func (c *commandContext) progressWriter(cmd *cobra.Command, disabled bool) io.Writer {
	if disabled {
		return nil
	}
	w := cmd.ErrOrStderr()
	if !isTerminal(w) {
		return nil
	}
	return w
}

// skipConfigLoad marks commands that load configuration themselves, or not at all.
const skipConfigLoad = "skipConfigLoad"

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigLoad] == "true" {
			return true
		}
	}
	return false
}
