package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"draftline/internal/config"
	"draftline/internal/drafts"
	"draftline/internal/logging"
	"draftline/internal/metrics"
	"draftline/internal/notifications"
	"draftline/internal/runlog"
	"draftline/internal/stage"
	"draftline/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
	logErr     error

	recorder *metrics.Recorder
	ledger   *runlog.Ledger
	stop     context.CancelFunc
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		recorder:   metrics.New(),
	}
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

func (c *commandContext) logger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		c.log, c.logErr = logging.NewFromConfig(cfg)
	})
	return c.log, c.logErr
}

// openLedger opens the run ledger once per invocation.
func (c *commandContext) openLedger() (*runlog.Ledger, error) {
	if c.ledger != nil {
		return c.ledger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	ledger, err := runlog.Open(cfg.Paths.RunLedger)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}
	c.ledger = ledger
	return ledger, nil
}

func (c *commandContext) draftStore() (*drafts.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	return drafts.NewStore(cfg.DraftStorePath(), cfg.Store.MaxDrafts, logger), nil
}

// newRunner wires the workflow runner with the ledger, metrics, and notifier.
func (c *commandContext) newRunner(steps []workflow.Step) (*workflow.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	ledger, err := c.openLedger()
	if err != nil {
		return nil, err
	}
	return workflow.NewRunner(steps, workflow.Options{
		Ledger:       ledger,
		Metrics:      c.recorder,
		Notifier:     notifications.NewService(cfg),
		Logger:       logger,
		TextfilePath: cfg.Metrics.TextfilePath,
	}), nil
}

func (c *commandContext) close() error {
	if c.stop != nil {
		c.stop()
	}
	if c.ledger == nil {
		return nil
	}
	err := c.ledger.Close()
	c.ledger = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// resolveDay validates --date, defaulting to today in UTC.
func resolveDay(value string) (string, error) {
	day, err := stage.ParseDay(strings.TrimSpace(value), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return day, nil
}
