package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"draftline/internal/logging"
	"draftline/internal/post"
)

// Request describes what to collect.
type Request struct {
	Accounts []string
	Since    time.Time
	MaxItems int
}

// Provider is one source of raw post records.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]post.Record, error)
}

var (
	// ErrNoResults is returned by Chain when every provider came back empty
	// without failing.
	ErrNoResults = errors.New("no provider returned posts")
	// ErrProvidersFailed is returned when no provider yielded posts and at
	// least one of them failed.
	ErrProvidersFailed = errors.New("scrape providers failed")
)

// Chain tries providers in order and returns the first non-empty result.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds a chain over providers, in priority order.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logging.NewComponentLogger(logger, "provider-chain")}
}

// Providers lists the chain's provider names in order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Fetch returns the records of the first provider yielding any, together with
// that provider's name. Provider errors are logged and the next one is tried.
func (c *Chain) Fetch(ctx context.Context, req Request) ([]post.Record, string, error) {
	var errs []error
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		logger := logging.WithContext(ctx, c.logger).With(logging.String("provider", provider.Name()))
		records, err := provider.Fetch(ctx, req)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			logging.WarnWithContext(logger, "provider failed; trying next", "provider_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check provider credentials and availability"),
				logging.String(logging.FieldImpact, "falling back to the next provider"),
			)
			continue
		}
		if len(records) == 0 {
			logger.Info("provider returned no posts; trying next")
			continue
		}
		logger.Info("provider returned posts", logging.Int("records", len(records)))
		return records, provider.Name(), nil
	}
	if len(errs) > 0 {
		return nil, "", fmt.Errorf("%w: %w", ErrProvidersFailed, errors.Join(errs...))
	}
	return nil, "", ErrNoResults
}
