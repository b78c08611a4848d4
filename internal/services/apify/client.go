package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://api.apify.com/v2"
	defaultHTTPTimeout  = 30 * time.Second
	defaultPollInterval = 10 * time.Second
	defaultMaxWait      = 180 * time.Second
)

// Run statuses reported by the platform.
const (
	StatusReady     = "READY"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusAborted   = "ABORTED"
	StatusTimedOut  = "TIMED-OUT"
)

var (
	// ErrRunFailed is returned when an actor run ends in a terminal non-success status.
	ErrRunFailed = errors.New("actor run failed")
	// ErrWaitExceeded is returned when a run does not finish within the bounded wait.
	ErrWaitExceeded = errors.New("actor run wait exceeded")
)

// Config captures connection and polling settings.
type Config struct {
	Token        string
	BaseURL      string
	PollInterval time.Duration
	MaxWait      time.Duration
}

// Run is the subset of run metadata the pipeline needs.
type Run struct {
	ID               string `json:"id"`
	ActorID          string `json:"actId"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

// Terminal reports whether the run will not change status again.
func (r Run) Terminal() bool {
	switch r.Status {
	case StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut:
		return true
	default:
		return false
	}
}

// Client starts actor runs, polls them, and reads their datasets.
type Client struct {
	cfg        Config
	httpClient *http.Client
	sleeper    func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithSleeper overrides how poll waits are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = defaultMaxWait
	}
	client := &Client{cfg: cfg, httpClient: &http.Client{Timeout: defaultHTTPTimeout}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// RunActor starts actorID with input, waits for it within the configured
// bound, and returns the run's dataset items.
func (c *Client) RunActor(ctx context.Context, actorID string, input any) ([]map[string]any, error) {
	run, err := c.StartRun(ctx, actorID, input)
	if err != nil {
		return nil, err
	}
	run, err = c.WaitForRun(ctx, run)
	if err != nil {
		return nil, err
	}
	return c.DatasetItems(ctx, run.DefaultDatasetID)
}

// StartRun launches an actor run.
func (c *Client) StartRun(ctx context.Context, actorID string, input any) (Run, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return Run{}, errors.New("apify start: actor id required")
	}
	if c.cfg.Token == "" {
		return Run{}, errors.New("apify start: token required")
	}
	body, err := json.Marshal(input)
	if err != nil {
		return Run{}, fmt.Errorf("apify start: encode input: %w", err)
	}
	var envelope struct {
		Data Run `json:"data"`
	}
	endpoint := c.cfg.BaseURL + "/acts/" + url.PathEscape(actorID) + "/runs"
	if err := c.do(ctx, http.MethodPost, endpoint, body, &envelope); err != nil {
		return Run{}, fmt.Errorf("apify start: %w", err)
	}
	if envelope.Data.ID == "" {
		return Run{}, errors.New("apify start: response missing run id")
	}
	return envelope.Data, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, runID string) (Run, error) {
	var envelope struct {
		Data Run `json:"data"`
	}
	endpoint := c.cfg.BaseURL + "/actor-runs/" + url.PathEscape(runID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return Run{}, fmt.Errorf("apify poll: %w", err)
	}
	return envelope.Data, nil
}

// WaitForRun polls until the run reaches a terminal status or the bounded
// wait elapses.
func (c *Client) WaitForRun(ctx context.Context, run Run) (Run, error) {
	var waited time.Duration
	for !run.Terminal() {
		if waited >= c.cfg.MaxWait {
			return run, fmt.Errorf("%w: run %s still %s after %s", ErrWaitExceeded, run.ID, run.Status, waited)
		}
		if err := c.sleep(ctx, c.cfg.PollInterval); err != nil {
			return run, err
		}
		waited += c.cfg.PollInterval
		next, err := c.GetRun(ctx, run.ID)
		if err != nil {
			return run, err
		}
		if next.ID == "" {
			next.ID = run.ID
		}
		if next.DefaultDatasetID == "" {
			next.DefaultDatasetID = run.DefaultDatasetID
		}
		run = next
	}
	if run.Status != StatusSucceeded {
		return run, fmt.Errorf("%w: run %s ended with status %s", ErrRunFailed, run.ID, run.Status)
	}
	return run, nil
}

// DatasetItems returns all items of a dataset. Numbers are decoded as
// json.Number so large post ids keep their exact digits.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	datasetID = strings.TrimSpace(datasetID)
	if datasetID == "" {
		return nil, errors.New("apify dataset: dataset id required")
	}
	endpoint := c.cfg.BaseURL + "/datasets/" + url.PathEscape(datasetID) + "/items?format=json&clean=true"
	var items []map[string]any
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, fmt.Errorf("apify dataset: %w", err)
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, target any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
