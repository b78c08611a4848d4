package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"draftline/internal/config"
)

const userAgent = "draftline/1.0"

// Service defines the notification surface exposed to the pipeline runner.
type Service interface {
	NotifyRunCompleted(ctx context.Context, report RunReport) error
	NotifyStageFailed(ctx context.Context, stage string, err error) error
	TestNotification(ctx context.Context) error
}

// RunReport summarizes one pipeline pass.
type RunReport struct {
	Day      string
	Drafts   int
	Images   int
	Rejected int
	Failed   []string
	Duration time.Duration
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		runSummary: cfg.Notifications.RunSummary,
		errors:     cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	runSummary bool
	errors     bool
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, report RunReport) error {
	if !n.runSummary {
		return nil
	}
	duration := report.Duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	title := "draftline - Drafts Ready"
	message := fmt.Sprintf("📝 %d new drafts for %s (%d rejected) in %s",
		report.Drafts, report.Day, report.Rejected, duration)
	if report.Images > 0 {
		message += fmt.Sprintf("\n🖼️ %d images generated", report.Images)
	}
	tags := []string{"draftline", "run", "completed"}
	priority := ""
	if len(report.Failed) > 0 {
		title = "draftline - Run Complete (with errors)"
		message += "\nFailed stages: " + strings.Join(report.Failed, ", ")
		tags[2] = "partial"
		priority = "high"
	}
	return n.send(ctx, payload{title: title, message: message, tags: tags, priority: priority})
}

func (n *ntfyService) NotifyStageFailed(ctx context.Context, stage string, err error) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if stage = strings.TrimSpace(stage); stage != "" {
		builder.WriteString(" in ")
		builder.WriteString(stage)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	return n.send(ctx, payload{
		title:    "draftline - Error",
		message:  builder.String(),
		tags:     []string{"draftline", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "draftline - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"draftline", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, RunReport) error     { return nil }
func (noopService) NotifyStageFailed(context.Context, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error                 { return nil }
