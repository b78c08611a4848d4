package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"draftline/internal/config"
	"draftline/internal/notifications"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newServer(t *testing.T, status int) (*httptest.Server, *[]captured) {
	t.Helper()
	var mu sync.Mutex
	var got []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		defer mu.Unlock()
		got = append(got, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func configFor(url string) *config.Config {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = url
	cfg.Notifications.RunSummary = true
	cfg.Notifications.Errors = true
	return &cfg
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyStageFailed(context.Background(), "scrape", errors.New("boom")); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestRunSummaryFormatting(t *testing.T) {
	srv, got := newServer(t, http.StatusOK)
	svc := notifications.NewService(configFor(srv.URL))

	report := notifications.RunReport{Day: "2026-01-26", Drafts: 4, Images: 2, Rejected: 3, Duration: 90 * time.Second}
	if err := svc.NotifyRunCompleted(context.Background(), report); err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}
	report.Failed = []string{"images"}
	if err := svc.NotifyRunCompleted(context.Background(), report); err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}

	if len(*got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(*got))
	}
	first := (*got)[0]
	if first.title != "draftline - Drafts Ready" || first.tags != "draftline,run,completed" || first.priority != "" {
		t.Fatalf("unexpected headers %+v", first)
	}
	if !strings.Contains(first.body, "4 new drafts for 2026-01-26 (3 rejected) in 1m30s") || !strings.Contains(first.body, "2 images") {
		t.Fatalf("unexpected body %q", first.body)
	}
	second := (*got)[1]
	if second.priority != "high" || !strings.Contains(second.body, "Failed stages: images") {
		t.Fatalf("unexpected partial report %+v", second)
	}
}

func TestStageFailureFormatting(t *testing.T) {
	srv, got := newServer(t, http.StatusOK)
	svc := notifications.NewService(configFor(srv.URL))

	if err := svc.NotifyStageFailed(context.Background(), "generate", errors.New("llm unavailable")); err != nil {
		t.Fatalf("NotifyStageFailed: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*got))
	}
	if (*got)[0].body != "❌ Error in generate: llm unavailable" || (*got)[0].priority != "high" {
		t.Fatalf("unexpected notification %+v", (*got)[0])
	}
}

func TestTogglesSuppressNotifications(t *testing.T) {
	srv, got := newServer(t, http.StatusOK)
	cfg := configFor(srv.URL)
	cfg.Notifications.RunSummary = false
	cfg.Notifications.Errors = false
	svc := notifications.NewService(cfg)

	_ = svc.NotifyRunCompleted(context.Background(), notifications.RunReport{Day: "2026-01-26"})
	_ = svc.NotifyStageFailed(context.Background(), "scrape", errors.New("x"))
	if len(*got) != 0 {
		t.Fatalf("expected no requests, got %d", len(*got))
	}
	if err := svc.TestNotification(context.Background()); err != nil || len(*got) != 1 {
		t.Fatalf("test notification should bypass toggles: err=%v count=%d", err, len(*got))
	}
}

func TestNtfyErrorStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusForbidden)
	svc := notifications.NewService(configFor(srv.URL))
	err := svc.TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ntfy returned 403") {
		t.Fatalf("expected status error, got %v", err)
	}
}
