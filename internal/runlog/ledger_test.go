package runlog_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"draftline/internal/runlog"
	"draftline/internal/stage"
	"draftline/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ledger := testsupport.MustOpenLedger(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"scrape", "generate", "images"} {
		_, err := ledger.Record(ctx, runlog.Entry{
			CorrelationID: "corr-1",
			Stage:         name,
			Day:           "2026-02-01",
			StartedAt:     base.Add(time.Duration(i) * time.Minute),
			FinishedAt:    base.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Summary:       stage.Summary{Processed: 10, Produced: i, Rejected: 1},
			Outcome:       "ok",
		})
		if err != nil {
			t.Fatalf("Record %s: %v", name, err)
		}
	}

	entries, err := ledger.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Stage != "images" || entries[1].Stage != "generate" {
		t.Fatalf("unexpected order: %s, %s", entries[0].Stage, entries[1].Stage)
	}
	if entries[0].Summary.Produced != 2 || entries[0].Duration() != 30*time.Second {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	all, err := ledger.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ledger, err := runlog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	now := time.Now()
	if _, err := ledger.Record(context.Background(), runlog.Entry{
		CorrelationID: "c", Stage: "scrape", Day: "2026-02-02",
		StartedAt: now, FinishedAt: now, Outcome: "external", Error: "boom",
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := runlog.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Error != "boom" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE schema_version (version INTEGER NOT NULL); INSERT INTO schema_version VALUES (99);"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = db.Close()

	_, err = runlog.Open(path)
	if !errors.Is(err, runlog.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
