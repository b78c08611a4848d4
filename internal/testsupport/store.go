package testsupport

import (
	"testing"

	"draftline/internal/config"
	"draftline/internal/runlog"
)

// MustOpenLedger opens the run ledger for tests and registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *runlog.Ledger {
	t.Helper()

	ledger, err := runlog.Open(cfg.Paths.RunLedger)
	if err != nil {
		t.Fatalf("runlog.Open: %v", err)
	}
	t.Cleanup(func() {
		ledger.Close()
	})
	return ledger
}
