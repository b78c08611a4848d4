package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"draftline/internal/config"
	"draftline/internal/drafts"
	"draftline/internal/logging"
	"draftline/internal/stage"
	"draftline/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T, llmURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	for _, key := range []string{"OPENROUTER_API_KEY", "LLM_API_KEY", "APIFY_API_KEY", "APIFY_TOKEN", "OPENAI_API_KEY", "NTFY_TOPIC"} {
		t.Setenv(key, "")
	}

	if llmURL == "" {
		llmURL = "http://127.0.0.1:1/unused"
	}
	configPath := filepath.Join(base, "draftline.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q

[llm]
api_key = "test"
base_url = %q

[scrape]
accounts = ["alice"]
providers = ["sample"]

[generation]
delay_seconds = 0

[voice]
providers = ["sample"]

[logging]
level = "error"
`, filepath.Join(base, "data"), llmURL)
	testsupport.WriteFile(t, configPath, content)
	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func (e *cliTestEnv) dataPath(parts ...string) string {
	return filepath.Join(append([]string{e.baseDir, "data"}, parts...)...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "draftline.toml is valid")
	requireContains(t, out, "scrape\t1 account(s), last 12h, providers sample")
	requireContains(t, out, "store\tkeeps newest 100 drafts in ")
	requireContains(t, out, "llm\tmodel ")
	requireContains(t, out, "key set")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Created "+target)
	requireContains(t, out, "[scrape] accounts")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
}

func TestRunRejectsInvalidDate(t *testing.T) {
	env := setupCLITestEnv(t, "")
	_, _, err := runCLI(t, []string{"run", "--date", "26-01-2026"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "invalid --date") {
		t.Fatalf("expected date validation error, got %v", err)
	}
}

func TestRunPipelineEndToEnd(t *testing.T) {
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"\"Draft: weekly reminder that shipping beats polishing\""}}]}`))
	}))
	defer llm.Close()

	env := setupCLITestEnv(t, llm.URL)
	testsupport.WriteJSON(t, env.dataPath("sample_posts.json"), []map[string]any{
		{"id": "42", "text": "Long enough sample post about building small developer tools", "author": map[string]any{"userName": "alice"}},
	})

	day := stage.Today(time.Now().UTC())
	out, _, err := runCLI(t, []string{"run", "--date", day}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "scrape   processed=1 produced=1")
	requireContains(t, out, "generate processed=1 produced=1")

	if _, err := os.Stat(env.dataPath("drafts", "pending_"+day+".json")); err != nil {
		t.Fatalf("expected dated snapshot: %v", err)
	}

	out, _, err = runCLI(t, []string{"drafts", "list", "--status", "pending"}, env.configPath)
	if err != nil {
		t.Fatalf("drafts list: %v", err)
	}
	requireContains(t, out, "weekly reminder that shipping beats polishing")
	requireContains(t, out, "@alice")

	out, _, err = runCLI(t, []string{"history", "--limit", "5"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "generate")
	requireContains(t, out, "ok")
}

func TestDraftsReview(t *testing.T) {
	env := setupCLITestEnv(t, "")
	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store := drafts.NewStore(cfg.DraftStorePath(), cfg.Store.MaxDrafts, logging.NewNop())
	if _, err := store.Merge(context.Background(), []drafts.Draft{
		{ID: "abc", CreatedAt: time.Now().UTC(), DraftText: "a pending draft", Status: drafts.StatusPending},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, _, err := runCLI(t, []string{"drafts", "approve", "abc", "--notes", "ship it"}, env.configPath)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	requireContains(t, out, "Draft abc approved")

	got := store.List(drafts.Filter{Status: drafts.StatusApproved})
	if len(got) != 1 || got[0].Notes != "ship it" {
		t.Fatalf("unexpected stored drafts %+v", got)
	}

	if _, _, err := runCLI(t, []string{"drafts", "reject", "missing"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown draft id")
	}
	if _, _, err := runCLI(t, []string{"drafts", "list", "--status", "archived"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestGenerateWithoutCredentialFails(t *testing.T) {
	env := setupCLITestEnv(t, "")
	content := strings.Replace(mustRead(t, env.configPath), `api_key = "test"`, `api_key = ""`, 1)
	testsupport.WriteFile(t, env.configPath, content)

	_, _, err := runCLI(t, []string{"generate"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "llm.api_key is required") {
		t.Fatalf("expected credential error, got %v", err)
	}
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("a  long\nline of text", 8); got != "a long …" {
		t.Fatalf("truncate long = %q", got)
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected failure while the sample file is missing")
	}
	requireContains(t, out, "sample: template pending")

	testsupport.WriteJSON(t, env.dataPath("sample_posts.json"), []map[string]any{{"text": "x"}})
	out, _, err = runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Stage generate\tok\tready")
}
