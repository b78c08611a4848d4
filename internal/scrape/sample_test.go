package scrape

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSampleProviderWritesTemplateWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_posts.json")
	records, err := NewSampleProvider(path).Fetch(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("template not written: %v", err)
	}
	var template []map[string]string
	if err := json.Unmarshal(data, &template); err != nil {
		t.Fatalf("template invalid: %v", err)
	}
	if len(template) != 2 {
		t.Fatalf("unexpected template %v", template)
	}
}

func TestSampleProviderReadsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_posts.json")
	content := `[{"text":"first example post","created_at":"2024-01-01","likes":3},{"id":"x9","text":"second"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := NewSampleProvider(path).Fetch(context.Background(), Request{MaxItems: 5})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["id"] != "sample-1" || records[1]["id"] != "x9" {
		t.Fatalf("unexpected ids %v %v", records[0]["id"], records[1]["id"])
	}
	if _, ok := records[0]["likes"].(json.Number); !ok {
		t.Fatalf("expected json.Number counts, got %T", records[0]["likes"])
	}
}
