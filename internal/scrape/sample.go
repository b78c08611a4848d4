package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"draftline/internal/fileutil"
	"draftline/internal/post"
)

// SampleProvider reads hand-collected posts from a JSON array on disk. When
// the file is missing a template is written for the operator to fill in.
type SampleProvider struct {
	path string
}

// NewSampleProvider builds a provider reading path.
func NewSampleProvider(path string) *SampleProvider {
	return &SampleProvider{path: path}
}

func (p *SampleProvider) Name() string { return "sample" }

func (p *SampleProvider) Fetch(_ context.Context, req Request) ([]post.Record, error) {
	records, err := readRecords(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := p.writeTemplate(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sample posts: %w", err)
	}
	if req.MaxItems > 0 && len(records) > req.MaxItems {
		records = records[:req.MaxItems]
	}
	for i, record := range records {
		if _, ok := record["id"]; !ok {
			record["id"] = fmt.Sprintf("sample-%d", i+1)
		}
	}
	return records, nil
}

func (p *SampleProvider) writeTemplate() error {
	template := []map[string]string{
		{"text": "Paste your post text here", "created_at": "2024-01-01"},
		{"text": "Add more examples...", "created_at": "2024-01-02"},
	}
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return err
	}
	if err := fileutil.WriteExclusive(p.path, append(data, '\n'), 0o644); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("sample posts: write template: %w", err)
	}
	return nil
}

func readRecords(path string) ([]post.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var records []post.Record
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
