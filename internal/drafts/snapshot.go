package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"draftline/internal/fileutil"
)

const maxSnapshotSuffix = 1000

// WriteSnapshot records exactly batch as an immutable dated copy. The base
// path is never overwritten: when it exists the batch goes to <name>-2.json,
// <name>-3.json, and so on. The written path is returned.
func WriteSnapshot(basePath string, batch []Draft) (string, error) {
	if batch == nil {
		batch = []Draft{}
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	ext := filepath.Ext(basePath)
	stem := strings.TrimSuffix(basePath, ext)
	for n := 1; n <= maxSnapshotSuffix; n++ {
		candidate := basePath
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
		}
		err := fileutil.WriteExclusive(candidate, data, 0o644)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("write snapshot: %w", err)
		}
	}
	return "", fmt.Errorf("write snapshot: more than %d snapshots for %s", maxSnapshotSuffix, basePath)
}

// LoadSnapshot reads a snapshot written by WriteSnapshot.
func LoadSnapshot(path string) ([]Draft, error) {
	return readDrafts(path)
}
