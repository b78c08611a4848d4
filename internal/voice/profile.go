package voice

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"draftline/internal/textutil"
)

// MinExampleLength is the exclusive lower bound, in characters, for a
// trimmed example to be kept.
const MinExampleLength = 20

// Profile is the conditioning material handed to the draft generator.
type Profile struct {
	Examples []string
	Tone     string
	Topics   []string
}

// Empty reports whether the profile carries no conditioning at all.
func (p Profile) Empty() bool {
	return len(p.Examples) == 0 && strings.TrimSpace(p.Tone) == "" && len(p.Topics) == 0
}

// Load reads a profile from path. A missing file yields an empty profile and
// no error. Files declaring schema_version are read as structured documents;
// anything else is treated as the legacy markdown layout.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("read voice profile: %w", err)
	}
	return Parse(data)
}

// Parse detects the document format and extracts a Profile.
func Parse(data []byte) (Profile, error) {
	if isStructured(data) {
		doc, err := DecodeDocument(data)
		if err != nil {
			return Profile{}, err
		}
		return doc.Profile(), nil
	}
	return ParseMarkdown(string(data)), nil
}

// isStructured reports whether data is a schema-versioned document. Markdown
// profiles never carry a top-level schema_version key.
func isStructured(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return bytes.Contains(trimmed, []byte(`"schema_version"`))
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("schema_version:")) {
			return true
		}
	}
	return false
}

func keepExample(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, textutil.Length(trimmed) > MinExampleLength
}
