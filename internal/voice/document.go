package voice

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"draftline/internal/fileutil"
)

// SchemaVersion is the structured profile format this build reads and writes.
const SchemaVersion = 1

// ToneMetrics captures the measured style of the persona. Percentages are
// shares of analyzed posts, 0..100.
type ToneMetrics struct {
	AvgLength       int    `yaml:"avg_length"`
	CapsPercent     int    `yaml:"caps_percent"`
	EmojiPercent    int    `yaml:"emoji_percent"`
	HashtagPercent  int    `yaml:"hashtag_percent"`
	MentionPercent  int    `yaml:"mention_percent"`
	QuestionPercent int    `yaml:"question_percent"`
	ExclaimPercent  int    `yaml:"exclamation_percent"`
	Notes           string `yaml:"notes,omitempty"`
	AnalyzedPosts   int    `yaml:"analyzed_posts"`
}

// Document is the structured, versioned voice profile.
type Document struct {
	SchemaVersion int         `yaml:"schema_version"`
	Username      string      `yaml:"username"`
	GeneratedAt   time.Time   `yaml:"generated_at"`
	Source        string      `yaml:"source,omitempty"`
	Tone          ToneMetrics `yaml:"tone"`
	CommonPhrases []string    `yaml:"common_phrases,omitempty"`
	Topics        []string    `yaml:"topics,omitempty"`
	Examples      []string    `yaml:"examples,omitempty"`
}

// DecodeDocument parses a structured profile and checks its schema version.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode voice profile: %w", err)
	}
	if doc.SchemaVersion < 1 || doc.SchemaVersion > SchemaVersion {
		return Document{}, fmt.Errorf("voice profile: unsupported schema_version %d (supported: %d)", doc.SchemaVersion, SchemaVersion)
	}
	return doc, nil
}

// Save writes the document atomically as YAML.
func (d Document) Save(path string) error {
	if d.SchemaVersion == 0 {
		d.SchemaVersion = SchemaVersion
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode voice profile: %w", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// Profile converts the document into generator conditioning.
func (d Document) Profile() Profile {
	profile := Profile{Tone: d.Tone.Describe()}
	for _, example := range d.Examples {
		if trimmed, ok := keepExample(example); ok {
			profile.Examples = append(profile.Examples, trimmed)
		}
	}
	for _, topic := range d.Topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			profile.Topics = append(profile.Topics, trimmed)
		}
	}
	if len(d.CommonPhrases) > 0 {
		quoted := make([]string, 0, len(d.CommonPhrases))
		for _, phrase := range d.CommonPhrases {
			quoted = append(quoted, fmt.Sprintf("%q", phrase))
		}
		profile.Tone = strings.TrimSpace(profile.Tone + "\n- Common phrases: " + strings.Join(quoted, ", "))
	}
	return profile
}

// Describe renders the metrics as the tone text block the generator expects.
// Zero metrics from an empty analysis produce only the notes.
func (m ToneMetrics) Describe() string {
	var b strings.Builder
	if m.AnalyzedPosts > 0 || m.AvgLength > 0 {
		fmt.Fprintf(&b, "- Average post length: %d characters\n", m.AvgLength)
		fmt.Fprintf(&b, "- Uses ALL CAPS for emphasis: %d%% of posts\n", m.CapsPercent)
		fmt.Fprintf(&b, "- Uses emojis: %d%% of posts\n", m.EmojiPercent)
		fmt.Fprintf(&b, "- Uses hashtags: %d%% of posts\n", m.HashtagPercent)
		fmt.Fprintf(&b, "- Mentions others: %d%% of posts\n", m.MentionPercent)
		fmt.Fprintf(&b, "- Asks questions: %d%% of posts\n", m.QuestionPercent)
		fmt.Fprintf(&b, "- Uses exclamations: %d%% of posts\n", m.ExclaimPercent)
	}
	if notes := strings.TrimSpace(m.Notes); notes != "" {
		b.WriteString(notes)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}
