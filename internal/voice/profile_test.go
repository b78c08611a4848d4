package voice

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const markdownProfile = "# Voice Profile: @KRAM_btc\n\n" +
	"## Tone\n" +
	"- Average post length: 84 characters\n" +
	"- Uses emojis: 40% of posts\n\n" +
	"## Topics\n" +
	"- Nft\n" +
	"-   Community  \n" +
	"* Crypto\n\n" +
	"## Examples\n\n" +
	"```\ngm frens, another day another mint. who's building?\n```\n\n" +
	"```\ntoo short\n```\n\n" +
	"```\nwagmi if we keep showing up for each other every single day\n```\n"

func TestParseMarkdownExtractsSections(t *testing.T) {
	profile := ParseMarkdown(markdownProfile)

	wantExamples := []string{
		"gm frens, another day another mint. who's building?",
		"wagmi if we keep showing up for each other every single day",
	}
	if !reflect.DeepEqual(profile.Examples, wantExamples) {
		t.Fatalf("examples = %#v", profile.Examples)
	}
	if !reflect.DeepEqual(profile.Topics, []string{"Nft", "Community", "Crypto"}) {
		t.Fatalf("topics = %#v", profile.Topics)
	}
	wantTone := "- Average post length: 84 characters\n- Uses emojis: 40% of posts"
	if profile.Tone != wantTone {
		t.Fatalf("tone = %q", profile.Tone)
	}
}

func TestParseMarkdownMissingSections(t *testing.T) {
	profile := ParseMarkdown("just some notes\nwith no structure at all\n")
	if !profile.Empty() {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestParseMarkdownToneStopsAtRule(t *testing.T) {
	profile := ParseMarkdown("## Tone\nplayful and loud\n---\nnot tone\n")
	if profile.Tone != "playful and loud" {
		t.Fatalf("tone = %q", profile.Tone)
	}
}

func TestParseMarkdownTopicsSpanSeparateLists(t *testing.T) {
	profile := ParseMarkdown("## Topics\n- Nft\n\nalso lately:\n- Memes\n## Other\n- not a topic\n")
	if !reflect.DeepEqual(profile.Topics, []string{"Nft", "Memes"}) {
		t.Fatalf("topics = %#v", profile.Topics)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	profile, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !profile.Empty() {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestLoadStructuredDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice_profile.yaml")
	doc := Document{
		Username:      "KRAM_btc",
		GeneratedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Tone:          ToneMetrics{AvgLength: 90, EmojiPercent: 25, AnalyzedPosts: 12, Notes: "dry humor"},
		CommonPhrases: []string{"gm frens"},
		Topics:        []string{"Nft", " "},
		Examples:      []string{"short", "this one is long enough to count as an example"},
	}
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	profile, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(profile.Examples, []string{"this one is long enough to count as an example"}) {
		t.Fatalf("examples = %#v", profile.Examples)
	}
	if !reflect.DeepEqual(profile.Topics, []string{"Nft"}) {
		t.Fatalf("topics = %#v", profile.Topics)
	}
	for _, want := range []string{"Average post length: 90", "Uses emojis: 25%", "dry humor", `"gm frens"`} {
		if !strings.Contains(profile.Tone, want) {
			t.Fatalf("tone missing %q:\n%s", want, profile.Tone)
		}
	}
}

func TestDecodeDocumentRejectsFutureSchema(t *testing.T) {
	if _, err := DecodeDocument([]byte("schema_version: 9\nusername: x\n")); err == nil {
		t.Fatal("expected unsupported schema error")
	}
}

func TestParseDetectsFormat(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{"yaml", "schema_version: 1\nusername: a\n", true},
		{"json", `{"schema_version": 1, "username": "a"}`, true},
		{"markdown", "## Tone\nwe mention schema_version: inline\n", false},
		{"indented", "notes:\n  schema_version: 1\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isStructured([]byte(tc.data)); got != tc.want {
				t.Fatalf("isStructured = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadUnreadablePathReturnsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "profile"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "profile")); err == nil {
		t.Fatal("expected error reading a directory")
	}
}
