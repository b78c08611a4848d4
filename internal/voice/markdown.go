package voice

import (
	"regexp"
	"strings"
)

var (
	headingPattern = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*\s*$`)
	bulletPattern  = regexp.MustCompile(`^[-*+]\s+(.+)$`)
)

// ParseMarkdown extracts a Profile from the legacy markdown layout:
//
//   - every fenced block whose trimmed content exceeds MinExampleLength is an example
//   - every bullet under a "Topics" heading is a topic, across all lists in
//     that section, until the next heading or rule
//   - the raw text under a "Tone" heading, up to the next heading or rule, is the tone
//
// Missing sections leave the corresponding field empty.
func ParseMarkdown(text string) Profile {
	var (
		profile   Profile
		section   string
		inFence   bool
		fenceBody []string
		toneLines []string
	)

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				if example, ok := keepExample(strings.Join(fenceBody, "\n")); ok {
					profile.Examples = append(profile.Examples, example)
				}
				fenceBody = nil
			}
			inFence = !inFence
			continue
		}
		if inFence {
			fenceBody = append(fenceBody, line)
			continue
		}

		if match := headingPattern.FindStringSubmatch(trimmed); match != nil {
			section = strings.ToLower(strings.TrimSpace(match[1]))
			continue
		}
		if isRule(trimmed) {
			section = ""
			continue
		}

		switch section {
		case "topics":
			if match := bulletPattern.FindStringSubmatch(trimmed); match != nil {
				if topic := strings.TrimSpace(match[1]); topic != "" {
					profile.Topics = append(profile.Topics, topic)
				}
			}
		case "tone":
			toneLines = append(toneLines, line)
		}
	}

	profile.Tone = strings.TrimSpace(strings.Join(toneLines, "\n"))
	return profile
}

func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	return strings.Trim(line, "-") == "" || strings.Trim(line, "*") == "" || strings.Trim(line, "_") == ""
}
