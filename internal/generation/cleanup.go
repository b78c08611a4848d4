package generation

import (
	"regexp"
	"strings"
)

var labelPattern = regexp.MustCompile(`(?i)^(post|tweet|draft):\s*`)

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
}

// Clean strips one symmetric pair of wrapping quotes and then a leading
// "Post:", "Tweet:" or "Draft:" label. Clean output passes through unchanged.
func Clean(raw string) string {
	text := strings.TrimSpace(raw)
	for _, pair := range quotePairs {
		if len(text) >= len(pair[0])+len(pair[1]) &&
			strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			text = strings.TrimSpace(text[len(pair[0]) : len(text)-len(pair[1])])
			break
		}
	}
	text = labelPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
