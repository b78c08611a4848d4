package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var urlPattern = regexp.MustCompile(`(?i)\bhttps?://\S+`)

// StripURLs removes http(s) links and trims the remainder.
func StripURLs(text string) string {
	return strings.TrimSpace(urlPattern.ReplaceAllString(text, ""))
}

// Length counts characters (runes), not bytes.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}
