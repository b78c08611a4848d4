package post

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var (
	idAliases       = []string{"id", "id_str", "tweetId"}
	textAliases     = []string{"full_text", "text", "content", "rawContent"}
	createdAliases  = []string{"created_at", "createdAt", "timestamp"}
	usernameAliases = []string{"author.screen_name", "author.userName", "user.screen_name", "username", "screen_name"}
	likeAliases     = []string{"likeCount", "favorite_count", "likes", "engagement.likes"}
	shareAliases    = []string{"retweetCount", "retweet_count", "retweets", "engagement.shares"}
	replyAliases    = []string{"replyCount", "reply_count", "replies", "engagement.replies"}
	mediaAliases    = []string{"media", "entities.media", "extendedEntities.media"}
	mediaURLAliases = []string{"media_url_https", "url"}
)

// lookup resolves a dotted path such as "author.screen_name".
func lookup(record map[string]any, path string) (any, bool) {
	var current any = record
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// firstString returns the first alias holding a non-blank scalar.
func firstString(record map[string]any, aliases []string) string {
	for _, alias := range aliases {
		value, ok := lookup(record, alias)
		if !ok {
			continue
		}
		if s := scalarString(value); s != "" {
			return s
		}
	}
	return ""
}

// firstCount returns the first alias holding a non-zero count; absent or
// unparseable values count as zero.
func firstCount(record map[string]any, aliases []string) int {
	for _, alias := range aliases {
		value, ok := lookup(record, alias)
		if !ok {
			continue
		}
		if n := toInt(value); n != 0 {
			return n
		}
	}
	return 0
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e18 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func toInt(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

func mediaURLs(record map[string]any) []string {
	if value, ok := record["media_urls"].([]any); ok {
		urls := make([]string, 0, len(value))
		for _, item := range value {
			if url := scalarString(item); url != "" {
				urls = append(urls, url)
			}
		}
		return urls
	}
	for _, alias := range mediaAliases {
		value, ok := lookup(record, alias)
		if !ok {
			continue
		}
		items, ok := value.([]any)
		if !ok || len(items) == 0 {
			continue
		}
		urls := make([]string, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if url := firstString(obj, mediaURLAliases); url != "" {
				urls = append(urls, url)
			}
		}
		return urls
	}
	return nil
}
