package voice

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"draftline/internal/post"
	"draftline/internal/textutil"
)

var capsWordPattern = regexp.MustCompile(`\b[A-Z]{2,}\b`)

var phraseStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"to": {}, "of": {}, "and": {}, "in": {}, "that": {}, "it": {}, "for": {}, "on": {}, "with": {},
}

type topicKeywords struct {
	topic    string
	keywords []string
}

// topicTable is ordered so ties rank deterministically.
var topicTable = []topicKeywords{
	{"nft", []string{"nft", "nfts", "mint", "minted", "collection", "pfp"}},
	{"crypto", []string{"crypto", "bitcoin", "btc", "eth", "ethereum", "token", "coin"}},
	{"trading", []string{"buy", "sell", "trade", "trading", "pump", "dump", "bullish", "bearish"}},
	{"community", []string{"gm", "wagmi", "ngmi", "fam", "community", "apes", "frens"}},
	{"art", []string{"art", "artist", "create", "creative", "design"}},
	{"defi", []string{"defi", "yield", "stake", "staking", "apy"}},
	{"gaming", []string{"game", "gaming", "play", "metaverse"}},
	{"culture", []string{"irl", "vibes", "mood", "energy", "based"}},
}

const (
	minPhraseWords   = 2
	maxPhraseWords   = 4
	phraseCandidates = 20
	maxPhrases       = 10
)

// Analyze builds a structured profile from the persona's own posts.
func Analyze(username string, posts []post.Post, exampleCount int, now time.Time) Document {
	texts := make([]string, 0, len(posts))
	for _, p := range posts {
		if cleaned := textutil.StripURLs(p.Text); cleaned != "" {
			texts = append(texts, cleaned)
		}
	}
	return Document{
		SchemaVersion: SchemaVersion,
		Username:      username,
		GeneratedAt:   now.UTC(),
		Tone:          measureTone(texts),
		CommonPhrases: commonPhrases(texts),
		Topics:        rankTopics(texts),
		Examples:      selectExamples(posts, exampleCount),
	}
}

func measureTone(texts []string) ToneMetrics {
	metrics := ToneMetrics{AnalyzedPosts: len(texts)}
	if len(texts) == 0 {
		return metrics
	}
	var caps, emoji, hashtags, mentions, questions, exclaims, totalLength int
	for _, text := range texts {
		totalLength += textutil.Length(text)
		if capsWordPattern.MatchString(text) {
			caps++
		}
		if containsEmoji(text) {
			emoji++
		}
		if strings.Contains(text, "#") {
			hashtags++
		}
		if strings.Contains(text, "@") {
			mentions++
		}
		if strings.Contains(text, "?") {
			questions++
		}
		if strings.Contains(text, "!") {
			exclaims++
		}
	}
	total := len(texts)
	metrics.AvgLength = totalLength / total
	metrics.CapsPercent = percent(caps, total)
	metrics.EmojiPercent = percent(emoji, total)
	metrics.HashtagPercent = percent(hashtags, total)
	metrics.MentionPercent = percent(mentions, total)
	metrics.QuestionPercent = percent(questions, total)
	metrics.ExclaimPercent = percent(exclaims, total)
	return metrics
}

func containsEmoji(text string) bool {
	for _, r := range text {
		if r >= 0x1F300 && r <= 0x1F9FF {
			return true
		}
	}
	return false
}

func percent(n, total int) int {
	return int(math.Round(float64(n) / float64(total) * 100))
}

type phraseCount struct {
	phrase string
	count  int
	first  int
}

// commonPhrases returns recurring 2..4 word phrases that are not made only of
// stopwords, most frequent first, ties in order of first appearance.
func commonPhrases(texts []string) []string {
	counts := make(map[string]*phraseCount)
	order := 0
	for _, text := range texts {
		words := textutil.Words(text)
		for n := minPhraseWords; n <= maxPhraseWords; n++ {
			for i := 0; i+n <= len(words); i++ {
				gram := words[i : i+n]
				if allStopwords(gram) {
					continue
				}
				phrase := strings.Join(gram, " ")
				entry, ok := counts[phrase]
				if !ok {
					entry = &phraseCount{phrase: phrase, first: order}
					counts[phrase] = entry
					order++
				}
				entry.count++
			}
		}
	}

	ranked := make([]*phraseCount, 0, len(counts))
	for _, entry := range counts {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})
	if len(ranked) > phraseCandidates {
		ranked = ranked[:phraseCandidates]
	}

	phrases := make([]string, 0, maxPhrases)
	for _, entry := range ranked {
		if entry.count < 2 {
			break
		}
		phrases = append(phrases, entry.phrase)
		if len(phrases) == maxPhrases {
			break
		}
	}
	return phrases
}

func allStopwords(words []string) bool {
	for _, w := range words {
		if _, ok := phraseStopwords[w]; !ok {
			return false
		}
	}
	return true
}

// rankTopics counts keyword mentions across all texts and returns the topics
// with at least one mention, title-cased, most mentioned first.
func rankTopics(texts []string) []string {
	mentions := make(map[string]int)
	for _, text := range texts {
		for _, w := range textutil.Words(text) {
			mentions[w]++
		}
	}

	type scored struct {
		topic string
		count int
	}
	var ranked []scored
	for _, entry := range topicTable {
		total := 0
		for _, keyword := range entry.keywords {
			total += mentions[keyword]
		}
		if total > 0 {
			ranked = append(ranked, scored{topic: entry.topic, count: total})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })

	title := cases.Title(language.English)
	topics := make([]string, 0, len(ranked))
	for _, entry := range ranked {
		topics = append(topics, title.String(entry.topic))
	}
	return topics
}

// selectExamples picks the highest-engagement posts that are long enough and
// not reshares.
func selectExamples(posts []post.Post, count int) []string {
	if count <= 0 {
		return nil
	}
	sorted := append([]post.Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Engagement.Total() > sorted[j].Engagement.Total()
	})
	examples := make([]string, 0, count)
	for _, p := range sorted {
		if p.IsRetweet() {
			continue
		}
		if text, ok := keepExample(p.Text); ok {
			examples = append(examples, text)
			if len(examples) == count {
				break
			}
		}
	}
	return examples
}
