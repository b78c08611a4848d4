package imagery

import (
	"strings"

	"draftline/internal/textutil"
)

// Theme describes the scene an image should depict.
type Theme struct {
	Type      string
	Mood      string
	TimeOfDay string
	Elements  []string
	Colors    []string
	Setting   string
}

type themeRule struct {
	keywords []string
	theme    Theme
}

// themeRules are checked in order; the first rule with a matching keyword wins.
var themeRules = []themeRule{
	{
		keywords: []string{"gm", "good morning", "morning", "wake up", "rise"},
		theme: Theme{
			Type: "morning", Mood: "cheerful", TimeOfDay: "sunrise",
			Elements: []string{"coffee cup", "sunrise", "warm orange glow", "steam rising"},
			Colors:   []string{"orange", "gold", "pink", "warm tones"},
			Setting:  "cozy morning scene with sunrise through window",
		},
	},
	{
		keywords: []string{"gn", "good night", "night", "sleep", "rest"},
		theme: Theme{
			Type: "night", Mood: "peaceful", TimeOfDay: "night",
			Elements: []string{"moon", "stars", "cozy blanket", "night sky"},
			Colors:   []string{"deep blue", "purple", "silver", "soft glow"},
			Setting:  "peaceful night scene with starry sky",
		},
	},
	{
		keywords: []string{"bitcoin", "btc", "mining", "bitaxe", "sats", "hash", "miner"},
		theme: Theme{
			Type: "bitcoin", Mood: "tech-focused",
			Elements: []string{"bitcoin symbols", "mining equipment", "orange glow", "circuit patterns"},
			Colors:   []string{"orange", "gold", "black", "electric blue"},
			Setting:  "futuristic mining setup with glowing screens",
		},
	},
	{
		keywords: []string{"otherside", "metaverse", "virtual", "avatar", "nexus"},
		theme: Theme{
			Type: "metaverse", Mood: "futuristic",
			Elements: []string{"portal", "digital landscape", "floating islands", "neon lights"},
			Colors:   []string{"neon purple", "cyan", "pink", "electric blue"},
			Setting:  "surreal metaverse landscape with floating elements",
		},
	},
	{
		keywords: []string{"nft", "mayc", "bayc", "ape", "apes", "community", "fam", "web3"},
		theme: Theme{
			Type: "community", Mood: "social",
			Elements: []string{"group gathering", "digital art frames", "community vibes"},
			Colors:   []string{"purple", "blue", "gold", "green"},
			Setting:  "vibrant web3 community space",
		},
	},
	{
		keywords: []string{"weekend", "saturday", "sunday", "chill", "relax", "vibes"},
		theme: Theme{
			Type: "weekend", Mood: "relaxed",
			Elements: []string{"lounging", "tropical elements", "sunglasses", "beach vibes"},
			Colors:   []string{"teal", "coral", "sunset orange", "palm green"},
			Setting:  "tropical relaxation scene",
		},
	},
	{
		keywords: []string{"let's go", "lfg", "huge", "bullish", "pump", "moon", "wagmi"},
		theme: Theme{
			Type: "hype", Mood: "excited",
			Elements: []string{"rocket", "explosion effects", "energy burst", "confetti"},
			Colors:   []string{"bright green", "gold", "electric purple", "white flash"},
			Setting:  "explosive celebration with energy effects",
		},
	},
}

var generalTheme = Theme{
	Type:    "general",
	Mood:    "energetic",
	Colors:  []string{"purple", "blue", "gold"},
	Setting: "abstract crypto/web3 background",
}

// Classify picks the theme for a draft. Single-word keywords match whole
// words; multi-word keywords match as phrases.
func Classify(text string) Theme {
	lower := strings.ToLower(text)
	words := textutil.WordSet(text)
	for _, rule := range themeRules {
		for _, keyword := range rule.keywords {
			if matches(keyword, lower, words) {
				return rule.theme
			}
		}
	}
	return generalTheme
}

func matches(keyword, lower string, words map[string]struct{}) bool {
	if strings.ContainsAny(keyword, " '") {
		return strings.Contains(lower, keyword)
	}
	_, ok := words[keyword]
	return ok
}
