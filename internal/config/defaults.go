package config

const (
	defaultConfigPath          = "~/.config/draftline/config.toml"
	defaultDataDir             = "~/.local/share/draftline"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "anthropic/claude-sonnet-4"
	defaultLLMReferer          = "https://github.com/draftline/draftline"
	defaultLLMTitle            = "draftline"
	defaultLLMTimeoutSeconds   = 60
	defaultLLMMaxTokens        = 300
	defaultLLMTemperature      = 0.8
	defaultScrapeHoursBack     = 12
	defaultScrapeMaxItems      = 50
	defaultScrapeActorID       = "xtdata~twitter-x-scraper"
	defaultScrapePollInterval  = 10
	defaultScrapeMaxWait       = 180
	defaultApifyBaseURL        = "https://api.apify.com/v2"
	defaultMaxPosts            = 10
	defaultDelaySeconds        = 1.0
	defaultSimilarityThreshold = 0.5
	defaultMinTextLength       = 30
	defaultMinTextWithoutURLs  = 20
	defaultTargetLength        = 280
	defaultMaxExamples         = 5
	defaultPersonaHandle       = "KRAM_btc"
	defaultPermalinkBase       = "https://x.com"
	defaultMaxDrafts           = 100
	defaultVoiceMaxPosts       = 100
	defaultVoiceExampleCount   = 5
	defaultVoiceActorID        = "shanes~tweet-flash"
	defaultImagesBaseURL       = "https://api.openai.com/v1"
	defaultImagesModel         = "dall-e-3"
	defaultImagesSize          = "1024x1024"
	defaultImagesQuality       = "standard"
	defaultImagesDelaySeconds  = 3.0
	defaultImagesTimeout       = 120
	defaultNotifyTimeout       = 10

	defaultPersonaDescription = "You are ghostwriting posts for @KRAM_btc, a crypto and NFT " +
		"community member. Write casual, authentic posts that read like a real person, " +
		"not a brand. Never copy the source post; react to it with your own take."

	defaultCharacterDescription = "A cartoon mutant ape with green-tinted fur, wide expressive " +
		"eyes, and a streetwear hoodie, drawn in a bold digital illustration style."
)

var (
	defaultScrapeAccounts   = []string{"TheCaliApe", "tboe3D", "Gratefulape", "MookieNFT"}
	defaultScrapeProviders  = []string{"apify", "nitter"}
	defaultVoiceProviders   = []string{"apify", "nitter", "sample"}
	defaultNitterInstances  = []string{"nitter.privacydev.net", "nitter.poast.org", "nitter.bird.froth.zone"}
	validProviderNames      = map[string]struct{}{"apify": {}, "nitter": {}, "sample": {}}
	validImageSizes         = map[string]struct{}{"1024x1024": {}, "1792x1024": {}, "1024x1792": {}}
	validImageQualityLevels = map[string]struct{}{"standard": {}, "hd": {}}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			MaxTokens:      defaultLLMMaxTokens,
			Temperature:    defaultLLMTemperature,
		},
		Scrape: Scrape{
			Accounts:            append([]string(nil), defaultScrapeAccounts...),
			HoursBack:           defaultScrapeHoursBack,
			MaxItems:            defaultScrapeMaxItems,
			ActorID:             defaultScrapeActorID,
			Providers:           append([]string(nil), defaultScrapeProviders...),
			NitterInstances:     append([]string(nil), defaultNitterInstances...),
			PollIntervalSeconds: defaultScrapePollInterval,
			MaxWaitSeconds:      defaultScrapeMaxWait,
			ApifyBaseURL:        defaultApifyBaseURL,
		},
		Generation: Generation{
			MaxPosts:            defaultMaxPosts,
			DelaySeconds:        defaultDelaySeconds,
			SimilarityThreshold: defaultSimilarityThreshold,
			MinTextLength:       defaultMinTextLength,
			MinTextWithoutURLs:  defaultMinTextWithoutURLs,
			TargetLength:        defaultTargetLength,
			MaxExamples:         defaultMaxExamples,
			PersonaHandle:       defaultPersonaHandle,
			PersonaDescription:  defaultPersonaDescription,
			PermalinkBase:       defaultPermalinkBase,
		},
		Store: Store{
			MaxDrafts: defaultMaxDrafts,
		},
		Voice: Voice{
			Username:     defaultPersonaHandle,
			MaxPosts:     defaultVoiceMaxPosts,
			ExampleCount: defaultVoiceExampleCount,
			ActorID:      defaultVoiceActorID,
			Providers:    append([]string(nil), defaultVoiceProviders...),
		},
		Images: Images{
			BaseURL:              defaultImagesBaseURL,
			Model:                defaultImagesModel,
			Size:                 defaultImagesSize,
			Quality:              defaultImagesQuality,
			DelaySeconds:         defaultImagesDelaySeconds,
			TimeoutSeconds:       defaultImagesTimeout,
			CharacterDescription: defaultCharacterDescription,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			RunSummary:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
