package config

import (
	"os"
	"strings"
)

// ApplyEnv overrides cfg with values from the environment. Empty variables are ignored.
//
//	DATABASE_URL       database.dsn (selects postgres when no driver is configured)
//	QDRANT_URL         vector.url
//	QDRANT_API_KEY     vector.api_key
//	OPENAI_API_KEY     embedding.api_key and chat.api_key for the openai provider
//	GEMINI_API_KEY     embedding.api_key and chat.api_key for the gemini provider
//	ANTHROPIC_API_KEY  chat.api_key for the claude provider
//	EODHD_API_KEY      market.api_key for the eodhd provider
//	ALPACA_API_KEY     market.api_key for the alpaca provider
//	ALPACA_API_SECRET  market.api_secret for the alpaca provider
func ApplyEnv(cfg *Config) {
	setFromEnv(&cfg.Database.DSN, "DATABASE_URL")
	setFromEnv(&cfg.Vector.URL, "QDRANT_URL")
	setFromEnv(&cfg.Vector.APIKey, "QDRANT_API_KEY")

	if key := providerKeyEnv(cfg.Embedding.Provider); key != "" {
		setFromEnv(&cfg.Embedding.APIKey, key)
	}
	if key := providerKeyEnv(cfg.Chat.Provider); key != "" {
		setFromEnv(&cfg.Chat.APIKey, key)
	}

	switch strings.ToLower(cfg.Market.Provider) {
	case "alpaca":
		setFromEnv(&cfg.Market.APIKey, "ALPACA_API_KEY")
		setFromEnv(&cfg.Market.APISecret, "ALPACA_API_SECRET")
	default:
		setFromEnv(&cfg.Market.APIKey, "EODHD_API_KEY")
	}
}

func providerKeyEnv(provider string) string {
	switch strings.ToLower(provider) {
	case "", "openai":
		return "OPENAI_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "claude":
		return "ANTHROPIC_API_KEY"
	}
	return ""
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
