package config

import "time"

const (
	DefaultCollection     = "news_articles"
	DefaultDimensions     = 1536
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultChatModel      = "gpt-4o-mini"
	DefaultFinvizURL      = "https://finviz.com"
	DefaultFeedURL        = "https://news.google.com/rss/search?q=%s"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Driver == "" {
		if cfg.Database.DSN != "" {
			cfg.Database.Driver = "postgres"
		} else {
			cfg.Database.Driver = "sqlite"
		}
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "./data/finsight.db"
	}
	if cfg.Vector.Backend == "" {
		cfg.Vector.Backend = "qdrant"
	}
	if cfg.Vector.URL == "" {
		cfg.Vector.URL = "localhost:6334"
	}
	if cfg.Vector.Collection == "" {
		cfg.Vector.Collection = DefaultCollection
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.Model == "" {
		switch cfg.Embedding.Provider {
		case "gemini":
			cfg.Embedding.Model = "gemini-embedding-001"
		default:
			cfg.Embedding.Model = DefaultEmbeddingModel
		}
	}
	if cfg.Embedding.Dimensions == 0 {
		if cfg.Vector.Dimensions != 0 {
			cfg.Embedding.Dimensions = cfg.Vector.Dimensions
		} else {
			cfg.Embedding.Dimensions = DefaultDimensions
		}
	}
	if cfg.Vector.Dimensions == 0 {
		cfg.Vector.Dimensions = cfg.Embedding.Dimensions
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1000
	}
	if cfg.Chat.Provider == "" {
		cfg.Chat.Provider = "openai"
	}
	if cfg.Chat.Model == "" {
		switch cfg.Chat.Provider {
		case "gemini":
			cfg.Chat.Model = "gemini-2.5-flash"
		case "claude":
			cfg.Chat.Model = "claude-sonnet-4-5"
		default:
			cfg.Chat.Model = DefaultChatModel
		}
	}
	if cfg.Chat.Timeout == 0 {
		cfg.Chat.Timeout = 60 * time.Second
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = 1024
	}
	if cfg.Market.Provider == "" {
		cfg.Market.Provider = "eodhd"
	}
	if cfg.Market.Exchange == "" {
		cfg.Market.Exchange = "US"
	}
	if cfg.Market.RateLimit == 0 {
		cfg.Market.RateLimit = 10
	}
	if cfg.Market.Timeout == 0 {
		cfg.Market.Timeout = 30 * time.Second
	}
	if cfg.News.Limit == 0 {
		cfg.News.Limit = 5
	}
	if cfg.News.Timeout == 0 {
		cfg.News.Timeout = 15 * time.Second
	}
	if cfg.News.UserAgent == "" {
		cfg.News.UserAgent = DefaultUserAgent
	}
	if cfg.News.FinvizURL == "" {
		cfg.News.FinvizURL = DefaultFinvizURL
	}
	if cfg.News.FeedURL == "" {
		cfg.News.FeedURL = DefaultFeedURL
	}
	if cfg.Retrieval.Limit == 0 {
		cfg.Retrieval.Limit = 3
	}
}
