package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hyperjump/finsight/internal/analysis"
	"github.com/hyperjump/finsight/internal/config"
	"github.com/hyperjump/finsight/internal/embedding"
	"github.com/hyperjump/finsight/internal/finance"
	"github.com/hyperjump/finsight/internal/indexer"
	"github.com/hyperjump/finsight/internal/llm"
	"github.com/hyperjump/finsight/internal/marketdata"
	"github.com/hyperjump/finsight/internal/news"
	"github.com/hyperjump/finsight/internal/pipeline"
	"github.com/hyperjump/finsight/internal/retrieval"
	"github.com/hyperjump/finsight/internal/storage"
	"github.com/hyperjump/finsight/internal/vector"
	"go.uber.org/zap"
)

// Components holds initialized application components.
type Components struct {
	Storage    storage.Storage
	Embedder   embedding.Embedder
	Collection vector.Collection
	Pipeline   *pipeline.Pipeline
}

// Close releases all resources.
func (c *Components) Close() {
	if c.Collection != nil {
		_ = c.Collection.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

// initializeComponents wires the pipeline from cfg. httpClient is used for news sources;
// nil builds one with the configured news timeout.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger, httpClient *http.Client) (*Components, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Components{}
	store, err := storage.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.Storage = store

	embedder, err := embedding.NewEmbedder(ctx, cfg.Embedding)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	c.Embedder = embedder

	collection, err := vector.NewCollection(cfg.Vector, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize vector collection: %w", err)
	}
	c.Collection = collection

	chat, err := llm.NewChatModel(ctx, cfg.Chat)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}
	provider, err := marketdata.NewProvider(cfg.Market, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize market data provider: %w", err)
	}
	chain, err := news.DefaultChain(cfg.News, httpClient, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize news sources: %w", err)
	}

	c.Pipeline = pipeline.New(pipeline.Deps{
		Finance:        finance.NewFetcher(provider, store, finance.WithLogger(logger)),
		News:           chain,
		Dedup:          news.NewDeduplicator(store, logger),
		Indexer:        indexer.NewIndexer(embedder, collection, indexer.WithLogger(logger)),
		Retriever:      retrieval.NewRetriever(embedder, collection, retrieval.WithDefaultLimit(cfg.Retrieval.Limit), retrieval.WithLogger(logger)),
		Composer:       analysis.NewComposer(chat, logger),
		RetrievalLimit: cfg.Retrieval.Limit,
		Logger:         logger,
	})
	logger.Info("components initialized",
		zap.String("database", cfg.Database.Driver),
		zap.String("vector_backend", cfg.Vector.Backend),
		zap.String("embedding", cfg.Embedding.Provider),
		zap.String("chat", cfg.Chat.Provider+"/"+chat.Model()),
		zap.String("market", provider.Name()))
	return c, nil
}
