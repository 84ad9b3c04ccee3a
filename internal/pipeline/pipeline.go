// Package pipeline runs the fetch, deduplicate, index, retrieve and compose steps that turn a
// ticker into an investment analysis.
package pipeline

import (
	"context"
	"time"

	"github.com/hyperjump/finsight/internal/models"
	"github.com/hyperjump/finsight/internal/news"
	"go.uber.org/zap"
)

// FinanceFetcher returns the current snapshot for a ticker.
type FinanceFetcher interface {
	Fetch(ctx context.Context, ticker string) (*models.FinanceSnapshot, error)
}

// NewsFetcher returns candidate articles for a ticker.
type NewsFetcher interface {
	Fetch(ctx context.Context, ticker string) news.ChainResult
}

// Deduplicator stores candidates and returns the ones not seen before.
type Deduplicator interface {
	Filter(ctx context.Context, ticker string, candidates []models.NewsArticle) ([]models.NewsArticle, error)
}

// Indexer embeds and stores articles for retrieval.
type Indexer interface {
	IndexArticles(ctx context.Context, articles []models.NewsArticle) (int, error)
}

// Retriever returns the stored articles most relevant to a ticker.
type Retriever interface {
	Retrieve(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error)
}

// Composer writes the analysis text.
type Composer interface {
	Compose(ctx context.Context, ticker string, snap *models.FinanceSnapshot, news []models.NewsArticle) (string, error)
}

// Deps are the collaborators of a Pipeline.
type Deps struct {
	Finance   FinanceFetcher
	News      NewsFetcher
	Dedup     Deduplicator
	Indexer   Indexer
	Retriever Retriever
	Composer  Composer
	// RetrievalLimit is passed to the retriever; <= 0 lets it pick its default.
	RetrievalLimit int
	Logger         *zap.Logger
}

// Pipeline runs one analysis per call. It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	deps   Deps
	logger *zap.Logger
}

// New creates a pipeline.
func New(deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{deps: deps, logger: logger}
}

// Run analyzes ticker. A finance failure aborts before any news work and satisfies
// errors.Is(err, finance.ErrFetch). Missing news is not an error.
func (p *Pipeline) Run(ctx context.Context, ticker string) (*models.Analysis, error) {
	start := time.Now()
	ticker = models.NormalizeTicker(ticker)
	log := p.logger.With(zap.String("ticker", ticker))
	res := &models.Analysis{Ticker: ticker}

	enter := func(s Stage) {
		res.Stage = s.String()
		log.Debug("pipeline stage", zap.String("stage", s.String()))
	}
	fail := func(s Stage, err error) (*models.Analysis, error) {
		log.Info("pipeline failed", zap.String("stage", s.String()), zap.Duration("took", time.Since(start)), zap.Error(err))
		return nil, &StageError{Stage: s, Err: err}
	}

	enter(StageFetchingFinance)
	snap, err := p.deps.Finance.Fetch(ctx, ticker)
	if err != nil {
		return fail(StageFetchingFinance, err)
	}
	res.Snapshot = snap

	enter(StageFetchingNews)
	found := p.deps.News.Fetch(ctx, ticker)
	for _, a := range found.Attempts {
		if a.Err != nil {
			log.Debug("news source error recovered", zap.String("source", a.Source), zap.Error(a.Err))
		}
	}
	res.NewsSource = found.Source

	enter(StageDeduplicating)
	fresh, err := p.deps.Dedup.Filter(ctx, ticker, found.Articles)
	if err != nil {
		return fail(StageDeduplicating, err)
	}
	res.Articles = fresh

	if len(fresh) > 0 {
		enter(StageIndexing)
		n, err := p.deps.Indexer.IndexArticles(ctx, fresh)
		if err != nil {
			return fail(StageIndexing, err)
		}
		log.Debug("articles indexed", zap.Int("points", n))
	}

	enter(StageRetrieving)
	related, err := p.deps.Retriever.Retrieve(ctx, ticker, p.deps.RetrievalLimit)
	if err != nil {
		return fail(StageRetrieving, err)
	}
	res.Context = related

	enter(StageComposing)
	text, err := p.deps.Composer.Compose(ctx, ticker, snap, related)
	if err != nil {
		return fail(StageComposing, err)
	}
	res.Text = text

	enter(StageDone)
	res.Duration = time.Since(start)
	log.Info("analysis complete",
		zap.String("news_source", found.Source),
		zap.Int("candidates", len(found.Articles)),
		zap.Int("new_articles", len(fresh)),
		zap.Int("context", len(related)),
		zap.Duration("took", res.Duration))
	return res, nil
}

