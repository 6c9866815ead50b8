package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SentiPulse/internal/domain/models"
	drepo "SentiPulse/internal/domain/repository"
	"SentiPulse/internal/service/cache"
	sentimentsvc "SentiPulse/internal/services/sentiment"
	signalsvc "SentiPulse/internal/services/signal"
	pkgcache "SentiPulse/pkg/cache"
	applogger "SentiPulse/pkg/logger"
)

// Analyzer runs the per-symbol pipeline: fetch candles and news, aggregate
// sentiment, fuse into a signal, then cache and publish the report.
type Analyzer struct {
	market    drepo.MarketData
	news      drepo.NewsSource
	agg       *sentimentsvc.Aggregator
	gen       *signalsvc.Generator
	pub       drepo.SignalPublisher
	reports   *cache.TTLCache
	sources   pkgcache.Service
	metrics   drepo.Metrics
	l         *applogger.Logger
	reportTTL time.Duration
	sourceTTL time.Duration
}

// NewAnalyzer creates an Analyzer. pub may be nil when publishing is
// disabled; reportTTL <= 0 disables the report cache.
func NewAnalyzer(
	market drepo.MarketData,
	news drepo.NewsSource,
	agg *sentimentsvc.Aggregator,
	gen *signalsvc.Generator,
	pub drepo.SignalPublisher,
	reports *cache.TTLCache,
	metrics drepo.Metrics,
	reportTTL time.Duration,
) *Analyzer {
	return &Analyzer{
		market:    market,
		news:      news,
		agg:       agg,
		gen:       gen,
		pub:       pub,
		reports:   reports,
		metrics:   metrics,
		reportTTL: reportTTL,
		sourceTTL: 60 * time.Second,
	}
}

// SetLogger attaches a logger for pipeline events.
func (a *Analyzer) SetLogger(l *applogger.Logger) { a.l = l }

// SetSourceCache attaches a cache for fetched candles and articles, shared
// across replicas when backed by Redis.
func (a *Analyzer) SetSourceCache(c pkgcache.Service, ttl time.Duration) {
	a.sources = c
	if ttl > 0 {
		a.sourceTTL = ttl
	}
}

type AnalyzeParams struct {
	Symbol   string
	Bars     int
	Articles int
	// Force skips the report cache and recomputes.
	Force bool
}

func (a *Analyzer) Analyze(ctx context.Context, p AnalyzeParams) (*models.SymbolReport, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.Bars <= 0 {
		p.Bars = 100
	}
	if p.Articles <= 0 {
		p.Articles = 10
	}

	key := reportKey(p.Symbol)
	if !p.Force && a.reports != nil && a.reportTTL > 0 {
		if v, ok := a.reports.Get(key); ok {
			if r, ok2 := v.(*models.SymbolReport); ok2 {
				return r, nil
			}
		}
	}

	start := time.Now()

	candles, articles, err := a.fetch(ctx, p)
	if err != nil {
		return nil, err
	}

	agg, err := a.agg.Aggregate(ctx, articles)
	if err != nil {
		a.metrics.RecordError("sentiment")
		return nil, fmt.Errorf("aggregate sentiment %s: %w", p.Symbol, err)
	}

	metrics, err := a.gen.Metrics(agg, candles)
	if err != nil {
		a.metrics.RecordError("metrics")
		return nil, fmt.Errorf("compute metrics %s: %w", p.Symbol, err)
	}
	sig, err := a.gen.Generate(agg, candles)
	if err != nil {
		a.metrics.RecordError("signal")
		return nil, fmt.Errorf("generate signal %s: %w", p.Symbol, err)
	}

	report := &models.SymbolReport{
		Symbol:    p.Symbol,
		Timestamp: time.Now().UTC(),
		Signal:    sig,
		Metrics:   metrics,
		Sentiment: agg,
	}

	if a.reports != nil && a.reportTTL > 0 {
		a.reports.Set(key, report, a.reportTTL)
	}
	if a.pub != nil {
		if err := a.pub.Publish(ctx, report); err != nil {
			a.metrics.RecordError("publish")
			if a.l != nil {
				a.l.Warn("publish report failed",
					applogger.String("symbol", p.Symbol),
					applogger.Error(err))
			}
		}
	}

	a.metrics.RecordSignal(p.Symbol, string(sig.Action))
	a.metrics.RecordScore(p.Symbol, sig.Score)
	a.metrics.RecordLatency("analyze", time.Since(start).Seconds())

	if a.l != nil {
		a.l.Info("signal generated",
			applogger.String("symbol", p.Symbol),
			applogger.String("action", string(sig.Action)),
			applogger.Any("score", sig.Score),
			applogger.Int("articles", len(agg.Articles)))
	}
	return report, nil
}

// Sentiment aggregates news sentiment for symbol without touching price data.
func (a *Analyzer) Sentiment(ctx context.Context, symbol string, limit int) (models.AggregateSentiment, error) {
	if symbol == "" {
		return models.AggregateSentiment{}, fmt.Errorf("symbol required")
	}
	if limit <= 0 {
		limit = 10
	}
	articles, err := a.articles(ctx, symbol, limit)
	if err != nil {
		a.metrics.RecordError("news")
		return models.AggregateSentiment{}, fmt.Errorf("fetch articles %s: %w", symbol, err)
	}
	agg, err := a.agg.Aggregate(ctx, articles)
	if err != nil {
		a.metrics.RecordError("sentiment")
		return models.AggregateSentiment{}, err
	}
	return agg, nil
}

// fetch retrieves candles and articles concurrently. Either failure aborts
// the run; the pipeline needs both inputs.
func (a *Analyzer) fetch(ctx context.Context, p AnalyzeParams) ([]models.Candle, []models.Article, error) {
	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := a.candles(ctx, p.Symbol, p.Bars)
		ch <- item{"candles", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := a.articles(ctx, p.Symbol, p.Articles)
		ch <- item{"articles", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	var candles []models.Candle
	var articles []models.Article
	for it := range ch {
		if it.err != nil {
			a.metrics.RecordError(it.name)
			return nil, nil, fmt.Errorf("fetch %s %s: %w", it.name, p.Symbol, it.err)
		}
		switch it.name {
		case "candles":
			candles = it.val.([]models.Candle)
		case "articles":
			articles = it.val.([]models.Article)
		}
	}
	return candles, articles, nil
}

// candles reads through the source cache so close refreshes of the same
// symbol do not hammer the market data API.
func (a *Analyzer) candles(ctx context.Context, symbol string, limit int) ([]models.Candle, error) {
	key := pkgcache.GenerateKeyWithParams("candles", symbol, limit)
	if a.sources != nil {
		var cs []models.Candle
		if err := a.sources.Get(ctx, key, &cs); err == nil {
			return cs, nil
		}
	}
	cs, err := a.market.Candles(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}
	if a.sources != nil {
		_ = a.sources.Set(ctx, key, cs, a.sourceTTL)
	}
	return cs, nil
}

func (a *Analyzer) articles(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	key := pkgcache.GenerateKeyWithParams("articles", symbol, limit)
	if a.sources != nil {
		var as []models.Article
		if err := a.sources.Get(ctx, key, &as); err == nil {
			return as, nil
		}
	}
	as, err := a.news.Articles(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}
	if a.sources != nil {
		_ = a.sources.Set(ctx, key, as, a.sourceTTL)
	}
	return as, nil
}

func reportKey(symbol string) string { return "report:" + symbol }
