package di

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"SentiPulse/internal/domain/repository"
	domsvc "SentiPulse/internal/domain/service"
	"SentiPulse/internal/handler/api"
	internalrepo "SentiPulse/internal/repository"
	"SentiPulse/internal/service/alphavantage"
	icache "SentiPulse/internal/service/cache"
	"SentiPulse/internal/service/newsapi"
	"SentiPulse/internal/services/nlp"
	sentimentsvc "SentiPulse/internal/services/sentiment"
	signalsvc "SentiPulse/internal/services/signal"
	"SentiPulse/internal/usecase"
	pkgcache "SentiPulse/pkg/cache"
	"SentiPulse/pkg/config"
	pkgkafka "SentiPulse/pkg/kafka"
	applogger "SentiPulse/pkg/logger"
	"SentiPulse/pkg/metrics"
	pkgqueue "SentiPulse/pkg/queue"
	"SentiPulse/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Alpha Vantage candle source.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	timeout := cfg.AlphaVantage.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return alphavantage.New(cfg.AlphaVantage.APIKey, cfg.AlphaVantage.BaseURL, timeout)
}

// ProvideNewsSource creates the NewsAPI article source.
func ProvideNewsSource(cfg *config.Config) repository.NewsSource {
	timeout := cfg.News.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return newsapi.New(cfg.News.APIKey, cfg.News.BaseURL, timeout)
}

// ProvideTextScorer picks the sentiment backend from config. The in-process
// scorer is the default; "http" delegates to the NLP sidecar.
func ProvideTextScorer(cfg *config.Config) (domsvc.TextScorer, error) {
	switch cfg.NLP.Backend {
	case "", "local":
		return nlp.NewVaderScorer(), nil
	case "http":
		return nlp.NewHTTPTextScorer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown nlp backend: %s", cfg.NLP.Backend)
	}
}

// ProvideTokenizer creates the sentence splitter and lemmatizer.
func ProvideTokenizer() (domsvc.Tokenizer, error) {
	return nlp.NewTextTokenizer()
}

// ProvideAggregator creates the sentiment aggregator with the default lexicon.
func ProvideAggregator(scorer domsvc.TextScorer, tokenizer domsvc.Tokenizer, l *applogger.Logger) *sentimentsvc.Aggregator {
	agg := sentimentsvc.NewAggregator(scorer, tokenizer, nil)
	agg.SetLogger(l)
	return agg
}

// ProvideGenerator creates the signal generator. Zero weights in config fall
// back to the default fusion weights.
func ProvideGenerator(cfg *config.Config, l *applogger.Logger) *signalsvc.Generator {
	sc := signalsvc.DefaultConfig()
	w := cfg.Signal.Weights
	if w.Sentiment != 0 || w.PriceTrend != 0 || w.Volume != 0 || w.Volatility != 0 {
		sc.Weights = signalsvc.Weights{
			Sentiment:  w.Sentiment,
			PriceTrend: w.PriceTrend,
			Volume:     w.Volume,
			Volatility: w.Volatility,
		}
	}
	if cfg.Signal.ScoreThreshold > 0 {
		sc.ScoreThreshold = cfg.Signal.ScoreThreshold
	}
	if cfg.Signal.VolumeSpike > 0 {
		sc.VolumeSpike = cfg.Signal.VolumeSpike
	}
	if cfg.Signal.VolatilitySpike > 0 {
		sc.VolatilitySpike = cfg.Signal.VolatilitySpike
	}
	if cfg.Signal.ShortWindow > 0 {
		sc.ShortWindow = cfg.Signal.ShortWindow
	}
	if cfg.Signal.LongWindow > 0 {
		sc.LongWindow = cfg.Signal.LongWindow
	}
	if cfg.Signal.VolumeWindow > 0 {
		sc.VolumeWindow = cfg.Signal.VolumeWindow
	}
	gen := signalsvc.NewGenerator(sc)
	gen.SetLogger(l)
	return gen
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher creates the Kafka report publisher, or nil when
// publishing is disabled.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SignalPublisher {
	if producer == nil || cfg.Kafka.SignalsTopic == "" {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.SignalsTopic)
}

// ProvideKafkaConsumer creates a Kafka consumer for refresh requests, or nil
// when the refresh topic is not configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.RefreshTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideReportCache creates the in-process report cache.
func ProvideReportCache() *icache.TTLCache {
	return icache.NewTTLCache()
}

// ProvideSourceCache creates the cache for fetched candles and articles.
// With Redis enabled it is layered (memory in front of Redis) so replicas
// share fetched data; otherwise it is memory only.
func ProvideSourceCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(1024)), nil
	}
	host, port, err := splitAddr(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr: %w", err)
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

// ProvideRefreshQueue creates the Redis-backed refresh queue consumer, or
// nil when Redis is disabled.
func ProvideRefreshQueue(cfg *config.Config, l *applogger.Logger, analyzer *usecase.Analyzer) *pkgqueue.RedisQueue {
	if !cfg.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return pkgqueue.NewRedisConsumer(l, &pkgqueue.QueueConfig{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 10 * time.Second,
	}, client, []pkgqueue.Job{usecase.NewRefreshJob(analyzer)})
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

// ProvideAnalyzer assembles the per-symbol pipeline.
func ProvideAnalyzer(
	market repository.MarketData,
	news repository.NewsSource,
	agg *sentimentsvc.Aggregator,
	gen *signalsvc.Generator,
	pub repository.SignalPublisher,
	reports *icache.TTLCache,
	sources pkgcache.Service,
	m repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.Analyzer {
	ttl := cfg.Pipeline.ReportTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	a := usecase.NewAnalyzer(market, news, agg, gen, pub, reports, m, ttl)
	a.SetLogger(l)
	a.SetSourceCache(sources, ttl)
	return a
}

// ProvideBatch creates the multi-symbol fan-out use case.
func ProvideBatch(analyzer *usecase.Analyzer, cfg *config.Config) *usecase.BatchUseCase {
	b := usecase.NewBatchUseCase(analyzer)
	b.SetSymbolTimeout(cfg.Pipeline.SymbolTimeout)
	return b
}

// ProvideRefreshLoop creates the periodic recompute loop.
func ProvideRefreshLoop(batch *usecase.BatchUseCase, m repository.Metrics, cfg *config.Config) *usecase.RefreshLoop {
	return usecase.NewRefreshLoop(batch, m, cfg.Pipeline.Symbols, cfg.Pipeline.RefreshInterval, cfg.Pipeline.Bars, cfg.Pipeline.Articles)
}

// ProvideKafkaRefreshHandler registers the handler for the refresh topic.
func ProvideKafkaRefreshHandler(analyzer *usecase.Analyzer, m repository.Metrics, cfg *config.Config) *usecase.KafkaRefreshHandler {
	return usecase.NewKafkaRefreshHandler(cfg.Kafka.RefreshTopic, analyzer, m)
}

// ProvideHTTPHandler creates the API handler with a response cache. Redis
// backs the cache when enabled; otherwise an in-process TTL cache is used.
func ProvideHTTPHandler(l *applogger.Logger, analyzer *usecase.Analyzer, batch *usecase.BatchUseCase, cfg *config.Config) *api.SignalsEchoHandler {
	h := api.NewSignalsEchoHandler(l, analyzer, batch)
	if cfg.Redis.Enabled {
		h.SetCache(icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	} else {
		h.SetCache(icache.NewTTLCache())
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	refresh *usecase.RefreshLoop,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaRefreshHandler,
	publisher repository.SignalPublisher,
	rq *pkgqueue.RedisQueue,
	handler *api.SignalsEchoHandler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	var mh pkgkafka.MessageHandler
	if consumer != nil {
		mh = kh
	}
	app := server.New(cfg, refresh, consumer, mh, publisher)
	app.SetHTTPHandler(handler)
	app.SetRefreshQueue(rq)
	return app
}
