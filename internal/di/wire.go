//go:build wireinject
// +build wireinject

package di

import (
	"SentiPulse/pkg/config"
	"SentiPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// External data sources
		ProvideMarketData,
		ProvideNewsSource,

		// NLP
		ProvideTextScorer,
		ProvideTokenizer,
		ProvideAggregator,
		ProvideGenerator,

		// Kafka
		ProvideKafkaProducer,
		ProvideSignalPublisher,
		ProvideKafkaConsumer,
		ProvideKafkaRefreshHandler,

		// Caches and queue
		ProvideReportCache,
		ProvideSourceCache,
		ProvideRefreshQueue,

		// Use cases
		ProvideAnalyzer,
		ProvideBatch,
		ProvideRefreshLoop,

		// HTTP + application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
