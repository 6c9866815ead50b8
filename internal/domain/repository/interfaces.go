package repository

import (
	"context"

	"SentiPulse/internal/domain/models"
)

// MarketData fetches recent OHLCV candles for a symbol, ordered ascending by
// timestamp. An empty result is not an error here; the signal layer rejects
// series that are too short.
type MarketData interface {
	Candles(ctx context.Context, symbol string, limit int) ([]models.Candle, error)
}

// NewsSource fetches recent articles about a symbol. An empty result is a
// valid response; aggregation rejects empty batches itself. Implementations
// drop articles without usable content before returning.
type NewsSource interface {
	Articles(ctx context.Context, symbol string, limit int) ([]models.Article, error)
}

// SignalPublisher emits generated signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, report *models.SymbolReport) error
	Close() error
}

type Metrics interface {
	RecordSignal(symbol string, action string)
	RecordError(kind string)
	RecordScore(symbol string, score float64)
	RecordLatency(op string, seconds float64)
}
