package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	drepo "SentiPulse/internal/domain/repository"
	pkgkafka "SentiPulse/pkg/kafka"
)

// KafkaRefreshHandler consumes refresh requests and recomputes the symbol's
// signal on demand, ahead of the periodic loop.
type KafkaRefreshHandler struct {
	topic    string
	analyzer *Analyzer
	metrics  drepo.Metrics
}

func NewKafkaRefreshHandler(topic string, analyzer *Analyzer, metrics drepo.Metrics) *KafkaRefreshHandler {
	return &KafkaRefreshHandler{topic: topic, analyzer: analyzer, metrics: metrics}
}

func (h *KafkaRefreshHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, bars, articles}
func (h *KafkaRefreshHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol   string `json:"symbol"`
		Bars     int    `json:"bars"`
		Articles int    `json:"articles"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.Symbol == "" {
		h.metrics.RecordError("consumer_empty_symbol")
		return fmt.Errorf("refresh message missing symbol")
	}

	start := time.Now()
	_, err := h.analyzer.Analyze(ctx, AnalyzeParams{
		Symbol:   m.Symbol,
		Bars:     m.Bars,
		Articles: m.Articles,
		Force:    true,
	})
	h.metrics.RecordLatency("refresh_request", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_refresh")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaRefreshHandler)(nil)
