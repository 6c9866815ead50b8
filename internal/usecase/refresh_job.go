package usecase

import (
	"context"
	"fmt"

	"SentiPulse/pkg/queue"
)

// RefreshRequest is the payload for queued signal refreshes.
type RefreshRequest struct {
	Symbol   string `json:"symbol"`
	Bars     int    `json:"bars"`
	Articles int    `json:"articles"`
}

// RefreshJob recomputes a symbol's signal when a refresh message arrives on
// the Redis queue. It serves the same purpose as the Kafka refresh handler
// for deployments without a broker.
type RefreshJob struct {
	analyzer *Analyzer
}

func NewRefreshJob(analyzer *Analyzer) *RefreshJob {
	return &RefreshJob{analyzer: analyzer}
}

func (j *RefreshJob) Name() string { return "signal_refresh" }

func (j *RefreshJob) Type() string { return "signal.refresh" }

func (j *RefreshJob) Handle(ctx context.Context, payload interface{}) error {
	req, err := queue.ParsePayload[RefreshRequest](payload)
	if err != nil {
		return fmt.Errorf("parse refresh payload: %w", err)
	}
	if req.Symbol == "" {
		return fmt.Errorf("refresh payload missing symbol")
	}
	_, err = j.analyzer.Analyze(ctx, AnalyzeParams{
		Symbol:   req.Symbol,
		Bars:     req.Bars,
		Articles: req.Articles,
		Force:    true,
	})
	return err
}

var _ queue.Job = (*RefreshJob)(nil)
