package usecase

import (
	"context"
	"time"

	drepo "SentiPulse/internal/domain/repository"
	applogger "SentiPulse/pkg/logger"
)

// RefreshLoop periodically recomputes signals for the configured symbols so
// cached reports and downstream consumers stay current between API calls.
type RefreshLoop struct {
	batch    *BatchUseCase
	metrics  drepo.Metrics
	l        *applogger.Logger
	symbols  []string
	interval time.Duration
	bars     int
	articles int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefreshLoop(batch *BatchUseCase, metrics drepo.Metrics, symbols []string, interval time.Duration, bars, articles int) *RefreshLoop {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefreshLoop{
		batch:    batch,
		metrics:  metrics,
		symbols:  symbols,
		interval: interval,
		bars:     bars,
		articles: articles,
	}
}

// SetLogger attaches a logger for loop events.
func (r *RefreshLoop) SetLogger(l *applogger.Logger) { r.l = l }

// Start launches the loop. It runs one pass immediately, then on each tick
// until Stop or context cancellation.
func (r *RefreshLoop) Start(ctx context.Context) {
	if len(r.symbols) == 0 {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go r.run(ctx)
}

func (r *RefreshLoop) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.pass(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pass(ctx)
		}
	}
}

func (r *RefreshLoop) pass(ctx context.Context) {
	start := time.Now()
	res, err := r.batch.Run(ctx, BatchParams{
		Symbols:  r.symbols,
		Bars:     r.bars,
		Articles: r.articles,
		Force:    true,
	})
	if err != nil {
		r.metrics.RecordError("refresh")
		if r.l != nil {
			r.l.Error("refresh pass failed", applogger.Error(err))
		}
		return
	}
	r.metrics.RecordLatency("refresh_pass", time.Since(start).Seconds())
	if r.l != nil {
		r.l.Info("refresh pass complete",
			applogger.Int("ok", len(res.Reports)),
			applogger.Int("failed", len(res.Errors)),
			applogger.Duration("took", time.Since(start)))
	}
}

// Stop cancels the loop and waits for the current pass to finish.
func (r *RefreshLoop) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
