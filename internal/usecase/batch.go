package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SentiPulse/internal/domain/models"
)

// BatchUseCase fans out the analyzer over multiple symbols, returning
// partial results when some symbols fail.
type BatchUseCase struct {
	analyzer *Analyzer
	timeout  time.Duration
}

func NewBatchUseCase(analyzer *Analyzer) *BatchUseCase {
	return &BatchUseCase{analyzer: analyzer, timeout: 15 * time.Second}
}

// SetSymbolTimeout overrides the per-symbol deadline.
func (uc *BatchUseCase) SetSymbolTimeout(d time.Duration) {
	if d > 0 {
		uc.timeout = d
	}
}

type BatchParams struct {
	Symbols  []string
	Bars     int
	Articles int
	Force    bool
}

func (uc *BatchUseCase) Run(ctx context.Context, p BatchParams) (*models.BatchReport, error) {
	if len(p.Symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol required")
	}

	res := &models.BatchReport{
		Timestamp: time.Now().UTC(),
		Reports:   map[string]models.SymbolReport{},
		Errors:    map[string]string{},
	}

	type item struct {
		symbol string
		report *models.SymbolReport
		err    error
	}
	ch := make(chan item, len(p.Symbols))
	var wg sync.WaitGroup

	for _, symbol := range p.Symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()
			r, err := uc.analyzer.Analyze(sctx, AnalyzeParams{
				Symbol:   symbol,
				Bars:     p.Bars,
				Articles: p.Articles,
				Force:    p.Force,
			})
			ch <- item{symbol, r, err}
		}(symbol)
	}

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.symbol] = it.err.Error()
			continue
		}
		res.Reports[it.symbol] = *it.report
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
