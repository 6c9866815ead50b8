package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"SentiPulse/internal/domain/models"
	drepo "SentiPulse/internal/domain/repository"
	"SentiPulse/internal/service/cache"
	sentimentsvc "SentiPulse/internal/services/sentiment"
	signalsvc "SentiPulse/internal/services/signal"
)

type stubMarket struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubMarket) Candles(_ context.Context, _ string, limit int) ([]models.Candle, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	cs := make([]models.Candle, 25)
	for i := range cs {
		cs[i] = models.Candle{Close: 100, Volume: 1000}
	}
	return cs, nil
}

type stubNews struct {
	mu    sync.Mutex
	calls int
	fail  map[string]error
}

func (s *stubNews) Articles(_ context.Context, symbol string, _ int) ([]models.Article, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := s.fail[symbol]; err != nil {
		return nil, err
	}
	return []models.Article{{Title: symbol + " steady", Content: "markets were quiet"}}, nil
}

type stubPublisher struct {
	mu      sync.Mutex
	reports []*models.SymbolReport
}

func (s *stubPublisher) Publish(_ context.Context, r *models.SymbolReport) error {
	s.mu.Lock()
	s.reports = append(s.reports, r)
	s.mu.Unlock()
	return nil
}

func (s *stubPublisher) Close() error { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordSignal(string, string)   {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordScore(string, float64)   {}
func (noopMetrics) RecordLatency(string, float64) {}

type neutralScorer struct{}

func (neutralScorer) LexiconScore(_ context.Context, _ string) (models.PolarityScore, error) {
	return models.PolarityScore{Neutral: 1}, nil
}

func (neutralScorer) GeneralScore(_ context.Context, _ string) (models.ToneScore, error) {
	return models.ToneScore{}, nil
}

type fieldsTokenizer struct{}

func (fieldsTokenizer) Sentences(text string) []string { return []string{text} }
func (fieldsTokenizer) Lemmas(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func newTestAnalyzer(market *stubMarket, news *stubNews, pub *stubPublisher) *Analyzer {
	agg := sentimentsvc.NewAggregator(neutralScorer{}, fieldsTokenizer{}, nil)
	gen := signalsvc.NewGenerator(signalsvc.DefaultConfig())
	var p drepo.SignalPublisher
	if pub != nil {
		p = pub
	}
	return NewAnalyzer(market, news, agg, gen, p, cache.NewTTLCache(), noopMetrics{}, time.Minute)
}

func TestAnalyzeProducesReport(t *testing.T) {
	market := &stubMarket{}
	news := &stubNews{}
	pub := &stubPublisher{}
	a := newTestAnalyzer(market, news, pub)

	report, err := a.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Symbol != "AAPL" {
		t.Fatalf("unexpected symbol %q", report.Symbol)
	}
	if report.Signal.Action != models.ActionHold {
		t.Fatalf("neutral inputs should HOLD, got %s", report.Signal.Action)
	}
	if len(pub.reports) != 1 {
		t.Fatalf("expected 1 published report, got %d", len(pub.reports))
	}
}

func TestAnalyzeServesCachedReport(t *testing.T) {
	market := &stubMarket{}
	news := &stubNews{}
	a := newTestAnalyzer(market, news, nil)

	if _, err := a.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if market.calls != 1 {
		t.Fatalf("second call should hit report cache, market calls = %d", market.calls)
	}

	if _, err := a.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL", Force: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if market.calls != 2 {
		t.Fatalf("force should recompute, market calls = %d", market.calls)
	}
}

func TestAnalyzeRequiresSymbol(t *testing.T) {
	a := newTestAnalyzer(&stubMarket{}, &stubNews{}, nil)
	if _, err := a.Analyze(context.Background(), AnalyzeParams{}); err == nil {
		t.Fatalf("expected error for missing symbol")
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	market := &stubMarket{err: errors.New("api down")}
	a := newTestAnalyzer(market, &stubNews{}, nil)
	_, err := a.Analyze(context.Background(), AnalyzeParams{Symbol: "AAPL"})
	if err == nil || !strings.Contains(err.Error(), "api down") {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestSentimentOnly(t *testing.T) {
	market := &stubMarket{}
	a := newTestAnalyzer(market, &stubNews{}, nil)
	agg, err := a.Sentiment(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg.Articles) != 1 {
		t.Fatalf("expected 1 analyzed article, got %d", len(agg.Articles))
	}
	if market.calls != 0 {
		t.Fatalf("sentiment path should not fetch candles, market calls = %d", market.calls)
	}
}

func TestBatchPartialFailure(t *testing.T) {
	news := &stubNews{fail: map[string]error{"MSFT": errors.New("no feed")}}
	a := newTestAnalyzer(&stubMarket{}, news, nil)
	batch := NewBatchUseCase(a)

	res, err := batch.Run(context.Background(), BatchParams{Symbols: []string{"AAPL", "MSFT"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Reports["AAPL"]; !ok {
		t.Fatalf("expected AAPL report, got %+v", res.Reports)
	}
	if _, ok := res.Errors["MSFT"]; !ok {
		t.Fatalf("expected MSFT error, got %+v", res.Errors)
	}
	if _, ok := res.Reports["MSFT"]; ok {
		t.Fatalf("failed symbol should not have a report")
	}
}

func TestBatchRequiresSymbols(t *testing.T) {
	a := newTestAnalyzer(&stubMarket{}, &stubNews{}, nil)
	batch := NewBatchUseCase(a)
	if _, err := batch.Run(context.Background(), BatchParams{}); err == nil {
		t.Fatalf("expected error for empty symbol list")
	}
}
