package signal

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"SentiPulse/internal/domain/models"
)

func flatCandles(n int, close, volume float64) []models.Candle {
	cs := make([]models.Candle, n)
	for i := range cs {
		cs[i] = models.Candle{Close: close, Volume: volume}
	}
	return cs
}

func neutralSentiment() models.AggregateSentiment {
	return models.AggregateSentiment{
		Average: models.SentimentScore{Neutral: 1},
	}
}

func TestGenerateFlatSeriesHolds(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	sig, err := g.Generate(neutralSentiment(), flatCandles(2, 100, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Action != models.ActionHold {
		t.Fatalf("expected HOLD, got %s", sig.Action)
	}
	if sig.Score != 0 {
		t.Fatalf("expected score 0, got %v", sig.Score)
	}
	if sig.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %v", sig.Confidence)
	}
	if len(sig.Reasoning) != 2 {
		t.Fatalf("expected 2 reasoning lines, got %v", sig.Reasoning)
	}
}

func TestGenerateStrongSentimentBuys(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	agg := models.AggregateSentiment{
		Average: models.SentimentScore{Compound: 0.9, Positive: 0.9, Negative: 0.1},
	}
	sig, err := g.Generate(agg, flatCandles(25, 100, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Action != models.ActionBuy {
		t.Fatalf("expected BUY, got %s", sig.Action)
	}
	// 0.4 * (bias 0.8 * strength 0.9) with every other term zero
	if math.Abs(sig.Score-0.288) > 1e-9 {
		t.Fatalf("expected score 0.288, got %v", sig.Score)
	}
	if math.Abs(sig.Confidence-0.288) > 1e-9 {
		t.Fatalf("expected confidence 0.288, got %v", sig.Confidence)
	}
	if sig.Reasoning[0] != "Positive sentiment bias (0.80) with strong sentiment (0.90)" {
		t.Fatalf("unexpected reasoning: %q", sig.Reasoning[0])
	}
}

func TestGenerateStrongNegativeSentimentSells(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	agg := models.AggregateSentiment{
		Average: models.SentimentScore{Compound: -0.9, Positive: 0.1, Negative: 0.9},
	}
	sig, err := g.Generate(agg, flatCandles(25, 100, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Action != models.ActionSell {
		t.Fatalf("expected SELL, got %s", sig.Action)
	}
	if !strings.HasPrefix(sig.Reasoning[0], "Negative sentiment bias (-0.80)") {
		t.Fatalf("unexpected reasoning: %q", sig.Reasoning[0])
	}
}

func TestGenerateDownwardTrendLine(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	cs := make([]models.Candle, 25)
	for i := range cs {
		cs[i] = models.Candle{Close: 130 - float64(i), Volume: 1000}
	}
	sig, err := g.Generate(neutralSentiment(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Reasoning[1] != "Strong downward price trend (MA5 below MA20)" {
		t.Fatalf("unexpected trend line: %q", sig.Reasoning[1])
	}
}

func TestGenerateVolumeSpikeLine(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	cs := flatCandles(25, 100, 1000)
	cs[len(cs)-1].Volume = 5000
	sig, err := g.Generate(neutralSentiment(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(sig.Reasoning, "\n")
	if !strings.Contains(joined, "High trading volume") {
		t.Fatalf("expected volume line, got %v", sig.Reasoning)
	}
}

func TestGenerateNoVolumeLineBelowSpike(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	sig, err := g.Generate(neutralSentiment(), flatCandles(25, 100, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range sig.Reasoning {
		if strings.Contains(line, "High trading volume") {
			t.Fatalf("unexpected volume line at ratio 1: %v", sig.Reasoning)
		}
	}
}

func TestGenerateInsufficientData(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	_, err := g.Generate(neutralSentiment(), flatCandles(1, 100, 1000))
	var ins *models.InsufficientPriceDataError
	if !errors.As(err, &ins) {
		t.Fatalf("expected InsufficientPriceDataError, got %v", err)
	}
	if ins.Have != 1 || ins.Need != 2 {
		t.Fatalf("unexpected error detail: %+v", ins)
	}
}

func TestGenerateZeroPrevClose(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	cs := []models.Candle{{Close: 0, Volume: 1000}, {Close: 100, Volume: 1000}}
	_, err := g.Generate(neutralSentiment(), cs)
	var zb *models.ZeroBaselineError
	if !errors.As(err, &zb) {
		t.Fatalf("expected ZeroBaselineError, got %v", err)
	}
	if zb.Baseline != "previous close" {
		t.Fatalf("unexpected baseline: %q", zb.Baseline)
	}
}

func TestGenerateZeroAvgVolume(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	cs := flatCandles(5, 100, 0)
	_, err := g.Generate(neutralSentiment(), cs)
	var zb *models.ZeroBaselineError
	if !errors.As(err, &zb) {
		t.Fatalf("expected ZeroBaselineError, got %v", err)
	}
	if zb.Baseline != "average volume" {
		t.Fatalf("unexpected baseline: %q", zb.Baseline)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	agg := models.AggregateSentiment{
		Average: models.SentimentScore{Compound: 0.4, Positive: 0.5, Negative: 0.2, Neutral: 0.3},
	}
	cs := make([]models.Candle, 30)
	for i := range cs {
		cs[i] = models.Candle{Close: 100 + float64(i%7), Volume: 1000 + float64(i*13)}
	}
	a, err := g.Generate(agg, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := g.Generate(agg, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical signals, got %+v vs %+v", a, b)
	}
}

func TestGenerateShortSeriesStillWorks(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	sig, err := g.Generate(neutralSentiment(), flatCandles(3, 100, 1000))
	if err != nil {
		t.Fatalf("short series below the long window should not fail: %v", err)
	}
	if sig.Action != models.ActionHold {
		t.Fatalf("expected HOLD on flat short series, got %s", sig.Action)
	}
}

func TestGenerateTwoBarNetZero(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	agg := models.AggregateSentiment{
		Average: models.SentimentScore{Compound: 0.5, Positive: 0.75, Negative: 0.25},
	}
	cs := []models.Candle{
		{Close: 100, Volume: 1000},
		{Close: 102, Volume: 1000},
	}
	sig, err := g.Generate(agg, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// sentiment +0.1, volatility trend 1 contributes -0.1, trend and volume 0
	if math.Abs(sig.Score) > 1e-9 {
		t.Fatalf("expected net zero score, got %v", sig.Score)
	}
	if sig.Action != models.ActionHold {
		t.Fatalf("expected HOLD, got %s", sig.Action)
	}
}

func TestGenerateVolumeRatioThreeTerm(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	cs := make([]models.Candle, 25)
	for i := range cs {
		cs[i] = models.Candle{Close: 100, Volume: 17000.0 / 19.0}
	}
	cs[len(cs)-1].Volume = 3000
	sig, err := g.Generate(neutralSentiment(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// ratio 3 puts 0.2*((3-1)/2) = 0.2 into the score on its own
	if math.Abs(sig.Score-0.2) > 1e-6 {
		t.Fatalf("expected score ~0.2 from volume term, got %v", sig.Score)
	}
	joined := strings.Join(sig.Reasoning, "\n")
	if !strings.Contains(joined, "High trading volume (3.0x average)") {
		t.Fatalf("expected volume line, got %v", sig.Reasoning)
	}
}

func TestMetricsVolatilityTrendZeroOnFlat(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	ms, err := g.Metrics(neutralSentiment(), flatCandles(10, 100, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.Volatility.Volatility != 0 || ms.Volatility.VolatilityTrend != 0 {
		t.Fatalf("flat series should have zero volatility and trend, got %+v", ms.Volatility)
	}
}
