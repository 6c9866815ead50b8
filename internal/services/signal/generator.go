package signal

import (
	"fmt"
	"math"

	"SentiPulse/internal/domain/models"
	"SentiPulse/internal/services/features"
	applogger "SentiPulse/pkg/logger"
)

// Weights are the fusion weights for the four metric families. They must sum
// to 1 by construction; this is not enforced at runtime.
type Weights struct {
	Sentiment  float64 `yaml:"sentiment"`
	PriceTrend float64 `yaml:"price_trend"`
	Volume     float64 `yaml:"volume"`
	Volatility float64 `yaml:"volatility"`
}

// Config carries the tunables of the generator. All thresholds and windows
// are explicit so tests can substitute alternate sets deterministically.
type Config struct {
	Weights         Weights `yaml:"weights"`
	ScoreThreshold  float64 `yaml:"score_threshold"`
	VolumeSpike     float64 `yaml:"volume_spike"`
	VolatilitySpike float64 `yaml:"volatility_spike"`
	ShortWindow     int     `yaml:"short_window"`
	LongWindow      int     `yaml:"long_window"`
	VolumeWindow    int     `yaml:"volume_window"`
}

// DefaultConfig returns the production parameter set.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Sentiment:  0.4,
			PriceTrend: 0.3,
			Volume:     0.2,
			Volatility: 0.1,
		},
		ScoreThreshold:  0.2,
		VolumeSpike:     1.5,
		VolatilitySpike: 1.5,
		ShortWindow:     5,
		LongWindow:      20,
		VolumeWindow:    20,
	}
}

// Generator fuses aggregate news sentiment with price-trend, volume, and
// volatility features into one weighted score and classifies it into an
// action. Generation is deterministic: identical inputs yield identical
// signals.
type Generator struct {
	cfg Config
	l   *applogger.Logger
}

func NewGenerator(cfg Config) *Generator {
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = 5
	}
	if cfg.LongWindow <= 0 {
		cfg.LongWindow = 20
	}
	if cfg.VolumeWindow <= 0 {
		cfg.VolumeWindow = 20
	}
	return &Generator{cfg: cfg}
}

// SetLogger injects a structured logger.
func (g *Generator) SetLogger(l *applogger.Logger) { g.l = l }

// Generate computes the four metric families, fuses them, and produces the
// signal with ranked reasoning. Any metric error aborts the whole signal;
// no partial or degraded signal is returned.
func (g *Generator) Generate(sentiment models.AggregateSentiment, candles []models.Candle) (models.Signal, error) {
	metrics, err := g.Metrics(sentiment, candles)
	if err != nil {
		if g.l != nil {
			g.l.Error("signal metrics failed", applogger.Error(err))
		}
		return models.Signal{}, err
	}
	return g.fromMetrics(metrics), nil
}

// Metrics computes the metric families without classifying them. Exposed so
// callers can report the inputs behind a signal.
func (g *Generator) Metrics(sentiment models.AggregateSentiment, candles []models.Candle) (models.MetricSet, error) {
	var ms models.MetricSet
	if len(candles) < 2 {
		return ms, &models.InsufficientPriceDataError{Have: len(candles), Need: 2}
	}

	price, err := g.priceMetrics(candles)
	if err != nil {
		return ms, err
	}
	volume, err := g.volumeMetrics(candles)
	if err != nil {
		return ms, err
	}

	ms.Price = price
	ms.Sentiment = sentimentMetrics(sentiment)
	ms.Volume = volume
	ms.Volatility = g.volatilityMetrics(candles)
	return ms, nil
}

func (g *Generator) priceMetrics(candles []models.Candle) (models.PriceMetrics, error) {
	cur := candles[len(candles)-1].Close
	prev := candles[len(candles)-2].Close
	if prev == 0 {
		return models.PriceMetrics{}, &models.ZeroBaselineError{Baseline: "previous close"}
	}

	ma5 := features.TrailingMeanClose(candles, g.cfg.ShortWindow)
	ma20 := features.TrailingMeanClose(candles, g.cfg.LongWindow)
	if ma20 == 0 {
		return models.PriceMetrics{}, &models.ZeroBaselineError{Baseline: "ma20"}
	}

	return models.PriceMetrics{
		CurrentPrice:  cur,
		PriceChange:   (cur - prev) / prev,
		MA5:           ma5,
		MA20:          ma20,
		TrendStrength: (ma5 - ma20) / ma20,
	}, nil
}

func sentimentMetrics(agg models.AggregateSentiment) models.SentimentMetrics {
	avg := agg.Average
	return models.SentimentMetrics{
		Compound: avg.Compound,
		Positive: avg.Positive,
		Negative: avg.Negative,
		Neutral:  avg.Neutral,
		Strength: math.Abs(avg.Compound),
		Bias:     avg.Positive - avg.Negative,
	}
}

func (g *Generator) volumeMetrics(candles []models.Candle) (models.VolumeMetrics, error) {
	cur := candles[len(candles)-1].Volume
	avg := features.TrailingMeanVolume(candles, g.cfg.VolumeWindow)
	if avg == 0 {
		return models.VolumeMetrics{}, &models.ZeroBaselineError{Baseline: "average volume"}
	}
	return models.VolumeMetrics{
		CurrentVolume: cur,
		AvgVolume:     avg,
		VolumeRatio:   cur / avg,
	}, nil
}

func (g *Generator) volatilityMetrics(candles []models.Candle) models.VolatilityMetrics {
	returns := features.Returns(candles)
	vol := features.Stdev(returns)
	recent := features.Stdev(features.Tail(returns, g.cfg.ShortWindow))

	// Zero overall volatility falls back to a 0 trend. This is deliberately
	// asymmetric with the zero-baseline errors above: a flat series is a
	// valid market state, not bad data.
	trend := 0.0
	if vol > 0 {
		trend = recent / vol
	}
	return models.VolatilityMetrics{
		Volatility:       vol,
		RecentVolatility: recent,
		VolatilityTrend:  trend,
	}
}

func (g *Generator) fromMetrics(m models.MetricSet) models.Signal {
	w := g.cfg.Weights
	score := w.Sentiment*(m.Sentiment.Bias*m.Sentiment.Strength) +
		w.PriceTrend*m.Price.TrendStrength +
		w.Volume*((m.Volume.VolumeRatio-1)/2) +
		w.Volatility*(-m.Volatility.VolatilityTrend)

	action := models.ActionHold
	switch {
	case score > g.cfg.ScoreThreshold:
		action = models.ActionBuy
	case score < -g.cfg.ScoreThreshold:
		action = models.ActionSell
	}

	return models.Signal{
		Action:     action,
		Confidence: math.Min(math.Abs(score), 1.0),
		Score:      score,
		Reasoning:  g.reasoning(m),
	}
}

// reasoning produces the ordered explanation lines. The bias and trend
// branches key strictly on > 0: an exact zero falls to the negative and
// downward phrasings. The volume and volatility lines are emitted only when
// their ratio exceeds the spike threshold.
func (g *Generator) reasoning(m models.MetricSet) []string {
	lines := make([]string, 0, 4)

	if m.Sentiment.Bias > 0 {
		lines = append(lines, fmt.Sprintf("Positive sentiment bias (%.2f) with strong sentiment (%.2f)", m.Sentiment.Bias, m.Sentiment.Strength))
	} else {
		lines = append(lines, fmt.Sprintf("Negative sentiment bias (%.2f) with strong sentiment (%.2f)", m.Sentiment.Bias, m.Sentiment.Strength))
	}

	if m.Price.TrendStrength > 0 {
		lines = append(lines, "Strong upward price trend (MA5 above MA20)")
	} else {
		lines = append(lines, "Strong downward price trend (MA5 below MA20)")
	}

	if m.Volume.VolumeRatio > g.cfg.VolumeSpike {
		lines = append(lines, fmt.Sprintf("High trading volume (%.1fx average)", m.Volume.VolumeRatio))
	}

	if m.Volatility.VolatilityTrend > g.cfg.VolatilitySpike {
		lines = append(lines, "Increasing market volatility")
	}

	return lines
}
