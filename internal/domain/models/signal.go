package models

import "time"

// Action is the discrete trading recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// PriceMetrics are the trend features derived from the candle series.
// TrendStrength = (MA5-MA20)/MA20; windows shrink to the available bars.
type PriceMetrics struct {
	CurrentPrice  float64 `json:"current_price"`
	PriceChange   float64 `json:"price_change"`
	MA5           float64 `json:"ma5"`
	MA20          float64 `json:"ma20"`
	TrendStrength float64 `json:"trend_strength"`
}

// SentimentMetrics are derived from the batch average sentiment.
type SentimentMetrics struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Strength float64 `json:"strength"`
	Bias     float64 `json:"bias"`
}

// VolumeMetrics relate current volume to its 20-bar trailing baseline.
type VolumeMetrics struct {
	CurrentVolume float64 `json:"current_volume"`
	AvgVolume     float64 `json:"avg_volume"`
	VolumeRatio   float64 `json:"volume_ratio"`
}

// VolatilityMetrics measure return dispersion. Trend is the ratio of the
// 5-return window to the full series, or 0 when overall volatility is 0.
type VolatilityMetrics struct {
	Volatility       float64 `json:"volatility"`
	RecentVolatility float64 `json:"recent_volatility"`
	VolatilityTrend  float64 `json:"volatility_trend"`
}

// MetricSet groups the four metric families that feed the fusion.
type MetricSet struct {
	Price      PriceMetrics      `json:"price_trend"`
	Sentiment  SentimentMetrics  `json:"sentiment"`
	Volume     VolumeMetrics     `json:"volume"`
	Volatility VolatilityMetrics `json:"volatility"`
}

// Signal is a single immutable trading recommendation.
type Signal struct {
	Action     Action   `json:"action"`
	Confidence float64  `json:"confidence"`
	Score      float64  `json:"score"`
	Reasoning  []string `json:"reasoning"`
}

// SymbolReport is the full per-symbol pipeline output: the signal, the
// metrics behind it, and the aggregate news sentiment.
type SymbolReport struct {
	Symbol    string             `json:"symbol"`
	Timestamp time.Time          `json:"timestamp"`
	Signal    Signal             `json:"signal"`
	Metrics   MetricSet          `json:"metrics"`
	Sentiment AggregateSentiment `json:"sentiment"`
}

// BatchReport collects per-symbol results from a fan-out run. Symbols that
// failed appear in Errors only; the rest still return their reports.
type BatchReport struct {
	Timestamp time.Time               `json:"timestamp"`
	Reports   map[string]SymbolReport `json:"reports"`
	Errors    map[string]string       `json:"errors,omitempty"`
}
