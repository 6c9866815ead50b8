package models

import (
	"errors"
	"fmt"
)

// ErrNoArticles is returned when an empty article batch reaches aggregation.
// The batch mean is undefined for zero articles, so this is rejected up
// front instead of producing NaN.
var ErrNoArticles = errors.New("sentiment: no articles to aggregate")

// InsufficientPriceDataError is returned when the candle series is too short
// for the requested computation.
type InsufficientPriceDataError struct {
	Have int
	Need int
}

func (e *InsufficientPriceDataError) Error() string {
	return fmt.Sprintf("signal: insufficient price data: have %d bars, need %d", e.Have, e.Need)
}

// ZeroBaselineError is returned when a computed denominator (ma20, previous
// close, average volume) is zero. Zero prices are a data-quality problem and
// are reported, not crashed on.
type ZeroBaselineError struct {
	Baseline string
}

func (e *ZeroBaselineError) Error() string {
	return fmt.Sprintf("signal: zero baseline: %s", e.Baseline)
}

// ScoringError wraps a failure of an injected text-scoring capability.
// Lens identifies which lens failed ("lexicon" or "general").
type ScoringError struct {
	Lens string
	Err  error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("sentiment: %s scorer: %v", e.Lens, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }
