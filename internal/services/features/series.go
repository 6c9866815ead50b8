package features

import (
	"math"

	"SentiPulse/internal/domain/models"
)

// Returns computes fractional bar-over-bar close changes r_t = C_t/C_{t-1} - 1.
// It returns a slice of length len(candles)-1, or nil if insufficient data.
// A zero previous close yields a 0 return; callers detect that case through
// the baseline checks on the metrics they care about.
func Returns(candles []models.Candle) []float64 {
	if len(candles) < 2 {
		return nil
	}
	out := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		cur := candles[i].Close
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, cur/prev-1)
	}
	return out
}

// TrailingMeanClose averages closing prices over the last `window` bars.
// When fewer bars exist the window shrinks to all available bars; the short
// series is a degraded input, not an error.
func TrailingMeanClose(candles []models.Candle, window int) float64 {
	n := len(candles)
	if n == 0 || window <= 0 {
		return 0
	}
	if window > n {
		window = n
	}
	sum := 0.0
	for i := n - window; i < n; i++ {
		sum += candles[i].Close
	}
	return sum / float64(window)
}

// TrailingMeanVolume averages volume over the last `window` bars, shrinking
// the window like TrailingMeanClose.
func TrailingMeanVolume(candles []models.Candle, window int) float64 {
	n := len(candles)
	if n == 0 || window <= 0 {
		return 0
	}
	if window > n {
		window = n
	}
	sum := 0.0
	for i := n - window; i < n; i++ {
		sum += candles[i].Volume
	}
	return sum / float64(window)
}

// Stdev computes the sample standard deviation of xs. A single observation
// carries its own magnitude as dispersion so the short/long volatility ratio
// stays defined at the 2-bar minimum; an empty series has zero dispersion.
func Stdev(xs []float64) float64 {
	switch len(xs) {
	case 0:
		return 0
	case 1:
		return math.Abs(xs[0])
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	n := float64(len(xs))
	mean := sum / n
	sum2 := 0.0
	for _, x := range xs {
		d := x - mean
		sum2 += d * d
	}
	variance := sum2 / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Tail returns the last n elements of xs, or all of them when fewer exist.
func Tail(xs []float64, n int) []float64 {
	if n >= len(xs) {
		return xs
	}
	return xs[len(xs)-n:]
}
