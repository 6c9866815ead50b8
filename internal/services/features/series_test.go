package features

import (
	"math"
	"testing"

	"SentiPulse/internal/domain/models"
)

func candlesFromCloses(closes ...float64) []models.Candle {
	cs := make([]models.Candle, len(closes))
	for i, c := range closes {
		cs[i] = models.Candle{Close: c, Volume: 1000}
	}
	return cs
}

func TestReturns(t *testing.T) {
	got := Returns(candlesFromCloses(100, 110, 99))
	if len(got) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(got))
	}
	if math.Abs(got[0]-0.1) > 1e-9 {
		t.Fatalf("unexpected first return %v", got[0])
	}
	if math.Abs(got[1]-(-0.1)) > 1e-9 {
		t.Fatalf("unexpected second return %v", got[1])
	}
}

func TestReturnsZeroPrevClose(t *testing.T) {
	got := Returns(candlesFromCloses(0, 100))
	if len(got) != 1 {
		t.Fatalf("expected 1 return, got %d", len(got))
	}
	if got[0] != 0 {
		t.Fatalf("zero previous close should yield 0, got %v", got[0])
	}
}

func TestReturnsInsufficient(t *testing.T) {
	if got := Returns(candlesFromCloses(100)); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTrailingMeanCloseShrinks(t *testing.T) {
	cs := candlesFromCloses(100, 200)
	if got := TrailingMeanClose(cs, 20); got != 150 {
		t.Fatalf("expected shrunk-window mean 150, got %v", got)
	}
}

func TestTrailingMeanCloseWindow(t *testing.T) {
	cs := candlesFromCloses(1, 1, 1, 100, 200)
	if got := TrailingMeanClose(cs, 2); got != 150 {
		t.Fatalf("expected 150 over last 2 bars, got %v", got)
	}
}

func TestTrailingMeanVolume(t *testing.T) {
	cs := []models.Candle{{Volume: 1000}, {Volume: 3000}}
	if got := TrailingMeanVolume(cs, 20); got != 2000 {
		t.Fatalf("expected 2000, got %v", got)
	}
}

func TestStdev(t *testing.T) {
	if got := Stdev(nil); got != 0 {
		t.Fatalf("empty series should have 0 stdev, got %v", got)
	}
	if got := Stdev([]float64{-0.05}); got != 0.05 {
		t.Fatalf("single observation should carry its magnitude, got %v", got)
	}
	got := Stdev([]float64{1, 2, 3, 4})
	want := math.Sqrt(5.0 / 3.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTail(t *testing.T) {
	xs := []float64{1, 2, 3}
	if got := Tail(xs, 2); len(got) != 2 || got[0] != 2 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := Tail(xs, 10); len(got) != 3 {
		t.Fatalf("tail larger than series should return all, got %v", got)
	}
}
