package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"SentiPulse/internal/domain/models"
	drepo "SentiPulse/internal/domain/repository"
	xhttp "SentiPulse/pkg/http"
)

// Client implements MarketData backed by the Alpha Vantage intraday API.
type Client struct {
	apiKey   string
	baseURL  string
	interval string
	client   *xhttp.Client
}

// New creates an Alpha Vantage market data client.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co/query"
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		interval: "5min",
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type intradayResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Series       map[string]map[string]string `json:"Time Series (5min)"`
}

// Candles fetches the most recent intraday bars for symbol, ordered
// ascending by timestamp. The API returns bars keyed by timestamp with
// string-encoded fields; malformed bars are skipped.
func (c *Client) Candles(ctx context.Context, symbol string, limit int) ([]models.Candle, error) {
	var resp intradayResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"function": {"TIME_SERIES_INTRADAY"},
			"symbol":   {symbol},
			"interval": {c.interval},
			"apikey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage intraday %s: %w", symbol, err)
	}
	if resp.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage: %s", resp.ErrorMessage)
	}
	if resp.Note != "" {
		// rate-limit note comes back with a 200
		return nil, fmt.Errorf("alphavantage throttled: %s", resp.Note)
	}
	if len(resp.Series) == 0 {
		return nil, fmt.Errorf("alphavantage: no data for symbol %s", symbol)
	}

	candles := make([]models.Candle, 0, len(resp.Series))
	for ts, fields := range resp.Series {
		t, err := time.Parse("2006-01-02 15:04:05", ts)
		if err != nil {
			continue
		}
		candle, ok := parseBar(t, fields)
		if !ok {
			continue
		}
		candles = append(candles, candle)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Timestamp.Before(candles[j].Timestamp) })

	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

func parseBar(t time.Time, fields map[string]string) (models.Candle, bool) {
	open, err1 := strconv.ParseFloat(fields["1. open"], 64)
	high, err2 := strconv.ParseFloat(fields["2. high"], 64)
	low, err3 := strconv.ParseFloat(fields["3. low"], 64)
	cl, err4 := strconv.ParseFloat(fields["4. close"], 64)
	vol, err5 := strconv.ParseFloat(fields["5. volume"], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return models.Candle{}, false
	}
	return models.Candle{
		Timestamp: t,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     cl,
		Volume:    vol,
	}, true
}

var _ drepo.MarketData = (*Client)(nil)
