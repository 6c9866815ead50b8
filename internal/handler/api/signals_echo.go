package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	models "SentiPulse/internal/domain/models"
	icache "SentiPulse/internal/service/cache"
	"SentiPulse/internal/service/metrics"
	"SentiPulse/internal/service/ratelimit"
	"SentiPulse/internal/usecase"
	xhttp "SentiPulse/pkg/http"
	xlogger "SentiPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler exposes the signal pipeline over HTTP.
type SignalsEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	batch    *usecase.BatchUseCase
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
}

func NewSignalsEchoHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer, batch *usecase.BatchUseCase) *SignalsEchoHandler {
	metrics.Register()
	return &SignalsEchoHandler{logger: logger, analyzer: analyzer, batch: batch, rl: ratelimit.New()}
}

// SetCache attaches a response cache for sentiment lookups.
func (h *SignalsEchoHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signal", h.Signal)
	g.GET("/signals", h.Signals)
	g.GET("/sentiment", h.Sentiment)
}

func (h *SignalsEchoHandler) Signal(c echo.Context) error {
	start := time.Now()
	endpoint := "signal"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":signal", 5, 2) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), usecase.AnalyzeParams{
		Symbol:   strings.ToUpper(req.Symbol),
		Bars:     req.Bars,
		Articles: req.Articles,
	})
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("signal usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Signals(c echo.Context) error {
	start := time.Now()
	endpoint := "signals"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.BatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":signals", 2, 0.5) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	res, err := h.batch.Run(c.Request().Context(), usecase.BatchParams{
		Symbols:  splitSymbols(req.Symbols),
		Bars:     req.Bars,
		Articles: req.Articles,
	})
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("signals usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	endpoint := "sentiment"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":sentiment", 5, 2) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}
	symbol := strings.ToUpper(req.Symbol)

	cacheKey := "sentiment:" + symbol
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.logger.Warn("sentiment cache_get_error", xlogger.Error(err))
		} else if ok {
			var agg models.AggregateSentiment
			if json.Unmarshal(b, &agg) == nil {
				return xhttp.SuccessResponse(c, agg)
			}
		}
	}

	res, err := h.analyzer.Sentiment(c.Request().Context(), symbol, req.Articles)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("sentiment usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}
	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			_ = h.cache.SetBytes(cacheKey, b, 60*time.Second)
		}
	}
	return xhttp.SuccessResponse(c, res)
}

// mapDomainError translates pipeline errors into HTTP-aware ones so callers
// see a 4xx for bad inputs instead of a blanket 500.
func mapDomainError(err error) error {
	var insufficient *models.InsufficientPriceDataError
	if errors.As(err, &insufficient) {
		return xhttp.BadRequestError(insufficient.Error())
	}
	var baseline *models.ZeroBaselineError
	if errors.As(err, &baseline) {
		return xhttp.BadRequestError(baseline.Error())
	}
	if errors.Is(err, models.ErrNoArticles) {
		return xhttp.NotFoundError("no articles found for symbol")
	}
	return err
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
