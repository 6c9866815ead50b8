package newsapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"SentiPulse/internal/domain/models"
	drepo "SentiPulse/internal/domain/repository"
	xhttp "SentiPulse/pkg/http"
	xutil "SentiPulse/pkg/util"
)

// lookback bounds the article search window.
const lookback = 7 * 24 * time.Hour

// Client implements NewsSource backed by the NewsAPI "everything" endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// New creates a NewsAPI client.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type everythingResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Articles fetches up to limit recent articles mentioning symbol.
// Articles with no usable text are dropped, so fewer than limit may
// be returned.
func (c *Client) Articles(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	var resp everythingResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/everything",
		QueryParams: map[string][]string{
			"q":        {symbol + " stock"},
			"language": {"en"},
			"sortBy":   {"publishedAt"},
			"from":     {time.Now().Add(-lookback).UTC().Format("2006-01-02")},
			"pageSize": {strconv.Itoa(limit)},
		},
		Headers: map[string]string{
			"X-Api-Key": c.apiKey,
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("newsapi everything %s: %w", symbol, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi %s: %s", resp.Code, resp.Message)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		content := a.Content
		if content == "" {
			content = a.Description
		}
		if content == "" {
			continue
		}
		published, _ := xutil.ParseTime(a.PublishedAt)
		articles = append(articles, models.Article{
			Title:       a.Title,
			Content:     content,
			Source:      a.Source.Name,
			PublishedAt: published,
			URL:         a.URL,
		})
	}
	return articles, nil
}

var _ drepo.NewsSource = (*Client)(nil)
