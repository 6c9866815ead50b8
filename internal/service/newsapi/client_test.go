package newsapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func TestArticlesDropsEmptyContent(t *testing.T) {
	srv := newTestServer(`{
		"status": "ok",
		"articles": [
			{"title": "AAPL beats estimates", "description": "", "content": "Full text here", "url": "u1", "publishedAt": "2026-08-28T10:00:00Z", "source": {"name": "wire"}},
			{"title": "AAPL headline only", "description": "", "content": "", "url": "u2", "publishedAt": "2026-08-28T11:00:00Z", "source": {"name": "wire"}},
			{"title": "AAPL summary", "description": "Short summary", "content": "", "url": "u3", "publishedAt": "2026-08-28T12:00:00Z", "source": {"name": "wire"}}
		]
	}`)
	defer srv.Close()

	c := New("key", srv.URL, 2*time.Second)
	articles, err := c.Articles(context.Background(), "AAPL", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %+v", len(articles), articles)
	}
	for _, a := range articles {
		if a.Content == "" {
			t.Fatalf("article with empty content passed the filter: %+v", a)
		}
	}
	if articles[1].Content != "Short summary" {
		t.Fatalf("expected description fallback, got %q", articles[1].Content)
	}
}

func TestArticlesErrorStatus(t *testing.T) {
	srv := newTestServer(`{"status": "error", "code": "apiKeyInvalid", "message": "bad key"}`)
	defer srv.Close()

	c := New("key", srv.URL, 2*time.Second)
	_, err := c.Articles(context.Background(), "AAPL", 10)
	if err == nil {
		t.Fatal("expected error for error status")
	}
	if !strings.Contains(err.Error(), "apiKeyInvalid") {
		t.Fatalf("expected code in error, got %v", err)
	}
}
