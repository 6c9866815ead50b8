package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"SentiPulse/internal/domain/models"
)

// stubScorer returns scripted scores keyed by a substring of the text.
type stubScorer struct {
	scores map[string]models.PolarityScore
	tones  map[string]models.ToneScore
	err    error
}

func (s *stubScorer) LexiconScore(_ context.Context, text string) (models.PolarityScore, error) {
	if s.err != nil {
		return models.PolarityScore{}, s.err
	}
	for key, score := range s.scores {
		if strings.Contains(text, key) {
			return score, nil
		}
	}
	return models.PolarityScore{Neutral: 1}, nil
}

func (s *stubScorer) GeneralScore(_ context.Context, text string) (models.ToneScore, error) {
	if s.err != nil {
		return models.ToneScore{}, s.err
	}
	for key, tone := range s.tones {
		if strings.Contains(text, key) {
			return tone, nil
		}
	}
	return models.ToneScore{}, nil
}

// stubTokenizer splits sentences on periods and lemmas on whitespace.
type stubTokenizer struct{}

func (stubTokenizer) Sentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (stubTokenizer) Lemmas(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func TestAggregateEmptyBatch(t *testing.T) {
	agg := NewAggregator(&stubScorer{}, stubTokenizer{}, nil)
	_, err := agg.Aggregate(context.Background(), nil)
	if !errors.Is(err, models.ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles, got %v", err)
	}
}

func TestAggregateAveragesScores(t *testing.T) {
	scorer := &stubScorer{
		scores: map[string]models.PolarityScore{
			"rally": {Compound: 0.8, Positive: 0.6, Negative: 0.1, Neutral: 0.3},
			"crash": {Compound: -0.4, Positive: 0.1, Negative: 0.5, Neutral: 0.4},
		},
	}
	agg := NewAggregator(scorer, stubTokenizer{}, nil)
	res, err := agg.Aggregate(context.Background(), []models.Article{
		{Title: "rally", Content: "markets rally"},
		{Title: "crash", Content: "markets crash"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Average.Compound; got != 0.2 {
		t.Fatalf("expected average compound 0.2, got %v", got)
	}
	if got := res.Average.Positive; got != 0.35 {
		t.Fatalf("expected average positive 0.35, got %v", got)
	}
	if res.Average.Subjectivity != 0 {
		t.Fatalf("aggregate subjectivity should stay 0, got %v", res.Average.Subjectivity)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("expected 2 article results, got %d", len(res.Articles))
	}
}

func TestAggregateInitializesAllLexiconKeys(t *testing.T) {
	agg := NewAggregator(&stubScorer{}, stubTokenizer{}, nil)
	res, err := agg.Aggregate(context.Background(), []models.Article{
		{Title: "quiet day", Content: "nothing happened"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.KeywordCounts) != 16 {
		t.Fatalf("expected 16 lexicon keys, got %d", len(res.KeywordCounts))
	}
	for _, key := range []string{"positive_surge", "positive_profit", "negative_loss", "negative_risk"} {
		if _, ok := res.KeywordCounts[key]; !ok {
			t.Fatalf("missing lexicon key %q", key)
		}
	}
	if res.KeywordCounts["positive_profit"] != 0 {
		t.Fatalf("expected zero count, got %d", res.KeywordCounts["positive_profit"])
	}
}

func TestAggregateCountsKeywords(t *testing.T) {
	agg := NewAggregator(&stubScorer{}, stubTokenizer{}, nil)
	res, err := agg.Aggregate(context.Background(), []models.Article{
		{Title: "earnings", Content: "profit profit surge beat estimates"},
		{Title: "warning", Content: "profit warning raises risk"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.KeywordCounts["positive_profit"]; got != 3 {
		t.Fatalf("expected positive_profit 3, got %d", got)
	}
	if got := res.KeywordCounts["positive_surge"]; got != 1 {
		t.Fatalf("expected positive_surge 1, got %d", got)
	}
	if got := res.KeywordCounts["negative_risk"]; got != 1 {
		t.Fatalf("expected negative_risk 1, got %d", got)
	}
}

func TestAggregateCollectsSentencesInOrder(t *testing.T) {
	agg := NewAggregator(&stubScorer{}, stubTokenizer{}, nil)
	res, err := agg.Aggregate(context.Background(), []models.Article{
		{Title: "first", Content: "alpha. beta"},
		{Title: "second", Content: "gamma"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(res.Sentences))
	}
	if !strings.Contains(res.Sentences[0].Text, "alpha") {
		t.Fatalf("unexpected first sentence %q", res.Sentences[0].Text)
	}
	if !strings.Contains(res.Sentences[2].Text, "gamma") {
		t.Fatalf("unexpected last sentence %q", res.Sentences[2].Text)
	}
}

func TestAggregateScorerFailure(t *testing.T) {
	scorer := &stubScorer{err: errors.New("scorer down")}
	agg := NewAggregator(scorer, stubTokenizer{}, nil)
	_, err := agg.Aggregate(context.Background(), []models.Article{
		{Title: "any", Content: "text"},
	})
	var se *models.ScoringError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScoringError, got %v", err)
	}
	if se.Lens != "lexicon" {
		t.Fatalf("expected lexicon lens, got %q", se.Lens)
	}
}

func TestAggregateCustomLexicon(t *testing.T) {
	lex := KeywordLexicon{"bull": {"moon"}}
	agg := NewAggregator(&stubScorer{}, stubTokenizer{}, lex)
	res, err := agg.Aggregate(context.Background(), []models.Article{
		{Title: "hype", Content: "to the moon"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.KeywordCounts) != 1 {
		t.Fatalf("expected 1 key, got %d", len(res.KeywordCounts))
	}
	if res.KeywordCounts["bull_moon"] != 1 {
		t.Fatalf("expected bull_moon 1, got %d", res.KeywordCounts["bull_moon"])
	}
}
