package models

import "time"

// Article is a news item as delivered by the news source.
// Content is guaranteed non-empty by the fetching layer; articles without a
// usable body are dropped before analysis.
type Article struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
}

// SentimentScore holds the combined output of the two scoring lenses for a
// piece of text: compound/positive/negative/neutral from the lexicon lens,
// subjectivity from the general lens. Positive+Negative+Neutral ~= 1 is
// guaranteed by the scorer, not enforced here.
type SentimentScore struct {
	Compound     float64 `json:"compound"`
	Positive     float64 `json:"positive"`
	Negative     float64 `json:"negative"`
	Neutral      float64 `json:"neutral"`
	Subjectivity float64 `json:"subjectivity"`
}

// SentenceSentiment is the per-sentence detail record. Polarity comes from
// the general lens and is kept only at this level.
type SentenceSentiment struct {
	Text         string  `json:"text"`
	Compound     float64 `json:"compound"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// ArticleSentiment is the analysis result for one article.
type ArticleSentiment struct {
	Title     string              `json:"title"`
	Score     SentimentScore      `json:"score"`
	Keywords  map[string]int      `json:"keywords"`
	Sentences []SentenceSentiment `json:"sentences"`
}

// AggregateSentiment is the batch-level reduction over a set of articles.
// Average holds the field-wise mean of compound/positive/negative/neutral;
// Subjectivity is reported per article only and stays zero here.
// KeywordCounts always contains every lexicon key, zero counts included.
type AggregateSentiment struct {
	Average       SentimentScore      `json:"average_sentiment"`
	KeywordCounts map[string]int      `json:"keyword_counts"`
	Articles      []ArticleSentiment  `json:"articles"`
	Sentences     []SentenceSentiment `json:"sentence_sentiments"`
}

// PolarityScore is the lexicon lens output.
type PolarityScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// ToneScore is the general lens output.
type ToneScore struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}
