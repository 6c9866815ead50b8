package sentiment

import (
	"context"

	"SentiPulse/internal/domain/models"
	domsvc "SentiPulse/internal/domain/service"
	applogger "SentiPulse/pkg/logger"
)

// Aggregator reduces a batch of news articles into one aggregate sentiment
// record plus keyword frequency counts. It is a pure function of its inputs;
// the injected scorer and tokenizer are assumed deterministic.
type Aggregator struct {
	scorer    domsvc.TextScorer
	tokenizer domsvc.Tokenizer
	lexicon   KeywordLexicon
	l         *applogger.Logger
}

// NewAggregator creates an Aggregator. A nil lexicon falls back to the
// default finance lexicon.
func NewAggregator(scorer domsvc.TextScorer, tokenizer domsvc.Tokenizer, lexicon KeywordLexicon) *Aggregator {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Aggregator{scorer: scorer, tokenizer: tokenizer, lexicon: lexicon}
}

// SetLogger injects a structured logger for diagnostics.
func (a *Aggregator) SetLogger(l *applogger.Logger) { a.l = l }

// Aggregate analyzes every article and reduces the results: Average is the
// field-wise mean over compound/positive/negative/neutral, KeywordCounts the
// field-wise sum, Sentences the concatenation in article order then sentence
// order. An empty batch fails with ErrNoArticles rather than dividing by
// zero silently.
func (a *Aggregator) Aggregate(ctx context.Context, articles []models.Article) (models.AggregateSentiment, error) {
	var agg models.AggregateSentiment
	if len(articles) == 0 {
		return agg, models.ErrNoArticles
	}

	agg.KeywordCounts = make(map[string]int, 16)
	for _, key := range a.lexicon.Keys() {
		agg.KeywordCounts[key] = 0
	}
	agg.Articles = make([]models.ArticleSentiment, 0, len(articles))

	for _, article := range articles {
		res, err := a.analyzeArticle(ctx, article)
		if err != nil {
			if a.l != nil {
				a.l.Error("article analysis failed", applogger.String("title", article.Title), applogger.Error(err))
			}
			return models.AggregateSentiment{}, err
		}

		agg.Average.Compound += res.Score.Compound
		agg.Average.Positive += res.Score.Positive
		agg.Average.Negative += res.Score.Negative
		agg.Average.Neutral += res.Score.Neutral
		for key, count := range res.Keywords {
			agg.KeywordCounts[key] += count
		}
		agg.Sentences = append(agg.Sentences, res.Sentences...)
		agg.Articles = append(agg.Articles, res)
	}

	n := float64(len(articles))
	agg.Average.Compound /= n
	agg.Average.Positive /= n
	agg.Average.Negative /= n
	agg.Average.Neutral /= n

	if a.l != nil {
		a.l.Debug("aggregated article batch",
			applogger.Int("articles", len(articles)),
			applogger.Int("sentences", len(agg.Sentences)))
	}
	return agg, nil
}

// analyzeArticle scores one article: the whole blob once through both
// lenses, every sentence independently, and the keyword counts.
func (a *Aggregator) analyzeArticle(ctx context.Context, article models.Article) (models.ArticleSentiment, error) {
	text := article.Title + " " + article.Content

	sentences := a.tokenizer.Sentences(text)
	sentenceResults := make([]models.SentenceSentiment, 0, len(sentences))
	for _, sentence := range sentences {
		ss, err := a.analyzeSentence(ctx, sentence)
		if err != nil {
			return models.ArticleSentiment{}, err
		}
		sentenceResults = append(sentenceResults, ss)
	}

	lex, err := a.scorer.LexiconScore(ctx, text)
	if err != nil {
		return models.ArticleSentiment{}, &models.ScoringError{Lens: "lexicon", Err: err}
	}
	tone, err := a.scorer.GeneralScore(ctx, text)
	if err != nil {
		return models.ArticleSentiment{}, &models.ScoringError{Lens: "general", Err: err}
	}

	return models.ArticleSentiment{
		Title: article.Title,
		Score: models.SentimentScore{
			Compound:     lex.Compound,
			Positive:     lex.Positive,
			Negative:     lex.Negative,
			Neutral:      lex.Neutral,
			Subjectivity: tone.Subjectivity,
		},
		Keywords:  a.countKeywords(text),
		Sentences: sentenceResults,
	}, nil
}

func (a *Aggregator) analyzeSentence(ctx context.Context, sentence string) (models.SentenceSentiment, error) {
	lex, err := a.scorer.LexiconScore(ctx, sentence)
	if err != nil {
		return models.SentenceSentiment{}, &models.ScoringError{Lens: "lexicon", Err: err}
	}
	tone, err := a.scorer.GeneralScore(ctx, sentence)
	if err != nil {
		return models.SentenceSentiment{}, &models.ScoringError{Lens: "general", Err: err}
	}
	return models.SentenceSentiment{
		Text:         sentence,
		Compound:     lex.Compound,
		Polarity:     tone.Polarity,
		Subjectivity: tone.Subjectivity,
	}, nil
}

// countKeywords counts, for every lexicon entry, the lemmas equal to that
// literal keyword. Every lexicon key appears in the result, zero included.
func (a *Aggregator) countKeywords(text string) map[string]int {
	lemmas := a.tokenizer.Lemmas(text)
	freq := make(map[string]int, len(lemmas))
	for _, lemma := range lemmas {
		freq[lemma]++
	}

	counts := make(map[string]int, 16)
	for category, words := range a.lexicon {
		for _, w := range words {
			counts[category+"_"+w] = freq[w]
		}
	}
	return counts
}
