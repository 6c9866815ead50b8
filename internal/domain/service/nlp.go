package service

import (
	"context"

	"SentiPulse/internal/domain/models"
)

// TextScorer is the injected text-polarity capability. Both lenses are pure
// functions over text: deterministic, side-effect free. Tests substitute
// stub implementations.
type TextScorer interface {
	// LexiconScore runs the rule-based lexicon lens.
	LexiconScore(ctx context.Context, text string) (models.PolarityScore, error)
	// GeneralScore runs the general-purpose polarity/subjectivity lens.
	GeneralScore(ctx context.Context, text string) (models.ToneScore, error)
}

// Tokenizer is the language-processing capability used by keyword analysis.
type Tokenizer interface {
	// Sentences splits text into a finite sequence of sentences.
	Sentences(text string) []string
	// Lemmas lowercases text, reduces word tokens to their dictionary base
	// form, and drops stopwords.
	Lemmas(text string) []string
}
