package nlp

import (
	"context"

	"github.com/jonreiter/govader"

	"SentiPulse/internal/domain/models"
	domsvc "SentiPulse/internal/domain/service"
)

// VaderScorer is the in-process scorer backend built on the VADER lexicon.
// The general lens is approximated from the same analysis: polarity is the
// compound score, subjectivity the non-neutral token fraction.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) LexiconScore(_ context.Context, text string) (models.PolarityScore, error) {
	res := s.analyzer.PolarityScores(text)
	return models.PolarityScore{
		Compound: res.Compound,
		Positive: res.Positive,
		Negative: res.Negative,
		Neutral:  res.Neutral,
	}, nil
}

func (s *VaderScorer) GeneralScore(_ context.Context, text string) (models.ToneScore, error) {
	res := s.analyzer.PolarityScores(text)
	return models.ToneScore{
		Polarity:     res.Compound,
		Subjectivity: 1 - res.Neutral,
	}, nil
}

var _ domsvc.TextScorer = (*VaderScorer)(nil)
