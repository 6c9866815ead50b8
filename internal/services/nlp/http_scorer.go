package nlp

import (
	"context"
	"fmt"

	"SentiPulse/internal/domain/models"
	domsvc "SentiPulse/internal/domain/service"
	"SentiPulse/pkg/config"
)

// HTTPTextScorer delegates both scoring lenses to an external NLP sidecar.
type HTTPTextScorer struct{ base *HTTPServiceBase }

func NewHTTPTextScorer(cfg *config.Config) *HTTPTextScorer {
	return &HTTPTextScorer{base: NewHTTPServiceBase(cfg)}
}

type scoreReq struct {
	Text string `json:"text"`
}

type lexiconResp struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
}

type generalResp struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

func (s *HTTPTextScorer) LexiconScore(ctx context.Context, text string) (models.PolarityScore, error) {
	var lr lexiconResp
	if err := s.base.PostJSON(ctx, "/score/lexicon", scoreReq{Text: text}, &lr); err != nil {
		return models.PolarityScore{}, fmt.Errorf("post lexicon: %w", err)
	}
	return models.PolarityScore{
		Compound: lr.Compound,
		Positive: lr.Positive,
		Negative: lr.Negative,
		Neutral:  lr.Neutral,
	}, nil
}

func (s *HTTPTextScorer) GeneralScore(ctx context.Context, text string) (models.ToneScore, error) {
	var gr generalResp
	if err := s.base.PostJSON(ctx, "/score/general", scoreReq{Text: text}, &gr); err != nil {
		return models.ToneScore{}, fmt.Errorf("post general: %w", err)
	}
	return models.ToneScore{Polarity: gr.Polarity, Subjectivity: gr.Subjectivity}, nil
}

var _ domsvc.TextScorer = (*HTTPTextScorer)(nil)
