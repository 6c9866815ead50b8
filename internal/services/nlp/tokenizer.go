package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"

	domsvc "SentiPulse/internal/domain/service"
)

// TextTokenizer implements the language-processing capability: UAX#29
// sentence and word segmentation with dictionary lemmatization and stopword
// removal for keyword analysis.
type TextTokenizer struct {
	lemmatizer *golem.Lemmatizer
}

func NewTextTokenizer() (*TextTokenizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &TextTokenizer{lemmatizer: lem}, nil
}

// Sentences splits text into trimmed, non-empty sentences.
func (t *TextTokenizer) Sentences(text string) []string {
	out := make([]string, 0, 8)
	segs := sentences.FromString(text)
	for segs.Next() {
		s := strings.TrimSpace(segs.Value())
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Lemmas lowercases text, segments it into word tokens, reduces each token
// to its dictionary base form, and drops stopwords. Tokens without letters
// or digits (punctuation, whitespace) are skipped.
func (t *TextTokenizer) Lemmas(text string) []string {
	out := make([]string, 0, 64)
	segs := words.FromString(strings.ToLower(text))
	for segs.Next() {
		tok := segs.Value()
		if !isWordToken(tok) {
			continue
		}
		lemma := t.lemmatizer.Lemma(tok)
		if stopwords[lemma] || stopwords[tok] {
			continue
		}
		out = append(out, lemma)
	}
	return out
}

func isWordToken(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var _ domsvc.Tokenizer = (*TextTokenizer)(nil)
