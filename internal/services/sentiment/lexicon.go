package sentiment

// KeywordLexicon maps a category name to the literal keywords counted for it.
// Counted keys are formatted "<category>_<keyword>".
type KeywordLexicon map[string][]string

// DefaultLexicon returns the fixed finance lexicon.
func DefaultLexicon() KeywordLexicon {
	return KeywordLexicon{
		"positive": {"surge", "growth", "profit", "gain", "up", "rise", "positive", "strong"},
		"negative": {"decline", "loss", "down", "fall", "negative", "weak", "risk", "concern"},
	}
}

// Keys returns every "<category>_<keyword>" key of the lexicon.
func (l KeywordLexicon) Keys() []string {
	keys := make([]string, 0, 16)
	for category, words := range l {
		for _, w := range words {
			keys = append(keys, category+"_"+w)
		}
	}
	return keys
}
