package extraction

import (
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"
)

// fuzzyMatchMin is the Jaro-Winkler similarity a token needs to be folded
// onto a vocabulary term.
const fuzzyMatchMin = 0.90

// Vocabulary folds free-text tokens onto canonical symptom terms. Stemming
// catches morphological variants (coughing, vomited); Jaro-Winkler catches
// near-miss spellings (feverr, nausia).
type Vocabulary struct {
	terms []string
	stems map[string]string
}

func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{
		terms: terms,
		stems: make(map[string]string, len(terms)),
	}
	for _, term := range terms {
		if !strings.ContainsRune(term, ' ') {
			v.stems[porter2.Stem(term)] = term
		}
	}
	return v
}

// DefaultVocabulary covers the single-word complaints the rule engine and
// the disease catalog know about.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary([]string{
		"pain", "ache", "fever", "cough", "headache", "nausea", "vomiting",
		"diarrhea", "constipation", "fatigue", "dizziness", "swelling",
		"rash", "itching", "burning", "tingling", "numbness", "weakness",
		"bloating", "sneezing", "wheezing", "congestion", "chills",
		"cramps", "sweating", "insomnia", "irritability",
	})
}

// Canonicalize maps a token to its vocabulary term. It reports false when
// the token matches nothing.
func (v *Vocabulary) Canonicalize(token string) (string, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if len(token) < 3 {
		return "", false
	}

	if term, ok := v.stems[porter2.Stem(token)]; ok {
		return term, true
	}

	for _, term := range v.terms {
		score, err := edlib.StringsSimilarity(token, term, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) >= fuzzyMatchMin {
			return term, true
		}
	}
	return "", false
}
