package explanation

// Explanation describes one medical term in plain language.
type Explanation struct {
	Term         string   `json:"term"`
	Definition   string   `json:"definition"`
	Source       string   `json:"source"`
	RelatedTerms []string `json:"related_terms"`
}
