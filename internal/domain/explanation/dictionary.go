package explanation

// staticExplanations covers common terms so the endpoint stays useful
// without a database.
var staticExplanations = map[string]Explanation{
	"fever": {
		Term:         "fever",
		Definition:   "An elevation in body temperature above the normal range, typically above 100.4°F (38°C). Usually indicates the body is fighting an infection.",
		Source:       "Medical Dictionary",
		RelatedTerms: []string{"temperature", "infection", "inflammation"},
	},
	"headache": {
		Term:         "headache",
		Definition:   "Pain located in the head or upper neck, often caused by tension, dehydration, stress, or underlying medical conditions.",
		Source:       "Medical Dictionary",
		RelatedTerms: []string{"migraine", "tension", "pain"},
	},
	"nausea": {
		Term:         "nausea",
		Definition:   "A feeling of sickness or discomfort in the stomach that may lead to vomiting.",
		Source:       "Medical Dictionary",
		RelatedTerms: []string{"vomiting", "stomach", "digestive"},
	},
	"fatigue": {
		Term:         "fatigue",
		Definition:   "A feeling of tiredness, weakness, or lack of energy that can be physical, mental, or both.",
		Source:       "Medical Dictionary",
		RelatedTerms: []string{"tiredness", "weakness", "energy"},
	},
	"cough": {
		Term:         "cough",
		Definition:   "A sudden, forceful expulsion of air from the lungs that clears the airways of irritants, mucus, or foreign material.",
		Source:       "Medical Dictionary",
		RelatedTerms: []string{"respiratory", "throat", "congestion"},
	},
	"dizziness": {
		Term:         "dizziness",
		Definition:   "A sensation of lightheadedness, unsteadiness, or feeling faint, often related to blood pressure, dehydration, or inner ear problems.",
		Source:       "Medical Dictionary",
		RelatedTerms: []string{"vertigo", "balance", "lightheadedness"},
	},
}
