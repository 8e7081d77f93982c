package gemini

// enrichmentSchema is the JSON shape the enrichment prompt demands.
type enrichmentSchema struct {
	Definition  string   `json:"definition"`
	Phonetic    string   `json:"phonetic"`
	Translation string   `json:"translation"`
	Example     string   `json:"example"`
	Synonyms    []string `json:"synonyms"`
}

// termsSchema is the JSON shape of both term extraction prompts.
type termsSchema struct {
	Terms []string `json:"terms"`
}

// quizSchema is the JSON shape the quiz prompt demands.
type quizSchema struct {
	Questions []questionSchema `json:"questions"`
}

// questionSchema is a single generated question before validation.
type questionSchema struct {
	Term    string   `json:"term"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
	Context string   `json:"context"`
}
