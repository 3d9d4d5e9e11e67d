package domain

// Untranslated marks a turn whose translation has not been supplied yet.
const Untranslated = "untranslated"

// DialogueTurn is one speaker's utterance with its translation and per-word gloss.
type DialogueTurn struct {
	Speaker          string            `json:"speaker"`
	Text             string            `json:"text"`
	Translation      string            `json:"translation"`
	WordTranslations map[string]string `json:"wordTranslations"`
}

// NeedsTranslation reports whether the translation is still pending.
func (t DialogueTurn) NeedsTranslation() bool {
	return t.Translation == "" || t.Translation == Untranslated
}

// Clone returns a deep copy, so the gloss map is not shared.
func (t DialogueTurn) Clone() DialogueTurn {
	words := make(map[string]string, len(t.WordTranslations))
	for k, v := range t.WordTranslations {
		words[k] = v
	}
	t.WordTranslations = words
	return t
}

// CloneTurns deep-copies a slice of turns.
func CloneTurns(turns []DialogueTurn) []DialogueTurn {
	if turns == nil {
		return nil
	}
	out := make([]DialogueTurn, len(turns))
	for i, t := range turns {
		out[i] = t.Clone()
	}
	return out
}

// ReadingQuestion is one multiple-choice question of a passage.
type ReadingQuestion struct {
	Question      string    `json:"question"`
	Options       [4]string `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	Explanation   string    `json:"explanation,omitempty"`
}

// AnswerIndex returns the index of CorrectAnswer in Options, or -1.
func (q ReadingQuestion) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// ReadingPassage is a reading-comprehension article with its questions.
type ReadingPassage struct {
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Questions []ReadingQuestion `json:"questions"`
}

// Validate checks that the passage is complete and every answer is one of its options.
func (p ReadingPassage) Validate() error {
	var errs []FieldError

	if p.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if p.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "required"})
	}
	if len(p.Questions) == 0 {
		errs = append(errs, FieldError{Field: "questions", Message: "at least one required"})
	}
	for _, q := range p.Questions {
		if q.AnswerIndex() < 0 {
			errs = append(errs, FieldError{Field: "questions", Message: "correct answer must be one of the options"})
			break
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Clone returns a copy with its own question slice.
func (p ReadingPassage) Clone() ReadingPassage {
	if p.Questions != nil {
		qs := make([]ReadingQuestion, len(p.Questions))
		copy(qs, p.Questions)
		p.Questions = qs
	}
	return p
}
