package practice

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

const (
	maxTopicLen   = 200
	maxRawLen     = 64 << 10
	maxAnswerLen  = 2000
	maxCollectLen = 1000
	maxNoteLen    = 2000
	maxDeckSize   = 50
	maxListLimit  = 200
	minTurns      = 2
	maxTurns      = 20
	defaultTurns  = 8
	defaultLevel  = "intermediate"
)

var levels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

func validateTopic(errs []domain.FieldError, topic string) []domain.FieldError {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return append(errs, domain.FieldError{Field: "topic", Message: "required"})
	}
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return append(errs, domain.FieldError{Field: "topic", Message: "max 200 characters"})
	}
	return errs
}

func validateLevel(errs []domain.FieldError, level string) []domain.FieldError {
	if level == "" {
		return errs
	}
	if _, ok := levels[strings.ToLower(strings.TrimSpace(level))]; !ok {
		return append(errs, domain.FieldError{Field: "level", Message: "must be beginner, intermediate or advanced"})
	}
	return errs
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return defaultLevel
	}
	return level
}

// GenerateDialogueInput holds the parameters for generating a dialogue.
type GenerateDialogueInput struct {
	Topic string
	Level string
	// Turns is the requested number of speaker lines; zero means the default.
	Turns int
}

// Validate checks all fields and collects all errors.
func (i GenerateDialogueInput) Validate() error {
	var errs []domain.FieldError
	errs = validateTopic(errs, i.Topic)
	errs = validateLevel(errs, i.Level)
	if i.Turns != 0 && (i.Turns < minTurns || i.Turns > maxTurns) {
		errs = append(errs, domain.FieldError{Field: "turns", Message: "must be between 2 and 20"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GenerateReadingInput holds the parameters for generating a reading passage.
type GenerateReadingInput struct {
	Topic string
	Level string
}

// Validate checks all fields and collects all errors.
func (i GenerateReadingInput) Validate() error {
	var errs []domain.FieldError
	errs = validateTopic(errs, i.Topic)
	errs = validateLevel(errs, i.Level)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ParseInput carries raw model output supplied by a client.
type ParseInput struct {
	Raw string
}

// Validate checks all fields and collects all errors.
func (i ParseInput) Validate() error {
	if strings.TrimSpace(i.Raw) == "" {
		return domain.NewValidationError("raw", "required")
	}
	if len(i.Raw) > maxRawLen {
		return domain.NewValidationError("raw", "max 64KiB")
	}
	return nil
}

// StartSessionInput holds the source material for a new practice session.
type StartSessionInput struct {
	Turns   []domain.DialogueTurn
	Passage *domain.ReadingPassage
	// Count is the number of dialogue exercises to aim for; zero means the default.
	Count int
	// Seed makes the deck reproducible when non-zero.
	Seed uint64
}

// Validate checks all fields and collects all errors.
func (i StartSessionInput) Validate() error {
	var errs []domain.FieldError
	if len(i.Turns) == 0 && i.Passage == nil {
		errs = append(errs, domain.FieldError{Field: "turns", Message: "turns or passage required"})
	}
	for idx, t := range i.Turns {
		if strings.TrimSpace(t.Text) == "" {
			errs = append(errs, domain.FieldError{Field: "turns[" + strconv.Itoa(idx) + "].text", Message: "required"})
		}
	}
	if i.Count < 0 || i.Count > maxDeckSize {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be between 0 and 50"})
	}
	if i.Passage != nil {
		if err := i.Passage.Validate(); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				for _, fe := range ve.Errors {
					errs = append(errs, domain.FieldError{Field: "passage." + fe.Field, Message: fe.Message})
				}
			} else {
				errs = append(errs, domain.FieldError{Field: "passage", Message: err.Error()})
			}
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SubmitAnswerInput holds one answer to grade.
type SubmitAnswerInput struct {
	SessionID   uuid.UUID
	ExerciseID  string
	Answer      string
	TimeSpentMs int64
}

// Validate checks all fields and collects all errors.
func (i SubmitAnswerInput) Validate() error {
	var errs []domain.FieldError
	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if strings.TrimSpace(i.ExerciseID) == "" {
		errs = append(errs, domain.FieldError{Field: "exercise_id", Message: "required"})
	}
	if len(i.Answer) > maxAnswerLen {
		errs = append(errs, domain.FieldError{Field: "answer", Message: "max 2000 characters"})
	}
	if i.TimeSpentMs < 0 {
		errs = append(errs, domain.FieldError{Field: "time_spent_ms", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CollectInput holds a word or sentence to save.
type CollectInput struct {
	Text        string
	Translation string
	Note        string
}

// Validate checks all fields and collects all errors.
func (i CollectInput) Validate() error {
	var errs []domain.FieldError
	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if utf8.RuneCountInString(text) > maxCollectLen {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 1000 characters"})
	}
	if utf8.RuneCountInString(i.Translation) > maxCollectLen {
		errs = append(errs, domain.FieldError{Field: "translation", Message: "max 1000 characters"})
	}
	if utf8.RuneCountInString(i.Note) > maxNoteLen {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListCollectedInput holds the parameters for listing collected items.
type ListCollectedInput struct {
	Kind   domain.CollectedKind
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListCollectedInput) Validate() error {
	var errs []domain.FieldError
	if i.Kind != "" && !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be word or sentence"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
