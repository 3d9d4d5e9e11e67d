package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseKind identifies the type of a practice exercise.
type ExerciseKind string

const (
	ExerciseKindFillBlank              ExerciseKind = "fill-blank"
	ExerciseKindListening              ExerciseKind = "listening"
	ExerciseKindWordMatching           ExerciseKind = "word-matching"
	ExerciseKindSentenceReconstruction ExerciseKind = "sentence-reconstruction"
	ExerciseKindReadingComprehension   ExerciseKind = "reading-comprehension"
)

func (k ExerciseKind) String() string { return string(k) }

func (k ExerciseKind) IsValid() bool {
	switch k {
	case ExerciseKindFillBlank, ExerciseKindListening, ExerciseKindWordMatching,
		ExerciseKindSentenceReconstruction, ExerciseKindReadingComprehension:
		return true
	}
	return false
}

// Points returns the fixed score of an exercise of this kind.
func (k ExerciseKind) Points() int {
	switch k {
	case ExerciseKindFillBlank, ExerciseKindWordMatching:
		return 10
	case ExerciseKindListening, ExerciseKindReadingComprehension:
		return 15
	case ExerciseKindSentenceReconstruction:
		return 20
	}
	return 0
}

// IsChoice reports whether the kind is answered by picking one of four options.
func (k ExerciseKind) IsChoice() bool {
	switch k {
	case ExerciseKindFillBlank, ExerciseKindWordMatching, ExerciseKindReadingComprehension:
		return true
	}
	return false
}

// Exercise is one generated practice item.
//   - fill-blank: Question is the sentence with the word blanked, Options has 4 words.
//   - listening: AudioText is the word to pronounce, Answer is the same word.
//   - word-matching: Question is the word, Options has 4 translations.
//   - sentence-reconstruction: Options holds the shuffled tokens, Answer the sentence.
//   - reading-comprehension: copied from a ReadingQuestion.
type Exercise struct {
	ID          string       `json:"id"`
	Kind        ExerciseKind `json:"kind"`
	Question    string       `json:"question"`
	Answer      string       `json:"answer"`
	Options     []string     `json:"options,omitempty"`
	AudioText   string       `json:"audioText,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	Points      int          `json:"points"`
}

// ExerciseResult records one answered exercise. Never mutated after creation.
type ExerciseResult struct {
	ExerciseID    string       `json:"exerciseId"`
	Kind          ExerciseKind `json:"kind"`
	IsCorrect     bool         `json:"isCorrect"`
	UserAnswer    string       `json:"userAnswer"`
	CorrectAnswer string       `json:"correctAnswer"`
	Points        int          `json:"points"`
	TimeSpentMs   int64        `json:"timeSpentMs"`
	AnsweredAt    time.Time    `json:"answeredAt"`
}

// ScoreSummary aggregates a list of results.
type ScoreSummary struct {
	TotalPoints     int `json:"totalPoints"`
	AccuracyPercent int `json:"accuracyPercent"`
	AvgTimeSeconds  int `json:"avgTimeSeconds"`
	Answered        int `json:"answered"`
	Correct         int `json:"correct"`
}

// PracticeSession is a generated deck plus the ordered results answered so far.
type PracticeSession struct {
	ID        uuid.UUID        `json:"id"`
	Exercises []Exercise       `json:"exercises"`
	Results   []ExerciseResult `json:"results"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Exercise returns the exercise with the given id.
func (s *PracticeSession) Exercise(id string) (Exercise, bool) {
	for _, e := range s.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// Answered reports whether a result already exists for the exercise.
func (s *PracticeSession) Answered(exerciseID string) bool {
	for _, r := range s.Results {
		if r.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}
