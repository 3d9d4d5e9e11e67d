package exercise

import (
	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// FromPassage turns each passage question into a reading-comprehension
// exercise, keeping its options, answer, and explanation verbatim.
func (g *Generator) FromPassage(passage domain.ReadingPassage) []domain.Exercise {
	out := make([]domain.Exercise, 0, len(passage.Questions))
	for _, q := range passage.Questions {
		out = append(out, domain.Exercise{
			ID:          g.newID(),
			Kind:        domain.ExerciseKindReadingComprehension,
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			Options:     q.Options[:],
			Explanation: q.Explanation,
			Points:      domain.ExerciseKindReadingComprehension.Points(),
		})
	}
	return out
}
