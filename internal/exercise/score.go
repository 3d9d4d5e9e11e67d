package exercise

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// Validate reports whether userAnswer matches the exercise answer after
// normalization: case, surrounding whitespace, repeated spaces, and trailing
// punctuation are ignored. Word order and inner punctuation are not.
func Validate(ex domain.Exercise, userAnswer string) bool {
	return domain.NormalizeAnswer(userAnswer) == domain.NormalizeAnswer(ex.Answer)
}

// Grade validates userAnswer and records the outcome. Points are awarded only
// for a correct answer.
func Grade(ex domain.Exercise, userAnswer string, timeSpentMs int64, now time.Time) domain.ExerciseResult {
	correct := Validate(ex, userAnswer)
	points := 0
	if correct {
		points = ex.Points
	}
	return domain.ExerciseResult{
		ExerciseID:    ex.ID,
		Kind:          ex.Kind,
		IsCorrect:     correct,
		UserAnswer:    userAnswer,
		CorrectAnswer: ex.Answer,
		Points:        points,
		TimeSpentMs:   max(0, timeSpentMs),
		AnsweredAt:    now,
	}
}

// Score summarizes results. An empty list yields the zero summary.
func Score(results []domain.ExerciseResult) domain.ScoreSummary {
	if len(results) == 0 {
		return domain.ScoreSummary{}
	}

	correct := len(lo.Filter(results, func(r domain.ExerciseResult, _ int) bool { return r.IsCorrect }))
	points := lo.Reduce(results, func(sum int, r domain.ExerciseResult, _ int) int { return sum + r.Points }, 0)
	totalMs := lo.Reduce(results, func(sum int64, r domain.ExerciseResult, _ int) int64 { return sum + r.TimeSpentMs }, int64(0))

	n := float64(len(results))
	return domain.ScoreSummary{
		TotalPoints:     points,
		AccuracyPercent: int(math.Round(100 * float64(correct) / n)),
		AvgTimeSeconds:  int(math.Round(float64(totalMs) / n / 1000)),
		Answered:        len(results),
		Correct:         correct,
	}
}
