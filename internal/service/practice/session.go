package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/exercise"
	"github.com/heartmarshall/myenglish-practice/pkg/ctxutil"
)

// StartSession builds a deck from the dialogue and passage and stores it as
// a new practice session. Dialogue exercises come first, followed by one
// reading-comprehension exercise per passage question.
func (s *Service) StartSession(ctx context.Context, input StartSessionInput) (*domain.PracticeSession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var opts []exercise.Option
	if input.Seed != 0 {
		opts = append(opts, exercise.WithSeed(input.Seed))
	}
	gen := exercise.New(s.cfg.Exercise, opts...)

	count := input.Count
	if count == 0 {
		count = s.cfg.DefaultDeckSize
	}

	deck := gen.Generate(input.Turns, count)
	if input.Passage != nil {
		deck = append(deck, gen.FromPassage(*input.Passage)...)
	}
	if len(deck) == 0 {
		return nil, domain.NewValidationError("turns", "no exercises could be built from the material")
	}

	sess := &domain.PracticeSession{
		ID:        uuid.New(),
		Exercises: deck,
		Results:   []domain.ExerciseResult{},
		CreatedAt: s.now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.InfoContext(ctxutil.WithSessionID(ctx, sess.ID), "practice session started",
		slog.Int("exercises", len(deck)),
		slog.Int("turns", len(input.Turns)),
		slog.Bool("passage", input.Passage != nil),
	)
	return sess, nil
}

// GetSession returns a stored session.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// SubmitAnswer grades one answer and records the result in the session and
// the result log inside one transaction. A second answer to the same
// exercise is domain.ErrAlreadyExists.
func (s *Service) SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*domain.ExerciseResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	ctx = ctxutil.WithSessionID(ctx, input.SessionID)

	sess, err := s.sessions.Get(ctx, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	ex, ok := sess.Exercise(input.ExerciseID)
	if !ok {
		return nil, fmt.Errorf("exercise %s: %w", input.ExerciseID, domain.ErrNotFound)
	}
	if sess.Answered(ex.ID) {
		return nil, fmt.Errorf("exercise %s: %w", ex.ID, domain.ErrAlreadyExists)
	}

	result := exercise.Grade(ex, input.Answer, input.TimeSpentMs, s.now())

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.results.Save(ctx, sess.ID, result); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		if err := s.sessions.AppendResult(ctx, sess.ID, result); err != nil {
			return fmt.Errorf("append result: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("exercise %s: %w", ex.ID, domain.ErrAlreadyExists)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "answer graded",
		slog.String("exercise_id", ex.ID),
		slog.String("kind", ex.Kind.String()),
		slog.Bool("correct", result.IsCorrect),
		slog.Int("points", result.Points),
	)
	return &result, nil
}

// GetSummary scores the answers recorded so far in the session.
func (s *Service) GetSummary(ctx context.Context, sessionID uuid.UUID) (domain.ScoreSummary, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.ScoreSummary{}, err
	}
	return exercise.Score(sess.Results), nil
}

// ListResults returns the persisted results of a session in answer order.
// Results outlive the session itself.
func (s *Service) ListResults(ctx context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error) {
	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}
	results, err := s.results.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}
