// Package result implements exercise result persistence using PostgreSQL.
package result

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-practice/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

const table = "exercise_results"

// Repo stores answered exercises. Rows are unique per (session, exercise).
type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Save inserts res for the session. Returns domain.ErrAlreadyExists when the
// exercise was already answered in that session.
func (r *Repo) Save(ctx context.Context, sessionID uuid.UUID, res domain.ExerciseResult) error {
	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(
			"session_id", "exercise_id", "kind", "is_correct", "user_answer",
			"correct_answer", "points", "time_spent_ms", "answered_at",
		).
		Values(
			sessionID, res.ExerciseID, string(res.Kind), res.IsCorrect, res.UserAnswer,
			res.CorrectAnswer, res.Points, res.TimeSpentMs, res.AnsweredAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", table, err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "exercise_result", sessionID.String()+"/"+res.ExerciseID)
	}
	return nil
}

// ListBySession returns the session's results in the order they were saved.
func (r *Repo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error) {
	sql, args, err := postgres.Builder().
		Select(
			"exercise_id", "kind", "is_correct", "user_answer", "correct_answer",
			"points", "time_spent_ms", "answered_at",
		).
		From(table).
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	results := make([]domain.ExerciseResult, 0)
	for rows.Next() {
		var (
			res  domain.ExerciseResult
			kind string
		)
		if err := rows.Scan(
			&res.ExerciseID, &kind, &res.IsCorrect, &res.UserAnswer, &res.CorrectAnswer,
			&res.Points, &res.TimeSpentMs, &res.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		res.Kind = domain.ExerciseKind(kind)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return results, nil
}
