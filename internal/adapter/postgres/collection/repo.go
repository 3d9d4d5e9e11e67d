// Package collection implements the collected words and sentences repository
// using PostgreSQL.
package collection

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-practice/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

const table = "collected_items"

var columns = []string{"id", "kind", "text", "text_normalized", "translation", "note", "created_at"}

// Repo provides collected item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new collection repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts item and returns the stored row. A missing ID or CreatedAt
// is filled in by the database. Returns domain.ErrAlreadyExists when an item
// of the same kind and normalized text is already collected.
func (r *Repo) Create(ctx context.Context, item *domain.CollectedItem) (*domain.CollectedItem, error) {
	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	ins := postgres.Builder().
		Insert(table).
		Columns("id", "kind", "text", "text_normalized", "translation", "note")
	values := []any{id, string(item.Kind), item.Text, item.TextNormalized, item.Translation, item.Note}
	if !item.CreatedAt.IsZero() {
		ins = ins.Columns("created_at")
		values = append(values, item.CreatedAt)
	}
	ins = ins.Values(values...).Suffix("RETURNING " + strings.Join(columns, ", "))

	sql, args, err := ins.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s: %w", table, err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	out, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "collected_item", id)
	}
	return out, nil
}

// List returns items newest first, optionally filtered by kind.
// A zero Limit returns every matching row after Offset.
func (r *Repo) List(ctx context.Context, f domain.CollectionFilter) ([]domain.CollectedItem, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id ASC")

	if f.Kind != "" {
		query = query.Where(sq.Eq{"kind": string(f.Kind)})
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		query = query.Offset(uint64(f.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	items := make([]domain.CollectedItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return items, nil
}

// Delete removes an item. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "collected_item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collected_item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanItem(row pgx.Row) (*domain.CollectedItem, error) {
	var (
		it   domain.CollectedItem
		kind string
	)
	if err := row.Scan(&it.ID, &kind, &it.Text, &it.TextNormalized, &it.Translation, &it.Note, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.Kind = domain.CollectedKind(kind)
	return &it, nil
}
