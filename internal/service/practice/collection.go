package practice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

const defaultListLimit = 50

// CollectWord saves a word to the collection.
func (s *Service) CollectWord(ctx context.Context, input CollectInput) (*domain.CollectedItem, error) {
	return s.collect(ctx, domain.CollectedKindWord, input)
}

// CollectSentence saves a sentence to the collection.
func (s *Service) CollectSentence(ctx context.Context, input CollectInput) (*domain.CollectedItem, error) {
	return s.collect(ctx, domain.CollectedKindSentence, input)
}

func (s *Service) collect(ctx context.Context, kind domain.CollectedKind, input CollectInput) (*domain.CollectedItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	item, err := s.collection.Create(ctx, &domain.CollectedItem{
		ID:             uuid.New(),
		Kind:           kind,
		Text:           text,
		TextNormalized: domain.NormalizeText(text),
		Translation:    strings.TrimSpace(input.Translation),
		Note:           strings.TrimSpace(input.Note),
		CreatedAt:      s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", kind, err)
	}

	s.log.InfoContext(ctx, "item collected",
		slog.String("item_id", item.ID.String()),
		slog.String("kind", kind.String()),
	)
	return item, nil
}

// ListCollected returns collected items newest first.
func (s *Service) ListCollected(ctx context.Context, input ListCollectedInput) ([]domain.CollectedItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	items, err := s.collection.List(ctx, domain.CollectionFilter{
		Kind:   input.Kind,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}
	return items, nil
}

// DeleteCollected removes an item from the collection.
func (s *Service) DeleteCollected(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	if err := s.collection.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete collected item: %w", err)
	}

	s.log.InfoContext(ctx, "collected item deleted", slog.String("item_id", id.String()))
	return nil
}
