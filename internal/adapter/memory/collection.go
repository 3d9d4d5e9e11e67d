package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

type collectionKey struct {
	kind domain.CollectedKind
	text string
}

// CollectionRepo stores collected words and sentences. Items are unique by
// kind and normalized text.
type CollectionRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.CollectedItem
	index map[collectionKey]uuid.UUID
	now   func() time.Time
}

func NewCollectionRepo() *CollectionRepo {
	return &CollectionRepo{
		items: make(map[uuid.UUID]domain.CollectedItem),
		index: make(map[collectionKey]uuid.UUID),
		now:   time.Now,
	}
}

func (r *CollectionRepo) Create(_ context.Context, item *domain.CollectedItem) (*domain.CollectedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := collectionKey{kind: item.Kind, text: item.TextNormalized}
	if _, ok := r.index[key]; ok {
		return nil, domain.ErrAlreadyExists
	}

	out := *item
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = r.now()
	}
	r.items[out.ID] = out
	r.index[key] = out.ID
	return &out, nil
}

// List returns items newest first. A zero Limit returns everything after Offset.
func (r *CollectionRepo) List(_ context.Context, f domain.CollectionFilter) ([]domain.CollectedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CollectedItem, 0, len(r.items))
	for _, it := range r.items {
		if f.Kind != "" && it.Kind != f.Kind {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	offset := max(0, f.Offset)
	if offset >= len(out) {
		return []domain.CollectedItem{}, nil
	}
	out = out[offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *CollectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	delete(r.index, collectionKey{kind: it.Kind, text: it.TextNormalized})
	return nil
}
