package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// ResultRepo keeps answered exercises per session, in answer order.
type ResultRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID][]domain.ExerciseResult
}

func NewResultRepo() *ResultRepo {
	return &ResultRepo{data: make(map[uuid.UUID][]domain.ExerciseResult)}
}

func (r *ResultRepo) Save(_ context.Context, sessionID uuid.UUID, res domain.ExerciseResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.data[sessionID] {
		if existing.ExerciseID == res.ExerciseID {
			return domain.ErrAlreadyExists
		}
	}
	r.data[sessionID] = append(r.data[sessionID], res)
	return nil
}

func (r *ResultRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.data[sessionID]), nil
}
