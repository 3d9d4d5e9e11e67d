// Package memory holds mutex-guarded in-process stores. They back the
// service when no database is configured and in tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// SessionStore keeps practice sessions in memory. Sessions older than ttl
// are dropped on the next Save.
type SessionStore struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*domain.PracticeSession
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionStore creates a store. A zero ttl keeps sessions forever.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		data: make(map[uuid.UUID]*domain.PracticeSession),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns a copy of the session.
func (s *SessionStore) Get(_ context.Context, id uuid.UUID) (*domain.PracticeSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[id]
	if !ok || s.expired(sess) {
		return nil, domain.ErrNotFound
	}
	return cloneSession(sess), nil
}

// Save stores a copy of sess, replacing any session with the same id.
func (s *SessionStore) Save(_ context.Context, sess *domain.PracticeSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.data {
		if s.expired(existing) {
			delete(s.data, id)
		}
	}
	s.data[sess.ID] = cloneSession(sess)
	return nil
}

// AppendResult adds r to the session's result list. A second result for the
// same exercise is domain.ErrAlreadyExists.
func (s *SessionStore) AppendResult(_ context.Context, id uuid.UUID, r domain.ExerciseResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok || s.expired(sess) {
		return domain.ErrNotFound
	}
	if sess.Answered(r.ExerciseID) {
		return domain.ErrAlreadyExists
	}
	sess.Results = append(sess.Results, r)
	return nil
}

func (s *SessionStore) expired(sess *domain.PracticeSession) bool {
	return s.ttl > 0 && s.now().Sub(sess.CreatedAt) > s.ttl
}

func cloneSession(sess *domain.PracticeSession) *domain.PracticeSession {
	out := *sess
	out.Exercises = slices.Clone(sess.Exercises)
	for i := range out.Exercises {
		out.Exercises[i].Options = slices.Clone(sess.Exercises[i].Options)
	}
	out.Results = slices.Clone(sess.Results)
	return &out
}
