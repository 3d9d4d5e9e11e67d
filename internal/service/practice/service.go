// Package practice orchestrates dialogue generation, parsing, practice
// sessions and the learner's collection.
package practice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/exercise"
	"github.com/heartmarshall/myenglish-practice/internal/parser"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type sessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.PracticeSession, error)
	Save(ctx context.Context, sess *domain.PracticeSession) error
	AppendResult(ctx context.Context, id uuid.UUID, r domain.ExerciseResult) error
}

type resultRepo interface {
	Save(ctx context.Context, sessionID uuid.UUID, res domain.ExerciseResult) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.ExerciseResult, error)
}

type collectionRepo interface {
	Create(ctx context.Context, item *domain.CollectedItem) (*domain.CollectedItem, error)
	List(ctx context.Context, f domain.CollectionFilter) ([]domain.CollectedItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds orchestration limits.
type Config struct {
	MaxDialogueAttempts int
	DefaultDeckSize     int
	Exercise            exercise.Config
}

// Service implements the practice use cases.
type Service struct {
	llm        completer
	parser     *parser.Parser
	sessions   sessionStore
	results    resultRepo
	collection collectionRepo
	tx         txManager
	cfg        Config
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new Practice service.
func NewService(
	log *slog.Logger,
	llm completer,
	p *parser.Parser,
	sessions sessionStore,
	results resultRepo,
	collection collectionRepo,
	tx txManager,
	cfg Config,
) *Service {
	cfg.MaxDialogueAttempts = max(1, cfg.MaxDialogueAttempts)
	if cfg.DefaultDeckSize <= 0 {
		cfg.DefaultDeckSize = 10
	}
	return &Service{
		llm:        llm,
		parser:     p,
		sessions:   sessions,
		results:    results,
		collection: collection,
		tx:         tx,
		cfg:        cfg,
		log:        log.With("service", "practice"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}
