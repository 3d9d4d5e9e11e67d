package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-practice/internal/adapter/llm"
	"github.com/heartmarshall/myenglish-practice/internal/adapter/memory"
	"github.com/heartmarshall/myenglish-practice/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-practice/internal/adapter/postgres/collection"
	"github.com/heartmarshall/myenglish-practice/internal/adapter/postgres/result"
	"github.com/heartmarshall/myenglish-practice/internal/config"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/exercise"
	"github.com/heartmarshall/myenglish-practice/internal/parser"
	"github.com/heartmarshall/myenglish-practice/internal/service/practice"
	"github.com/heartmarshall/myenglish-practice/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-practice/internal/transport/rest"
)

// maxBodyBytes caps request bodies; raw model output is the largest payload.
const maxBodyBytes = 1 << 20

// Run is the application entry point. It loads configuration, wires the
// stores and services, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	completer, err := newCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return err
	}

	svc := practice.NewService(
		logger,
		completer,
		parser.New(ParserConfig(cfg.Parser)),
		memory.NewSessionStore(cfg.Practice.SessionTTL),
		st.results,
		st.collection,
		st.tx,
		practice.Config{
			MaxDialogueAttempts: cfg.Practice.MaxDialogueAttempts,
			DefaultDeckSize:     cfg.Practice.DefaultDeckSize,
			Exercise:            ExerciseConfig(cfg.Exercise),
		},
	)

	router := rest.NewRouter(
		rest.NewPracticeHandler(svc, logger),
		rest.NewHealthHandler(BuildVersion(), st.probes),
	)
	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(maxBodyBytes),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
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

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// stores groups the persistence backends chosen at startup.
type stores struct {
	results    resultRepo
	collection collectionRepo
	tx         txManager
	probes     map[string]rest.Pinger
	close      func()
}

// openStores connects to PostgreSQL when a DSN is configured and falls
// back to in-memory stores otherwise.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Database.DSN == "" {
		logger.Warn("database dsn not set, using in-memory stores")
		return &stores{
			results:    memory.NewResultRepo(),
			collection: memory.NewCollectionRepo(),
			tx:         memory.TxManager{},
			close:      func() {},
		}, nil
	}

	pool, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("database connected",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
	)
	return &stores{
		results:    result.New(pool),
		collection: collection.New(pool),
		tx:         postgres.NewTxManager(pool),
		probes:     map[string]rest.Pinger{"database": pool},
		close:      pool.Close,
	}, nil
}

func newCompleter(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (completer, error) {
	if !cfg.Enabled() {
		logger.Warn("llm api key not set, generation endpoints will fail")
		return llm.Unavailable{}, nil
	}
	c, err := llm.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	logger.Info("llm client ready",
		slog.String("provider", cfg.Provider),
		slog.Any("models", cfg.Models),
	)
	return c, nil
}

// ParserConfig converts configured labels into parser settings. Empty lists
// keep the parser defaults.
func ParserConfig(cfg config.ParserConfig) parser.Config {
	out := parser.DefaultConfig()
	if len(cfg.TranslationLabels) > 0 {
		out.TranslationLabels = cfg.TranslationLabels
	}
	if len(cfg.GlossLabels) > 0 {
		out.GlossLabels = cfg.GlossLabels
	}
	return out
}

// ExerciseConfig converts configured generation parameters into generator
// settings. Empty filler lists keep the generator defaults.
func ExerciseConfig(cfg config.ExerciseConfig) exercise.Config {
	out := exercise.DefaultConfig()
	out.MaxExercises = cfg.MaxExercises
	out.MinSentenceLength = cfg.MinSentenceLength
	out.AttemptMultiplier = cfg.AttemptMultiplier
	if cfg.BlankMarker != "" {
		out.BlankMarker = cfg.BlankMarker
	}
	if len(cfg.FillerWords) > 0 {
		out.FillerWords = cfg.FillerWords
		out.FillerTranslations = cfg.FillerTranslations
	}
	return out
}
