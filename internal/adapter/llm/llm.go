// Package llm calls hosted language models and returns their text output.
// Model selection and fallback live here, outside the parser and generator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/myenglish-practice/internal/config"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("llm: not configured")

// Backend sends a prompt to one named model.
type Backend interface {
	CompleteModel(ctx context.Context, model, prompt string) (string, error)
}

// Fallback tries each model in order until one returns non-empty text.
type Fallback struct {
	backend Backend
	models  []string
	timeout time.Duration
	log     *slog.Logger
}

// NewFallback wraps backend with an ordered model list.
func NewFallback(backend Backend, models []string, timeout time.Duration, log *slog.Logger) *Fallback {
	return &Fallback{
		backend: backend,
		models:  append([]string(nil), models...),
		timeout: timeout,
		log:     log.With("adapter", "llm"),
	}
}

// New builds the provider selected in cfg.
func New(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Fallback, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	var (
		backend Backend
		err     error
	)
	switch cfg.Provider {
	case "anthropic":
		backend = NewAnthropic(cfg.APIKey, cfg.MaxTokens)
	case "gemini":
		backend, err = NewGemini(ctx, cfg.APIKey)
	default:
		err = fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewFallback(backend, cfg.Models, cfg.Timeout, log), nil
}

// Complete returns the first successful completion. When every model fails
// the error wraps domain.ErrUpstream and each model's error.
func (f *Fallback) Complete(ctx context.Context, prompt string) (string, error) {
	var errs []error

	for _, model := range f.models {
		text, err := f.try(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		f.log.WarnContext(ctx, "model call failed",
			slog.String("model", model),
			slog.String("error", err.Error()),
		)
		errs = append(errs, fmt.Errorf("%s: %w", model, err))
	}

	return "", fmt.Errorf("%w: %w", domain.ErrUpstream, errors.Join(errs...))
}

func (f *Fallback) try(ctx context.Context, model, prompt string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	text, err := f.backend.CompleteModel(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	text = StripFences(text)
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

// Unavailable is a stand-in used when no provider is configured.
type Unavailable struct{}

// Complete always fails with ErrNotConfigured.
func (Unavailable) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %w", domain.ErrUpstream, ErrNotConfigured)
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " \t") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
