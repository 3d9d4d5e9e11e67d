package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// GenerateDialogue asks the model for a dialogue and parses it. Output
// without any recognizable turn is requested again, up to
// Config.MaxDialogueAttempts times. Completer errors are returned at once.
func (s *Service) GenerateDialogue(ctx context.Context, input GenerateDialogueInput) ([]domain.DialogueTurn, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	turns := input.Turns
	if turns == 0 {
		turns = defaultTurns
	}
	translationLabel, glossLabel := s.parser.Labels()
	prompt := buildDialoguePrompt(strings.TrimSpace(input.Topic), normalizeLevel(input.Level), turns, translationLabel, glossLabel)

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxDialogueAttempts; attempt++ {
		raw, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate dialogue: %w", err)
		}

		parsed, err := s.parser.ParseDialogue(raw)
		if err == nil {
			s.log.InfoContext(ctx, "dialogue generated",
				slog.Int("turns", len(parsed)),
				slog.Int("attempt", attempt),
			)
			return parsed, nil
		}
		if !errors.Is(err, domain.ErrNoTurns) {
			return nil, fmt.Errorf("parse dialogue: %w", err)
		}

		lastErr = err
		s.log.WarnContext(ctx, "dialogue output unparseable",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}

	return nil, fmt.Errorf("generate dialogue after %d attempts: %w", s.cfg.MaxDialogueAttempts, lastErr)
}

// ParseDialogue parses dialogue text supplied by the client.
func (s *Service) ParseDialogue(_ context.Context, input ParseInput) ([]domain.DialogueTurn, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.parser.ParseDialogue(input.Raw)
}

// FillTranslations returns a copy of turns where each untranslated line has
// been sent to the model for translation. A failed translation keeps the
// untranslated marker; only context cancellation is reported as an error.
func (s *Service) FillTranslations(ctx context.Context, turns []domain.DialogueTurn) ([]domain.DialogueTurn, error) {
	out := domain.CloneTurns(turns)

	filled := 0
	for i := range out {
		if !out[i].NeedsTranslation() {
			continue
		}

		raw, err := s.llm.Complete(ctx, buildTranslationPrompt(out[i]))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.WarnContext(ctx, "translation failed",
				slog.Int("turn", i),
				slog.String("error", err.Error()),
			)
			continue
		}

		translation := firstLine(raw)
		if translation == "" {
			continue
		}
		out[i].Translation = translation
		filled++
	}

	if filled > 0 {
		s.log.InfoContext(ctx, "translations filled", slog.Int("count", filled))
	}
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[:nl]
	}
	return strings.Trim(strings.TrimSpace(s), `"“”「」`)
}
