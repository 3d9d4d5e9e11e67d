package practice

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
	"github.com/heartmarshall/myenglish-practice/internal/parser"
)

// ReadingResult is a generated passage and whether it is the built-in fallback.
type ReadingResult struct {
	Passage  domain.ReadingPassage
	Fallback bool
}

// GenerateReading asks the model for a reading passage. A failed call or
// malformed output yields the built-in passage instead of an error; only
// validation and context cancellation fail.
func (s *Service) GenerateReading(ctx context.Context, input GenerateReadingInput) (ReadingResult, error) {
	if err := input.Validate(); err != nil {
		return ReadingResult{}, err
	}

	raw, err := s.llm.Complete(ctx, buildPassagePrompt(strings.TrimSpace(input.Topic), normalizeLevel(input.Level)))
	if err != nil {
		if ctx.Err() != nil {
			return ReadingResult{}, ctx.Err()
		}
		s.log.WarnContext(ctx, "reading generation failed, using fallback passage",
			slog.String("error", err.Error()),
		)
		return ReadingResult{Passage: parser.FallbackPassage(), Fallback: true}, nil
	}

	passage, err := s.parser.ParsePassageStrict(raw)
	if err != nil {
		s.log.WarnContext(ctx, "reading output unparseable, using fallback passage",
			slog.String("error", err.Error()),
		)
		return ReadingResult{Passage: parser.FallbackPassage(), Fallback: true}, nil
	}

	s.log.InfoContext(ctx, "reading passage generated",
		slog.String("title", passage.Title),
		slog.Int("questions", len(passage.Questions)),
	)
	return ReadingResult{Passage: passage}, nil
}

// ParsePassage parses passage text supplied by the client, falling back to
// the built-in passage when it is malformed.
func (s *Service) ParsePassage(_ context.Context, input ParseInput) (ReadingResult, error) {
	if err := input.Validate(); err != nil {
		return ReadingResult{}, err
	}
	passage, err := s.parser.ParsePassageStrict(input.Raw)
	if err != nil {
		return ReadingResult{Passage: parser.FallbackPassage(), Fallback: true}, nil
	}
	return ReadingResult{Passage: passage}, nil
}
