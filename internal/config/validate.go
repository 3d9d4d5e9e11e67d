package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Practice.MaxDialogueAttempts < 1 {
		return fmt.Errorf("practice.max_dialogue_attempts must be >= 1 (got %d)", c.Practice.MaxDialogueAttempts)
	}
	if c.Practice.DefaultDeckSize < 1 {
		return fmt.Errorf("practice.default_deck_size must be >= 1 (got %d)", c.Practice.DefaultDeckSize)
	}

	if err := c.Exercise.validate(); err != nil {
		return fmt.Errorf("exercise: %w", err)
	}

	c.Parser.TranslationLabels = SplitList(c.Parser.TranslationLabelsRaw)
	c.Parser.GlossLabels = SplitList(c.Parser.GlossLabelsRaw)

	return nil
}

func (l *LLMConfig) validate() error {
	switch strings.ToLower(l.Provider) {
	case "anthropic", "gemini":
		l.Provider = strings.ToLower(l.Provider)
	default:
		return fmt.Errorf("provider must be anthropic or gemini (got %q)", l.Provider)
	}

	l.Models = SplitList(l.ModelsRaw)
	if len(l.Models) == 0 {
		return fmt.Errorf("models must list at least one model")
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	return nil
}

func (e *ExerciseConfig) validate() error {
	if e.MaxExercises < 1 || e.MaxExercises > 10 {
		return fmt.Errorf("max_exercises must be in 1..10 (got %d)", e.MaxExercises)
	}
	if e.MinSentenceLength < 0 {
		return fmt.Errorf("min_sentence_length must be >= 0 (got %d)", e.MinSentenceLength)
	}
	if e.AttemptMultiplier < 1 {
		return fmt.Errorf("attempt_multiplier must be >= 1 (got %d)", e.AttemptMultiplier)
	}

	e.FillerWords = SplitList(e.FillerWordsRaw)
	if n := len(e.FillerWords); n > 0 && n < 3 {
		return fmt.Errorf("filler_words needs at least 3 entries (got %d)", n)
	}
	e.FillerTranslations = SplitList(e.FillerTranslationsRaw)
	if n := len(e.FillerTranslations); n > 0 && n < 3 {
		return fmt.Errorf("filler_translations needs at least 3 entries (got %d)", n)
	}
	return nil
}

// SplitList parses a comma-separated list, dropping blank entries.
// An empty string returns a nil slice.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
