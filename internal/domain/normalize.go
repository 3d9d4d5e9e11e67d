package domain

import (
	"strings"
)

// answerTrailing is the set of terminal punctuation ignored when comparing answers.
const answerTrailing = ".,!?;:。，！？；：…"

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeAnswer is NormalizeText plus removal of trailing punctuation.
// Two answers match when their normalized forms are equal.
func NormalizeAnswer(text string) string {
	text = NormalizeText(text)
	for {
		trimmed := strings.TrimSpace(strings.TrimRight(text, answerTrailing))
		if trimmed == text {
			return text
		}
		text = trimmed
	}
}
