// Package parser turns free-text language-model output into dialogue turns
// and reading passages. Pure functions over strings: no I/O, no shared state.
package parser

import (
	"regexp"
	"strings"
)

// Config holds the localized line labels the parser recognizes.
type Config struct {
	// TranslationLabels prefix a line that translates the preceding speaker line.
	TranslationLabels []string
	// GlossLabels prefix a line of word=translation pairs.
	GlossLabels []string
}

// DefaultConfig returns the labels used by the bundled dialogue prompt.
func DefaultConfig() Config {
	return Config{
		TranslationLabels: []string{"翻譯", "翻译", "中文", "Translation"},
		GlossLabels:       []string{"單字", "单词", "生詞", "生词", "Vocabulary"},
	}
}

// Parser extracts structured records from model output.
// A Parser is immutable after New and safe for concurrent use.
type Parser struct {
	labels      map[string]struct{}
	classifiers []classifier

	translationLabel string
	glossLabel       string
}

// New compiles the line classifiers for the given labels.
// Empty label lists fall back to DefaultConfig.
func New(cfg Config) *Parser {
	def := DefaultConfig()
	if len(cfg.TranslationLabels) == 0 {
		cfg.TranslationLabels = def.TranslationLabels
	}
	if len(cfg.GlossLabels) == 0 {
		cfg.GlossLabels = def.GlossLabels
	}

	labels := make(map[string]struct{}, len(cfg.TranslationLabels)+len(cfg.GlossLabels))
	for _, l := range append(append([]string{}, cfg.TranslationLabels...), cfg.GlossLabels...) {
		labels[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}

	p := &Parser{
		labels:           labels,
		translationLabel: strings.TrimSpace(cfg.TranslationLabels[0]),
		glossLabel:       strings.TrimSpace(cfg.GlossLabels[0]),
	}
	p.classifiers = []classifier{
		{kind: lineSpeaker, re: speakerRe, accept: p.acceptSpeaker},
		{kind: lineTranslation, re: labeledLineRe(cfg.TranslationLabels)},
		{kind: lineGloss, re: labeledLineRe(cfg.GlossLabels)},
	}
	return p
}

// Labels returns the primary translation and gloss labels, the ones a prompt
// should ask the model to use.
func (p *Parser) Labels() (translation, gloss string) {
	return p.translationLabel, p.glossLabel
}

// labeledLineRe matches "<label>: <rest>" for any of labels, tolerating
// emphasis around the label and either ASCII or fullwidth colon.
func labeledLineRe(labels []string) *regexp.Regexp {
	quoted := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	return regexp.MustCompile(`(?i)^[*_]{0,2}\s*(?:` + strings.Join(quoted, "|") + `)\s*[*_]{0,2}\s*[:：]\s*[*_]{0,2}\s*(.*?)\s*$`)
}
