package parser

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

type lineKind int

const (
	lineUnknown lineKind = iota
	lineSpeaker
	lineTranslation
	lineGloss
)

// classifier pairs a line predicate with the pattern its extractor reads from.
// accept, when set, may veto a pattern match.
type classifier struct {
	kind   lineKind
	re     *regexp.Regexp
	accept func(m []string) bool
}

var (
	// <name>: <utterance>, name optionally wrapped in * or _ emphasis.
	speakerRe = regexp.MustCompile(`^[*_]{0,2}([A-Za-z][A-Za-z ]*?)[*_]{0,2}\s*(?:[:：]|-\s)\s*[*_]{0,2}\s*(\S.*?)\s*$`)

	bulletRe = regexp.MustCompile(`^(?:[-•*]|\d+[.)])\s+`)

	metaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^#+`),
		regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,}|={3,})$`),
		regexp.MustCompile(`^(?:\*\*|__)[^*_]+(?:\*\*|__)\s*[:：]?$`),
		regexp.MustCompile(`(?i)^(?:here is|here's|here are|sure[,!. ]|note\s*[:：]|以下|好的)`),
		// Stage directions look like speaker lines.
		regexp.MustCompile(`(?i)^[*_]{0,2}(?:scene|setting|narrator)[*_]{0,2}\s*[:：]`),
	}

	glossPairSep = regexp.MustCompile(`[,，、;；]`)
)

func isMeta(line string) bool {
	for _, re := range metaPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func (p *Parser) acceptSpeaker(m []string) bool {
	_, isLabel := p.labels[strings.ToLower(strings.TrimSpace(m[1]))]
	return !isLabel
}

func (p *Parser) classify(line string) (lineKind, []string) {
	for _, c := range p.classifiers {
		m := c.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if c.accept != nil && !c.accept(m) {
			continue
		}
		return c.kind, m
	}
	return lineUnknown, nil
}

// ParseDialogue extracts dialogue turns in input order. Translation and gloss
// lines attach to the most recent speaker line. Zero recovered turns is a
// *domain.ParseError matching domain.ErrNoTurns; callers should regenerate.
func (p *Parser) ParseDialogue(raw string) ([]domain.DialogueTurn, error) {
	var (
		turns   []domain.DialogueTurn
		current *domain.DialogueTurn
		scanned int
	)

	flush := func() {
		if current == nil || current.Speaker == "" || current.Text == "" {
			current = nil
			return
		}
		if strings.TrimSpace(current.Translation) == "" {
			current.Translation = domain.Untranslated
		}
		turns = append(turns, *current)
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if isMeta(line) {
			continue
		}
		line = bulletRe.ReplaceAllString(line, "")

		kind, m := p.classify(line)
		switch kind {
		case lineSpeaker:
			flush()
			current = &domain.DialogueTurn{
				Speaker:          strings.TrimSpace(m[1]),
				Text:             strings.TrimSpace(m[2]),
				WordTranslations: map[string]string{},
			}
		case lineTranslation:
			if current == nil || m[1] == "" {
				continue
			}
			current.Translation = m[1]
		case lineGloss:
			if current == nil {
				continue
			}
			for word, tr := range parseGloss(m[1]) {
				current.WordTranslations[word] = tr
			}
		}
	}
	flush()

	if len(turns) == 0 {
		return nil, &domain.ParseError{Reason: "no turns found", Lines: scanned}
	}
	return turns, nil
}

// parseGloss reads "word=translation" pairs. Pairs without "=", or with an
// empty side, are skipped.
func parseGloss(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range glossPairSep.Split(s, -1) {
		pair = strings.ReplaceAll(pair, "＝", "=")
		word, tr, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		word = strings.Trim(word, " \t*_")
		tr = strings.Trim(tr, " \t*_")
		if word == "" || tr == "" {
			continue
		}
		out[word] = tr
	}
	return out
}
