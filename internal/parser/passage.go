package parser

import (
	"errors"
	"regexp"
	"strings"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// MaxQuestions is the most questions kept from one passage.
const MaxQuestions = 10

// Reasons a passage could not be parsed.
var (
	ErrMissingTitle   = errors.New("passage: missing title")
	ErrMissingContent = errors.New("passage: missing content")
	ErrNoQuestions    = errors.New("passage: no valid questions")
)

const em = `[*_]{0,2}`

var (
	titleRe       = regexp.MustCompile(`(?im)^[ \t]*` + em + `[ \t]*title[ \t]*` + em + `[ \t]*[:：][ \t]*` + em + `[ \t]*(\S.*?)[ \t]*` + em + `[ \t]*$`)
	contentRe     = regexp.MustCompile(`(?im)^[ \t]*` + em + `[ \t]*content[ \t]*` + em + `[ \t]*[:：][ \t]*` + em)
	questionRe    = regexp.MustCompile(`(?im)^[ \t]*` + em + `[ \t]*question[ \t]*\d*[ \t]*` + em + `[ \t]*[:：.][ \t]*` + em)
	answerRe      = regexp.MustCompile(`(?im)^[ \t]*` + em + `[ \t]*(?:correct[ \t]+)?answer[ \t]*` + em + `[ \t]*[:：][ \t]*` + em + `[ \t]*` + em + `[ \t]*\(?([A-Za-z])\b`)
	explanationRe = regexp.MustCompile(`(?ims)^[ \t]*` + em + `[ \t]*explanation[ \t]*` + em + `[ \t]*[:：][ \t]*` + em + `[ \t]*(.*)$`)

	paragraphSep = regexp.MustCompile(`\n[ \t]*\n`)

	// Option list formats, tried in order: "A) text" then "A. text".
	optionFormats = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*` + em + `[ \t]*\(?([A-Da-d])\)[ \t]*` + em + `[ \t]*(\S.*?)[ \t]*$`),
		regexp.MustCompile(`(?m)^[ \t]*` + em + `[ \t]*([A-Da-d])\.[ \t]*` + em + `[ \t]*(\S.*?)[ \t]*$`),
	}
)

// ParsePassage extracts a reading passage. It never fails: when the text is
// missing a title, content, or any valid question, FallbackPassage is returned.
func (p *Parser) ParsePassage(raw string) domain.ReadingPassage {
	passage, err := p.ParsePassageStrict(raw)
	if err != nil {
		return FallbackPassage()
	}
	return passage
}

// ParsePassageStrict is ParsePassage without the fallback. The error names
// the first structural problem found.
func (p *Parser) ParsePassageStrict(raw string) (domain.ReadingPassage, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	questionIdx := questionRe.FindAllStringIndex(raw, -1)
	head := raw
	if len(questionIdx) > 0 {
		head = raw[:questionIdx[0][0]]
	}

	var passage domain.ReadingPassage

	m := titleRe.FindStringSubmatch(head)
	if m == nil {
		return domain.ReadingPassage{}, ErrMissingTitle
	}
	passage.Title = cleanSpan(m[1])

	loc := contentRe.FindStringIndex(head)
	if loc == nil {
		return domain.ReadingPassage{}, ErrMissingContent
	}
	passage.Content = cleanParagraphs(head[loc[1]:])
	if passage.Content == "" {
		return domain.ReadingPassage{}, ErrMissingContent
	}

	for i, idx := range questionIdx {
		end := len(raw)
		if i+1 < len(questionIdx) {
			end = questionIdx[i+1][0]
		}
		q, ok := parseQuestion(raw[idx[1]:end])
		if !ok {
			continue
		}
		passage.Questions = append(passage.Questions, q)
		if len(passage.Questions) == MaxQuestions {
			break
		}
	}
	if len(passage.Questions) == 0 {
		return domain.ReadingPassage{}, ErrNoQuestions
	}

	return passage, nil
}

// parseQuestion reads one block following a QUESTION label. The block is
// accepted only with non-empty question text, all four options A-D, and an
// answer letter among them.
func parseQuestion(block string) (domain.ReadingQuestion, bool) {
	var (
		q        domain.ReadingQuestion
		firstOpt = -1
		found    int
	)

	for _, re := range optionFormats {
		var opts [4]string
		found, firstOpt = 0, -1
		for _, om := range re.FindAllStringSubmatchIndex(block, -1) {
			i := int(strings.ToUpper(block[om[2]:om[3]])[0] - 'A')
			if opts[i] != "" {
				continue
			}
			opts[i] = cleanSpan(block[om[4]:om[5]])
			found++
			if firstOpt < 0 || om[0] < firstOpt {
				firstOpt = om[0]
			}
		}
		if found == 4 {
			q.Options = opts
			break
		}
	}
	if found != 4 {
		return domain.ReadingQuestion{}, false
	}

	q.Question = cleanSpan(block[:firstOpt])
	if q.Question == "" {
		return domain.ReadingQuestion{}, false
	}

	am := answerRe.FindStringSubmatch(block)
	if am == nil {
		return domain.ReadingQuestion{}, false
	}
	letter := strings.ToUpper(am[1])[0]
	if letter < 'A' || letter > 'D' {
		return domain.ReadingQuestion{}, false
	}
	q.CorrectAnswer = q.Options[letter-'A']

	if xm := explanationRe.FindStringSubmatch(block); xm != nil {
		// Stops at the first blank line so trailing chatter is dropped.
		q.Explanation = cleanSpan(paragraphSep.Split(xm[1], 2)[0])
	}

	return q, true
}

// cleanSpan joins a multi-line span into single-spaced text and strips
// leftover emphasis markers at its edges.
func cleanSpan(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(strings.Trim(s, "*_"))
}

// cleanParagraphs is cleanSpan applied per paragraph, keeping blank-line breaks.
func cleanParagraphs(s string) string {
	var paras []string
	for _, para := range paragraphSep.Split(strings.TrimSpace(s), -1) {
		if para = cleanSpan(para); para != "" {
			paras = append(paras, para)
		}
	}
	return strings.Join(paras, "\n\n")
}
