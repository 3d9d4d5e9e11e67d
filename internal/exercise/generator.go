// Package exercise builds practice decks from parsed dialogue and grades answers.
package exercise

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

// MaxDeckSize is the hard ceiling on a generated deck, whatever MaxExercises says.
const MaxDeckSize = 10

// IDFunc produces exercise identifiers.
type IDFunc func() string

// generatorKinds are the kinds Generate chooses between, uniformly.
var generatorKinds = []domain.ExerciseKind{
	domain.ExerciseKindFillBlank,
	domain.ExerciseKindListening,
	domain.ExerciseKindWordMatching,
	domain.ExerciseKindSentenceReconstruction,
}

// Generator builds exercise decks. It holds a random source and is not safe
// for concurrent use; create one per deck or guard it externally.
type Generator struct {
	cfg   Config
	rng   *rand.Rand
	newID IDFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand injects the random source. Use a seeded source for reproducible decks.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed is WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithIDFunc replaces the default uuid-based ids.
func WithIDFunc(f IDFunc) Option {
	return func(g *Generator) { g.newID = f }
}

// New creates a Generator. Without options ids are random UUIDs and the
// random source is seeded from the runtime.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:   cfg.withDefaults(),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// vocab is the material a deck is drawn from.
type vocab struct {
	turns        []domain.DialogueTurn
	words        []string // distinct ignoring case, first spelling kept
	sentences    []int    // indexes into turns with usable text
	translations []string // every gloss translation, for distractors
}

func (g *Generator) buildVocab(turns []domain.DialogueTurn) vocab {
	v := vocab{turns: turns}
	seen := map[string]struct{}{}

	for i, t := range turns {
		if len([]rune(strings.TrimSpace(t.Text))) > g.cfg.MinSentenceLength {
			v.sentences = append(v.sentences, i)
		}

		// Sorted so a seeded generator is reproducible.
		keys := lo.Keys(t.WordTranslations)
		slices.Sort(keys)
		for _, w := range keys {
			word := strings.TrimSpace(w)
			if word == "" {
				continue
			}
			if tr := strings.TrimSpace(t.WordTranslations[w]); tr != "" {
				v.translations = append(v.translations, tr)
			}
			key := strings.ToLower(word)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			v.words = append(v.words, word)
		}
	}
	v.translations = lo.Uniq(v.translations)
	return v
}

// Limit returns the deck size Generate will aim for given the source material.
func (g *Generator) Limit(turns []domain.DialogueTurn, targetCount int) int {
	return g.limit(len(turns), len(g.buildVocab(turns).words), targetCount)
}

func (g *Generator) limit(turnCount, wordCount, targetCount int) int {
	return max(0, min(targetCount, MaxDeckSize, g.cfg.MaxExercises, 2*turnCount, 2*wordCount))
}

// Generate builds up to targetCount exercises from turns. The count is capped
// by MaxDeckSize and MaxExercises, and by twice the number of turns and of
// distinct words.
// Sentences and words are not repeated until the unused pool of either runs
// out, at which point both are reset; an empty pool never triggers a reset.
// The loop stops after targetCount*AttemptMultiplier iterations whatever the
// outcome.
func (g *Generator) Generate(turns []domain.DialogueTurn, targetCount int) []domain.Exercise {
	deck := []domain.Exercise{}
	if len(turns) == 0 {
		return deck
	}

	v := g.buildVocab(domain.CloneTurns(turns))
	target := g.limit(len(turns), len(v.words), targetCount)
	if target == 0 {
		return deck
	}

	var usedSentences, usedWords usedSet
	maxAttempts := target * g.cfg.AttemptMultiplier

	// Skipped builds count as attempts too, so a hopeless deck still ends.
	for attempt := 0; len(deck) < target && attempt < maxAttempts; attempt++ {
		kind := generatorKinds[g.rng.IntN(len(generatorKinds))]

		si, sentenceOK := pickUnused(len(v.sentences), usedSentences, g.rng)
		wi, wordOK := pickUnused(len(v.words), usedWords, g.rng)
		exhausted := (len(v.sentences) > 0 && !sentenceOK) || (len(v.words) > 0 && !wordOK)
		if exhausted {
			usedSentences, usedWords = usedSet{}, usedSet{}
			si, sentenceOK = pickUnused(len(v.sentences), usedSentences, g.rng)
			wi, wordOK = pickUnused(len(v.words), usedWords, g.rng)
		}

		var (
			turn *domain.DialogueTurn
			word string
		)
		if sentenceOK {
			turn = &v.turns[v.sentences[si]]
		}
		if wordOK {
			word = v.words[wi]
		}

		ex, usesSentence, usesWord, ok := g.build(kind, v, turn, word)
		if !ok {
			continue
		}
		ex.ID = g.newID()
		ex.Kind = kind
		ex.Points = kind.Points()
		deck = append(deck, ex)

		if usesSentence {
			usedSentences = usedSentences.with(si)
		}
		if usesWord {
			usedWords = usedWords.with(wi)
		}
	}

	return deck
}

func (g *Generator) build(kind domain.ExerciseKind, v vocab, turn *domain.DialogueTurn, word string) (ex domain.Exercise, usesSentence, usesWord, ok bool) {
	switch kind {
	case domain.ExerciseKindFillBlank:
		ex, ok = g.fillBlank(v, turn, word)
		return ex, true, true, ok
	case domain.ExerciseKindListening:
		ex, ok = g.listening(word)
		return ex, false, true, ok
	case domain.ExerciseKindWordMatching:
		ex, ok = g.wordMatching(v, turn, word)
		return ex, true, true, ok
	case domain.ExerciseKindSentenceReconstruction:
		ex, ok = g.reconstruction(turn)
		return ex, true, false, ok
	}
	return domain.Exercise{}, false, false, false
}

func (g *Generator) fillBlank(v vocab, turn *domain.DialogueTurn, word string) (domain.Exercise, bool) {
	if turn == nil || word == "" {
		return domain.Exercise{}, false
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	if !wholeWordMatches(re, turn.Text) {
		return domain.Exercise{}, false
	}

	opts, ok := choices(word, v.words, g.cfg.FillerWords, g.rng)
	if !ok {
		return domain.Exercise{}, false
	}

	return domain.Exercise{
		Question:    re.ReplaceAllLiteralString(turn.Text, g.cfg.BlankMarker),
		Answer:      word,
		Options:     opts,
		Explanation: turn.Text,
	}, true
}

// wholeWordMatches reports whether re matches text at least once and never
// inside a longer word, so blanking cannot mangle neighbouring words.
func wholeWordMatches(re *regexp.Regexp, text string) bool {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return false
	}
	for _, loc := range locs {
		before, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
		after, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if isWordRune(before) || isWordRune(after) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func (g *Generator) listening(word string) (domain.Exercise, bool) {
	if word == "" {
		return domain.Exercise{}, false
	}
	return domain.Exercise{
		Question:  "Listen and type the word you hear.",
		Answer:    word,
		AudioText: word,
	}, true
}

func (g *Generator) wordMatching(v vocab, turn *domain.DialogueTurn, word string) (domain.Exercise, bool) {
	if turn == nil || word == "" {
		return domain.Exercise{}, false
	}
	tr := glossFor(turn.WordTranslations, word)
	if tr == "" {
		return domain.Exercise{}, false
	}

	opts, ok := choices(tr, v.translations, g.cfg.FillerTranslations, g.rng)
	if !ok {
		return domain.Exercise{}, false
	}

	return domain.Exercise{
		Question:    word,
		Answer:      tr,
		Options:     opts,
		Explanation: turn.Text,
	}, true
}

func (g *Generator) reconstruction(turn *domain.DialogueTurn) (domain.Exercise, bool) {
	if turn == nil {
		return domain.Exercise{}, false
	}
	tokens := strings.Fields(turn.Text)
	if len(tokens) < 3 {
		return domain.Exercise{}, false
	}

	shuffled := slices.Clone(tokens)
	for i := 0; i < 5; i++ {
		g.rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if !slices.Equal(shuffled, tokens) {
			break
		}
	}

	question := "Put the words in the correct order."
	if !turn.NeedsTranslation() {
		question = turn.Translation
	}

	return domain.Exercise{
		Question: question,
		Answer:   strings.TrimSpace(turn.Text),
		Options:  shuffled,
	}, true
}

// glossFor looks up word in a gloss map, exactly first and then ignoring case.
func glossFor(gloss map[string]string, word string) string {
	if tr := strings.TrimSpace(gloss[word]); tr != "" {
		return tr
	}
	for k, tr := range gloss {
		if strings.EqualFold(strings.TrimSpace(k), word) {
			if tr = strings.TrimSpace(tr); tr != "" {
				return tr
			}
		}
	}
	return ""
}
