package exercise

import (
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

// choiceCount is the number of options on a multiple-choice exercise.
const choiceCount = 4

// distractors returns n wrong options for answer. Candidates are drawn first,
// in random order; fillers pad the rest. Entries equal to answer, or to an
// already chosen option, ignoring case, are skipped. Fewer than n are
// returned only when both sources run dry.
func distractors(answer string, candidates, fillers []string, n int, rng *rand.Rand) []string {
	seen := map[string]struct{}{strings.ToLower(answer): {}}
	out := make([]string, 0, n)

	take := func(src []string) {
		pool := lo.Filter(src, func(s string, _ int) bool { return strings.TrimSpace(s) != "" })
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, s := range pool {
			if len(out) == n {
				return
			}
			key := strings.ToLower(s)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}

	take(candidates)
	take(fillers)
	return out
}

// choices builds the shuffled option list for answer, or false when four
// distinct options cannot be assembled.
func choices(answer string, candidates, fillers []string, rng *rand.Rand) ([]string, bool) {
	wrong := distractors(answer, candidates, fillers, choiceCount-1, rng)
	if len(wrong) < choiceCount-1 {
		return nil, false
	}
	opts := append(wrong, answer)
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts, true
}
