package exercise

import "math/rand/v2"

// usedSet holds pool indexes already consumed in the current round.
// Values are never mutated; with returns a new set.
type usedSet map[int]struct{}

func (u usedSet) has(i int) bool {
	_, ok := u[i]
	return ok
}

func (u usedSet) with(i int) usedSet {
	next := make(usedSet, len(u)+1)
	for k := range u {
		next[k] = struct{}{}
	}
	next[i] = struct{}{}
	return next
}

// pickUnused returns a uniformly random index in [0, n) not present in used.
// ok is false when every index is used.
func pickUnused(n int, used usedSet, rng *rand.Rand) (int, bool) {
	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !used.has(i) {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return -1, false
	}
	return free[rng.IntN(len(free))], true
}
