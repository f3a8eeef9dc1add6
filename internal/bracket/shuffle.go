package bracket

import (
	"math/rand/v2"
	"slices"
)

// Shuffle returns the players in random order without touching the input.
// A nil rng uses the global source.
func Shuffle(players []Player, rng *rand.Rand) []Player {
	out := slices.Clone(players)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng == nil {
		rand.Shuffle(len(out), swap)
	} else {
		rng.Shuffle(len(out), swap)
	}
	return out
}
