package bracket

import (
	"fmt"
	"slices"

	"github.com/AdamBeresnev/cue-bracket/internal/utils"
)

// RoundNames returns the distinct round names in match id order, which is
// the order the rounds were created in.
func (b *Bracket) RoundNames() []string {
	var names []string
	for _, id := range b.IDs() {
		name := b.Matches[id].RoundName
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// RoundMatches returns the matches of a round in id order.
func (b *Bracket) RoundMatches(name string) []*Match {
	var matches []*Match
	for _, id := range b.IDs() {
		if m := b.Matches[id]; m.RoundName == name {
			matches = append(matches, m)
		}
	}
	return matches
}

func (b *Bracket) RoundComplete(name string) bool {
	matches := b.RoundMatches(name)
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if !m.IsDecided() {
			return false
		}
	}
	return true
}

// AdvanceRound moves the current round cursor past current, which must be
// the round the bracket is on and must have every match decided. It returns
// the new current round.
func (b *Bracket) AdvanceRound(current string) (string, error) {
	if b.CurrentRound == nil || *b.CurrentRound != current {
		return "", fmt.Errorf("%w: %q", ErrInvalidRound, current)
	}

	names := b.RoundNames()
	idx := slices.Index(names, current)
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRound, current)
	}
	if !b.RoundComplete(current) {
		return "", fmt.Errorf("%w: %q", ErrRoundIncomplete, current)
	}
	if idx == len(names)-1 {
		return "", fmt.Errorf("%w: %q", ErrFinalRound, current)
	}

	next := names[idx+1]
	b.CurrentRound = utils.Ptr(next)
	return next, nil
}
