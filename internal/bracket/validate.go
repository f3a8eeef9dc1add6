package bracket

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

type feed struct {
	match, slot int
}

func matchHash(m *Match) int {
	return m.ID
}

// Validate checks the wiring of the bracket: dense ids, every link pointing
// forward to an existing match slot, no slot fed twice, no cycles, and a
// single match without a next match (the reset game aside).
func (b *Bracket) Validate() error {
	g := graph.New(matchHash, graph.Directed(), graph.PreventCycles())
	// feeders holds the same edges reversed, from a match to the matches
	// that feed it.
	feeders := graph.New(graph.IntHash, graph.Directed())

	ids := b.IDs()
	for i, id := range ids {
		m := b.Matches[id]
		if id != i+1 || m.ID != id {
			return fmt.Errorf("%w: match ids are not dense at %d", ErrInvalidStructure, id)
		}
		if err := g.AddVertex(m); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStructure, err)
		}
		_ = feeders.AddVertex(id)
	}

	fed := make(map[feed]int)
	var sinks []int
	for _, id := range ids {
		m := b.Matches[id]
		for _, l := range [][2]*int{{m.NextMatch, m.NextSlot}, {m.NextLoserMatch, m.NextLoserSlot}} {
			target, slot := l[0], l[1]
			if target == nil {
				continue
			}
			if _, ok := b.Matches[*target]; !ok {
				return fmt.Errorf("%w: match %d links to %d", ErrBrokenLink, id, *target)
			}
			if slot == nil || *slot < 0 || *slot > 1 {
				return fmt.Errorf("%w: match %d has no target slot", ErrInvalidStructure, id)
			}
			if *target <= id {
				return fmt.Errorf("%w: match %d links backwards to %d", ErrInvalidStructure, id, *target)
			}

			key := feed{*target, *slot}
			if other, taken := fed[key]; taken {
				return fmt.Errorf("%w: matches %d and %d both feed match %d slot %d", ErrInvalidStructure, other, id, *target, *slot)
			}
			fed[key] = id

			if err := g.AddEdge(id, *target); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return fmt.Errorf("%w: %v", ErrInvalidStructure, err)
			}
			if err := feeders.AddEdge(*target, id); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return fmt.Errorf("%w: %v", ErrInvalidStructure, err)
			}
		}

		if m.NextMatch == nil && !b.isResetGame(id) {
			sinks = append(sinks, id)
		}
	}

	if len(sinks) != 1 {
		return fmt.Errorf("%w: expected one final match, found %v", ErrInvalidStructure, sinks)
	}

	// Every match must be able to reach the final.
	reaches := make(map[int]bool)
	if err := graph.BFS(feeders, sinks[0], func(id int) bool {
		reaches[id] = true
		return false
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	for _, id := range ids {
		if !reaches[id] && !b.isResetGame(id) {
			return fmt.Errorf("%w: match %d never reaches the final", ErrInvalidStructure, id)
		}
	}
	return nil
}

func (b *Bracket) isResetGame(id int) bool {
	return b.GrandFinal != nil && b.GrandFinal.ResetMatchID != nil && *b.GrandFinal.ResetMatchID == id
}
