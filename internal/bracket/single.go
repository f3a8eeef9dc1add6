package bracket

import "github.com/AdamBeresnev/cue-bracket/internal/utils"

// BuildSingleElimination places the players into a single elimination
// tree. The first NumByes first-round matches pair a player with a bye and
// are decided on creation.
func BuildSingleElimination(players []Player, base BaseState) (*Bracket, error) {
	plan, err := PlanRounds(len(players))
	if err != nil {
		return nil, err
	}

	b := newBracket(base, SingleElimination)
	rounds := b.buildTree(plan, players, WinnersSide)
	for _, id := range rounds[0] {
		b.settle(id)
	}
	b.CurrentRound = utils.Ptr(plan.Rounds[0])
	return b, nil
}

// buildTree creates an elimination tree round by round, fills the first
// round from the player queue and links match i of every round to match
// i/2 of the next one. It returns the match ids per round.
func (b *Bracket) buildTree(plan RoundPlan, players []Player, side Side) [][]int {
	rounds := make([][]int, len(plan.Rounds))
	queue := players

	for r, name := range plan.Rounds {
		for i := range plan.MatchesInRound(r) {
			m := b.addMatch(side, name, r, i)
			if r == 0 {
				if i < plan.NumByes {
					m.Players = [2]Slot{PlayerSlot(queue[0]), ByeSlot()}
					queue = queue[1:]
				} else {
					m.Players = [2]Slot{PlayerSlot(queue[0]), PlayerSlot(queue[1])}
					queue = queue[2:]
				}
			}
			rounds[r] = append(rounds[r], m.ID)
		}
	}

	for r := 0; r < len(rounds)-1; r++ {
		for i, id := range rounds[r] {
			b.link(id, rounds[r+1][i/2], i%2)
		}
	}

	return rounds
}
