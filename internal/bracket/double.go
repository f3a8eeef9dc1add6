package bracket

import "github.com/AdamBeresnev/cue-bracket/internal/utils"

const (
	winnersChampionLabel = "Vencedor WB"
	losersChampionLabel  = "Vencedor LB"
)

// BuildDoubleElimination builds the winner's bracket like
// BuildSingleElimination, then a loser's bracket fed by its losers and a
// grand final between both champions.
//
// Loser's bracket layout for R winner's rounds (2(R-1) rounds, then LB Final):
//   - round 0 pairs the losers of winner's round 0;
//   - odd rounds 2k-1 put the survivor of the previous round in slot 0 and
//     the loser of winner's round k in slot 1;
//   - even rounds pair the previous round's winners;
//   - round 2R-3 has one match whose slot 1 is a bye, so its survivor meets
//     the winner's final loser in the LB Final.
func BuildDoubleElimination(players []Player, base BaseState) (*Bracket, error) {
	plan, err := PlanDoubleRounds(len(players))
	if err != nil {
		return nil, err
	}

	b := newBracket(base, DoubleElimination)
	wb := b.buildTree(plan.RoundPlan, players, WinnersSide)

	lb := make([][]int, len(plan.LoserRounds))
	for j, name := range plan.LoserRounds {
		for i := range plan.LoserMatchesInRound(j) {
			lb[j] = append(lb[j], b.addMatch(LosersSide, name, j, i).ID)
		}
	}

	gf := b.addMatch(FinalsSide, plan.GrandFinal, 0, 0)
	gf.Players = [2]Slot{LabeledSlot(winnersChampionLabel), LabeledSlot(losersChampionLabel)}
	gf.NeedsReset = true
	b.GrandFinal = &GrandFinal{State: AwaitingFirstGame, MatchID: gf.ID}

	b.wireLosers(wb, lb)
	b.link(last(wb), gf.ID, 0)
	b.link(last(lb), gf.ID, 1)

	for _, id := range wb[0] {
		b.settle(id)
	}
	b.CurrentRound = utils.Ptr(plan.Rounds[0])
	return b, nil
}

func (b *Bracket) wireLosers(wb, lb [][]int) {
	final := len(lb) - 1
	lbFinal := lb[final][0]

	// Two players: the winner's final loser goes straight to the LB Final.
	if len(wb) == 1 {
		b.Matches[lbFinal].Players[0] = ByeSlot()
		b.linkLoser(wb[0][0], lbFinal, 1)
		return
	}

	for i, id := range wb[0] {
		b.linkLoser(id, lb[0][i/2], i%2)
	}

	carry := final - 1
	for j := 1; j < final; j++ {
		prev := lb[j-1]
		switch {
		case j == carry:
			b.link(prev[0], lb[j][0], 0)
			b.Matches[lb[j][0]].Players[1] = ByeSlot()
		case j%2 == 1:
			for i, id := range prev {
				b.link(id, lb[j][i], 0)
			}
			for i, id := range wb[(j+1)/2] {
				b.linkLoser(id, lb[j][i], 1)
			}
		default:
			for i, id := range prev {
				b.link(id, lb[j][i/2], i%2)
			}
		}
	}

	b.link(lb[carry][0], lbFinal, 0)
	b.linkLoser(last(wb), lbFinal, 1)
}

func last(rounds [][]int) int {
	r := rounds[len(rounds)-1]
	return r[len(r)-1]
}
