package bracket

import "fmt"

const (
	winnersPrefix  = "WB "
	loserRoundName = "LB Rodada %d"
	loserFinalName = "LB Final"
	GrandFinalName = "Grande Final"
	ResetRoundName = "Grande Final - Reset"
)

// RoundPlan describes an elimination tree for a player count: its size,
// the byes needed to fill it and the round names from first round to final.
type RoundPlan struct {
	NumPlayers  int
	BracketSize int
	NumByes     int
	Rounds      []string
}

// MatchesInRound returns the number of matches in round r (0-based).
func (p RoundPlan) MatchesInRound(r int) int {
	return p.BracketSize >> (r + 1)
}

// DoubleRoundPlan adds the loser's bracket rounds, LB Final last, and the
// grand final to the winner's bracket plan.
type DoubleRoundPlan struct {
	RoundPlan
	LoserRounds []string
	GrandFinal  string
}

// LoserMatchesInRound returns the number of matches in loser round j. The
// loser's bracket starts at a quarter of the bracket size and halves every
// two rounds.
func (p DoubleRoundPlan) LoserMatchesInRound(j int) int {
	if j >= len(p.LoserRounds)-1 {
		return 1
	}
	return max(1, p.BracketSize>>(2+j/2))
}

// BracketSize rounds n up to the next power of two, so 5 gives 8.
func BracketSize(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func PlanRounds(n int) (RoundPlan, error) {
	return planRounds(n, "")
}

func PlanDoubleRounds(n int) (DoubleRoundPlan, error) {
	wb, err := planRounds(n, winnersPrefix)
	if err != nil {
		return DoubleRoundPlan{}, err
	}

	plan := DoubleRoundPlan{RoundPlan: wb, GrandFinal: GrandFinalName}
	for i := 1; i <= 2*(len(wb.Rounds)-1); i++ {
		plan.LoserRounds = append(plan.LoserRounds, fmt.Sprintf(loserRoundName, i))
	}
	plan.LoserRounds = append(plan.LoserRounds, loserFinalName)
	return plan, nil
}

func planRounds(n int, prefix string) (RoundPlan, error) {
	if n < 2 {
		return RoundPlan{}, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}

	size := BracketSize(n)
	plan := RoundPlan{NumPlayers: n, BracketSize: size, NumByes: size - n}
	for matches, position := size/2, 1; matches >= 1; matches, position = matches/2, position+1 {
		plan.Rounds = append(plan.Rounds, prefix+roundName(matches, position))
	}
	return plan, nil
}

func roundName(matches, position int) string {
	switch matches {
	case 1:
		return "Final"
	case 2:
		return "Semifinais"
	case 4:
		return "Quartas de Final"
	case 8:
		return "Oitavas de Final"
	default:
		return fmt.Sprintf("Rodada %d", position)
	}
}
