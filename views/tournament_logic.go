package views

import (
	"slices"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
)

// Round is one column of the rendered bracket.
type Round struct {
	Name    string
	Current bool
	Matches []*bracket.Match
}

// Section is one side of the bracket: winners, losers or the grand final.
type Section struct {
	Side   bracket.Side
	Title  string
	Rounds []Round
}

type BracketData struct {
	Sections []Section
	Champion *bracket.Slot
}

var sideTitles = map[bracket.Side]string{
	bracket.WinnersSide: "Chave dos Vencedores",
	bracket.LosersSide:  "Chave dos Perdedores",
	bracket.FinalsSide:  "Grande Final",
}

// PrepareBracketData groups the matches by side and round, both in play
// order, with matches sorted by their position in the round.
func PrepareBracketData(b *bracket.Bracket) BracketData {
	if b == nil {
		return BracketData{}
	}

	current := ""
	if b.CurrentRound != nil {
		current = *b.CurrentRound
	}

	bySide := make(map[bracket.Side]map[int][]*bracket.Match)
	for _, id := range b.IDs() {
		m := b.Matches[id]
		if bySide[m.Bracket] == nil {
			bySide[m.Bracket] = make(map[int][]*bracket.Match)
		}
		bySide[m.Bracket][m.Round] = append(bySide[m.Bracket][m.Round], m)
	}

	data := BracketData{Champion: b.Champion}
	for _, side := range []bracket.Side{bracket.WinnersSide, bracket.LosersSide, bracket.FinalsSide} {
		rounds, ok := bySide[side]
		if !ok {
			continue
		}

		nums := make([]int, 0, len(rounds))
		for r := range rounds {
			nums = append(nums, r)
		}
		slices.Sort(nums)

		title := sideTitles[side]
		if b.BracketType == bracket.SingleElimination {
			title = "Chave"
		}
		section := Section{Side: side, Title: title}
		for _, r := range nums {
			matches := rounds[r]
			slices.SortFunc(matches, func(a, b *bracket.Match) int { return a.Order - b.Order })
			name := matches[0].RoundName
			section.Rounds = append(section.Rounds, Round{Name: name, Current: name == current, Matches: matches})
		}
		data.Sections = append(data.Sections, section)
	}
	return data
}
