package bracket

import (
	"fmt"
	"slices"

	"github.com/AdamBeresnev/cue-bracket/internal/utils"
)

// BaseState is the tournament metadata a builder stamps onto a new bracket.
type BaseState struct {
	TournamentName     string      `json:"tournamentName"`
	Description        string      `json:"description"`
	NumPlayersExpected int         `json:"num_players_expected"`
	BracketType        BracketType `json:"bracket_type"`
}

type GrandFinalState string

const (
	AwaitingFirstGame GrandFinalState = "awaiting-first-game"
	AwaitingResetGame GrandFinalState = "awaiting-reset-game"
	GrandFinalDecided GrandFinalState = "decided"
)

// GrandFinal tracks the double elimination final. The reset game only
// exists once the loser's bracket champion has won the first game.
type GrandFinal struct {
	State        GrandFinalState `json:"state"`
	MatchID      int             `json:"matchId"`
	ResetMatchID *int            `json:"resetMatchId,omitempty"`
}

// Bracket is the match tree of one tournament. Matches is an arena keyed
// by dense ids starting at 1, allocated in creation order, which is also
// round order.
type Bracket struct {
	TournamentName string         `json:"tournamentName"`
	Description    string         `json:"description,omitempty"`
	BracketType    BracketType    `json:"bracketType"`
	CurrentRound   *string        `json:"currentRound"`
	Matches        map[int]*Match `json:"matches"`
	GrandFinal     *GrandFinal    `json:"grandFinal,omitempty"`
	Champion       *Slot          `json:"champion,omitempty"`
}

func newBracket(base BaseState, bracketType BracketType) *Bracket {
	return &Bracket{
		TournamentName: base.TournamentName,
		Description:    base.Description,
		BracketType:    bracketType,
		Matches:        make(map[int]*Match),
	}
}

// Build generates the bracket for base.BracketType. The players are placed
// in the order given; shuffle them first for a random draw.
func Build(players []Player, base BaseState) (*Bracket, error) {
	if base.NumPlayersExpected > 0 && base.NumPlayersExpected != len(players) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrPlayerCountMismatch, base.NumPlayersExpected, len(players))
	}

	switch base.BracketType {
	case SingleElimination:
		return BuildSingleElimination(players, base)
	case DoubleElimination:
		return BuildDoubleElimination(players, base)
	case GroupStage:
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, base.BracketType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBracketType, base.BracketType)
	}
}

func (b *Bracket) Match(id int) (*Match, bool) {
	m, ok := b.Matches[id]
	return m, ok
}

// IDs returns the match ids in ascending order.
func (b *Bracket) IDs() []int {
	ids := make([]int, 0, len(b.Matches))
	for id := range b.Matches {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (b *Bracket) addMatch(side Side, roundName string, round, order int) *Match {
	m := &Match{
		ID:        len(b.Matches) + 1,
		Players:   [2]Slot{EmptySlot(), EmptySlot()},
		RoundName: roundName,
		Bracket:   side,
		Round:     round,
		Order:     order,
	}
	b.Matches[m.ID] = m
	return m
}

func (b *Bracket) link(from, to, slot int) {
	m := b.Matches[from]
	m.NextMatch = utils.Ptr(to)
	m.NextSlot = utils.Ptr(slot)
}

func (b *Bracket) linkLoser(from, to, slot int) {
	m := b.Matches[from]
	m.NextLoserMatch = utils.Ptr(to)
	m.NextLoserSlot = utils.Ptr(slot)
}

// InitialOrder rebuilds the player queue the bracket was generated from by
// reading the first winner's bracket round in match order.
func (b *Bracket) InitialOrder() []Player {
	var players []Player
	for _, id := range b.IDs() {
		m := b.Matches[id]
		if m.Bracket != WinnersSide || m.Round != 0 {
			continue
		}
		for _, s := range m.Players {
			if s.IsOccupied() {
				players = append(players, s.Player())
			}
		}
	}
	return players
}

// Decided reports whether a champion has been determined.
func (b *Bracket) Decided() bool {
	return b.Champion != nil
}
