package bracket

import (
	"errors"
	"fmt"
	"log/slog"
)

// Result is the outcome of a reported match.
type Result struct {
	MatchID  int   `json:"matchId"`
	Winner   int   `json:"winner"`
	Champion *Slot `json:"champion,omitempty"`
}

// Scores holds the reported scores for slot 0 and slot 1.
type Scores [2]int

// ReportScore records the scores of a match and advances the player with
// the higher score. A tie leaves the bracket untouched.
func (b *Bracket) ReportScore(id, score0, score1 int) (Result, error) {
	return b.Report(id, &Scores{score0, score1}, nil)
}

// SetWinner designates the winner of a match without scores.
func (b *Bracket) SetWinner(id, winner int) (Result, error) {
	return b.Report(id, nil, &winner)
}

// Report records optional scores and an optional explicit winner, then
// advances the match. When winner is set it takes precedence over the
// scores, so an admin can decide a tied match.
func (b *Bracket) Report(id int, scores *Scores, winner *int) (Result, error) {
	m, err := b.playable(id)
	if err != nil {
		return Result{}, err
	}

	if scores != nil {
		if scores[0] < 0 || scores[1] < 0 {
			return Result{}, fmt.Errorf("%w: %d-%d", ErrInvalidScore, scores[0], scores[1])
		}
		if winner == nil && scores[0] == scores[1] {
			slog.Warn("bracket: tied score, match left open", "match", id, "score", scores[0])
			return Result{}, fmt.Errorf("%w: match %d", ErrTiedScore, id)
		}
	}
	if winner != nil && *winner != 0 && *winner != 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidWinner, *winner)
	}

	if scores != nil {
		s0, s1 := scores[0], scores[1]
		m.Players[0].Score = &s0
		m.Players[1].Score = &s1
	}
	return b.Advance(id, winner)
}

// Advance decides a match and moves its winner to NextMatch and, for
// winner's bracket matches, its loser to NextLoserMatch. Without an override
// the winner is derived from the slot scores.
//
// Advancing is not idempotent by nature; a decided match is rejected with
// ErrMatchDecided instead of placing its players twice.
func (b *Bracket) Advance(id int, override *int) (Result, error) {
	m, err := b.playable(id)
	if err != nil {
		return Result{}, err
	}

	winner, err := determineWinner(m, override)
	if err != nil {
		return Result{}, err
	}
	m.Winner = &winner

	switch {
	case m.Bracket == FinalsSide && b.GrandFinal != nil:
		b.decideGrandFinal(m, winner)
	case m.NextMatch == nil:
		b.crown(m.Players[winner])
	default:
		if err := b.forward(m, winner); err != nil {
			return Result{MatchID: id, Winner: winner}, err
		}
	}

	return Result{MatchID: id, Winner: winner, Champion: b.Champion}, nil
}

func (b *Bracket) playable(id int) (*Match, error) {
	m, ok := b.Matches[id]
	if !ok {
		slog.Warn("bracket: match not found", "match", id)
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, id)
	}
	if m.IsDecided() {
		return nil, fmt.Errorf("%w: match %d", ErrMatchDecided, id)
	}
	if !m.IsReady() {
		return nil, fmt.Errorf("%w: match %d", ErrMatchNotReady, id)
	}
	return m, nil
}

func determineWinner(m *Match, override *int) (int, error) {
	if override != nil {
		if *override != 0 && *override != 1 {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidWinner, *override)
		}
		return *override, nil
	}

	s0, s1 := m.Players[0].Score, m.Players[1].Score
	if s0 == nil || s1 == nil {
		return 0, fmt.Errorf("%w: match %d", ErrMissingScore, m.ID)
	}
	if *s0 == *s1 {
		slog.Warn("bracket: tied score, match left open", "match", m.ID, "score", *s0)
		return 0, fmt.Errorf("%w: match %d", ErrTiedScore, m.ID)
	}
	if *s0 > *s1 {
		return 0, nil
	}
	return 1, nil
}

// forward places the winner of m into its next match and the loser into its
// next loser match. A failed placement is logged and reported; the other
// placement still happens.
func (b *Bracket) forward(m *Match, winner int) error {
	var errs []error
	if m.NextMatch != nil {
		if err := b.place(*m.NextMatch, m.NextSlot, m.Players[winner]); err != nil {
			errs = append(errs, err)
		}
	}
	if m.NextLoserMatch != nil {
		if err := b.place(*m.NextLoserMatch, m.NextLoserSlot, m.Players[1-winner]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bracket) place(id int, slot *int, s Slot) error {
	target, ok := b.Matches[id]
	if !ok || slot == nil || *slot < 0 || *slot > 1 {
		slog.Warn("bracket: link points nowhere", "match", id, "player", s.Display())
		return fmt.Errorf("%w: match %d", ErrBrokenLink, id)
	}
	if target.IsDecided() || !target.Players[*slot].IsEmpty() {
		slog.Warn("bracket: slot already filled", "match", id, "slot", *slot, "player", s.Display())
		return fmt.Errorf("%w: match %d slot %d is taken", ErrBrokenLink, id, *slot)
	}

	target.Players[*slot] = s.advanced()
	b.settle(id)
	return nil
}

// settle decides a match that cannot be played because a side is a bye and
// pushes the result on. Two byes make a void match that forwards a bye.
func (b *Bracket) settle(id int) {
	m, ok := b.Matches[id]
	if !ok || m.IsDecided() || !m.IsBye() {
		return
	}
	if m.Players[0].IsEmpty() || m.Players[1].IsEmpty() {
		return
	}

	winner := 0
	if m.Players[0].IsBye() && m.Players[1].IsOccupied() {
		winner = 1
	}
	m.Winner = &winner

	if m.NextMatch == nil && m.Bracket != FinalsSide {
		b.crown(m.Players[winner])
		return
	}
	// Settling runs during generation or inside another placement; errors
	// were already logged by place.
	_ = b.forward(m, winner)
}

func (b *Bracket) crown(s Slot) {
	if !s.IsOccupied() {
		return
	}
	champion := s.advanced()
	b.Champion = &champion
}

// decideGrandFinal runs the grand final state machine. If the loser's
// bracket champion wins the first game a reset game is appended between
// the same two players.
func (b *Bracket) decideGrandFinal(m *Match, winner int) {
	gf := b.GrandFinal
	if gf.State == AwaitingFirstGame && m.ID == gf.MatchID && winner == 1 {
		m.NeedsReset = true
		reset := b.addMatch(FinalsSide, ResetRoundName, 1, 0)
		reset.Players = [2]Slot{m.Players[0].advanced(), m.Players[1].advanced()}
		gf.ResetMatchID = &reset.ID
		gf.State = AwaitingResetGame
		return
	}

	if gf.State == AwaitingFirstGame {
		m.NeedsReset = false
	}
	gf.State = GrandFinalDecided
	b.crown(m.Players[winner])
}
