package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/metrics"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/jmoiron/sqlx"
)

// Frames needed to win a match.
const framesToWin = 2

type MatchService struct {
	db    *sqlx.DB
	store *store.TournamentStore
	deps
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore, opts ...Option) *MatchService {
	return &MatchService{db: db, store: store, deps: newDeps(opts)}
}

// ScoreInput is a match report: both scores, an explicit winner slot, or
// both when an admin decides a match the scores do not settle.
type ScoreInput struct {
	Score0 *int `json:"score0"`
	Score1 *int `json:"score1"`
	Winner *int `json:"winner"`
}

// validate checks the report and returns the scores to record, if any.
// Without an explicit winner the scores must be a finished best of three.
func (in ScoreInput) validate() (*bracket.Scores, error) {
	if (in.Score0 == nil) != (in.Score1 == nil) {
		return nil, fmt.Errorf("%w: both scores are required", bracket.ErrMissingScore)
	}
	if in.Score0 == nil {
		if in.Winner == nil {
			return nil, fmt.Errorf("%w: report scores or a winner", bracket.ErrMissingScore)
		}
		return nil, nil
	}

	scores := &bracket.Scores{*in.Score0, *in.Score1}
	if in.Winner != nil {
		return scores, nil
	}

	hi, lo := max(scores[0], scores[1]), min(scores[0], scores[1])
	if hi == lo {
		return nil, fmt.Errorf("%w: %d-%d", bracket.ErrTiedScore, scores[0], scores[1])
	}
	if hi != framesToWin || lo < 0 {
		return nil, fmt.Errorf("%w: %d-%d is not a best of three result", bracket.ErrInvalidScore, scores[0], scores[1])
	}
	return scores, nil
}

type ReportResult struct {
	bracket.Result
	Tournament *bracket.Tournament `json:"tournament"`
}

// ReportScore records a match result, advances the players and persists the
// bracket. The champion being decided completes the tournament and archives
// the final bracket.
func (s *MatchService) ReportScore(ctx context.Context, tournamentID string, matchID int, in ScoreInput) (*ReportResult, error) {
	scores, err := in.validate()
	if err != nil {
		metrics.ScoresReported.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	tx, tournament, err := ownedTx(ctx, s.db, s.store, tournamentID)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if tournament.Bracket == nil {
		return nil, ErrNoBracket
	}

	res, err := tournament.Bracket.Report(matchID, scores, in.Winner)
	if err != nil && !errors.Is(err, bracket.ErrBrokenLink) {
		metrics.ScoresReported.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	if err != nil {
		// The winner is recorded even when a link is broken; keep the
		// result and surface the fault in the log.
		slog.Error("bracket link fault while advancing", "tournament", tournamentID, "match", matchID, "error", err)
	}

	if tournament.Bracket.Decided() {
		tournament.Status = bracket.TournamentCompleted
	}
	if err := s.store.SaveBracket(ctx, tx, tournament); err != nil {
		if errors.Is(err, store.ErrConflict) {
			metrics.ScoresReported.WithLabelValues(metrics.OutcomeConflict).Inc()
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, tournamentID)

	outcome := metrics.OutcomeAdvanced
	if res.Champion != nil {
		outcome = metrics.OutcomeChampion
		metrics.TournamentsCompleted.Inc()
		if err := s.archiver.Upload(ctx, tournament); err != nil {
			slog.Error("failed to archive bracket", "tournament", tournamentID, "error", err)
		}
	}
	metrics.ScoresReported.WithLabelValues(outcome).Inc()

	return &ReportResult{Result: res, Tournament: tournament}, nil
}
