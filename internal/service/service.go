package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/cue-bracket/internal/archive"
	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/cache"
	"github.com/AdamBeresnev/cue-bracket/internal/middleware"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUnauthenticated = errors.New("user ID not found in the context")
	ErrForbidden       = errors.New("tournament belongs to another user")
	ErrNotDraft        = errors.New("roster and format are locked once the bracket is generated")
	ErrNoBracket       = errors.New("bracket has not been generated")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicatePlayer = errors.New("player is already on the roster")
)

type Option func(*deps)

type deps struct {
	cache    cache.Cache
	archiver *archive.Archiver
	shuffle  func([]bracket.Player) []bracket.Player
}

func WithCache(c cache.Cache) Option {
	return func(d *deps) { d.cache = c }
}

func WithArchiver(a *archive.Archiver) Option {
	return func(d *deps) { d.archiver = a }
}

// WithShuffle replaces the random draw used when a bracket is generated.
func WithShuffle(fn func([]bracket.Player) []bracket.Player) Option {
	return func(d *deps) { d.shuffle = fn }
}

func newDeps(opts []Option) deps {
	d := deps{
		cache:   cache.Nop{},
		shuffle: func(p []bracket.Player) []bracket.Player { return bracket.Shuffle(p, nil) },
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// invalidate drops the cached bracket document. A cache failure only
// costs a stale read until the TTL expires, so it is logged.
func (d deps) invalidate(ctx context.Context, tournamentID string) {
	if err := d.cache.Delete(ctx, cache.BracketKey(tournamentID)); err != nil {
		slog.Warn("failed to invalidate bracket cache", "tournament", tournamentID, "error", err)
	}
}

// ownedTx opens a transaction and loads the tournament, checking it belongs
// to the user in ctx. The caller must roll back or commit tx.
func ownedTx(ctx context.Context, db *sqlx.DB, st *store.TournamentStore, id string) (*sqlx.Tx, *bracket.Tournament, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, ErrUnauthenticated
	}

	tx, err := store.BeginTx(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	tournament, err := st.GetTournamentTx(ctx, tx, id)
	if err != nil {
		tx.Rollback()
		return nil, nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament.OwnerID != userID {
		tx.Rollback()
		return nil, nil, ErrForbidden
	}
	return tx, tournament, nil
}
