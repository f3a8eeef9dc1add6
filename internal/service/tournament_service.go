package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/cache"
	"github.com/AdamBeresnev/cue-bracket/internal/metrics"
	"github.com/AdamBeresnev/cue-bracket/internal/middleware"
	"github.com/AdamBeresnev/cue-bracket/internal/roster"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/AdamBeresnev/cue-bracket/internal/utils"
	"github.com/AdamBeresnev/cue-bracket/internal/video"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const maxTournamentName = 100

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore
	deps
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, opts ...Option) *TournamentService {
	return &TournamentService{db: db, store: store, deps: newDeps(opts)}
}

// TournamentInput carries the editable tournament fields.
type TournamentInput struct {
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	BracketType        bracket.BracketType `json:"bracketType"`
	NumPlayersExpected int                 `json:"numPlayersExpected"`
	StreamLink         string              `json:"streamLink"`
	Players            []bracket.Player    `json:"players,omitempty"`
}

func (in *TournamentInput) normalize() error {
	in.Name = utils.Clip(in.Name, maxTournamentName)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	if in.BracketType == "" {
		in.BracketType = bracket.SingleElimination
	}
	if !in.BracketType.Valid() {
		return fmt.Errorf("%w: %q", bracket.ErrUnknownBracketType, in.BracketType)
	}
	if in.NumPlayersExpected < 0 {
		return fmt.Errorf("%w: expected player count cannot be negative", ErrInvalidInput)
	}
	in.StreamLink = strings.TrimSpace(in.StreamLink)
	if in.StreamLink != "" {
		if err := video.ValidateLink(in.StreamLink); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

type TournamentData struct {
	Tournament *bracket.Tournament `json:"tournament"`
	Entries    []bracket.Entry     `json:"players"`
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id string) (*TournamentData, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.store.GetEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TournamentData{
		Tournament: tournament,
		Entries:    entries,
	}, nil
}

func (s *TournamentService) GetTournamentsForUser(ctx context.Context) ([]bracket.Tournament, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.store.GetTournamentsByUserID(ctx, userID)
}

// CreateTournament stores a draft tournament and its optional initial
// roster.
func (s *TournamentService) CreateTournament(ctx context.Context, in TournamentInput) (*bracket.Tournament, error) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	tx, err := store.BeginTx(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tournament := &bracket.Tournament{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Name:               in.Name,
		Description:        in.Description,
		Status:             bracket.TournamentDraft,
		Type:               in.BracketType,
		NumPlayersExpected: in.NumPlayersExpected,
		StreamLink:         utils.StringOrNil(in.StreamLink),
	}
	if err := s.store.CreateTournament(ctx, tx, tournament); err != nil {
		return nil, err
	}

	players := roster.Normalize(in.Players)
	entries := make([]bracket.Entry, 0, len(players))
	for i, p := range players {
		entries = append(entries, bracket.Entry{
			ID:           uuid.New(),
			TournamentID: tournament.ID,
			Name:         p.Name,
			Nickname:     p.Nickname,
			Seed:         i + 1,
		})
	}
	if err := s.store.CreateEntries(ctx, tx, entries); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	slog.Info("tournament created", "tournament", tournament.ID, "players", len(entries))
	return tournament, nil
}

// UpdateTournament changes the tournament details. The format and the
// expected player count can only change while the tournament is a draft.
func (s *TournamentService) UpdateTournament(ctx context.Context, id string, in TournamentInput) (*bracket.Tournament, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	tx, tournament, err := ownedTx(ctx, s.db, s.store, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	formatChanged := in.BracketType != tournament.Type || in.NumPlayersExpected != tournament.NumPlayersExpected
	if formatChanged && tournament.Status != bracket.TournamentDraft {
		return nil, ErrNotDraft
	}

	tournament.Name = in.Name
	tournament.Description = in.Description
	tournament.Type = in.BracketType
	tournament.NumPlayersExpected = in.NumPlayersExpected
	tournament.StreamLink = utils.StringOrNil(in.StreamLink)

	if err := s.store.UpdateTournament(ctx, tx, tournament); err != nil {
		return nil, err
	}
	// The bracket document carries its own copy of the name.
	if b := tournament.Bracket; b != nil {
		b.TournamentName = tournament.Name
		b.Description = tournament.Description
		if err := s.store.SaveBracket(ctx, tx, tournament); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return tournament, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	tx, tournament, err := ownedTx(ctx, s.db, s.store, id)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteTournament(ctx, tx, tournament.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// GenerateBracket draws a new bracket from the roster. Generating again
// reshuffles and discards every result.
func (s *TournamentService) GenerateBracket(ctx context.Context, id string) (*bracket.Tournament, error) {
	return s.rebuild(ctx, id, func(tx *sqlx.Tx, t *bracket.Tournament) ([]bracket.Player, error) {
		entries, err := s.store.GetEntriesTx(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		return s.shuffle(bracket.Players(entries)), nil
	})
}

// ResetBracket clears every result and rebuilds the bracket with the same
// draw.
func (s *TournamentService) ResetBracket(ctx context.Context, id string) (*bracket.Tournament, error) {
	return s.rebuild(ctx, id, func(tx *sqlx.Tx, t *bracket.Tournament) ([]bracket.Player, error) {
		if t.Bracket == nil {
			return nil, ErrNoBracket
		}
		return t.Bracket.InitialOrder(), nil
	})
}

func (s *TournamentService) rebuild(ctx context.Context, id string, draw func(*sqlx.Tx, *bracket.Tournament) ([]bracket.Player, error)) (*bracket.Tournament, error) {
	tx, tournament, err := ownedTx(ctx, s.db, s.store, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	players, err := draw(tx, tournament)
	if err != nil {
		return nil, err
	}

	b, err := bracket.Build(players, tournament.BaseState())
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("generated bracket is inconsistent: %w", err)
	}

	tournament.Bracket = b
	tournament.Status = bracket.TournamentStarted
	if b.Decided() {
		tournament.Status = bracket.TournamentCompleted
	}
	if err := s.store.SaveBracket(ctx, tx, tournament); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	metrics.BracketsGenerated.WithLabelValues(string(tournament.Type)).Inc()
	slog.Info("bracket generated", "tournament", id, "type", tournament.Type, "players", len(players), "matches", len(b.Matches))
	return tournament, nil
}

// DiscardBracket drops the bracket and reopens the roster.
func (s *TournamentService) DiscardBracket(ctx context.Context, id string) (*bracket.Tournament, error) {
	tx, tournament, err := ownedTx(ctx, s.db, s.store, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if tournament.Bracket == nil {
		return nil, ErrNoBracket
	}
	tournament.Bracket = nil
	tournament.Status = bracket.TournamentDraft
	if err := s.store.SaveBracket(ctx, tx, tournament); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return tournament, nil
}

// AdvanceRound moves the round cursor once every match of the current
// round is decided.
func (s *TournamentService) AdvanceRound(ctx context.Context, id string) (*bracket.Tournament, error) {
	tx, tournament, err := ownedTx(ctx, s.db, s.store, id)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if tournament.Bracket == nil {
		return nil, ErrNoBracket
	}
	if _, err := tournament.Bracket.AdvanceRound(utils.OrZero(tournament.Bracket.CurrentRound)); err != nil {
		return nil, err
	}
	if err := s.store.SaveBracket(ctx, tx, tournament); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	metrics.RoundsAdvanced.Inc()
	return tournament, nil
}

// GetBracket returns the encoded bracket document, served from the cache
// when possible.
func (s *TournamentService) GetBracket(ctx context.Context, id string) ([]byte, error) {
	key := cache.BracketKey(id)
	if doc, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("bracket cache read failed", "tournament", id, "error", err)
	} else if ok {
		return doc, nil
	}

	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if tournament.Bracket == nil {
		return nil, ErrNoBracket
	}

	doc, err := json.Marshal(tournament.Bracket)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, doc); err != nil {
		slog.Warn("bracket cache write failed", "tournament", id, "error", err)
	}
	return doc, nil
}
