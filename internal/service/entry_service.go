package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/roster"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EntryService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewEntryService(db *sqlx.DB, store *store.TournamentStore) *EntryService {
	return &EntryService{db: db, store: store}
}

func (s *EntryService) ListPlayers(ctx context.Context, tournamentID string) ([]bracket.Entry, error) {
	if _, err := s.store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.store.GetEntries(ctx, tournamentID)
}

// AddPlayer appends one player to the roster.
func (s *EntryService) AddPlayer(ctx context.Context, tournamentID string, p bracket.Player) (*bracket.Entry, error) {
	p, err := roster.Clean(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	added, err := s.addPlayers(ctx, tournamentID, []bracket.Player{p}, true)
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// ImportPlayers reads a CSV or JSON roster and appends every player not
// already on it. Names already present are skipped.
func (s *EntryService) ImportPlayers(ctx context.Context, tournamentID string, r io.Reader, format roster.Format) ([]bracket.Entry, error) {
	players, err := roster.Read(r, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.addPlayers(ctx, tournamentID, players, false)
}

func (s *EntryService) addPlayers(ctx context.Context, tournamentID string, players []bracket.Player, strict bool) ([]bracket.Entry, error) {
	tx, tournament, err := s.draftTx(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	existing, err := s.store.GetEntriesTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[strings.ToLower(e.Name)] = true
	}

	seed, err := s.store.MaxSeedTx(ctx, tx, tournament.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]bracket.Entry, 0, len(players))
	for _, p := range players {
		key := strings.ToLower(p.Name)
		if taken[key] {
			if strict {
				return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
			}
			continue
		}
		taken[key] = true
		seed++
		entries = append(entries, bracket.Entry{
			ID:           uuid.New(),
			TournamentID: tournament.ID,
			Name:         p.Name,
			Nickname:     p.Nickname,
			Seed:         seed,
		})
	}

	if err := s.store.CreateEntries(ctx, tx, entries); err != nil {
		return nil, err
	}
	return entries, tx.Commit()
}

func (s *EntryService) UpdatePlayer(ctx context.Context, tournamentID, playerID string, p bracket.Player) (*bracket.Entry, error) {
	p, err := roster.Clean(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	tx, tournament, err := s.draftTx(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entries, err := s.store.GetEntriesTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	var entry *bracket.Entry
	for i := range entries {
		e := &entries[i]
		if e.ID.String() == playerID {
			entry = e
			continue
		}
		if strings.EqualFold(e.Name, p.Name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("player %s is not on tournament %s: %w", playerID, tournament.ID, sql.ErrNoRows)
	}

	entry.Name = p.Name
	entry.Nickname = p.Nickname
	if err := s.store.UpdateEntry(ctx, tx, entry); err != nil {
		return nil, err
	}
	return entry, tx.Commit()
}

func (s *EntryService) RemovePlayer(ctx context.Context, tournamentID, playerID string) error {
	id, err := uuid.Parse(playerID)
	if err != nil {
		return fmt.Errorf("%w: player id: %w", ErrInvalidInput, err)
	}

	tx, tournament, err := s.draftTx(ctx, tournamentID)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteEntry(ctx, tx, tournament.ID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *EntryService) ExportPlayers(ctx context.Context, tournamentID string, w io.Writer, format roster.Format) error {
	entries, err := s.ListPlayers(ctx, tournamentID)
	if err != nil {
		return err
	}
	return roster.Write(w, format, bracket.Players(entries))
}

// draftTx is ownedTx for roster edits, which are only allowed before the
// bracket is generated.
func (s *EntryService) draftTx(ctx context.Context, tournamentID string) (*sqlx.Tx, *bracket.Tournament, error) {
	tx, tournament, err := ownedTx(ctx, s.db, s.store, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	if tournament.Status != bracket.TournamentDraft {
		tx.Rollback()
		return nil, nil, ErrNotDraft
	}
	return tx, tournament, nil
}
