package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// ErrConflict means the tournament row changed since it was read.
var ErrConflict = errors.New("tournament was modified by another request")

// BeginTx starts a write transaction. A database locked by another writer
// is reported as ErrConflict so the client can retry.
func BeginTx(ctx context.Context, db *sqlx.DB) (*sqlx.Tx, error) {
	tx, err := db.BeginTxx(ctx, nil)
	return tx, busyAsConflict(err)
}

func busyAsConflict(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, owner_id, name, description, status, bracket_type, num_players_expected, stream_link)
        VALUES (:id, :owner_id, :name, :description, :status, :bracket_type, :num_players_expected, :stream_link)`, tournament)
	return err
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	res, err := tx.NamedExecContext(ctx, `UPDATE tournaments SET
        name = :name,
        description = :description,
        bracket_type = :bracket_type,
        num_players_expected = :num_players_expected,
        stream_link = :stream_link,
        updated_at = CURRENT_TIMESTAMP
        WHERE id = :id`, tournament)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// SaveBracket writes the bracket document and status of a tournament if its
// version still matches, then bumps the version.
func (s *TournamentStore) SaveBracket(ctx context.Context, tx *sqlx.Tx, tournament *bracket.Tournament) error {
	res, err := tx.NamedExecContext(ctx, `UPDATE tournaments SET
        bracket = :bracket,
        status = :status,
        version = version + 1,
        updated_at = CURRENT_TIMESTAMP
        WHERE id = :id AND version = :version`, tournament)
	if err != nil {
		return busyAsConflict(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrConflict
	}
	tournament.Version++
	return nil
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*bracket.Tournament, error) {
	return getTournament(ctx, s.db, id)
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id string) (*bracket.Tournament, error) {
	return getTournament(ctx, tx, id)
}

func getTournament(ctx context.Context, q sqlx.QueryerContext, id string) (*bracket.Tournament, error) {
	var tournament bracket.Tournament
	if err := sqlx.GetContext(ctx, q, &tournament, "SELECT * FROM tournaments WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentStore) GetTournamentsByUserID(ctx context.Context, userID uuid.UUID) ([]bracket.Tournament, error) {
	tournaments := []bracket.Tournament{}
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments WHERE owner_id = ? ORDER BY created_at DESC, name ASC", userID)
	return tournaments, err
}

func (s *TournamentStore) CreateEntries(ctx context.Context, tx *sqlx.Tx, entries []bracket.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO entries (id, tournament_id, name, nickname, seed)
            VALUES (:id, :tournament_id, :name, :nickname, :seed)`, entries)
	return err
}

func (s *TournamentStore) UpdateEntry(ctx context.Context, tx *sqlx.Tx, entry *bracket.Entry) error {
	res, err := tx.NamedExecContext(ctx, `UPDATE entries SET name = :name, nickname = :nickname
            WHERE id = :id AND tournament_id = :tournament_id`, entry)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TournamentStore) DeleteEntry(ctx context.Context, tx *sqlx.Tx, tournamentID, entryID uuid.UUID) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = ? AND tournament_id = ?", entryID, tournamentID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (s *TournamentStore) GetEntries(ctx context.Context, tournamentID string) ([]bracket.Entry, error) {
	return getEntries(ctx, s.db, tournamentID)
}

func (s *TournamentStore) GetEntriesTx(ctx context.Context, tx *sqlx.Tx, tournamentID string) ([]bracket.Entry, error) {
	return getEntries(ctx, tx, tournamentID)
}

func getEntries(ctx context.Context, q sqlx.QueryerContext, tournamentID string) ([]bracket.Entry, error) {
	entries := []bracket.Entry{}
	err := sqlx.SelectContext(ctx, q, &entries, "SELECT * FROM entries WHERE tournament_id = ? ORDER BY seed ASC", tournamentID)
	return entries, err
}

// MaxSeedTx returns the highest seed on the roster, 0 when it is empty.
func (s *TournamentStore) MaxSeedTx(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) (int, error) {
	var seed int
	err := tx.GetContext(ctx, &seed, "SELECT COALESCE(MAX(seed), 0) FROM entries WHERE tournament_id = ?", tournamentID)
	return seed, err
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
