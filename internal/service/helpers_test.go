package service

import (
	"context"
	"sync"
	"testing"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/db"
	"github.com/AdamBeresnev/cue-bracket/internal/middleware"
	"github.com/AdamBeresnev/cue-bracket/internal/store"
	users "github.com/AdamBeresnev/cue-bracket/internal/user"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations(database.DB, "file://../../migrations"), "Failed to apply migrations")
	return database
}

func guestCtx() context.Context {
	return middleware.WithUserID(context.Background(), users.GuestID)
}

func inOrder(p []bracket.Player) []bracket.Player { return p }

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	deletes int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.data, key)
	return nil
}

type fixture struct {
	db          *sqlx.DB
	store       *store.TournamentStore
	cache       *memCache
	tournaments *TournamentService
	matches     *MatchService
	entries     *EntryService
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	database := setupTestDB(t)
	st := store.NewTournamentStore(database)
	c := newMemCache()
	opts = append([]Option{WithCache(c), WithShuffle(inOrder)}, opts...)
	return &fixture{
		db:          database,
		store:       st,
		cache:       c,
		tournaments: NewTournamentService(database, st, opts...),
		matches:     NewMatchService(database, st, opts...),
		entries:     NewEntryService(database, st),
	}
}

// started creates a tournament with the named players and generates its
// bracket with the players in the given order.
func (f *fixture) started(t *testing.T, bt bracket.BracketType, names ...string) *bracket.Tournament {
	t.Helper()
	players := make([]bracket.Player, 0, len(names))
	for _, n := range names {
		players = append(players, bracket.Player{Name: n})
	}

	tournament, err := f.tournaments.CreateTournament(guestCtx(), TournamentInput{Name: "Copa do Bar", BracketType: bt, Players: players})
	require.NoError(t, err)

	tournament, err = f.tournaments.GenerateBracket(guestCtx(), tournament.ID.String())
	require.NoError(t, err)
	return tournament
}

func score(s0, s1 int) ScoreInput {
	return ScoreInput{Score0: &s0, Score1: &s1}
}
