package bracket

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one player on a tournament roster. Seed keeps the order the
// roster was entered in; bracket placement order comes from the shuffle.
type Entry struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournamentId"`
	Name         string    `db:"name" json:"name"`
	Nickname     string    `db:"nickname" json:"nickname"`
	Seed         int       `db:"seed" json:"seed"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

func (e Entry) Player() Player {
	return Player{Name: e.Name, Nickname: e.Nickname}
}

func Players(entries []Entry) []Player {
	players := make([]Player, 0, len(entries))
	for _, e := range entries {
		players = append(players, e.Player())
	}
	return players
}

// Player is the builder input: who is placed into a bracket slot.
type Player struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}
