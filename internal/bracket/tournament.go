package bracket

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentStarted   TournamentStatus = "started"
	TournamentCompleted TournamentStatus = "completed"
)

type BracketType string

const (
	SingleElimination BracketType = "single-elimination"
	DoubleElimination BracketType = "double-elimination"
	GroupStage        BracketType = "group-stage"
)

func (t BracketType) Valid() bool {
	switch t {
	case SingleElimination, DoubleElimination, GroupStage:
		return true
	}
	return false
}

// Tournament is the persisted record that owns a bracket document.
// Bracket is nil until the bracket has been generated.
type Tournament struct {
	ID                 uuid.UUID        `db:"id" json:"id"`
	OwnerID            uuid.UUID        `db:"owner_id" json:"ownerId"`
	Name               string           `db:"name" json:"name"`
	Description        string           `db:"description" json:"description"`
	Status             TournamentStatus `db:"status" json:"status"`
	Type               BracketType      `db:"bracket_type" json:"bracketType"`
	NumPlayersExpected int              `db:"num_players_expected" json:"numPlayersExpected"`
	StreamLink         *string          `db:"stream_link" json:"streamLink,omitempty"`
	Bracket            *Bracket         `db:"bracket" json:"bracket,omitempty"`
	Version            int              `db:"version" json:"version"`
	CreatedAt          time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updatedAt"`
}

func (t *Tournament) BaseState() BaseState {
	return BaseState{
		TournamentName:     t.Name,
		Description:        t.Description,
		NumPlayersExpected: t.NumPlayersExpected,
		BracketType:        t.Type,
	}
}
