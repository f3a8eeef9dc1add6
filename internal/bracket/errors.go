package bracket

import "errors"

var (
	ErrTooFewPlayers       = errors.New("at least two players are required")
	ErrPlayerCountMismatch = errors.New("player count does not match the expected number of players")
	ErrNotImplemented      = errors.New("bracket type not implemented")
	ErrUnknownBracketType  = errors.New("unknown bracket type")
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchNotReady = errors.New("match is still waiting for players")
	ErrMatchDecided  = errors.New("match already decided")
	ErrMissingScore  = errors.New("both scores are required")
	ErrInvalidScore  = errors.New("scores must not be negative")
	ErrTiedScore     = errors.New("scores are tied")
	ErrInvalidWinner = errors.New("winner must be 0 or 1")
	ErrBrokenLink    = errors.New("bracket link cannot be followed")
)

var (
	ErrRoundIncomplete = errors.New("round incomplete")
	ErrFinalRound      = errors.New("already final round")
	ErrInvalidRound    = errors.New("current round invalid")
)

var ErrInvalidStructure = errors.New("invalid bracket structure")
