package bracket

type Side string

const (
	WinnersSide Side = "WB"
	LosersSide  Side = "LB"
	FinalsSide  Side = "GF"
)

type SlotState string

const (
	SlotEmpty    SlotState = "empty"
	SlotBye      SlotState = "bye"
	SlotOccupied SlotState = "occupied"
)

// Display names used by the admin UI for slots without a player.
const (
	UndecidedName = "A definir"
	ByeName       = "BYE"
)

// Slot is one of the two player positions of a match. Name, Nickname and
// Score are only meaningful for occupied slots; Label optionally names the
// source of an empty slot ("Vencedor WB").
type Slot struct {
	State    SlotState `json:"state"`
	Name     string    `json:"name,omitempty"`
	Nickname string    `json:"nickname,omitempty"`
	Score    *int      `json:"score,omitempty"`
	Label    string    `json:"label,omitempty"`
}

func EmptySlot() Slot {
	return Slot{State: SlotEmpty}
}

func LabeledSlot(label string) Slot {
	return Slot{State: SlotEmpty, Label: label}
}

func ByeSlot() Slot {
	return Slot{State: SlotBye}
}

func PlayerSlot(p Player) Slot {
	return Slot{State: SlotOccupied, Name: p.Name, Nickname: p.Nickname}
}

func (s Slot) IsEmpty() bool    { return s.State == SlotEmpty }
func (s Slot) IsBye() bool      { return s.State == SlotBye }
func (s Slot) IsOccupied() bool { return s.State == SlotOccupied }

func (s Slot) Display() string {
	switch s.State {
	case SlotOccupied:
		return s.Name
	case SlotBye:
		return ByeName
	}
	return UndecidedName
}

func (s Slot) Player() Player {
	return Player{Name: s.Name, Nickname: s.Nickname}
}

// advanced is the copy of s that moves on to another match: same player,
// no score, no label.
func (s Slot) advanced() Slot {
	switch s.State {
	case SlotOccupied:
		return Slot{State: SlotOccupied, Name: s.Name, Nickname: s.Nickname}
	case SlotBye:
		return ByeSlot()
	}
	return EmptySlot()
}

type Match struct {
	ID      int     `json:"id"`
	Players [2]Slot `json:"players"`
	Winner  *int    `json:"winner"`

	// Position in the bracket for rendering. Round is 0-based within the
	// side, Order is 0-based within the round.
	RoundName string `json:"roundName"`
	Bracket   Side   `json:"bracket"`
	Round     int    `json:"round"`
	Order     int    `json:"order"`

	NextMatch      *int `json:"nextMatch"`
	NextSlot       *int `json:"nextSlot,omitempty"`
	NextLoserMatch *int `json:"nextLoserMatch"`
	NextLoserSlot  *int `json:"nextLoserSlot,omitempty"`

	NeedsReset bool `json:"needsReset,omitempty"`
}

func (m *Match) IsDecided() bool {
	return m.Winner != nil
}

// IsReady reports whether both slots hold a real player, so the match can
// be played.
func (m *Match) IsReady() bool {
	return m.Players[0].IsOccupied() && m.Players[1].IsOccupied()
}

func (m *Match) IsBye() bool {
	return m.Players[0].IsBye() || m.Players[1].IsBye()
}

func (m *Match) IsWinner(slot int) bool {
	return m.Winner != nil && *m.Winner == slot
}

func (m *Match) IsLoser(slot int) bool {
	return m.Winner != nil && *m.Winner != slot
}
