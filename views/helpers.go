package views

import (
	"context"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/middleware"
	users "github.com/AdamBeresnev/cue-bracket/internal/user"
)

func GetUser(ctx context.Context) *users.User {
	return middleware.GetAuthenticatedUser(ctx)
}

func slotClass(m *bracket.Match, i int) string {
	s := m.Players[i]
	switch {
	case m.IsWinner(i):
		return "slot winner"
	case m.IsLoser(i):
		return "slot loser"
	case s.IsBye():
		return "slot bye"
	case s.IsEmpty():
		return "slot empty"
	}
	return "slot"
}

func slotText(s bracket.Slot) string {
	if s.IsEmpty() && s.Label != "" {
		return s.Label
	}
	if s.IsOccupied() && s.Nickname != "" {
		return s.Name + " (" + s.Nickname + ")"
	}
	return s.Display()
}

var statusLabels = map[bracket.TournamentStatus]string{
	bracket.TournamentDraft:     "Inscrições abertas",
	bracket.TournamentStarted:   "Em andamento",
	bracket.TournamentCompleted: "Encerrado",
}

func statusLabel(s bracket.TournamentStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}
