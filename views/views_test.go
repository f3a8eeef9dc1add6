package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/AdamBeresnev/cue-bracket/internal/bracket"
	"github.com/AdamBeresnev/cue-bracket/internal/video"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(names ...string) []bracket.Player {
	out := make([]bracket.Player, 0, len(names))
	for _, n := range names {
		out = append(out, bracket.Player{Name: n})
	}
	return out
}

func TestPrepareBracketDataDouble(t *testing.T) {
	b, err := bracket.BuildDoubleElimination(players("Ana", "Bia", "Caio", "Duda"), bracket.BaseState{TournamentName: "Copa", BracketType: bracket.DoubleElimination})
	require.NoError(t, err)

	data := PrepareBracketData(b)
	require.Len(t, data.Sections, 3)
	assert.Equal(t, bracket.WinnersSide, data.Sections[0].Side)
	assert.Equal(t, bracket.LosersSide, data.Sections[1].Side)
	assert.Equal(t, bracket.FinalsSide, data.Sections[2].Side)

	wb := data.Sections[0].Rounds
	require.Len(t, wb, 2)
	assert.Len(t, wb[0].Matches, 2)
	assert.True(t, wb[0].Current)
	assert.False(t, wb[1].Current)
	assert.Equal(t, 0, wb[0].Matches[0].Order)
	assert.Equal(t, 1, wb[0].Matches[1].Order)

	assert.Len(t, data.Sections[1].Rounds, 3)
	assert.Nil(t, data.Champion)
}

func TestPrepareBracketDataNil(t *testing.T) {
	assert.Empty(t, PrepareBracketData(nil).Sections)
}

func TestTournamentViewEscapes(t *testing.T) {
	tournament := &bracket.Tournament{ID: uuid.New(), Name: "<Copa>", Status: bracket.TournamentStarted, Type: bracket.SingleElimination}
	b, err := bracket.Build(players("Ana & Bia", "Caio"), tournament.BaseState())
	require.NoError(t, err)
	_, err = b.ReportScore(1, 2, 0)
	require.NoError(t, err)
	tournament.Bracket = b

	link := "https://youtu.be/abc"
	var buf bytes.Buffer
	err = TournamentView(tournament, nil, video.GetEmbedInfo(&link, "localhost")).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "&lt;Copa&gt;")
	assert.NotContains(t, html, "<Copa>")
	assert.Contains(t, html, "Ana &amp; Bia")
	assert.Contains(t, html, `class="champion"`)
	assert.Contains(t, html, "https://www.youtube.com/embed/abc")
	assert.Contains(t, html, `<div class="slot winner">`)
}

func TestTournamentViewRoster(t *testing.T) {
	tournament := &bracket.Tournament{Name: "Copa", Status: bracket.TournamentDraft}
	entries := []bracket.Entry{{Name: "Ana", Nickname: "Tacada"}}

	var buf bytes.Buffer
	require.NoError(t, TournamentView(tournament, entries, video.EmbedInfo{}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Ana (Tacada)")
	assert.Contains(t, buf.String(), "Inscrições abertas")
}
