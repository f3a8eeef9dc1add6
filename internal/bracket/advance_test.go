package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportScore_AdvancesWinnerAndLoser(t *testing.T) {
	b, err := BuildDoubleElimination(testPlayers(4), baseState(DoubleElimination))
	require.NoError(t, err)

	res, err := b.ReportScore(1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Winner)
	assert.Nil(t, res.Champion)

	wbFinal := b.Matches[3]
	assert.Equal(t, "P1", wbFinal.Players[0].Name)
	assert.Nil(t, wbFinal.Players[0].Score, "score does not travel with the player")
	assert.True(t, wbFinal.Players[1].IsEmpty())

	lb := b.Matches[4]
	assert.Equal(t, "P2", lb.Players[0].Name)
	assert.Equal(t, "p2", lb.Players[0].Nickname)

	m := b.Matches[1]
	require.NotNil(t, m.Players[0].Score)
	assert.Equal(t, 2, *m.Players[0].Score)
	assert.Equal(t, 0, *m.Players[1].Score)

	res, err = b.ReportScore(2, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Winner)
	assert.Equal(t, "P4", wbFinal.Players[1].Name)
	assert.Equal(t, "P3", lb.Players[1].Name)
}

func TestReportScore_TieLeavesBracketUnchanged(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(4), baseState(SingleElimination))
	require.NoError(t, err)

	before, err := b.Value()
	require.NoError(t, err)

	_, err = b.ReportScore(1, 1, 1)
	assert.ErrorIs(t, err, ErrTiedScore)

	after, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReport_Errors(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(3), baseState(SingleElimination))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		id      int
		scores  *Scores
		winner  *int
		wantErr error
	}{
		{name: "unknown match", id: 42, scores: &Scores{2, 0}, wantErr: ErrMatchNotFound},
		{name: "bye match is already decided", id: 1, scores: &Scores{2, 0}, wantErr: ErrMatchDecided},
		{name: "final still waiting", id: 3, scores: &Scores{2, 0}, wantErr: ErrMatchNotReady},
		{name: "negative score", id: 2, scores: &Scores{-1, 2}, wantErr: ErrInvalidScore},
		{name: "winner out of range", id: 2, winner: intPtr(2), wantErr: ErrInvalidWinner},
		{name: "no scores and no winner", id: 2, wantErr: ErrMissingScore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.Report(tc.id, tc.scores, tc.winner)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Nil(t, b.Matches[2].Winner)
}

func TestSetWinner_OverridesScores(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(2), baseState(SingleElimination))
	require.NoError(t, err)

	res, err := b.Report(1, &Scores{1, 1}, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Winner)
	require.NotNil(t, res.Champion)
	assert.Equal(t, "P2", res.Champion.Name)
	assert.True(t, b.Decided())

	_, err = b.SetWinner(1, 0)
	assert.ErrorIs(t, err, ErrMatchDecided)
	assert.Equal(t, "P2", b.Champion.Name)
}

func TestAdvance_BrokenLink(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(4), baseState(SingleElimination))
	require.NoError(t, err)

	missing := 99
	b.Matches[1].NextMatch = &missing

	_, err = b.ReportScore(1, 2, 0)
	assert.ErrorIs(t, err, ErrBrokenLink)
	assert.True(t, b.Matches[3].Players[0].IsEmpty())
}

func TestAdvance_SingleEliminationChampion(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(4), baseState(SingleElimination))
	require.NoError(t, err)

	_, err = b.ReportScore(1, 2, 1)
	require.NoError(t, err)
	_, err = b.ReportScore(2, 0, 2)
	require.NoError(t, err)
	assert.False(t, b.Decided())

	res, err := b.ReportScore(3, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, res.Champion)
	assert.Equal(t, "P4", res.Champion.Name)
	assert.Nil(t, res.Champion.Score)
}

func TestGrandFinal_Reset(t *testing.T) {
	b := playToGrandFinal(t)
	gf := b.Matches[b.GrandFinal.MatchID]

	res, err := b.ReportScore(gf.ID, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, res.Champion)
	assert.True(t, gf.NeedsReset)
	assert.Equal(t, AwaitingResetGame, b.GrandFinal.State)
	require.NotNil(t, b.GrandFinal.ResetMatchID)

	reset := b.Matches[*b.GrandFinal.ResetMatchID]
	assert.Equal(t, len(b.Matches), reset.ID)
	assert.Equal(t, ResetRoundName, reset.RoundName)
	assert.Equal(t, FinalsSide, reset.Bracket)
	assert.Equal(t, gf.Players[0].Name, reset.Players[0].Name)
	assert.Equal(t, gf.Players[1].Name, reset.Players[1].Name)
	assert.Nil(t, reset.Players[0].Score)
	require.NoError(t, b.Validate())

	res, err = b.ReportScore(reset.ID, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, res.Champion)
	assert.Equal(t, gf.Players[0].Name, res.Champion.Name)
	assert.Equal(t, GrandFinalDecided, b.GrandFinal.State)
}

func TestGrandFinal_WinnersChampionTakesFirstGame(t *testing.T) {
	b := playToGrandFinal(t)
	gf := b.Matches[b.GrandFinal.MatchID]

	res, err := b.ReportScore(gf.ID, 2, 0)
	require.NoError(t, err)
	require.NotNil(t, res.Champion)
	assert.Equal(t, "P1", res.Champion.Name)
	assert.False(t, gf.NeedsReset)
	assert.Nil(t, b.GrandFinal.ResetMatchID)
	assert.Len(t, b.Matches, 7)
}

// playToGrandFinal plays a four player double elimination bracket up to the
// grand final: P1 wins the winner's bracket, P4 the loser's bracket.
func playToGrandFinal(t *testing.T) *Bracket {
	t.Helper()

	b, err := BuildDoubleElimination(testPlayers(4), baseState(DoubleElimination))
	require.NoError(t, err)

	steps := []struct {
		id     int
		s0, s1 int
	}{
		{1, 2, 0}, // P1 beats P2
		{2, 2, 1}, // P3 beats P4
		{4, 0, 2}, // P4 beats P2 in the loser's bracket
		{3, 2, 1}, // P1 beats P3 in the WB final
		{6, 2, 0}, // P4 beats P3 in the LB final
	}
	for _, s := range steps {
		_, err := b.ReportScore(s.id, s.s0, s.s1)
		require.NoError(t, err, "match %d", s.id)
	}

	gf := b.Matches[b.GrandFinal.MatchID]
	require.Equal(t, "P1", gf.Players[0].Name)
	require.Equal(t, "P4", gf.Players[1].Name)
	return b
}

func intPtr(v int) *int {
	return &v
}
