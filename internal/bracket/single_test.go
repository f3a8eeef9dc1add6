package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseState(t BracketType) BaseState {
	return BaseState{TournamentName: "Copa do Bar", Description: "sinuca às sextas", BracketType: t}
}

func roundOf(b *Bracket, side Side, round int) []*Match {
	var matches []*Match
	for _, id := range b.IDs() {
		if m := b.Matches[id]; m.Bracket == side && m.Round == round {
			matches = append(matches, m)
		}
	}
	return matches
}

func TestBuildSingleElimination_MatchCount(t *testing.T) {
	for n := 2; n <= 40; n++ {
		b, err := BuildSingleElimination(testPlayers(n), baseState(SingleElimination))
		require.NoError(t, err)

		size := BracketSize(n)
		assert.Len(t, b.Matches, size-1, "players %d", n)
		assert.Len(t, roundOf(b, WinnersSide, 0), size/2, "players %d", n)
		assert.NoError(t, b.Validate(), "players %d", n)

		placed := 0
		for _, m := range roundOf(b, WinnersSide, 0) {
			for _, s := range m.Players {
				if s.IsOccupied() {
					placed++
				}
			}
		}
		assert.Equal(t, n, placed, "every player is placed once")
	}
}

func TestBuildSingleElimination_FivePlayers(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(5), baseState(SingleElimination))
	require.NoError(t, err)

	assert.Equal(t, SingleElimination, b.BracketType)
	assert.Equal(t, "Copa do Bar", b.TournamentName)
	assert.Equal(t, []string{"Quartas de Final", "Semifinais", "Final"}, b.RoundNames())
	require.NotNil(t, b.CurrentRound)
	assert.Equal(t, "Quartas de Final", *b.CurrentRound)

	first := roundOf(b, WinnersSide, 0)
	require.Len(t, first, 4)

	for i, m := range first[:3] {
		assert.True(t, m.Players[1].IsBye(), "match %d has the bye in slot 1", i)
		require.NotNil(t, m.Winner)
		assert.Equal(t, 0, *m.Winner)
	}
	assert.Nil(t, first[3].Winner)
	assert.Equal(t, "P4", first[3].Players[0].Name)
	assert.Equal(t, "P5", first[3].Players[1].Name)

	semis := roundOf(b, WinnersSide, 1)
	require.Len(t, semis, 2)
	assert.Equal(t, "P1", semis[0].Players[0].Name)
	assert.Equal(t, "P2", semis[0].Players[1].Name)
	assert.Equal(t, "P3", semis[1].Players[0].Name)
	assert.True(t, semis[1].Players[1].IsEmpty())
	assert.Equal(t, UndecidedName, semis[1].Players[1].Display())

	final := roundOf(b, WinnersSide, 2)
	require.Len(t, final, 1)
	assert.Nil(t, final[0].NextMatch)
}

func TestBuildSingleElimination_Wiring(t *testing.T) {
	b, err := BuildSingleElimination(testPlayers(8), baseState(SingleElimination))
	require.NoError(t, err)

	for r := 0; r < 2; r++ {
		next := roundOf(b, WinnersSide, r+1)
		for i, m := range roundOf(b, WinnersSide, r) {
			require.NotNil(t, m.NextMatch)
			require.NotNil(t, m.NextSlot)
			assert.Equal(t, next[i/2].ID, *m.NextMatch)
			assert.Equal(t, i%2, *m.NextSlot)
			assert.Nil(t, m.NextLoserMatch)
		}
	}
}

func TestBuildSingleElimination_PathsEndInFinal(t *testing.T) {
	for _, n := range []int{2, 3, 7, 12, 33} {
		b, err := BuildSingleElimination(testPlayers(n), baseState(SingleElimination))
		require.NoError(t, err)

		finals := make(map[int]bool)
		for _, m := range roundOf(b, WinnersSide, 0) {
			id := m.ID
			for steps := 0; b.Matches[id].NextMatch != nil; steps++ {
				require.Less(t, steps, len(b.Matches))
				id = *b.Matches[id].NextMatch
			}
			finals[id] = true
		}
		assert.Len(t, finals, 1, "players %d", n)
	}
}

func TestBuild(t *testing.T) {
	_, err := Build(testPlayers(1), baseState(SingleElimination))
	assert.ErrorIs(t, err, ErrTooFewPlayers)

	_, err = Build(testPlayers(4), baseState(GroupStage))
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = Build(testPlayers(4), baseState("swiss"))
	assert.ErrorIs(t, err, ErrUnknownBracketType)

	base := baseState(DoubleElimination)
	base.NumPlayersExpected = 6
	_, err = Build(testPlayers(5), base)
	assert.ErrorIs(t, err, ErrPlayerCountMismatch)

	b, err := Build(testPlayers(6), base)
	require.NoError(t, err)
	assert.Equal(t, DoubleElimination, b.BracketType)
}

func TestInitialOrder(t *testing.T) {
	players := testPlayers(6)
	b, err := BuildDoubleElimination(players, baseState(DoubleElimination))
	require.NoError(t, err)

	assert.Equal(t, players, b.InitialOrder())
}
