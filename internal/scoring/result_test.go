package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Aggregate(t *testing.T) {
	pts := DefaultPoints()

	tests := []struct {
		name     string
		basis    Basis
		a, b     float64
		complete bool
		want     MatchResult
	}{
		{
			name: "stableford higher total wins", basis: BasisStableford, a: 38, b: 35, complete: true,
			want: MatchResult{Winner: SideTeamA, Leader: SideTeamA, TeamAPoints: 1, TeamATotal: 38, TeamBTotal: 35, Complete: true},
		},
		{
			name: "strokes lower total wins", basis: BasisStrokes, a: 74, b: 71, complete: true,
			want: MatchResult{Winner: SideTeamB, Leader: SideTeamB, TeamBPoints: 1, TeamATotal: 74, TeamBTotal: 71, Complete: true},
		},
		{
			name: "tie awards tie points to both", basis: BasisStrokes, a: 70, b: 70, complete: true,
			want: MatchResult{Winner: SideTie, Leader: SideTie, TeamAPoints: 0.5, TeamBPoints: 0.5, TeamATotal: 70, TeamBTotal: 70, Complete: true},
		},
		{
			name: "incomplete only reports a leader", basis: BasisStableford, a: 20, b: 12, complete: false,
			want: MatchResult{Leader: SideTeamA, TeamATotal: 20, TeamBTotal: 12},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(FormatFourball, tt.basis, tt.a, tt.b, tt.complete, GameWonStatus{}, pts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_AggregateIgnoresEarlyClinch(t *testing.T) {
	status := GameWonStatus{IsWon: true, WinningTeam: SideTeamA}
	got, err := Resolve(FormatSingles, BasisStrokes, 40, 44, false, status, DefaultPoints())
	require.NoError(t, err)
	assert.False(t, got.Complete)
	assert.Equal(t, SideNone, got.Winner)
	assert.Equal(t, float64(0), got.TeamAPoints)
}

func TestResolve_HighLow(t *testing.T) {
	pts := PointsConfig{PointsPerMatch: 2, TiePoints: 1}

	clinched := GameWonStatus{IsWon: true, WinningTeam: SideTeamB, ValidatedHoles: 15}
	got, err := Resolve(FormatHighLow, BasisStrokes, 14, 31, false, clinched, pts)
	require.NoError(t, err)
	assert.True(t, got.Decided())
	assert.Equal(t, SideTeamB, got.Winner)
	assert.Equal(t, float64(2), got.TeamBPoints)
	assert.Equal(t, float64(0), got.TeamAPoints)

	got, err = Resolve(FormatHighLow, BasisStrokes, 27, 27, true, GameWonStatus{ValidatedHoles: 18}, pts)
	require.NoError(t, err)
	assert.Equal(t, SideTie, got.Winner)
	assert.Equal(t, float64(1), got.TeamAPoints)
	assert.Equal(t, float64(1), got.TeamBPoints)

	got, err = Resolve(FormatHighLow, BasisStrokes, 10, 8, false, GameWonStatus{ValidatedHoles: 6}, pts)
	require.NoError(t, err)
	assert.False(t, got.Decided())
	assert.Equal(t, SideTeamA, got.Leader)
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("skins", BasisStrokes, 0, 0, true, GameWonStatus{}, DefaultPoints())
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Resolve(FormatSingles, "points", 0, 0, true, GameWonStatus{}, DefaultPoints())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
