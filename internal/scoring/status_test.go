package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// played builds 18 scored holes, every one halved at zero points.
func played() []HolePoints {
	pts := make([]HolePoints, 18)
	for i := range pts {
		pts[i] = HolePoints{Played: true}
	}
	return pts
}

func validatedThrough(n int) []bool {
	v := make([]bool, 18)
	for i := 0; i < n; i++ {
		v[i] = true
	}
	return v
}

func TestHoleByHoleStatus(t *testing.T) {
	pts := played()
	pts[0] = HolePoints{TeamA: 2, TeamB: 1, Played: true}
	pts[1] = HolePoints{TeamA: 0, TeamB: 3, Played: true}
	pts[2] = HolePoints{TeamA: 3, TeamB: 0, Played: true}

	statuses, err := HoleByHoleStatus(pts, validatedThrough(3))
	require.NoError(t, err)
	require.Len(t, statuses, 18)

	assert.Equal(t, HoleStatus{Hole: 1, Validated: true, TeamAPoints: 2, TeamBPoints: 1, CumulativeA: 2, CumulativeB: 1, Leader: SideTeamA, Lead: 1}, statuses[0])
	assert.Equal(t, HoleStatus{Hole: 2, Validated: true, TeamAPoints: 0, TeamBPoints: 3, CumulativeA: 2, CumulativeB: 4, Leader: SideTeamB, Lead: 2}, statuses[1])
	assert.Equal(t, SideTeamA, statuses[2].Leader)
	assert.Equal(t, float64(1), statuses[2].Lead)

	// Unvalidated holes carry the totals forward without contributing.
	assert.Equal(t, HoleStatus{Hole: 4, CumulativeA: 5, CumulativeB: 4, Leader: SideTeamA, Lead: 1}, statuses[3])
	assert.Equal(t, 18, statuses[17].Hole)
}

func TestHoleByHoleStatus_IgnoresUnvalidatedScores(t *testing.T) {
	pts := played()
	pts[4] = HolePoints{TeamA: 3, Played: true}
	pts[5] = HolePoints{TeamB: 3, Played: true}
	validated := validatedThrough(4)
	validated[5] = true

	statuses, err := HoleByHoleStatus(pts, validated)
	require.NoError(t, err)
	assert.Equal(t, float64(0), statuses[4].TeamAPoints)
	assert.Equal(t, float64(0), statuses[4].CumulativeA)
	assert.Equal(t, float64(3), statuses[17].CumulativeB)
	assert.Equal(t, float64(0), statuses[17].CumulativeA)
}

func TestHoleByHoleStatus_Integrity(t *testing.T) {
	_, err := HoleByHoleStatus(played()[:17], validatedThrough(3))
	assert.ErrorIs(t, err, ErrDataIntegrity)

	_, err = HoleByHoleStatus(played(), make([]bool, 19))
	assert.ErrorIs(t, err, ErrDataIntegrity)

	pts := played()
	pts[2] = HolePoints{}
	_, err = HoleByHoleStatus(pts, validatedThrough(3))
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func gameWon(t *testing.T, pts []HolePoints, validated []bool, perHole float64) GameWonStatus {
	t.Helper()
	statuses, err := HoleByHoleStatus(pts, validated)
	require.NoError(t, err)
	gw, err := CheckGameWon(statuses, validated, perHole)
	require.NoError(t, err)
	return gw
}

func TestCheckGameWon_HighLowClinch(t *testing.T) {
	pts := played()
	pts[0] = HolePoints{TeamA: 10, TeamB: 1, Played: true}
	pts[14] = HolePoints{TeamA: 4, Played: true}

	// After 14 holes: diff 9, 4 holes left worth 12. Still live.
	gw := gameWon(t, pts, validatedThrough(14), 3)
	assert.False(t, gw.IsWon)
	assert.Equal(t, float64(9), gw.CurrentDiff)
	assert.Equal(t, 14, gw.ValidatedHoles)
	assert.Equal(t, SideNone, gw.WinningTeam)

	// After 15 holes: diff 13, 3 holes left worth 9. Clinched on 15.
	gw = gameWon(t, pts, validatedThrough(15), 3)
	assert.Equal(t, GameWonStatus{
		IsWon:          true,
		WinningTeam:    SideTeamA,
		DecisionHole:   15,
		Margin:         13,
		HolesRemaining: 3,
		Display:        "13&3",
		CurrentDiff:    13,
		ValidatedHoles: 15,
	}, gw)

	// Playing on keeps the decision where it happened.
	gw = gameWon(t, pts, validatedThrough(17), 3)
	assert.True(t, gw.IsWon)
	assert.Equal(t, 15, gw.DecisionHole)
	assert.Equal(t, "13&3", gw.Display)
}

func TestCheckGameWon_SinglePointFormat(t *testing.T) {
	pts := played()
	for i := 0; i < 5; i++ {
		pts[i] = HolePoints{TeamB: 1, Played: true}
	}

	// After 13 holes the lead equals the 5 points left: dormie, not won.
	gw := gameWon(t, pts, validatedThrough(13), 1)
	assert.False(t, gw.IsWon, "5 up with 5 to play is dormie, not won")

	gw = gameWon(t, pts, validatedThrough(14), 1)
	assert.True(t, gw.IsWon)
	assert.Equal(t, SideTeamB, gw.WinningTeam)
	assert.Equal(t, 14, gw.DecisionHole)
	assert.Equal(t, "5&4", gw.Display)
}

func TestCheckGameWon_FullRound(t *testing.T) {
	pts := played()
	pts[17] = HolePoints{TeamA: 1, Played: true}

	gw := gameWon(t, pts, validatedThrough(18), 1)
	assert.True(t, gw.IsWon)
	assert.Equal(t, SideTeamA, gw.WinningTeam)
	assert.Equal(t, 18, gw.DecisionHole)
	assert.Equal(t, 0, gw.HolesRemaining)
	assert.Equal(t, "1 UP", gw.Display)
}

func TestCheckGameWon_HalfPointMargin(t *testing.T) {
	pts := played()
	pts[17] = HolePoints{TeamA: 2.5, TeamB: 0.5, Played: true}
	pts[16] = HolePoints{TeamA: 0.5, TeamB: 2.5, Played: true}
	pts[15] = HolePoints{TeamA: 2, TeamB: 1, Played: true}
	pts[0] = HolePoints{TeamA: 1.5, TeamB: 1.5, Played: true}

	gw := gameWon(t, pts, validatedThrough(18), 3)
	assert.True(t, gw.IsWon)
	assert.Equal(t, "1 UP", gw.Display)

	pts[15] = HolePoints{TeamA: 1.5, TeamB: 0, Played: true}
	gw = gameWon(t, pts, validatedThrough(18), 3)
	assert.Equal(t, "1.5 UP", gw.Display)
}

func TestCheckGameWon_AllSquare(t *testing.T) {
	pts := played()
	pts[3] = HolePoints{TeamA: 1, Played: true}
	pts[9] = HolePoints{TeamB: 1, Played: true}

	gw := gameWon(t, pts, validatedThrough(18), 1)
	assert.False(t, gw.IsWon)
	assert.Equal(t, SideNone, gw.WinningTeam)
	assert.Equal(t, "", gw.Display)
}

func TestCheckGameWon_NothingValidated(t *testing.T) {
	gw := gameWon(t, played(), make([]bool, 18), 3)
	assert.Equal(t, GameWonStatus{}, gw)
}

func TestCheckGameWon_UnvalidatedHolesDoNotCount(t *testing.T) {
	pts := played()
	for i := 0; i < 18; i++ {
		pts[i] = HolePoints{TeamA: 3, Played: true}
	}
	validated := make([]bool, 18)
	validated[0] = true

	gw := gameWon(t, pts, validated, 3)
	assert.False(t, gw.IsWon)
	assert.Equal(t, float64(3), gw.CurrentDiff)
	assert.Equal(t, 1, gw.ValidatedHoles)
}

func TestCheckGameWon_OutOfOrderValidation(t *testing.T) {
	pts := played()
	for i := 0; i < 10; i++ {
		pts[i] = HolePoints{TeamA: 1, Played: true}
	}
	validated := validatedThrough(9)
	validated[12] = true // hole 13 validated before hole 10

	gw := gameWon(t, pts, validated, 1)
	// 9 up with 8 holes unvalidated.
	assert.True(t, gw.IsWon)
	assert.Equal(t, 13, gw.DecisionHole)
	assert.Equal(t, "9&8", gw.Display)
}

func TestCheckGameWon_Integrity(t *testing.T) {
	statuses, err := HoleByHoleStatus(played(), validatedThrough(2))
	require.NoError(t, err)

	_, err = CheckGameWon(statuses[:10], validatedThrough(2), 3)
	assert.ErrorIs(t, err, ErrDataIntegrity)

	_, err = CheckGameWon(statuses, validatedThrough(3), 3)
	assert.ErrorIs(t, err, ErrDataIntegrity, "flags disagree with the statuses")

	_, err = CheckGameWon(statuses, validatedThrough(2), 0)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}
