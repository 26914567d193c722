package standings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-cup/internal/scoring"
)

func testRoster() Roster {
	return Roster{
		Players: []Player{
			{ID: "a1", Name: "Alice"},
			{ID: "a2", Name: "Anna"},
			{ID: "b1", Name: "Bob"},
			{ID: "b2", Name: "Ben"},
			{ID: "x9", Name: "Reserve"},
		},
		Teams: []Team{
			{ID: "team-a", Name: "Lions", Color: "red", PlayerIDs: []string{"a1", "a2"}},
			{ID: "team-b", Name: "Tigers", Color: "blue", PlayerIDs: []string{"b1", "b2"}},
		},
	}
}

func won(side scoring.Side) *scoring.MatchResult {
	r := &scoring.MatchResult{Winner: side, Leader: side, Complete: true}
	switch side {
	case scoring.SideTeamA:
		r.TeamAPoints = 1
	case scoring.SideTeamB:
		r.TeamBPoints = 1
	default:
		r.TeamAPoints, r.TeamBPoints = 0.5, 0.5
	}
	return r
}

func pending(leader scoring.Side) *scoring.MatchResult {
	return &scoring.MatchResult{Leader: leader}
}

func card(id string, gross, net, points, holes int) scoring.PlayerScore {
	return scoring.PlayerScore{
		PlayerID: id,
		Total:    scoring.Totals{Gross: gross, Net: net, Points: points, Holes: holes},
	}
}

func TestBuildDay_TeamPointsAndRecords(t *testing.T) {
	day := Day{
		ID: "day-1",
		Matches: []MatchRecord{
			{MatchID: "m1", Flight: 1, TeamA: []string{"a1"}, TeamB: []string{"b1"}, Result: won(scoring.SideTeamA)},
			{MatchID: "m2", Flight: 2, TeamA: []string{"a2"}, TeamB: []string{"b2"}, Result: won(scoring.SideTie)},
			{MatchID: "m3", Flight: 3, TeamA: []string{"a1"}, TeamB: []string{"b2"}, Result: pending(scoring.SideTeamB)},
		},
	}

	lb := BuildDay(testRoster(), day, scoring.DefaultPoints())

	want := []TeamStanding{
		{TeamID: "team-a", Name: "Lions", Color: "red", Points: 1.5, Won: 1, Halved: 1, Unresolved: 1, PotentialRemainingPoints: 1},
		{TeamID: "team-b", Name: "Tigers", Color: "blue", Points: 0.5, Lost: 1, Halved: 1, Unresolved: 1, PotentialRemainingPoints: 1},
	}
	if diff := cmp.Diff(want, lb.Teams); diff != "" {
		t.Errorf("team standings mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, lb.Matches, 3)
}

func TestBuildDay_MissingResultCountsAsUnplayed(t *testing.T) {
	day := Day{
		ID:      "day-1",
		Matches: []MatchRecord{{MatchID: "m1", TeamA: []string{"a1"}, TeamB: []string{"b1"}}},
	}

	lb := BuildDay(testRoster(), day, scoring.DefaultPoints())

	require.Len(t, lb.Teams, 2)
	for _, st := range lb.Teams {
		assert.Zero(t, st.Points)
		assert.Equal(t, 1, st.Unresolved)
		assert.Equal(t, 1.0, st.PotentialRemainingPoints)
	}
}

func TestBuildDay_UnpairedMatchesAreOpenForBothTeams(t *testing.T) {
	day := Day{
		ID:             "day-1",
		PlannedMatches: 4,
		Matches: []MatchRecord{
			{MatchID: "m1", TeamA: []string{"a1"}, TeamB: []string{"b1"}, Result: won(scoring.SideTeamB)},
		},
	}

	lb := BuildDay(testRoster(), day, scoring.PointsConfig{PointsPerMatch: 2, TiePoints: 1})

	assert.Equal(t, 6.0, lb.Teams[0].PotentialRemainingPoints)
	assert.Equal(t, 6.0, lb.Teams[1].PotentialRemainingPoints)
	assert.Equal(t, 2.0, lb.Teams[1].Points)
}

func TestBuildDay_SideWithoutPlayersHasNoPotential(t *testing.T) {
	day := Day{
		ID:      "day-1",
		Matches: []MatchRecord{{MatchID: "m1", TeamB: []string{"b1", "b2"}}},
	}

	lb := BuildDay(testRoster(), day, scoring.DefaultPoints())

	assert.Zero(t, lb.Teams[0].Unresolved)
	assert.Equal(t, 1, lb.Teams[1].Unresolved)
}

func TestBuildDay_PlayerStandings(t *testing.T) {
	day := Day{
		ID: "day-1",
		Matches: []MatchRecord{
			{
				MatchID: "m1",
				TeamA:   []string{"a1", "a2"},
				TeamB:   []string{"b1", "b2"},
				Result:  won(scoring.SideTeamA),
				Cards: []scoring.PlayerScore{
					card("a1", 85, 70, 38, 18),
					card("a2", 95, 75, 33, 18),
					card("b1", 80, 74, 34, 18),
					card("b2", 90, 72, 36, 18),
					card("ghost", 70, 60, 50, 18),
				},
			},
		},
	}

	lb := BuildDay(testRoster(), day, scoring.DefaultPoints())

	require.Len(t, lb.Players, 5)
	ids := make([]string, 0, len(lb.Players))
	for _, p := range lb.Players {
		ids = append(ids, p.PlayerID)
	}
	assert.Equal(t, []string{"a1", "b2", "b1", "a2", "x9"}, ids)

	a1 := lb.Players[0]
	assert.Equal(t, PlayerStanding{
		PlayerID: "a1", Name: "Alice", TeamID: "team-a",
		Gross: 85, Net: 70, Points: 38, Holes: 18,
		Matches: 1, Won: 1,
	}, a1)
	assert.Equal(t, 1, lb.Players[1].Lost)

	reserve := lb.Players[4]
	assert.Equal(t, "x9", reserve.PlayerID)
	assert.Empty(t, reserve.TeamID)
	assert.Zero(t, reserve.Matches)
}

func TestBuildDay_PlayerRecordUsesTeamMembership(t *testing.T) {
	// a2 is entered on the wrong side; the record still follows the roster.
	day := Day{
		ID: "day-1",
		Matches: []MatchRecord{
			{MatchID: "m1", TeamA: []string{"a1"}, TeamB: []string{"a2"}, Result: won(scoring.SideTeamA)},
		},
	}

	lb := BuildDay(testRoster(), day, scoring.DefaultPoints())

	for _, p := range lb.Players {
		if p.PlayerID == "a2" {
			assert.Equal(t, 1, p.Won)
			assert.Zero(t, p.Lost)
		}
	}
}

func TestBuildDay_EmptyRoster(t *testing.T) {
	lb := BuildDay(Roster{}, Day{ID: "day-1"}, scoring.DefaultPoints())

	assert.Empty(t, lb.Teams)
	assert.Empty(t, lb.Players)
	assert.NotNil(t, lb.Matches)
}
