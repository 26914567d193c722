package tournament

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-cup/internal/scoring"
)

func TestAddPlayer(t *testing.T) {
	f := newFixture(t, scoring.FormatSingles, scoring.BasisStrokes)
	ctx := context.Background()

	p, err := f.svc.AddPlayer(ctx, NewPlayer{Name: "  Carla ", HandicapIndex: 12.4})
	require.NoError(t, err)
	assert.Equal(t, "Carla", p.Name)
	assert.NotEmpty(t, p.ID)

	_, err = f.svc.AddPlayer(ctx, NewPlayer{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = f.svc.AddPlayer(ctx, NewPlayer{Name: "Huge", HandicapIndex: 60})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	players, err := f.svc.Players(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 5)
}

func TestUpdateHandicap(t *testing.T) {
	f := newFixture(t, scoring.FormatSingles, scoring.BasisStrokes)
	ctx := context.Background()

	p, err := f.svc.UpdateHandicap(ctx, "a1", -2.5)
	require.NoError(t, err)
	assert.Equal(t, -2.5, p.HandicapIndex)

	_, err = f.svc.UpdateHandicap(ctx, "a1", -11)
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = f.svc.UpdateHandicap(ctx, "nobody", 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignPlayer_KeepsTeamsDisjoint(t *testing.T) {
	f := newFixture(t, scoring.FormatSingles, scoring.BasisStrokes)
	ctx := context.Background()

	require.NoError(t, f.svc.AssignPlayer(ctx, TeamB, "a1"))

	teams, err := f.svc.Teams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a2"}, teams[0].PlayerIDs)
	assert.Equal(t, []string{"b1", "b2", "a1"}, teams[1].PlayerIDs)

	assert.ErrorIs(t, f.svc.AssignPlayer(ctx, "team-c", "a1"), ErrNotFound)
	assert.ErrorIs(t, f.svc.AssignPlayer(ctx, TeamA, "nobody"), ErrNotFound)
}

func TestAddCourse_RejectsBadLayout(t *testing.T) {
	f := newFixture(t, scoring.FormatSingles, scoring.BasisStrokes)
	ctx := context.Background()

	_, err := f.svc.AddCourse(ctx, NewCourse{Name: "Short", Pars: []int{4, 4, 3}, StrokeIndexes: []int{1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = f.svc.AddCourse(ctx, NewCourse{Pars: f.layout.Pars, StrokeIndexes: f.layout.StrokeIndexes})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	courses, err := f.svc.Courses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestAddDay_Rejects(t *testing.T) {
	f := newFixture(t, scoring.FormatSingles, scoring.BasisStrokes)
	ctx := context.Background()

	tests := []struct {
		name string
		day  NewDay
		want error
	}{
		{"unknown format", NewDay{CourseID: f.course.ID, Format: "skins", Basis: scoring.BasisStrokes}, ErrInvalidEntry},
		{"unknown basis", NewDay{CourseID: f.course.ID, Format: scoring.FormatSingles, Basis: "quota"}, ErrInvalidEntry},
		{"too many planned", NewDay{CourseID: f.course.ID, Format: scoring.FormatSingles, Basis: scoring.BasisStrokes, PlannedMatches: MaxPlannedMatches + 1}, ErrInvalidEntry},
		{"unknown course", NewDay{CourseID: "nope", Format: scoring.FormatSingles, Basis: scoring.BasisStrokes}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddDay(ctx, tt.day)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLockPairing(t *testing.T) {
	f := newFixture(t, scoring.FormatFourball, scoring.BasisStableford)
	ctx := context.Background()

	m := f.pair(t, []string{"a1"}, []string{"b1"})
	assert.Equal(t, 1, m.Flight)
	assert.Equal(t, scoring.FormatFourball, m.Format)
	assert.Equal(t, scoring.BasisStableford, m.Basis)

	tests := []struct {
		name string
		nm   NewMatch
		want error
	}{
		{"unknown tee", NewMatch{TeeKey: "blue", TeamA: []string{"a2"}, TeamB: []string{"b2"}}, ErrInvalidEntry},
		{"empty side", NewMatch{TeeKey: "flat", TeamA: []string{"a2"}}, ErrInvalidEntry},
		{"three a side", NewMatch{TeeKey: "flat", TeamA: []string{"a2", "a2", "a2"}, TeamB: []string{"b2"}}, ErrInvalidEntry},
		{"listed twice", NewMatch{TeeKey: "flat", TeamA: []string{"a2", "a2"}, TeamB: []string{"b2"}}, ErrInvalidEntry},
		{"wrong team", NewMatch{TeeKey: "flat", TeamA: []string{"b2"}, TeamB: []string{"a2"}}, ErrConflict},
		{"already playing", NewMatch{TeeKey: "flat", TeamA: []string{"a1"}, TeamB: []string{"b2"}}, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.LockPairing(ctx, f.day.ID, tt.nm)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	second := f.pair(t, []string{"a2"}, []string{"b2"})
	assert.Equal(t, 2, second.Flight)

	_, err := f.svc.LockPairing(ctx, "nope", NewMatch{TeeKey: "flat", TeamA: []string{"a1"}, TeamB: []string{"b1"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetDay(t *testing.T) {
	f := newFixture(t, scoring.FormatSingles, scoring.BasisStrokes)
	ctx := context.Background()
	m := f.pair(t, []string{"a1"}, []string{"b1"})
	f.play(t, m, 2, nil)

	require.NoError(t, f.svc.ResetDay(ctx, f.day.ID))

	matches, err := f.svc.DayMatches(ctx, f.day.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
	_, err = f.svc.MatchView(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	again := f.pair(t, []string{"a1"}, []string{"b1"})
	assert.Equal(t, 1, again.Flight)

	assert.ErrorIs(t, f.svc.ResetDay(ctx, "nope"), ErrNotFound)
}
