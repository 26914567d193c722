package database

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/models"
	"github.com/trentd187/golf-cup/internal/scoring"
	"github.com/trentd187/golf-cup/internal/tournament"
)

// parseID turns a path id into a UUID. Anything that is not a UUID cannot exist.
func parseID(kind, id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", kind, id, tournament.ErrNotFound)
	}
	return u, nil
}

func toPlayer(p models.Player) tournament.Player {
	return tournament.Player{ID: p.ID.String(), Name: p.Name, HandicapIndex: p.HandicapIndex}
}

func toTeam(t models.Team) tournament.Team {
	out := tournament.Team{ID: t.ID, Name: t.Name, Color: t.Color, PlayerIDs: make([]string, 0, len(t.Members))}
	for _, m := range t.Members {
		out.PlayerIDs = append(out.PlayerIDs, m.PlayerID.String())
	}
	return out
}

func toCourse(c models.Course) tournament.Course {
	holes := append([]models.Hole(nil), c.Holes...)
	sort.Slice(holes, func(i, j int) bool { return holes[i].HoleNumber < holes[j].HoleNumber })

	layout := handicap.Layout{Pars: make([]int, 0, len(holes)), StrokeIndexes: make([]int, 0, len(holes))}
	for _, h := range holes {
		layout.Pars = append(layout.Pars, h.Par)
		layout.StrokeIndexes = append(layout.StrokeIndexes, h.StrokeIndex)
	}
	return tournament.Course{ID: c.ID.String(), Name: c.Name, Layout: layout}
}

func fromCourse(c tournament.Course, id uuid.UUID) models.Course {
	out := models.Course{ID: id, Name: c.Name}
	for i := range c.Layout.Pars {
		out.Holes = append(out.Holes, models.Hole{
			CourseID:    id,
			HoleNumber:  i + 1,
			Par:         c.Layout.Pars[i],
			StrokeIndex: c.Layout.StrokeIndexes[i],
		})
	}
	return out
}

func toDay(d models.FixtureDay) tournament.Day {
	return tournament.Day{
		ID:             d.ID.String(),
		Date:           d.Date,
		CourseID:       d.CourseID.String(),
		Format:         scoring.Format(d.Format),
		Basis:          scoring.Basis(d.Basis),
		PlannedMatches: d.PlannedMatches,
	}
}

// toMatch expects Players and FixtureDay to be preloaded.
func toMatch(m models.Match) tournament.Match {
	players := append([]models.MatchPlayer(nil), m.Players...)
	sort.Slice(players, func(i, j int) bool { return players[i].Position < players[j].Position })

	out := tournament.Match{
		ID:     m.ID.String(),
		DayID:  m.FixtureDayID.String(),
		Flight: m.Flight,
		Format: scoring.Format(m.FixtureDay.Format),
		Basis:  scoring.Basis(m.FixtureDay.Basis),
		TeeKey: m.TeeKey,
	}
	for _, p := range players {
		switch p.Side {
		case tournament.TeamA:
			out.TeamA = append(out.TeamA, p.PlayerID.String())
		case tournament.TeamB:
			out.TeamB = append(out.TeamB, p.PlayerID.String())
		}
	}
	return out
}

func toSheet(scores []models.HoleScore, validations []models.HoleValidation) tournament.Sheet {
	sheet := tournament.Sheet{
		Gross:     make(map[string][]int),
		Validated: make([]bool, handicap.HoleCount),
	}
	for _, s := range scores {
		if s.HoleNumber < 1 || s.HoleNumber > handicap.HoleCount {
			continue
		}
		id := s.PlayerID.String()
		if sheet.Gross[id] == nil {
			sheet.Gross[id] = make([]int, handicap.HoleCount)
		}
		sheet.Gross[id][s.HoleNumber-1] = s.Gross
	}
	for _, v := range validations {
		if v.HoleNumber >= 1 && v.HoleNumber <= handicap.HoleCount {
			sheet.Validated[v.HoleNumber-1] = true
		}
	}
	return sheet
}
