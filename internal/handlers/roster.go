package handlers

// roster.go handles players, teams and courses: the reference data a cup is played with.

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-cup/internal/tournament"
)

// CreatePlayerRequest is the JSON body we expect on POST /api/v1/players.
// HandicapIndex is a pointer so an explicit 0.0 (scratch) is told apart from "missing".
type CreatePlayerRequest struct {
	Name          string   `json:"name" validate:"required,max=80"`
	HandicapIndex *float64 `json:"handicap_index" validate:"required,gte=-10,lte=54"`
}

// UpdatePlayerRequest is the JSON body we expect on PATCH /api/v1/players/:id.
type UpdatePlayerRequest struct {
	HandicapIndex *float64 `json:"handicap_index" validate:"required,gte=-10,lte=54"`
}

// CreateCourseRequest is the JSON body we expect on POST /api/v1/courses.
type CreateCourseRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Pars          []int  `json:"pars" validate:"len=18,dive,min=3,max=6"`
	StrokeIndexes []int  `json:"stroke_indexes" validate:"len=18,dive,min=1,max=18"`
}

// GetPlayers returns a handler for GET /api/v1/players.
func GetPlayers(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		players, err := svc.Players(c.UserContext())
		if err != nil {
			return fail(err)
		}
		return c.JSON(players)
	}
}

// CreatePlayer returns a handler for POST /api/v1/players (admin only).
func CreatePlayer(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreatePlayerRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		p, err := svc.AddPlayer(c.UserContext(), tournament.NewPlayer{Name: req.Name, HandicapIndex: *req.HandicapIndex})
		if err != nil {
			return fail(err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdatePlayer returns a handler for PATCH /api/v1/players/:id.
// Only the handicap index is editable; every match view and leaderboard picks up
// the new value on its next recompute.
func UpdatePlayer(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdatePlayerRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		p, err := svc.UpdateHandicap(c.UserContext(), c.Params("id"), *req.HandicapIndex)
		if err != nil {
			return fail(err)
		}
		return c.JSON(p)
	}
}

// GetTeams returns a handler for GET /api/v1/teams.
func GetTeams(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teams, err := svc.Teams(c.UserContext())
		if err != nil {
			return fail(err)
		}
		return c.JSON(teams)
	}
}

// AssignTeamPlayer returns a handler for PUT /api/v1/teams/:team/players/:player (admin only).
// A player moved onto one team leaves the other.
func AssignTeamPlayer(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.AssignPlayer(c.UserContext(), c.Params("team"), c.Params("player")); err != nil {
			return fail(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetCourses returns a handler for GET /api/v1/courses.
func GetCourses(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courses, err := svc.Courses(c.UserContext())
		if err != nil {
			return fail(err)
		}
		return c.JSON(courses)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses (admin only).
func CreateCourse(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		course, err := svc.AddCourse(c.UserContext(), tournament.NewCourse{
			Name:          req.Name,
			Pars:          req.Pars,
			StrokeIndexes: req.StrokeIndexes,
		})
		if err != nil {
			return fail(err)
		}
		return c.Status(fiber.StatusCreated).JSON(course)
	}
}
