package handlers

// matches.go handles the live side of a match: reading its state, entering gross
// scores and validating holes. Every mutation answers with the recomputed match.

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-cup/internal/middleware"
	"github.com/trentd187/golf-cup/internal/tournament"
)

// ScoreRequest is the JSON body we expect on PUT /api/v1/matches/:id/scores.
// Gross 0 clears a score that was entered by mistake.
type ScoreRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Hole     int    `json:"hole" validate:"min=1,max=18"`
	Gross    *int   `json:"gross" validate:"required,min=0,max=20"`
}

// ValidationRequest is the JSON body we expect on PUT /api/v1/matches/:id/holes/:hole.
type ValidationRequest struct {
	Validated *bool `json:"validated" validate:"required"`
}

// GetMatch returns a handler for GET /api/v1/matches/:id.
func GetMatch(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := svc.MatchView(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(err)
		}
		return c.JSON(view)
	}
}

// PutScore returns a handler for PUT /api/v1/matches/:id/scores.
// The caller's id is recorded against the score.
func PutScore(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ScoreRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		view, err := svc.RecordScore(c.UserContext(), tournament.ScoreEntry{
			MatchID:   c.Params("id"),
			PlayerID:  req.PlayerID,
			Hole:      req.Hole,
			Gross:     *req.Gross,
			EnteredBy: middleware.UserID(c),
		})
		if err != nil {
			return fail(err)
		}
		return c.JSON(view)
	}
}

// PutHoleValidation returns a handler for PUT /api/v1/matches/:id/holes/:hole.
// Only validated holes count towards the match status.
func PutHoleValidation(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hole, err := c.ParamsInt("hole")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "hole must be a number")
		}
		var req ValidationRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		view, err := svc.SetValidated(c.UserContext(), tournament.ValidationEntry{
			MatchID:   c.Params("id"),
			Hole:      hole,
			Validated: *req.Validated,
			By:        middleware.UserID(c),
		})
		if err != nil {
			return fail(err)
		}
		return c.JSON(view)
	}
}
