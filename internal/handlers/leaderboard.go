package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-cup/internal/tournament"
)

// GetDayLeaderboard returns a handler for GET /api/v1/days/:id/leaderboard.
func GetDayLeaderboard(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		board, err := svc.DayLeaderboard(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(err)
		}
		return c.JSON(board)
	}
}

// GetOverallLeaderboard returns a handler for GET /api/v1/leaderboard.
func GetOverallLeaderboard(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		board, err := svc.OverallLeaderboard(c.UserContext())
		if err != nil {
			return fail(err)
		}
		return c.JSON(board)
	}
}
