package handlers

// days.go handles fixture days and the pairings locked on them.

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/golf-cup/internal/scoring"
	"github.com/trentd187/golf-cup/internal/tournament"
)

// dateLayout is how fixture dates travel over the API: "2026-09-25".
const dateLayout = "2006-01-02"

// CreateDayRequest is the JSON body we expect on POST /api/v1/days.
type CreateDayRequest struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	CourseID       string `json:"course_id" validate:"required"`
	Format         string `json:"format" validate:"required,oneof=high-low fourball texas-scramble singles"`
	Basis          string `json:"basis" validate:"required,oneof=stableford strokes"`
	PlannedMatches int    `json:"planned_matches" validate:"gte=0,lte=32"`
}

// LockPairingRequest is the JSON body we expect on POST /api/v1/days/:id/matches.
// Flight is optional; when omitted the match goes to the next free flight number.
type LockPairingRequest struct {
	Flight int      `json:"flight" validate:"gte=0"`
	Tee    string   `json:"tee" validate:"required"`
	TeamA  []string `json:"team_a" validate:"min=1,max=2,dive,required"`
	TeamB  []string `json:"team_b" validate:"min=1,max=2,dive,required"`
}

// DayResponse is a fixture day with its date as a plain calendar date.
type DayResponse struct {
	ID             string         `json:"id"`
	Date           string         `json:"date"`
	CourseID       string         `json:"course_id"`
	Format         scoring.Format `json:"format"`
	Basis          scoring.Basis  `json:"basis"`
	PlannedMatches int            `json:"planned_matches"`
}

func dayResponse(d tournament.Day) DayResponse {
	return DayResponse{
		ID:             d.ID,
		Date:           d.Date.Format(dateLayout),
		CourseID:       d.CourseID,
		Format:         d.Format,
		Basis:          d.Basis,
		PlannedMatches: d.PlannedMatches,
	}
}

// GetDays returns a handler for GET /api/v1/days, in date order.
func GetDays(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days, err := svc.Days(c.UserContext())
		if err != nil {
			return fail(err)
		}
		out := make([]DayResponse, 0, len(days))
		for _, d := range days {
			out = append(out, dayResponse(d))
		}
		return c.JSON(out)
	}
}

// CreateDay returns a handler for POST /api/v1/days (admin only).
func CreateDay(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateDayRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		// The validator has already checked the layout, so Parse cannot fail here.
		date, _ := time.Parse(dateLayout, req.Date)

		day, err := svc.AddDay(c.UserContext(), tournament.NewDay{
			Date:           date,
			CourseID:       req.CourseID,
			Format:         scoring.Format(req.Format),
			Basis:          scoring.Basis(req.Basis),
			PlannedMatches: req.PlannedMatches,
		})
		if err != nil {
			return fail(err)
		}
		return c.Status(fiber.StatusCreated).JSON(dayResponse(day))
	}
}

// ResetDay returns a handler for DELETE /api/v1/days/:id/matches (admin only).
// Every pairing and score sheet of the day is removed; the day itself stays.
func ResetDay(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.ResetDay(c.UserContext(), c.Params("id")); err != nil {
			return fail(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetDayMatches returns a handler for GET /api/v1/days/:id/matches.
func GetDayMatches(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matches, err := svc.DayMatches(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(err)
		}
		return c.JSON(matches)
	}
}

// LockPairing returns a handler for POST /api/v1/days/:id/matches (captains and admins).
func LockPairing(svc *tournament.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LockPairingRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		m, err := svc.LockPairing(c.UserContext(), c.Params("id"), tournament.NewMatch{
			Flight: req.Flight,
			TeeKey: req.Tee,
			TeamA:  req.TeamA,
			TeamB:  req.TeamB,
		})
		if err != nil {
			return fail(err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}
