package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trentd187/golf-cup/internal/config"
	"github.com/trentd187/golf-cup/internal/middleware"
	"github.com/trentd187/golf-cup/internal/models"
	"github.com/trentd187/golf-cup/internal/tournament"
	"github.com/trentd187/golf-cup/internal/websocket"
)

// Routes registers every endpoint of the API on app.
//
// Reads and score entry are open to any authenticated caller. Roster, course and
// fixture changes need an admin; locking a pairing needs a captain or an admin.
func Routes(app *fiber.App, cfg *config.Config, svc *tournament.Service, hub *websocket.Hub) {
	// --- Public routes (no auth required) ---
	app.Get("/health", HealthCheck)
	// Prometheus scrapes the default registry; promauto collectors register there.
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	// Spectators follow a match live. Browsers cannot set headers on a WebSocket
	// handshake, and the stream is read-only, so it sits outside /api/v1.
	app.Get("/ws/matches/:id", UpgradeGuard, LiveMatch(hub, svc))

	// --- Authenticated API routes ---
	api := app.Group("/api/v1", middleware.Auth(cfg))
	admin := middleware.RequireRole(models.RoleAdmin)
	captain := middleware.RequireRole(models.RoleCaptain, models.RoleAdmin)

	api.Get("/players", GetPlayers(svc))
	api.Post("/players", admin, CreatePlayer(svc))
	api.Patch("/players/:id", admin, UpdatePlayer(svc))

	api.Get("/teams", GetTeams(svc))
	api.Put("/teams/:team/players/:player", admin, AssignTeamPlayer(svc))

	api.Get("/courses", GetCourses(svc))
	api.Post("/courses", admin, CreateCourse(svc))

	api.Get("/days", GetDays(svc))
	api.Post("/days", admin, CreateDay(svc))
	api.Get("/days/:id/matches", GetDayMatches(svc))
	api.Post("/days/:id/matches", captain, LockPairing(svc))
	api.Delete("/days/:id/matches", admin, ResetDay(svc))
	api.Get("/days/:id/leaderboard", GetDayLeaderboard(svc))

	api.Get("/matches/:id", GetMatch(svc))
	api.Put("/matches/:id/scores", PutScore(svc))
	api.Put("/matches/:id/holes/:hole", PutHoleValidation(svc))

	api.Get("/leaderboard", GetOverallLeaderboard(svc))
}
