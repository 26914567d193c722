// Package handlers contains the HTTP route handler functions for the Golf Cup API.
// Each handler corresponds to one API endpoint and is responsible for reading the
// request, calling the tournament service, and writing a response.
//
// Each exported function follows the "handler factory" pattern: it takes the
// *tournament.Service and returns a fiber.Handler, so dependencies are injected
// without global variables.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// This endpoint is intentionally lightweight: no database queries, no authentication.
// It's used by container liveness probes and load balancers.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
