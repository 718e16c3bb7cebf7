package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/services"
)

// HealthHandler reports dependency health
type HealthHandler struct {
	Deps services.HealthDeps
}

// Check handles GET /health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Deps)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
