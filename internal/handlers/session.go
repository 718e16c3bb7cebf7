package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/middleware"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

// SessionResponse echoes the authenticated session
type SessionResponse struct {
	User       *types.Session `json:"user"`
	APIVersion string         `json:"apiVersion"`
}

// GetSession handles GET /api/me/session
// @Summary Current session
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /me/session [get]
func GetSession(c *fiber.Ctx) error {
	return c.JSON(SessionResponse{
		User:       middleware.SessionFrom(c),
		APIVersion: middleware.APIVersion(c),
	})
}
