package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/middleware"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/roomfinder/roomfinder-api/internal/utils"
)

// Routes holds what the route handlers need
type Routes struct {
	Listings *services.Listings
	Objects  storage.ObjectStore
	Auth     services.Authenticator
	Health   services.HealthDeps
}

// Register mounts the API, storage and health routes on app
func Register(app *fiber.App, r Routes) {
	properties := &PropertiesHandler{Listings: r.Listings}
	helpers := &HelpersHandler{Listings: r.Listings}
	objects := &StorageHandler{Store: r.Objects}
	health := &HealthHandler{Deps: r.Health}
	auth := middleware.RequireSession(r.Auth)

	app.Get("/health", health.Check)
	app.Get(storage.PublicPathPrefix+"/:bucket/*", objects.GetObject)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	api.Get("/properties", properties.ListProperties)
	api.Post("/properties", auth, properties.CreateProperty)
	api.Get("/properties/:id", properties.GetProperty)
	api.Patch("/properties/:id/status", auth, properties.SetStatus)
	api.Patch("/properties/:id/verified", auth, middleware.RequireRole(types.RoleAdmin), properties.SetVerified)
	api.Get("/properties/:id/reviews", properties.ListReviews)
	api.Post("/properties/:id/reviews", auth, properties.CreateReview)
	api.Post("/reviews/:id/reply", auth, properties.ReplyToReview)

	api.Get("/helpers", helpers.ListHelpers)
	api.Post("/helpers", auth, helpers.CreateHelper)
	api.Get("/helpers/:id", helpers.GetHelper)

	api.Get("/me/session", auth, GetSession)
	api.Get("/me/properties", auth, properties.MyProperties)
}

// NotFound is the catch-all handler mounted after every route
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

// ErrorHandler renders errors returned from handlers and middleware
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.ErrorResponse(c, fe.Message, fe.Code, "http")
	}

	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "unknown")
}
