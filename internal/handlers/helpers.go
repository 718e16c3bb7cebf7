package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/middleware"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/projection"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/submission"
)

// HelpersHandler handles domestic helper routes
type HelpersHandler struct {
	Listings *services.Listings
}

// HelperListResponse is the body of helper queries
type HelperListResponse struct {
	Helpers []projection.HelperView `json:"helpers"`
}

// HelperResponse is the body of single-helper responses
type HelperResponse struct {
	Helper projection.HelperView `json:"helper"`
}

// CreatedHelperResponse is returned after a helper profile is stored
type CreatedHelperResponse struct {
	Success bool       `json:"success"`
	Helper  models.Row `json:"helper"`
}

// ListHelpers handles GET /api/helpers
// @Summary List helper profiles
// @Tags Helpers
// @Produce json
// @Param city query string false "City"
// @Param q query string false "Search name and bio"
// @Param limit query int false "Maximum rows (50 at most)"
// @Success 200 {object} HelperListResponse
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /helpers [get]
func (h *HelpersHandler) ListHelpers(c *fiber.Ctx) error {
	views, err := h.Listings.ListHelpers(c.UserContext(), services.HelperFilter{
		City:   c.Query("city"),
		Search: c.Query("q"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(HelperListResponse{Helpers: views})
}

// GetHelper handles GET /api/helpers/:id
// @Summary Get a helper profile
// @Tags Helpers
// @Produce json
// @Param id path string true "Helper ID"
// @Success 200 {object} HelperResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /helpers/{id} [get]
func (h *HelpersHandler) GetHelper(c *fiber.Ctx) error {
	view, err := h.Listings.GetHelper(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(HelperResponse{Helper: view})
}

// CreateHelper handles POST /api/helpers
// @Summary Register a helper profile
// @Description JSON body, or multipart with a payload field and profilePhoto, foodImages and images files
// @Tags Helpers
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param body body submission.HelperForm true "Profile"
// @Success 200 {object} CreatedHelperResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /helpers [post]
func (h *HelpersHandler) CreateHelper(c *fiber.Ctx) error {
	var form submission.HelperForm
	files, err := parseSubmission(c, &form,
		submission.FieldProfilePhoto, submission.FieldFoodImages, submission.FieldImages)
	if err != nil {
		return respondError(c, err)
	}

	row, err := h.Listings.CreateHelper(c.UserContext(), middleware.SessionFrom(c), &form, files)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(CreatedHelperResponse{Success: true, Helper: row})
}
