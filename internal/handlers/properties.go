package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/middleware"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/projection"
	"github.com/roomfinder/roomfinder-api/internal/services"
	"github.com/roomfinder/roomfinder-api/internal/submission"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"github.com/roomfinder/roomfinder-api/internal/utils"
)

// PropertiesHandler handles listing and review routes
type PropertiesHandler struct {
	Listings *services.Listings
}

// PropertyListResponse is the body of listing queries
type PropertyListResponse struct {
	Properties []projection.PropertyView `json:"properties"`
}

// PropertyResponse is the body of single-listing responses
type PropertyResponse struct {
	Property projection.PropertyView `json:"property"`
}

// CreatedPropertyResponse is returned after a listing is stored
type CreatedPropertyResponse struct {
	Success  bool       `json:"success"`
	Property models.Row `json:"property"`
}

// ReviewListResponse is the body of review queries
type ReviewListResponse struct {
	Reviews []projection.ReviewView `json:"reviews"`
}

// ReviewResponse is the body of single-review responses
type ReviewResponse struct {
	Review projection.ReviewView `json:"review"`
}

// ListProperties handles GET /api/properties
// @Summary List properties
// @Description Newest listings first, six by default
// @Tags Properties
// @Produce json
// @Param city query string false "City"
// @Param state query string false "State"
// @Param district query string false "District"
// @Param bhk query string false "BHK"
// @Param status query string false "Status"
// @Param q query string false "Search title, area and address"
// @Param maushi query bool false "Only listings with a maushi available"
// @Param limit query int false "Maximum rows (50 at most)"
// @Success 200 {object} PropertyListResponse
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties [get]
func (h *PropertiesHandler) ListProperties(c *fiber.Ctx) error {
	views, err := h.Listings.ListProperties(c.UserContext(), services.PropertyFilter{
		City:       c.Query("city"),
		State:      c.Query("state"),
		District:   c.Query("district"),
		BHK:        c.Query("bhk"),
		Status:     c.Query("status"),
		Search:     c.Query("q"),
		MaushiOnly: queryBool(c, "maushi"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(PropertyListResponse{Properties: views})
}

// CreateProperty handles POST /api/properties
// @Summary Create a property listing
// @Description JSON body of camelCase fields, or multipart with a payload field and images files. The owner is the authenticated user.
// @Tags Properties
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param body body submission.PropertyForm true "Listing"
// @Success 200 {object} CreatedPropertyResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /properties [post]
func (h *PropertiesHandler) CreateProperty(c *fiber.Ctx) error {
	var form submission.PropertyForm
	files, err := parseSubmission(c, &form, submission.FieldImages)
	if err != nil {
		return respondError(c, err)
	}

	row, err := h.Listings.CreateProperty(c.UserContext(), middleware.SessionFrom(c), &form, files)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, CreatedPropertyResponse{Success: true, Property: row}, fiber.StatusOK)
}

// GetProperty handles GET /api/properties/:id
// @Summary Get a property
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} PropertyResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id} [get]
func (h *PropertiesHandler) GetProperty(c *fiber.Ctx) error {
	view, err := h.Listings.GetProperty(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(PropertyResponse{Property: view})
}

// MyProperties handles GET /api/me/properties
// @Summary List the caller's properties
// @Tags Properties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PropertyListResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /me/properties [get]
func (h *PropertiesHandler) MyProperties(c *fiber.Ctx) error {
	views, err := h.Listings.OwnerProperties(c.UserContext(), middleware.SessionFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(PropertyListResponse{Properties: views})
}

// SetStatus handles PATCH /api/properties/:id/status
// @Summary Change a listing's status
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param body body object true "{status: available|occupied|inactive}"
// @Success 200 {object} PropertyResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/status [patch]
func (h *PropertiesHandler) SetStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, types.ValidationError("Invalid input"))
	}

	view, err := h.Listings.SetPropertyStatus(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(PropertyResponse{Property: view})
}

// SetVerified handles PATCH /api/properties/:id/verified
// @Summary Mark a listing verified
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param body body object true "{verified: bool}"
// @Success 200 {object} PropertyResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/verified [patch]
func (h *PropertiesHandler) SetVerified(c *fiber.Ctx) error {
	var body struct {
		Verified *bool `json:"verified"`
	}
	if err := c.BodyParser(&body); err != nil || body.Verified == nil {
		return respondError(c, types.ValidationError("verified is required"))
	}

	view, err := h.Listings.SetPropertyVerified(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), *body.Verified)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(PropertyResponse{Property: view})
}

// ListReviews handles GET /api/properties/:id/reviews
// @Summary List a property's reviews
// @Tags Reviews
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} ReviewListResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/reviews [get]
func (h *PropertiesHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.Listings.ListReviews(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ReviewListResponse{Reviews: reviews})
}

// CreateReview handles POST /api/properties/:id/reviews
// @Summary Review a property
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param body body services.ReviewInput true "Review"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /properties/{id}/reviews [post]
func (h *PropertiesHandler) CreateReview(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, types.ValidationError("Invalid input"))
	}

	review, err := h.Listings.CreateReview(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, ReviewResponse{Review: review}, fiber.StatusCreated)
}

// ReplyToReview handles POST /api/reviews/:id/reply
// @Summary Reply to a review
// @Description The listing owner may reply once
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param body body services.ReplyInput true "Reply"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /reviews/{id}/reply [post]
func (h *PropertiesHandler) ReplyToReview(c *fiber.Ctx) error {
	var in services.ReplyInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, types.ValidationError("Invalid input"))
	}

	review, err := h.Listings.ReplyToReview(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ReviewResponse{Review: review})
}
