package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

// StorageHandler serves public objects from the object store
type StorageHandler struct {
	Store storage.ObjectStore
}

// GetObject handles GET /storage/v1/object/public/:bucket/*
// @Summary Download a public object
// @Tags Storage
// @Produce octet-stream
// @Param bucket path string true "Bucket"
// @Param path path string true "Object path"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /storage/v1/object/public/{bucket}/{path} [get]
func (h *StorageHandler) GetObject(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	objectPath, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return respondError(c, types.ValidationError("invalid object path"))
	}

	body, info, err := h.Store.Open(c.UserContext(), bucket, objectPath)
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrUnknownBucket):
		return respondError(c, types.NotFoundError("object not found"))
	case errors.Is(err, storage.ErrInvalidPath):
		return respondError(c, types.ValidationError("invalid object path"))
	case err != nil:
		return respondError(c, types.StorageError(err))
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	if !info.UpdatedAt.IsZero() {
		c.Set(fiber.HeaderLastModified, info.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(3600))
	return c.SendStream(body, int(info.Size))
}
