package handlers

import (
	"devcollab/internal/media"

	"github.com/gofiber/fiber/v2"
)

// MediaHandler HTTP surface of the media store
type MediaHandler struct {
	Store media.Store
}

// NewMediaHandler create a new MediaHandler
func NewMediaHandler(store media.Store) *MediaHandler {
	return &MediaHandler{Store: store}
}

// Upload store a file and return its durable URL and object key
// @Summary Upload a media file
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "file to store"
// @Success 200 {object} object "url and objectKey"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/media [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file cannot be read"})
	}
	defer file.Close()

	obj, err := h.Store.Upload(c.Context(), currentUser(c),
		fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), file, fileHeader.Size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(obj)
}

// ResolveURL exchange an object key for a short-lived presigned GET link
// @Summary Resolve a media object key
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param key query string true "object key"
// @Success 200 {object} map[string]string "presigned url"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/media/url [get]
func (h *MediaHandler) ResolveURL(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}

	url, err := h.Store.PresignURL(c.Context(), key, media.PresignExpiry)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}
