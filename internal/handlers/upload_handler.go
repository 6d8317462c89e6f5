package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/srinibas-vastra/backend/internal/dto"
	"github.com/srinibas-vastra/backend/internal/identity"
	"github.com/srinibas-vastra/backend/internal/integrations/cloudinary"
)

// maxUploadEdge bounds the longest side of any uploaded image.
const maxUploadEdge = 1600

type UploadHandler struct {
	media *cloudinary.Client
}

func NewUploadHandler(media *cloudinary.Client) *UploadHandler {
	return &UploadHandler{media: media}
}

// POST /api/seller/upload-doc
//
// Seller documents land in the staging folder; they only become permanent
// when the application that references them is submitted.
func (h *UploadHandler) UploadDoc(c *fiber.Ctx) error {
	return h.upload(c, true)
}

// POST /api/seller/upload-image
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	return h.upload(c, false)
}

func (h *UploadHandler) upload(c *fiber.Ctx, staged bool) error {
	claims, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthenticated"})
	}

	if !h.media.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "Media uploads are not configured",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No file provided"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("failed to open upload", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "File is not a valid image"})
	}

	if img.Bounds().Dx() > maxUploadEdge || img.Bounds().Dy() > maxUploadEdge {
		img = imaging.Fit(img, maxUploadEdge, maxUploadEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		slog.Error("failed to encode upload", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	owner := claims.UserID.String()

	var result *cloudinary.UploadResult
	if staged {
		result, err = h.media.UploadStaging(c.Context(), owner, publicID, &buf)
	} else {
		result, err = h.media.UploadImage(c.Context(), owner, publicID, &buf)
	}
	if err != nil {
		slog.Error("media upload failed", "error", err, "user_id", claims.UserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Upload failed",
		})
	}

	return c.JSON(dto.UploadResponse{URL: result.SecureURL, PublicID: result.PublicID})
}
