// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/solangehq/maison-api/app/dto"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/solangehq/maison-api/utils"

	"github.com/go-playground/validator/v10"
)

// MediaHandlerInterface defines the contract for media handlers.
type MediaHandlerInterface interface {
	Upload(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Serve(c fiber.Ctx) error
	Preview(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// MediaHandler handles media library requests.
type MediaHandler struct {
	flow      businessflow.MediaFlow
	validator *validator.Validate
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(flow businessflow.MediaFlow) *MediaHandler {
	return &MediaHandler{flow: flow, validator: validator.New()}
}

func (h *MediaHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MediaHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Upload stores a base64 data URL as a media asset.
// @Summary Upload media
// @Description Upload an image or video as a base64 data URL (jpeg/png/webp/gif/mp4/webm, <=100MB decoded)
// @Tags Media
// @Accept json
// @Produce json
// @Param request body dto.UploadMediaRequest true "Filename and data URL content"
// @Success 200 {object} dto.APIResponse{data=dto.UploadMediaResponse} "Upload successful"
// @Failure 400 {object} dto.APIResponse "Invalid request or data URL"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 413 {object} dto.APIResponse "Payload too large"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/uploads [post]
func (h *MediaHandler) Upload(c fiber.Ctx) error {
	var req dto.UploadMediaRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UploadMedia(h.createRequestContext(c, "/api/v1/admin/uploads"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			case "INVALID_DATA_URL":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Content must be a base64 data URL", be.Code, be.Error())
			case "UNSUPPORTED_MEDIA_TYPE":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported media type", be.Code, be.Error())
			case "FILE_TOO_LARGE":
				return h.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "File too large", be.Code, be.Error())
			}
		}
		log.Println("Media upload failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload media", "UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Upload successful", result)
}

// List returns the media library without payloads, newest first.
// @Summary List media
// @Description List uploaded media metadata, newest first
// @Tags Media
// @Produce json
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.APIResponse{data=dto.ListMediaResponse} "Media library"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/uploads [get]
func (h *MediaHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	result, err := h.flow.ListMedia(h.createRequestContext(c, "/api/v1/admin/uploads"), limit, offset)
	if err != nil {
		log.Println("Media listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list media", "LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media retrieved", result)
}

// Serve streams a stored asset with its original content type.
// @Summary Serve media
// @Description Serve a stored asset by uuid with long-lived caching headers
// @Tags Media
// @Produce application/octet-stream
// @Param uuid path string true "Media UUID"
// @Success 200 {string} string "Binary content"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/uploads/{uuid} [get]
func (h *MediaHandler) Serve(c fiber.Ctx) error {
	mediaUUID := c.Params("uuid")
	if mediaUUID == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
	}

	content, err := h.flow.GetMedia(h.createRequestContext(c, "/api/v1/uploads/{uuid}"), mediaUUID)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_REQUEST" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid media id", "INVALID_REQUEST", nil)
		}
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
		}
		log.Println("Media retrieval failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to serve media", "SERVE_FAILED", nil)
	}

	c.Set("Content-Type", content.MimeType)
	c.Set("Content-Length", strconv.FormatInt(content.SizeBytes, 10))
	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Send(content.Payload)
}

// Preview returns a jpeg thumbnail for image assets.
// @Summary Preview media
// @Description Return a resized jpeg thumbnail for an image asset
// @Tags Media
// @Produce image/jpeg
// @Param uuid path string true "Media UUID"
// @Success 200 {string} string "Thumbnail image"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Failure 501 {object} dto.APIResponse "Preview unavailable for this type"
// @Router /api/v1/admin/uploads/{uuid}/preview [get]
func (h *MediaHandler) Preview(c fiber.Ctx) error {
	mediaUUID := c.Params("uuid")
	if mediaUUID == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
	}

	content, err := h.flow.PreviewMedia(h.createRequestContext(c, "/api/v1/admin/uploads/{uuid}/preview"), mediaUUID)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "MEDIA_NOT_FOUND":
				return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", be.Code, nil)
			case "PREVIEW_UNAVAILABLE":
				return h.ErrorResponse(c, fiber.StatusNotImplemented, "Preview unavailable", be.Code, be.Error())
			case "PREVIEW_FAILED":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Preview failed", be.Code, be.Error())
			}
		}
		log.Println("Media preview failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate preview", "PREVIEW_FAILED", nil)
	}

	c.Set("Content-Type", content.MimeType)
	c.Set("Cache-Control", "public, max-age=3600")
	return c.Send(content.Payload)
}

// Delete removes a stored asset.
// @Summary Delete media
// @Description Delete a stored asset by uuid
// @Tags Media
// @Produce json
// @Param uuid path string true "Media UUID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/uploads/{uuid} [delete]
func (h *MediaHandler) Delete(c fiber.Ctx) error {
	mediaUUID := c.Params("uuid")
	if mediaUUID == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
	}

	if err := h.flow.DeleteMedia(h.createRequestContext(c, "/api/v1/admin/uploads/{uuid}"), mediaUUID); err != nil {
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
		}
		log.Println("Media deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete media", "DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media deleted", nil)
}

func (h *MediaHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	if adminID, ok := c.Locals("admin_id").(uint); ok && adminID != 0 {
		ctx = context.WithValue(ctx, utils.AdminIDKey, adminID)
	}
	return ctx
}
