// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/solangehq/maison-api/app/dto"
	businessflow "github.com/solangehq/maison-api/business_flow"

	"github.com/go-playground/validator/v10"
)

// SettingsHandlerInterface defines the contract for site settings handlers.
type SettingsHandlerInterface interface {
	Get(c fiber.Ctx) error
	Update(c fiber.Ctx) error
}

// SettingsHandler handles storefront content requests.
type SettingsHandler struct {
	flow      businessflow.SettingsFlow
	validator *validator.Validate
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(flow businessflow.SettingsFlow) *SettingsHandler {
	return &SettingsHandler{flow: flow, validator: validator.New()}
}

func (h *SettingsHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *SettingsHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Get returns the storefront content.
// @Summary Get site settings
// @Description Return the public storefront content (cached)
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SiteSettingsDTO} "Settings"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	result, err := h.flow.GetSettings(h.createRequestContext(c, "/api/v1/settings"))
	if err != nil {
		log.Println("Settings fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch settings", "SETTINGS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Settings retrieved", result)
}

// Update replaces the storefront content.
// @Summary Update site settings
// @Description Replace the storefront content and refresh the cache
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSiteSettingsRequest true "Storefront content"
// @Success 200 {object} dto.APIResponse{data=dto.SiteSettingsDTO} "Settings updated"
// @Failure 400 {object} dto.APIResponse "Validation error or unknown hero media"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/settings [put]
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	var req dto.UpdateSiteSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UpdateSettings(h.createRequestContext(c, "/api/v1/admin/settings"), &req, metadata)
	if err != nil {
		if businessflow.IsMediaNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Hero media not found", "MEDIA_NOT_FOUND", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_REQUEST" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, be.Error())
		}
		log.Println("Settings update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update settings", "UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Settings updated", result)
}

func (h *SettingsHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
