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

// CatalogHandlerInterface defines the contract for catalog handlers.
type CatalogHandlerInterface interface {
	GetCatalog(c fiber.Ctx) error
	CreateCategory(c fiber.Ctx) error
	UpdateCategory(c fiber.Ctx) error
	UpdateSize(c fiber.Ctx) error
	CreateAddon(c fiber.Ctx) error
	UpdateAddon(c fiber.Ctx) error
}

// CatalogHandler handles service catalog requests.
type CatalogHandler struct {
	flow      businessflow.CatalogFlow
	validator *validator.Validate
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(flow businessflow.CatalogFlow) *CatalogHandler {
	return &CatalogHandler{flow: flow, validator: validator.New()}
}

func (h *CatalogHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CatalogHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GetCatalog returns the bookable catalog for the wizard.
// @Summary Get catalog
// @Description Return active style categories with sizes, plus addons. Serves the built-in catalog when none is configured.
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CatalogResponse} "Catalog"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) GetCatalog(c fiber.Ctx) error {
	result, err := h.flow.GetCatalog(h.createRequestContext(c, "/api/v1/catalog"))
	if err != nil {
		log.Println("Catalog fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch catalog", "CATALOG_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Catalog retrieved", result)
}

// CreateCategory creates a style category with initial sizes.
// @Summary Create category
// @Description Create a style category and its size variants
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category and sizes"
// @Success 201 {object} dto.APIResponse{data=dto.StyleCategoryDTO} "Category created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 409 {object} dto.APIResponse "Slug already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/catalog/categories [post]
func (h *CatalogHandler) CreateCategory(c fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.CreateCategory(h.createRequestContext(c, "/api/v1/admin/catalog/categories"), &req, metadata)
	if err != nil {
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", "SLUG_ALREADY_EXISTS", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_REQUEST" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, be.Error())
		}
		log.Println("Category creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create category", "CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Category created", result)
}

// UpdateCategory applies a partial update to a category.
// @Summary Update category
// @Description Update fields of a style category, including deactivation via is_active
// @Tags Catalog
// @Accept json
// @Produce json
// @Param uuid path string true "Category UUID"
// @Param request body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StyleCategoryDTO} "Category updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Category not found"
// @Failure 409 {object} dto.APIResponse "Slug already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/catalog/categories/{uuid} [patch]
func (h *CatalogHandler) UpdateCategory(c fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UpdateCategory(h.createRequestContext(c, "/api/v1/admin/catalog/categories/:uuid"), c.Params("uuid"), &req, metadata)
	if err != nil {
		if businessflow.IsCategoryNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND", nil)
		}
		if businessflow.IsSlugAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Slug already exists", "SLUG_ALREADY_EXISTS", nil)
		}
		log.Println("Category update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category", "UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Category updated", result)
}

// UpdateSize applies a partial update to a service size.
// @Summary Update size
// @Description Update fields of a size variant, including deactivation via is_active
// @Tags Catalog
// @Accept json
// @Produce json
// @Param uuid path string true "Size UUID"
// @Param request body dto.UpdateSizeRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ServiceSizeDTO} "Size updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Size not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/catalog/sizes/{uuid} [patch]
func (h *CatalogHandler) UpdateSize(c fiber.Ctx) error {
	var req dto.UpdateSizeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UpdateSize(h.createRequestContext(c, "/api/v1/admin/catalog/sizes/:uuid"), c.Params("uuid"), &req, metadata)
	if err != nil {
		if businessflow.IsSizeNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Size not found", "SIZE_NOT_FOUND", nil)
		}
		log.Println("Size update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update size", "UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Size updated", result)
}

// CreateAddon creates a booking addon.
// @Summary Create addon
// @Description Create an addon, optionally linked to categories or sizes
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateAddonRequest true "Addon"
// @Success 201 {object} dto.APIResponse{data=dto.AddonDTO} "Addon created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/catalog/addons [post]
func (h *CatalogHandler) CreateAddon(c fiber.Ctx) error {
	var req dto.CreateAddonRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.CreateAddon(h.createRequestContext(c, "/api/v1/admin/catalog/addons"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_REQUEST" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, be.Error())
		}
		log.Println("Addon creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create addon", "CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Addon created", result)
}

// UpdateAddon applies a partial update to an addon.
// @Summary Update addon
// @Description Update fields of an addon, including deactivation via is_active
// @Tags Catalog
// @Accept json
// @Produce json
// @Param uuid path string true "Addon UUID"
// @Param request body dto.UpdateAddonRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.AddonDTO} "Addon updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Addon not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/catalog/addons/{uuid} [patch]
func (h *CatalogHandler) UpdateAddon(c fiber.Ctx) error {
	var req dto.UpdateAddonRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UpdateAddon(h.createRequestContext(c, "/api/v1/admin/catalog/addons/:uuid"), c.Params("uuid"), &req, metadata)
	if err != nil {
		if businessflow.IsAddonNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Addon not found", "ADDON_NOT_FOUND", nil)
		}
		log.Println("Addon update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update addon", "UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Addon updated", result)
}

func (h *CatalogHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
