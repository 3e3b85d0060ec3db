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

// AdminTokenCookie is the browser session cookie carrying the access token.
const AdminTokenCookie = "admin_token"

// AdminAuthHandlerInterface defines the contract for admin authentication handlers.
type AdminAuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	Me(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
}

// AdminAuthHandler handles admin authentication requests.
type AdminAuthHandler struct {
	flow         businessflow.AdminAuthFlow
	validator    *validator.Validate
	secureCookie bool
}

// NewAdminAuthHandler creates a new admin auth handler. secureCookie
// marks the session cookie Secure, which requires HTTPS.
func NewAdminAuthHandler(flow businessflow.AdminAuthFlow, secureCookie bool) *AdminAuthHandler {
	return &AdminAuthHandler{flow: flow, validator: validator.New(), secureCookie: secureCookie}
}

func (h *AdminAuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminAuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Login authenticates an admin and issues tokens.
// @Summary Admin login
// @Description Authenticate with email and password; the access token is returned and set as an HTTP-only cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid credentials or inactive account"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.Login(h.createRequestContext(c, "/api/v1/admin/auth/login"), &req, metadata)
	if err != nil {
		if businessflow.IsAdminNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", nil)
		}
		if businessflow.IsAdminInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		log.Println("Admin login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	h.setSessionCookie(c, result.Session.AccessToken, time.Duration(result.Session.ExpiresIn)*time.Second)
	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// Logout clears the session cookie.
// @Summary Admin logout
// @Description Clear the admin session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /api/v1/admin/auth/logout [post]
func (h *AdminAuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     AdminTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return h.SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}

// Me returns the authenticated admin's profile.
// @Summary Current admin
// @Description Return the profile of the authenticated admin
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminDTO} "Profile"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/me [get]
func (h *AdminAuthHandler) Me(c fiber.Ctx) error {
	adminID, ok := c.Locals("admin_id").(uint)
	if !ok || adminID == 0 {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin ID not found in context", "MISSING_ADMIN_ID", nil)
	}

	result, err := h.flow.Me(h.createRequestContext(c, "/api/v1/admin/auth/me"), adminID)
	if err != nil {
		if businessflow.IsAdminNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Admin not found", "ADMIN_NOT_FOUND", nil)
		}
		log.Println("Admin profile fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch profile", "PROFILE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile retrieved", result)
}

// Refresh exchanges a refresh token for a new session.
// @Summary Refresh session
// @Description Exchange a refresh token for new access and refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.SessionDTO} "Session refreshed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid or expired token"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/auth/refresh [post]
func (h *AdminAuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.Refresh(h.createRequestContext(c, "/api/v1/admin/auth/refresh"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_TOKEN", "ADMIN_NOT_FOUND", "ACCOUNT_INACTIVE":
				return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token", "INVALID_TOKEN", nil)
			}
		}
		log.Println("Session refresh failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to refresh session", "REFRESH_FAILED", nil)
	}

	h.setSessionCookie(c, result.AccessToken, time.Duration(result.ExpiresIn)*time.Second)
	return h.SuccessResponse(c, fiber.StatusOK, "Session refreshed", result)
}

func (h *AdminAuthHandler) setSessionCookie(c fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     AdminTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AdminAuthHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
