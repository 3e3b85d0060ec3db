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

// PaymentHandlerInterface defines the contract for payment handlers.
type PaymentHandlerInterface interface {
	CheckoutCallback(c fiber.Ctx) error
}

// PaymentHandler handles deposit checkout callbacks.
type PaymentHandler struct {
	flow      businessflow.BookingFlow
	validator *validator.Validate
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(flow businessflow.BookingFlow) *PaymentHandler {
	return &PaymentHandler{flow: flow, validator: validator.New()}
}

func (h *PaymentHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *PaymentHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CheckoutCallback marks a booking's deposit paid after checkout completes.
// @Summary Checkout callback
// @Description Verify a completed checkout session and mark the booking deposit paid
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.CheckoutCallbackRequest true "Session reference"
// @Success 200 {object} dto.APIResponse "Deposit recorded"
// @Failure 400 {object} dto.APIResponse "Invalid or unpaid session"
// @Failure 404 {object} dto.APIResponse "Booking not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/payments/checkout/callback [post]
func (h *PaymentHandler) CheckoutCallback(c fiber.Ctx) error {
	var req dto.CheckoutCallbackRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	if err := h.flow.HandleCheckoutCallback(h.createRequestContext(c, "/api/v1/payments/checkout/callback"), &req); err != nil {
		if businessflow.IsBookingNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "CHECKOUT_SESSION_INVALID":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Checkout session is not paid", be.Code, be.Error())
			case "CHECKOUT_UNAVAILABLE":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Checkout is not configured", be.Code, be.Error())
			}
		}
		log.Println("Checkout callback failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record deposit", "CALLBACK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Deposit recorded", nil)
}

func (h *PaymentHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
