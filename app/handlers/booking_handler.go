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

// BookingHandlerInterface defines the contract for booking handlers.
type BookingHandlerInterface interface {
	Submit(c fiber.Ctx) error
	GetByConfirmation(c fiber.Ctx) error
	List(c fiber.Ctx) error
	UpdateStatus(c fiber.Ctx) error
	Export(c fiber.Ctx) error
	Calendar(c fiber.Ctx) error
}

// BookingHandler handles booking submission and back-office requests.
type BookingHandler struct {
	flow      businessflow.BookingFlow
	validator *validator.Validate
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(flow businessflow.BookingFlow) *BookingHandler {
	return &BookingHandler{flow: flow, validator: validator.New()}
}

func (h *BookingHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *BookingHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Submit creates a booking from the wizard payload.
// @Summary Submit booking
// @Description Create a pending booking with a confirmation number and optional deposit checkout link
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.SubmitBookingRequest true "Booking selection and contact info"
// @Success 201 {object} dto.APIResponse{data=dto.BookingDTO} "Booking created"
// @Failure 400 {object} dto.APIResponse "Validation error or unbookable selection"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/bookings [post]
func (h *BookingHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitBookingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.SubmitBooking(h.createRequestContext(c, "/api/v1/bookings"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "SIZE_NOT_FOUND", "ADDON_NOT_FOUND", "ADDON_NOT_APPLICABLE",
				"DATE_OUT_OF_RANGE", "SALON_CLOSED", "INVALID_TIME_SLOT", "INVALID_REQUEST":
				return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, be.Error())
			}
		}
		log.Println("Booking submission failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create booking", "BOOKING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Booking created", result)
}

// GetByConfirmation looks up a booking by its confirmation number.
// @Summary Get booking by confirmation number
// @Description Look up a booking using the confirmation number given at checkout
// @Tags Bookings
// @Produce json
// @Param number path string true "Confirmation number, e.g. SOL-7KQ2MH"
// @Success 200 {object} dto.APIResponse{data=dto.BookingDTO} "Booking found"
// @Failure 404 {object} dto.APIResponse "Booking not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/bookings/{number} [get]
func (h *BookingHandler) GetByConfirmation(c fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
	}

	result, err := h.flow.GetByConfirmation(h.createRequestContext(c, "/api/v1/bookings/{number}"), number)
	if err != nil {
		if businessflow.IsBookingNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
		}
		log.Println("Booking lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch booking", "LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Booking retrieved", result)
}

// List returns a filtered page of bookings for the back office.
// @Summary List bookings
// @Description List bookings filtered by status, client email, and appointment date range
// @Tags Bookings
// @Produce json
// @Param status query string false "Booking status"
// @Param email query string false "Client email"
// @Param date_from query string false "Appointment date from (YYYY-MM-DD)"
// @Param date_to query string false "Appointment date to (YYYY-MM-DD)"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListBookingsResponse} "Bookings page"
// @Failure 400 {object} dto.APIResponse "Invalid filters"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/bookings [get]
func (h *BookingHandler) List(c fiber.Ctx) error {
	var req dto.ListBookingsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	result, err := h.flow.ListBookings(h.createRequestContext(c, "/api/v1/admin/bookings"), &req)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_REQUEST" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, be.Error())
		}
		log.Println("Booking listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list bookings", "LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Bookings retrieved", result)
}

// UpdateStatus changes a booking's lifecycle status.
// @Summary Update booking status
// @Description Move a booking between pending, confirmed, cancelled, and completed
// @Tags Bookings
// @Accept json
// @Produce json
// @Param uuid path string true "Booking UUID"
// @Param request body dto.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.BookingDTO} "Booking updated"
// @Failure 400 {object} dto.APIResponse "Invalid status"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Booking not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/bookings/{uuid}/status [patch]
func (h *BookingHandler) UpdateStatus(c fiber.Ctx) error {
	bookingUUID := c.Params("uuid")
	if bookingUUID == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.UpdateStatus(h.createRequestContext(c, "/api/v1/admin/bookings/{uuid}/status"), bookingUUID, &req, metadata)
	if err != nil {
		if businessflow.IsBookingNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_STATUS" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status transition", be.Code, be.Error())
		}
		log.Println("Booking status update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update booking", "UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Booking updated", result)
}

// Export downloads the filtered booking list as an xlsx workbook.
// @Summary Export bookings
// @Description Export bookings matching the list filters as an Excel workbook
// @Tags Bookings
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Booking status"
// @Param email query string false "Client email"
// @Param date_from query string false "Appointment date from (YYYY-MM-DD)"
// @Param date_to query string false "Appointment date to (YYYY-MM-DD)"
// @Success 200 {string} string "Workbook bytes"
// @Failure 400 {object} dto.APIResponse "Invalid filters"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/bookings/export [get]
func (h *BookingHandler) Export(c fiber.Ctx) error {
	var req dto.ListBookingsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	data, filename, err := h.flow.ExportBookings(h.createRequestContext(c, "/api/v1/admin/bookings/export"), &req)
	if err != nil {
		log.Println("Booking export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export bookings", "EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// Calendar groups bookings by appointment date for a range.
// @Summary Booking calendar
// @Description Group upcoming bookings by appointment date
// @Tags Bookings
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD, default today)"
// @Param to query string false "Range end (YYYY-MM-DD, default today +30d)"
// @Success 200 {object} dto.APIResponse{data=dto.CalendarResponse} "Calendar"
// @Failure 400 {object} dto.APIResponse "Invalid range"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/bookings/calendar [get]
func (h *BookingHandler) Calendar(c fiber.Ctx) error {
	result, err := h.flow.GetCalendar(h.createRequestContext(c, "/api/v1/admin/bookings/calendar"), c.Query("from"), c.Query("to"))
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "INVALID_REQUEST" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, be.Error())
		}
		log.Println("Booking calendar failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build calendar", "CALENDAR_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Calendar retrieved", result)
}

func (h *BookingHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
