// Package businessflow contains the core business logic and use cases for the salon workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Media-related errors
	ErrMediaNotFound       = errors.New("media not found")
	ErrInvalidDataURL      = errors.New("content is not a valid data URL")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
	ErrMediaTooLarge       = errors.New("media exceeds maximum size")
	ErrFilenameRequired    = errors.New("filename is required")
	ErrDataURLRequired     = errors.New("data url is required")

	// Catalog-related errors
	ErrCategoryNotFound     = errors.New("category not found")
	ErrSizeNotFound         = errors.New("service size not found")
	ErrAddonNotFound        = errors.New("addon not found")
	ErrAddonNotApplicable   = errors.New("addon is not offered for the selected service")
	ErrSlugAlreadyExists    = errors.New("category slug already exists")
	ErrCategoryHasNoSizes   = errors.New("category has no sizes")

	// Booking-related errors
	ErrBookingNotFound      = errors.New("booking not found")
	ErrDateOutOfRange       = errors.New("date is outside the booking window")
	ErrSalonClosed          = errors.New("salon is closed on the selected day")
	ErrInvalidTimeSlot      = errors.New("time slot is not offered")
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	// Settings-related errors
	ErrSettingsNotFound = errors.New("site settings not found")

	// Admin-related errors
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAdminInactive     = errors.New("admin account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Checkout-related errors
	ErrCheckoutUnavailable    = errors.New("checkout provider unavailable")
	ErrCheckoutSessionInvalid = errors.New("checkout session invalid")
	ErrDepositAlreadyPaid     = errors.New("deposit already paid")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsMediaNotFound(err error) bool {
	return errors.Is(err, ErrMediaNotFound)
}

func IsInvalidDataURL(err error) bool {
	return errors.Is(err, ErrInvalidDataURL)
}

func IsUnsupportedMedia(err error) bool {
	return errors.Is(err, ErrUnsupportedMedia)
}

func IsMediaTooLarge(err error) bool {
	return errors.Is(err, ErrMediaTooLarge)
}

func IsCategoryNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

func IsSizeNotFound(err error) bool {
	return errors.Is(err, ErrSizeNotFound)
}

func IsAddonNotFound(err error) bool {
	return errors.Is(err, ErrAddonNotFound)
}

func IsAddonNotApplicable(err error) bool {
	return errors.Is(err, ErrAddonNotApplicable)
}

func IsSlugAlreadyExists(err error) bool {
	return errors.Is(err, ErrSlugAlreadyExists)
}

func IsBookingNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound)
}

func IsDateOutOfRange(err error) bool {
	return errors.Is(err, ErrDateOutOfRange)
}

func IsSalonClosed(err error) bool {
	return errors.Is(err, ErrSalonClosed)
}

func IsInvalidTimeSlot(err error) bool {
	return errors.Is(err, ErrInvalidTimeSlot)
}

func IsSettingsNotFound(err error) bool {
	return errors.Is(err, ErrSettingsNotFound)
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAdminInactive(err error) bool {
	return errors.Is(err, ErrAdminInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsCheckoutUnavailable(err error) bool {
	return errors.Is(err, ErrCheckoutUnavailable)
}

func IsDepositAlreadyPaid(err error) bool {
	return errors.Is(err, ErrDepositAlreadyPaid)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}
