package dto

// SubmitBookingRequest is the payload produced by the booking wizard.
// SizeID and AddonIDs are catalog identifiers: UUIDs for configured
// services, or the built-in ids when the fallback catalog is in use.
// Dates use YYYY-MM-DD; the time slot is a display label like "9:00 AM".
type SubmitBookingRequest struct {
	SizeID    string   `json:"size_id" validate:"required,min=1,max=100"`
	AddonIDs  []string `json:"addon_ids" validate:"omitempty,dive,min=1"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string   `json:"time_slot" validate:"required"`
	FirstName string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string   `json:"last_name" validate:"required,min=1,max=100"`
	Email     string   `json:"email" validate:"required,email,max=255"`
	Phone     string   `json:"phone" validate:"required,min=7,max=30"`
	Notes     string   `json:"notes" validate:"max=2000"`
}

// BookingAddonDTO is the priced addon snapshot attached to a booking.
type BookingAddonDTO struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Duration int    `json:"duration"`
}

// BookingDTO is the full booking view returned to clients and admins.
type BookingDTO struct {
	UUID               string            `json:"uuid"`
	ConfirmationNumber string            `json:"confirmation_number"`
	CategoryName       string            `json:"category_name"`
	SizeName           string            `json:"size_name"`
	SizePrice          int               `json:"size_price"`
	Addons             []BookingAddonDTO `json:"addons"`
	Date               string            `json:"date"`
	TimeSlot           string            `json:"time_slot"`
	FirstName          string            `json:"first_name"`
	LastName           string            `json:"last_name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	Notes              string            `json:"notes,omitempty"`
	TotalPrice         int               `json:"total_price"`
	TotalDuration      int               `json:"total_duration"`
	DepositAmount      int               `json:"deposit_amount"`
	Status             string            `json:"status"`
	DepositStatus      string            `json:"deposit_status"`
	CheckoutURL        string            `json:"checkout_url,omitempty"`
	CreatedAt          string            `json:"created_at"`
}

// ListBookingsRequest filters the back-office booking list.
type ListBookingsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Email    string `query:"email" validate:"omitempty,email"`
	DateFrom string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListBookingsResponse is a page of bookings, newest first.
type ListBookingsResponse struct {
	Items    []BookingDTO `json:"items"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// UpdateBookingStatusRequest changes a booking's status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// CalendarDayDTO groups a day's bookings for the calendar view.
type CalendarDayDTO struct {
	Date     string       `json:"date"`
	Bookings []BookingDTO `json:"bookings"`
}

// CalendarResponse is the admin calendar for a date range.
type CalendarResponse struct {
	From string           `json:"from"`
	To   string           `json:"to"`
	Days []CalendarDayDTO `json:"days"`
}

// CheckoutCallbackRequest is posted by the payment provider after a
// deposit checkout completes.
type CheckoutCallbackRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	Status    string `json:"status" validate:"required"`
}
