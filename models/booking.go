package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Deposit states.
const (
	DepositUnpaid = "unpaid"
	DepositPaid   = "paid"
)

// BookingAddon is a priced snapshot of an addon at submission time.
// Snapshots keep historical bookings stable when the catalog changes.
type BookingAddon struct {
	UUID     uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	Price    int       `json:"price"`
	Duration int       `json:"duration"`
}

// Booking is a client appointment request produced by the booking wizard.
type Booking struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID               uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	ConfirmationNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"confirmation_number"`

	CategorySlug string `gorm:"type:varchar(100);not null;index" json:"category_slug"`
	CategoryName string `gorm:"type:varchar(255);not null" json:"category_name"`
	SizeName     string `gorm:"type:varchar(255);not null" json:"size_name"`
	SizePrice    int    `gorm:"not null" json:"size_price"`
	SizeDuration int    `gorm:"not null" json:"size_duration"`

	// Addons holds the priced snapshot of selected addons as JSONB.
	Addons datatypes.JSON `gorm:"type:jsonb" json:"addons"`

	// AppointmentDate is a calendar day truncated to midnight UTC.
	// TimeSlot holds the display label, e.g. "9:00 AM".
	AppointmentDate time.Time `gorm:"type:date;not null;index" json:"appointment_date"`
	TimeSlot        string    `gorm:"type:varchar(20);not null" json:"time_slot"`

	ClientFirstName string `gorm:"type:varchar(100);not null" json:"client_first_name"`
	ClientLastName  string `gorm:"type:varchar(100);not null" json:"client_last_name"`
	ClientEmail     string `gorm:"type:varchar(255);not null;index" json:"client_email"`
	ClientPhone     string `gorm:"type:varchar(30);not null" json:"client_phone"`
	Notes           string `gorm:"type:text" json:"notes"`

	TotalPrice    int `gorm:"not null" json:"total_price"`
	TotalDuration int `gorm:"not null" json:"total_duration"`
	DepositAmount int `gorm:"not null" json:"deposit_amount"`

	Status        string  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DepositStatus string  `gorm:"type:varchar(20);not null;default:'unpaid'" json:"deposit_status"`
	CheckoutRef   *string `gorm:"type:varchar(255)" json:"checkout_ref,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// BeforeCreate ensures UUID, confirmation number and timestamps are set.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	if b.ConfirmationNumber == "" {
		num, err := GenerateConfirmationNumber()
		if err != nil {
			return err
		}
		b.ConfirmationNumber = num
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = utils.UTCNow()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// IsPending returns true when the booking has not yet been actioned.
func (b *Booking) IsPending() bool { return b.Status == BookingStatusPending }

// confirmationAlphabet excludes ambiguous characters like 0/O and 1/I.
const confirmationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateConfirmationNumber produces a reference like "SOL-7KQ2MX".
func GenerateConfirmationNumber() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate confirmation number: %w", err)
	}
	for i, b := range buf {
		buf[i] = confirmationAlphabet[int(b)%len(confirmationAlphabet)]
	}
	return "SOL-" + string(buf), nil
}

// BookingFilter represents filter criteria for booking queries.
type BookingFilter struct {
	ID                 *uint      `json:"id,omitempty"`
	UUID               *uuid.UUID `json:"uuid,omitempty"`
	ConfirmationNumber *string    `json:"confirmation_number,omitempty"`
	ClientEmail        *string    `json:"client_email,omitempty"`
	Status             *string    `json:"status,omitempty"`
	DepositStatus      *string    `json:"deposit_status,omitempty"`
	DateFrom           *time.Time `json:"date_from,omitempty"`
	DateTo             *time.Time `json:"date_to,omitempty"`
	CreatedAfter       *time.Time `json:"created_after,omitempty"`
}
