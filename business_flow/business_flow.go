// Package businessflow contains the business logic for the application.
package businessflow

import (
	"encoding/json"
	"time"

	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for logging and auditing
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToAdminDTO converts an admin model to its API representation.
func ToAdminDTO(admin models.Admin) dto.AdminDTO {
	out := dto.AdminDTO{
		UUID:        admin.UUID.String(),
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
		Role:        admin.Role,
		CreatedAt:   admin.CreatedAt.Format(time.RFC3339),
	}
	if admin.LastLoginAt != nil {
		out.LastLoginAt = admin.LastLoginAt.Format(time.RFC3339)
	}
	return out
}

// ToBookingDTO converts a booking model to its API representation.
func ToBookingDTO(booking models.Booking) dto.BookingDTO {
	var snapshots []models.BookingAddon
	if len(booking.Addons) > 0 {
		_ = json.Unmarshal(booking.Addons, &snapshots)
	}
	addons := make([]dto.BookingAddonDTO, 0, len(snapshots))
	for _, a := range snapshots {
		addons = append(addons, dto.BookingAddonDTO{
			UUID:     a.UUID.String(),
			Name:     a.Name,
			Price:    a.Price,
			Duration: a.Duration,
		})
	}

	return dto.BookingDTO{
		UUID:               booking.UUID.String(),
		ConfirmationNumber: booking.ConfirmationNumber,
		CategoryName:       booking.CategoryName,
		SizeName:           booking.SizeName,
		SizePrice:          booking.SizePrice,
		Addons:             addons,
		Date:               booking.AppointmentDate.Format("2006-01-02"),
		TimeSlot:           booking.TimeSlot,
		FirstName:          booking.ClientFirstName,
		LastName:           booking.ClientLastName,
		Email:              booking.ClientEmail,
		Phone:              booking.ClientPhone,
		Notes:              booking.Notes,
		TotalPrice:         booking.TotalPrice,
		TotalDuration:      booking.TotalDuration,
		DepositAmount:      booking.DepositAmount,
		Status:             booking.Status,
		DepositStatus:      booking.DepositStatus,
		CreatedAt:          booking.CreatedAt.Format(time.RFC3339),
	}
}

// ToMediaAssetDTO converts a media asset model to its payload-free API view.
func ToMediaAssetDTO(asset models.MediaAsset, publicURL string) dto.MediaAssetDTO {
	return dto.MediaAssetDTO{
		UUID:             asset.UUID.String(),
		OriginalFilename: asset.OriginalFilename,
		StoredName:       asset.StoredName,
		MimeType:         asset.MimeType,
		SizeBytes:        asset.SizeBytes,
		URL:              publicURL,
		CreatedAt:        asset.CreatedAt.Format(time.RFC3339),
	}
}
