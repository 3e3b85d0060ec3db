package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// MediaAsset represents an uploaded image or video stored in the database blob store.
// Assets are immutable once created; replacing media means uploading a new asset
// and repointing whatever referenced the old one.
type MediaAsset struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	OriginalFilename string    `gorm:"type:varchar(255);not null" json:"original_filename"`
	StoredName       string    `gorm:"type:varchar(300);not null" json:"stored_name"`
	MimeType         string    `gorm:"type:varchar(100);not null" json:"mime_type"`
	SizeBytes        int64     `gorm:"type:bigint;not null" json:"size_bytes"`
	Payload          []byte    `gorm:"type:bytea;not null" json:"-"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MediaAsset) TableName() string { return "media_assets" }

// BeforeCreate ensures UUID and timestamps are set.
func (m *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utils.UTCNow()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// MediaAssetFilter represents filter criteria for media asset queries.
type MediaAssetFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	MimeType      *string    `json:"mime_type,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
