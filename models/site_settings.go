package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// SiteSettings holds the salon's editable storefront content. The table
// keeps a single row; reads go through the settings cache.
type SiteSettings struct {
	ID   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`

	SalonName    string `gorm:"type:varchar(255);not null;default:''" json:"salon_name"`
	Tagline      string `gorm:"type:varchar(500);not null;default:''" json:"tagline"`
	AboutText    string `gorm:"type:text;not null;default:''" json:"about_text"`
	ContactEmail string `gorm:"type:varchar(255);not null;default:''" json:"contact_email"`
	ContactPhone string `gorm:"type:varchar(30);not null;default:''" json:"contact_phone"`
	Address      string `gorm:"type:varchar(500);not null;default:''" json:"address"`
	InstagramURL string `gorm:"type:varchar(500);not null;default:''" json:"instagram_url"`
	TikTokURL    string `gorm:"type:varchar(500);not null;default:''" json:"tiktok_url"`
	BookingNote  string `gorm:"type:text;not null;default:''" json:"booking_note"`

	// HeroMediaUUID references a media asset used as the landing hero.
	HeroMediaUUID *uuid.UUID `gorm:"type:uuid" json:"hero_media_uuid,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SiteSettings) TableName() string { return "site_settings" }

// BeforeCreate ensures UUID and timestamps are set.
func (s *SiteSettings) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// SiteSettingsFilter represents filter criteria for settings queries.
type SiteSettingsFilter struct {
	ID   *uint      `json:"id,omitempty"`
	UUID *uuid.UUID `json:"uuid,omitempty"`
}
