package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// StyleCategory is a named grouping of a braiding service, e.g. "Knotless Braids".
// Each category carries one or more priced size variants.
type StyleCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Tag         string    `gorm:"type:varchar(50)" json:"tag"`
	SortOrder   int       `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Sizes []ServiceSize `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
}

func (StyleCategory) TableName() string { return "style_categories" }

// BeforeCreate ensures UUID and timestamps are set.
func (s *StyleCategory) BeforeCreate(tx *gorm.DB) error {
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

// ServiceSize is a priced, timed sub-option within a style category,
// e.g. "Small" at $300 for 420 minutes.
type ServiceSize struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	// Price in whole dollars and duration in minutes, as shown to clients.
	Price     int       `gorm:"not null" json:"price"`
	Duration  int       `gorm:"not null" json:"duration"`
	SortOrder int       `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Category *StyleCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

func (ServiceSize) TableName() string { return "service_sizes" }

// BeforeCreate ensures UUID and timestamps are set.
func (s *ServiceSize) BeforeCreate(tx *gorm.DB) error {
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

// StyleCategoryFilter represents filter criteria for category queries.
type StyleCategoryFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	Slug     *string    `json:"slug,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// ServiceSizeFilter represents filter criteria for size queries.
type ServiceSizeFilter struct {
	ID         *uint      `json:"id,omitempty"`
	UUID       *uuid.UUID `json:"uuid,omitempty"`
	CategoryID *uint      `json:"category_id,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}
