package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// Addon is an optional extra service a client can attach to a booking,
// e.g. "Deep Conditioning Treatment". An addon with no links is offered
// with every service; otherwise it is offered only when the chosen
// category slug or size UUID appears in its link lists.
type Addon struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int       `gorm:"not null" json:"price"`
	// Duration in minutes added to the appointment. Zero means no extra time.
	Duration          int            `gorm:"not null;default:0" json:"duration"`
	LinkedCategories  pq.StringArray `gorm:"type:text[]" json:"linked_categories"`
	LinkedSizes       pq.StringArray `gorm:"type:text[]" json:"linked_sizes"`
	SortOrder         int            `gorm:"not null;default:0;index" json:"sort_order"`
	IsActive          *bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Addon) TableName() string { return "addons" }

// BeforeCreate ensures UUID and timestamps are set.
func (a *Addon) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == uuid.Nil {
		a.UUID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = utils.UTCNow()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// AppliesTo reports whether the addon should be offered for the given
// category slug and size UUID. Unlinked addons apply everywhere.
func (a *Addon) AppliesTo(categorySlug string, sizeUUID uuid.UUID) bool {
	if len(a.LinkedCategories) == 0 && len(a.LinkedSizes) == 0 {
		return true
	}
	for _, slug := range a.LinkedCategories {
		if slug == categorySlug {
			return true
		}
	}
	sizeStr := sizeUUID.String()
	for _, s := range a.LinkedSizes {
		if s == sizeStr {
			return true
		}
	}
	return false
}

// AddonFilter represents filter criteria for addon queries.
type AddonFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
