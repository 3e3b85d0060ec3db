package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// Admin roles.
const (
	AdminRoleOwner   = "owner"
	AdminRoleManager = "manager"
)

// Admin is a back-office user who manages content, uploads and bookings.
type Admin struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string     `gorm:"type:varchar(255);not null;default:''" json:"display_name"`
	Role         string     `gorm:"type:varchar(20);not null;default:'owner'" json:"role"`
	IsActive     *bool      `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Admin) TableName() string { return "admins" }

// BeforeCreate ensures UUID and timestamps are set.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
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

// CanManage reports whether the admin account is usable for back-office work.
func (a *Admin) CanManage() bool {
	return utils.IsTrue(a.IsActive)
}

// AdminFilter represents filter criteria for admin queries.
type AdminFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	Email    *string    `json:"email,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
