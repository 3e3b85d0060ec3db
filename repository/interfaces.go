// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/solangehq/maison-api/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// MediaAssetRepository defines operations for stored media payloads
type MediaAssetRepository interface {
	Repository[models.MediaAsset, models.MediaAssetFilter]
	ByUUID(ctx context.Context, uuid string) (*models.MediaAsset, error)
	ListMetadata(ctx context.Context, limit, offset int) ([]*models.MediaAsset, error)
	DeleteByUUID(ctx context.Context, uuid string) (bool, error)
}

// StyleCategoryRepository defines operations for style categories and their sizes
type StyleCategoryRepository interface {
	Repository[models.StyleCategory, models.StyleCategoryFilter]
	BySlug(ctx context.Context, slug string) (*models.StyleCategory, error)
	ByUUID(ctx context.Context, uuid string) (*models.StyleCategory, error)
	ListActiveWithSizes(ctx context.Context) ([]*models.StyleCategory, error)
	Update(ctx context.Context, category *models.StyleCategory) error
	SizeByUUID(ctx context.Context, uuid string) (*models.ServiceSize, error)
	SaveSize(ctx context.Context, size *models.ServiceSize) error
	UpdateSize(ctx context.Context, size *models.ServiceSize) error
}

// AddonRepository defines operations for booking addons
type AddonRepository interface {
	Repository[models.Addon, models.AddonFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Addon, error)
	ListActive(ctx context.Context) ([]*models.Addon, error)
	Update(ctx context.Context, addon *models.Addon) error
}

// BookingRepository defines operations for client bookings
type BookingRepository interface {
	Repository[models.Booking, models.BookingFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Booking, error)
	ByConfirmationNumber(ctx context.Context, number string) (*models.Booking, error)
	ListRecent(ctx context.Context, filter models.BookingFilter, limit, offset int) ([]*models.Booking, error)
	ListForDateRange(ctx context.Context, from, to time.Time) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uint, status string) error
	MarkDepositPaid(ctx context.Context, bookingID uint, checkoutRef string) error
	FindDuplicatePending(ctx context.Context, email, categorySlug, sizeName string, date time.Time, timeSlot string, since time.Time) (*models.Booking, error)
}

// SiteSettingsRepository defines operations for the storefront settings row
type SiteSettingsRepository interface {
	Repository[models.SiteSettings, models.SiteSettingsFilter]
	Current(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, settings *models.SiteSettings) error
}

// AdminRepository defines operations for back-office users
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	ByEmail(ctx context.Context, email string) (*models.Admin, error)
	ByUUID(ctx context.Context, uuid string) (*models.Admin, error)
	TouchLastLogin(ctx context.Context, adminID uint, at time.Time) error
}
