package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// BookingRepositoryImpl implements BookingRepository interface.
type BookingRepositoryImpl struct {
	*BaseRepository[models.Booking, models.BookingFilter]
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Booking, models.BookingFilter](db),
	}
}

// ByUUID retrieves a booking by UUID.
func (r *BookingRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Booking, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.BookingFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ByConfirmationNumber retrieves a booking by its client-facing reference.
func (r *BookingRepositoryImpl) ByConfirmationNumber(ctx context.Context, number string) (*models.Booking, error) {
	db := r.getDB(ctx)
	var row models.Booking
	if err := db.Where("confirmation_number = ?", number).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListRecent retrieves bookings newest first for the back office.
func (r *BookingRepositoryImpl) ListRecent(ctx context.Context, filter models.BookingFilter, limit, offset int) ([]*models.Booking, error) {
	return r.ByFilter(ctx, filter, "created_at DESC, id DESC", limit, offset)
}

// ListForDateRange retrieves bookings whose appointment falls inside [from, to],
// ordered by date then slot for the calendar view.
func (r *BookingRepositoryImpl) ListForDateRange(ctx context.Context, from, to time.Time) ([]*models.Booking, error) {
	db := r.getDB(ctx)
	var rows []*models.Booking
	err := db.Where("appointment_date >= ? AND appointment_date <= ?", from, to).
		Where("status <> ?", models.BookingStatusCancelled).
		Order("appointment_date ASC, time_slot ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets the booking status.
func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, bookingID uint, status string) error {
	db := r.getDB(ctx)
	res := db.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": utils.UTCNow(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkDepositPaid records a successful deposit checkout.
func (r *BookingRepositoryImpl) MarkDepositPaid(ctx context.Context, bookingID uint, checkoutRef string) error {
	db := r.getDB(ctx)
	res := db.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"deposit_status": models.DepositPaid,
			"checkout_ref":   checkoutRef,
			"updated_at":     utils.UTCNow(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark deposit paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindDuplicatePending looks for a recent pending booking with the same
// client email, service, date and slot. Used to absorb double submissions.
// Size names repeat across categories, so the category is part of the key.
func (r *BookingRepositoryImpl) FindDuplicatePending(ctx context.Context, email, categorySlug, sizeName string, date time.Time, timeSlot string, since time.Time) (*models.Booking, error) {
	db := r.getDB(ctx)
	var row models.Booking
	err := db.Where("client_email = ?", email).
		Where("category_slug = ?", categorySlug).
		Where("size_name = ?", sizeName).
		Where("appointment_date = ?", date).
		Where("time_slot = ?", timeSlot).
		Where("status = ?", models.BookingStatusPending).
		Where("created_at >= ?", since).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *BookingRepositoryImpl) applyFilter(query *gorm.DB, filter models.BookingFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.ConfirmationNumber != nil {
		query = query.Where("confirmation_number = ?", *filter.ConfirmationNumber)
	}
	if filter.ClientEmail != nil {
		query = query.Where("client_email = ?", *filter.ClientEmail)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DepositStatus != nil {
		query = query.Where("deposit_status = ?", *filter.DepositStatus)
	}
	if filter.DateFrom != nil {
		query = query.Where("appointment_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("appointment_date <= ?", *filter.DateTo)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	return query
}

// ByFilter retrieves bookings based on filter criteria.
func (r *BookingRepositoryImpl) ByFilter(ctx context.Context, filter models.BookingFilter, orderBy string, limit, offset int) ([]*models.Booking, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Booking{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Booking
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of bookings matching filter.
func (r *BookingRepositoryImpl) Count(ctx context.Context, filter models.BookingFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Booking{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any booking matches the filter.
func (r *BookingRepositoryImpl) Exists(ctx context.Context, filter models.BookingFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
