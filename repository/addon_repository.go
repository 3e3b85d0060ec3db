package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// AddonRepositoryImpl implements AddonRepository interface.
type AddonRepositoryImpl struct {
	*BaseRepository[models.Addon, models.AddonFilter]
}

// NewAddonRepository creates a new addon repository.
func NewAddonRepository(db *gorm.DB) AddonRepository {
	return &AddonRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Addon, models.AddonFilter](db),
	}
}

// ByUUID retrieves an addon by UUID.
func (r *AddonRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Addon, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	db := r.getDB(ctx)
	var row models.Addon
	if err := db.Where("uuid = ?", parsed).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListActive retrieves active addons ordered for display.
func (r *AddonRepositoryImpl) ListActive(ctx context.Context) ([]*models.Addon, error) {
	return r.ByFilter(ctx, models.AddonFilter{IsActive: utils.ToPtr(true)}, "sort_order ASC, id ASC", 0, 0)
}

// Update persists changes to an existing addon.
func (r *AddonRepositoryImpl) Update(ctx context.Context, addon *models.Addon) error {
	db := r.getDB(ctx)
	addon.UpdatedAt = utils.UTCNow()
	res := db.Model(&models.Addon{}).
		Where("id = ?", addon.ID).
		Select("name", "description", "price", "duration", "linked_categories", "linked_sizes", "sort_order", "is_active", "updated_at").
		Updates(addon)
	if res.Error != nil {
		return fmt.Errorf("failed to update addon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *AddonRepositoryImpl) applyFilter(query *gorm.DB, filter models.AddonFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves addons based on filter criteria.
func (r *AddonRepositoryImpl) ByFilter(ctx context.Context, filter models.AddonFilter, orderBy string, limit, offset int) ([]*models.Addon, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Addon{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "sort_order ASC, id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Addon
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of addons matching filter.
func (r *AddonRepositoryImpl) Count(ctx context.Context, filter models.AddonFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Addon{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any addon matches the filter.
func (r *AddonRepositoryImpl) Exists(ctx context.Context, filter models.AddonFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
