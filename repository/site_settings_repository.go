package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// SiteSettingsRepositoryImpl implements SiteSettingsRepository interface.
type SiteSettingsRepositoryImpl struct {
	*BaseRepository[models.SiteSettings, models.SiteSettingsFilter]
}

// NewSiteSettingsRepository creates a new site settings repository.
func NewSiteSettingsRepository(db *gorm.DB) SiteSettingsRepository {
	return &SiteSettingsRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SiteSettings, models.SiteSettingsFilter](db),
	}
}

// Current retrieves the single settings row, or nil when none exists yet.
func (r *SiteSettingsRepositoryImpl) Current(ctx context.Context) (*models.SiteSettings, error) {
	db := r.getDB(ctx)
	var row models.SiteSettings
	if err := db.Order("id ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Update persists changes to an existing settings row.
func (r *SiteSettingsRepositoryImpl) Update(ctx context.Context, settings *models.SiteSettings) error {
	db := r.getDB(ctx)
	settings.UpdatedAt = utils.UTCNow()
	res := db.Model(&models.SiteSettings{}).
		Where("id = ?", settings.ID).
		Select("*").
		Omit("id", "uuid", "created_at").
		Updates(settings)
	if res.Error != nil {
		return fmt.Errorf("failed to update site settings: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *SiteSettingsRepositoryImpl) applyFilter(query *gorm.DB, filter models.SiteSettingsFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	return query
}

// ByFilter retrieves settings rows based on filter criteria.
func (r *SiteSettingsRepositoryImpl) ByFilter(ctx context.Context, filter models.SiteSettingsFilter, orderBy string, limit, offset int) ([]*models.SiteSettings, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.SiteSettings{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.SiteSettings
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of settings rows matching filter.
func (r *SiteSettingsRepositoryImpl) Count(ctx context.Context, filter models.SiteSettingsFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.SiteSettings{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any settings row matches the filter.
func (r *SiteSettingsRepositoryImpl) Exists(ctx context.Context, filter models.SiteSettingsFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
