package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// StyleCategoryRepositoryImpl implements StyleCategoryRepository interface.
type StyleCategoryRepositoryImpl struct {
	*BaseRepository[models.StyleCategory, models.StyleCategoryFilter]
}

// NewStyleCategoryRepository creates a new style category repository.
func NewStyleCategoryRepository(db *gorm.DB) StyleCategoryRepository {
	return &StyleCategoryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.StyleCategory, models.StyleCategoryFilter](db),
	}
}

// BySlug retrieves a category with its sizes by slug.
func (r *StyleCategoryRepositoryImpl) BySlug(ctx context.Context, slug string) (*models.StyleCategory, error) {
	db := r.getDB(ctx)
	var row models.StyleCategory
	err := db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("slug = ?", slug).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves a category with its sizes by UUID.
func (r *StyleCategoryRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.StyleCategory, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	db := r.getDB(ctx)
	var row models.StyleCategory
	err = db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("uuid = ?", parsed).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListActiveWithSizes retrieves active categories ordered for display,
// each with its active sizes preloaded.
func (r *StyleCategoryRepositoryImpl) ListActiveWithSizes(ctx context.Context) ([]*models.StyleCategory, error) {
	db := r.getDB(ctx)
	var rows []*models.StyleCategory
	err := db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true).Order("sort_order ASC, id ASC")
	}).Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SizeByUUID retrieves a single service size with its category preloaded.
func (r *StyleCategoryRepositoryImpl) SizeByUUID(ctx context.Context, uuidStr string) (*models.ServiceSize, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	db := r.getDB(ctx)
	var row models.ServiceSize
	if err := db.Preload("Category").Where("uuid = ?", parsed).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// SaveSize inserts a new service size.
func (r *StyleCategoryRepositoryImpl) SaveSize(ctx context.Context, size *models.ServiceSize) error {
	db := r.getDB(ctx)
	if err := db.Create(size).Error; err != nil {
		return fmt.Errorf("failed to save service size: %w", err)
	}
	return nil
}

// Update persists changes to an existing category.
func (r *StyleCategoryRepositoryImpl) Update(ctx context.Context, category *models.StyleCategory) error {
	db := r.getDB(ctx)
	category.UpdatedAt = utils.UTCNow()
	res := db.Model(&models.StyleCategory{}).
		Where("id = ?", category.ID).
		Select("slug", "name", "description", "tag", "sort_order", "is_active", "updated_at").
		Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update style category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSize persists changes to an existing service size.
func (r *StyleCategoryRepositoryImpl) UpdateSize(ctx context.Context, size *models.ServiceSize) error {
	db := r.getDB(ctx)
	size.UpdatedAt = utils.UTCNow()
	res := db.Model(&models.ServiceSize{}).
		Where("id = ?", size.ID).
		Select("name", "price", "duration", "sort_order", "is_active", "updated_at").
		Updates(size)
	if res.Error != nil {
		return fmt.Errorf("failed to update service size: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *StyleCategoryRepositoryImpl) applyFilter(query *gorm.DB, filter models.StyleCategoryFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Slug != nil {
		query = query.Where("slug = ?", *filter.Slug)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// ByFilter retrieves categories based on filter criteria.
func (r *StyleCategoryRepositoryImpl) ByFilter(ctx context.Context, filter models.StyleCategoryFilter, orderBy string, limit, offset int) ([]*models.StyleCategory, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.StyleCategory{})

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

	var rows []*models.StyleCategory
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of categories matching filter.
func (r *StyleCategoryRepositoryImpl) Count(ctx context.Context, filter models.StyleCategoryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.StyleCategory{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any category matches the filter.
func (r *StyleCategoryRepositoryImpl) Exists(ctx context.Context, filter models.StyleCategoryFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
