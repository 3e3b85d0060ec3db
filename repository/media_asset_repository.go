package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/utils"
	"gorm.io/gorm"
)

// MediaAssetRepositoryImpl implements MediaAssetRepository interface.
type MediaAssetRepositoryImpl struct {
	*BaseRepository[models.MediaAsset, models.MediaAssetFilter]
}

// NewMediaAssetRepository creates a new media asset repository.
func NewMediaAssetRepository(db *gorm.DB) MediaAssetRepository {
	return &MediaAssetRepositoryImpl{
		BaseRepository: NewBaseRepository[models.MediaAsset, models.MediaAssetFilter](db),
	}
}

// ByUUID retrieves a media asset, including its payload, by UUID.
func (r *MediaAssetRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.MediaAsset, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}
	db := r.getDB(ctx)
	var row models.MediaAsset
	if err := db.Where("uuid = ?", parsed).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListMetadata retrieves assets newest first without loading payloads.
func (r *MediaAssetRepositoryImpl) ListMetadata(ctx context.Context, limit, offset int) ([]*models.MediaAsset, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.MediaAsset{}).
		Select("id", "uuid", "original_filename", "stored_name", "mime_type", "size_bytes", "created_at", "updated_at").
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.MediaAsset
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByUUID removes an asset. Returns false when no row matched.
func (r *MediaAssetRepositoryImpl) DeleteByUUID(ctx context.Context, uuidStr string) (bool, error) {
	parsed, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return false, err
	}
	db := r.getDB(ctx)
	res := db.Where("uuid = ?", parsed).Delete(&models.MediaAsset{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete media asset: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// applyFilter applies filter criteria to a GORM query.
func (r *MediaAssetRepositoryImpl) applyFilter(query *gorm.DB, filter models.MediaAssetFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.MimeType != nil {
		query = query.Where("mime_type = ?", *filter.MimeType)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves media assets based on filter criteria.
func (r *MediaAssetRepositoryImpl) ByFilter(ctx context.Context, filter models.MediaAssetFilter, orderBy string, limit, offset int) ([]*models.MediaAsset, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.MediaAsset{})

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

	var rows []*models.MediaAsset
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of media assets matching filter.
func (r *MediaAssetRepositoryImpl) Count(ctx context.Context, filter models.MediaAssetFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.MediaAsset{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any media asset matches the filter.
func (r *MediaAssetRepositoryImpl) Exists(ctx context.Context, filter models.MediaAssetFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
