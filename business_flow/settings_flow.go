package businessflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	"github.com/solangehq/maison-api/utils"
	"golang.org/x/sync/singleflight"
)

// SettingsFlow defines operations for the storefront settings.
type SettingsFlow interface {
	GetSettings(ctx context.Context) (*dto.SiteSettingsDTO, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSiteSettingsRequest, metadata *ClientMetadata) (*dto.SiteSettingsDTO, error)
}

// SettingsFlowImpl implements SettingsFlow with a read-through cache.
// Concurrent cache misses collapse into a single database read; the
// cache entry is replaced only when settings are updated.
type SettingsFlowImpl struct {
	settingsRepo repository.SiteSettingsRepository
	mediaRepo    repository.MediaAssetRepository
	rc           *redis.Client
	cachePrefix  string
	cacheTTL     time.Duration
	group        singleflight.Group
}

const settingsCacheKey = "site_settings"

// NewSettingsFlow creates a new settings flow instance. rc may be nil,
// in which case every read goes to the database.
func NewSettingsFlow(settingsRepo repository.SiteSettingsRepository, mediaRepo repository.MediaAssetRepository, rc *redis.Client, cachePrefix string, cacheTTL time.Duration) SettingsFlow {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &SettingsFlowImpl{
		settingsRepo: settingsRepo,
		mediaRepo:    mediaRepo,
		rc:           rc,
		cachePrefix:  cachePrefix,
		cacheTTL:     cacheTTL,
	}
}

func (f *SettingsFlowImpl) cacheKey() string {
	if f.cachePrefix == "" {
		return settingsCacheKey
	}
	return f.cachePrefix + ":" + settingsCacheKey
}

// GetSettings returns the storefront settings, from cache when possible.
func (f *SettingsFlowImpl) GetSettings(ctx context.Context) (*dto.SiteSettingsDTO, error) {
	if f.rc != nil {
		if bs, err := f.rc.Get(ctx, f.cacheKey()).Bytes(); err == nil && len(bs) > 0 {
			var out dto.SiteSettingsDTO
			if err := json.Unmarshal(bs, &out); err == nil {
				return &out, nil
			}
		}
	}

	v, err, _ := f.group.Do(f.cacheKey(), func() (any, error) {
		return f.loadSettings(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.SiteSettingsDTO), nil
}

func (f *SettingsFlowImpl) loadSettings(ctx context.Context) (*dto.SiteSettingsDTO, error) {
	settings, err := f.settingsRepo.Current(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &models.SiteSettings{}
	}

	out := f.toDTO(settings)
	f.storeCache(ctx, out)
	return out, nil
}

func (f *SettingsFlowImpl) storeCache(ctx context.Context, out *dto.SiteSettingsDTO) {
	if f.rc == nil {
		return
	}
	if bs, err := json.Marshal(out); err == nil {
		_ = f.rc.Set(ctx, f.cacheKey(), bs, f.cacheTTL).Err()
	}
}

func (f *SettingsFlowImpl) toDTO(settings *models.SiteSettings) *dto.SiteSettingsDTO {
	out := &dto.SiteSettingsDTO{
		SalonName:    settings.SalonName,
		Tagline:      settings.Tagline,
		AboutText:    settings.AboutText,
		ContactEmail: settings.ContactEmail,
		ContactPhone: settings.ContactPhone,
		Address:      settings.Address,
		InstagramURL: settings.InstagramURL,
		TikTokURL:    settings.TikTokURL,
		BookingNote:  settings.BookingNote,
	}
	if settings.HeroMediaUUID != nil {
		out.HeroMediaURL = MediaPublicURL(settings.HeroMediaUUID.String())
	}
	if !settings.UpdatedAt.IsZero() {
		out.UpdatedAt = settings.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

// UpdateSettings replaces the storefront content and refreshes the cache.
func (f *SettingsFlowImpl) UpdateSettings(ctx context.Context, req *dto.UpdateSiteSettingsRequest, metadata *ClientMetadata) (*dto.SiteSettingsDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}

	var heroUUID *string
	if req.HeroMediaUUID != nil && *req.HeroMediaUUID != "" {
		asset, err := f.mediaRepo.ByUUID(ctx, *req.HeroMediaUUID)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, NewBusinessError("MEDIA_NOT_FOUND", "hero media not found", ErrMediaNotFound)
		}
		heroUUID = req.HeroMediaUUID
	}

	settings, err := f.settingsRepo.Current(ctx)
	if err != nil {
		return nil, err
	}

	isNew := settings == nil
	if isNew {
		settings = &models.SiteSettings{}
	}

	settings.SalonName = req.SalonName
	settings.Tagline = req.Tagline
	settings.AboutText = req.AboutText
	settings.ContactEmail = req.ContactEmail
	settings.ContactPhone = req.ContactPhone
	settings.Address = req.Address
	settings.InstagramURL = req.InstagramURL
	settings.TikTokURL = req.TikTokURL
	settings.BookingNote = req.BookingNote
	settings.HeroMediaUUID = nil
	if heroUUID != nil {
		parsed, err := utils.ParseUUID(*heroUUID)
		if err != nil {
			return nil, NewBusinessError("MEDIA_NOT_FOUND", "hero media not found", err)
		}
		settings.HeroMediaUUID = &parsed
	}

	if isNew {
		err = f.settingsRepo.Save(ctx, settings)
	} else {
		err = f.settingsRepo.Update(ctx, settings)
	}
	if err != nil {
		return nil, err
	}

	settings.UpdatedAt = utils.UTCNow()
	out := f.toDTO(settings)
	f.storeCache(ctx, out)
	return out, nil
}
