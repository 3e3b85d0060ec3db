package businessflow

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	"github.com/solangehq/maison-api/utils"
	"github.com/solangehq/maison-api/wizard"
	"gorm.io/gorm"
)

// CatalogFlow defines operations for the bookable service catalog.
type CatalogFlow interface {
	GetCatalog(ctx context.Context) (*dto.CatalogResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.StyleCategoryDTO, error)
	UpdateCategory(ctx context.Context, categoryUUID string, req *dto.UpdateCategoryRequest, metadata *ClientMetadata) (*dto.StyleCategoryDTO, error)
	UpdateSize(ctx context.Context, sizeUUID string, req *dto.UpdateSizeRequest, metadata *ClientMetadata) (*dto.ServiceSizeDTO, error)
	CreateAddon(ctx context.Context, req *dto.CreateAddonRequest, metadata *ClientMetadata) (*dto.AddonDTO, error)
	UpdateAddon(ctx context.Context, addonUUID string, req *dto.UpdateAddonRequest, metadata *ClientMetadata) (*dto.AddonDTO, error)
}

// CatalogFlowImpl implements CatalogFlow.
type CatalogFlowImpl struct {
	categoryRepo repository.StyleCategoryRepository
	addonRepo    repository.AddonRepository
	db           *gorm.DB
}

// NewCatalogFlow creates a new catalog flow instance.
func NewCatalogFlow(categoryRepo repository.StyleCategoryRepository, addonRepo repository.AddonRepository, db *gorm.DB) CatalogFlow {
	return &CatalogFlowImpl{
		categoryRepo: categoryRepo,
		addonRepo:    addonRepo,
		db:           db,
	}
}

// GetCatalog returns the configured catalog. When no categories have been
// created yet, the built-in wizard catalog is served so booking keeps
// working on a fresh install.
func (f *CatalogFlowImpl) GetCatalog(ctx context.Context) (*dto.CatalogResponse, error) {
	categories, err := f.categoryRepo.ListActiveWithSizes(ctx)
	if err != nil {
		return nil, err
	}
	addons, err := f.addonRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.CatalogResponse{
		Categories: make([]dto.StyleCategoryDTO, 0, len(categories)),
		Addons:     make([]dto.AddonDTO, 0, len(addons)),
	}

	if len(categories) == 0 {
		fallback := wizard.FallbackCatalog()
		for _, c := range fallback.Categories {
			sizes := make([]dto.ServiceSizeDTO, 0, len(c.Sizes))
			for _, s := range c.Sizes {
				sizes = append(sizes, dto.ServiceSizeDTO{
					UUID:     s.ID,
					Name:     s.Name,
					Price:    s.Price,
					Duration: s.Duration,
				})
			}
			resp.Categories = append(resp.Categories, dto.StyleCategoryDTO{
				UUID:        c.ID,
				Slug:        c.Slug,
				Name:        c.Name,
				Description: c.Description,
				Tag:         c.Tag,
				Sizes:       sizes,
			})
		}
	} else {
		for _, c := range categories {
			resp.Categories = append(resp.Categories, toCategoryDTO(c))
		}
	}

	for _, a := range addons {
		resp.Addons = append(resp.Addons, toAddonDTO(a))
	}

	return resp, nil
}

// CreateCategory creates a style category with its initial sizes.
func (f *CatalogFlowImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, metadata *ClientMetadata) (*dto.StyleCategoryDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	existing, err := f.categoryRepo.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewBusinessErrorf("SLUG_ALREADY_EXISTS", "category slug %q already exists", ErrSlugAlreadyExists, slug)
	}

	category := models.StyleCategory{
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Tag:         req.Tag,
		SortOrder:   req.SortOrder,
		IsActive:    utils.ToPtr(true),
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.categoryRepo.Save(txCtx, &category); err != nil {
			return err
		}
		for i, s := range req.Sizes {
			size := models.ServiceSize{
				CategoryID: category.ID,
				Name:       s.Name,
				Price:      s.Price,
				Duration:   s.Duration,
				SortOrder:  s.SortOrder,
				IsActive:   utils.ToPtr(true),
			}
			if size.SortOrder == 0 {
				size.SortOrder = i
			}
			if err := f.categoryRepo.SaveSize(txCtx, &size); err != nil {
				return err
			}
			category.Sizes = append(category.Sizes, size)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toCategoryDTO(&category)
	return &out, nil
}

// UpdateCategory applies a partial update to a category. Nil fields keep
// their stored value, and is_active false takes the category and all of
// its sizes out of the public catalog.
func (f *CatalogFlowImpl) UpdateCategory(ctx context.Context, categoryUUID string, req *dto.UpdateCategoryRequest, metadata *ClientMetadata) (*dto.StyleCategoryDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}
	if _, err := utils.ParseUUID(categoryUUID); err != nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", "category not found", ErrCategoryNotFound)
	}

	category, err := f.categoryRepo.ByUUID(ctx, categoryUUID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, NewBusinessError("CATEGORY_NOT_FOUND", "category not found", ErrCategoryNotFound)
	}

	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if slug != category.Slug {
			existing, err := f.categoryRepo.BySlug(ctx, slug)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, NewBusinessErrorf("SLUG_ALREADY_EXISTS", "category slug %q already exists", ErrSlugAlreadyExists, slug)
			}
			category.Slug = slug
		}
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Tag != nil {
		category.Tag = *req.Tag
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = utils.ToPtr(*req.IsActive)
	}

	if err := f.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	out := toCategoryDTO(category)
	return &out, nil
}

// UpdateSize applies a partial update to a service size.
func (f *CatalogFlowImpl) UpdateSize(ctx context.Context, sizeUUID string, req *dto.UpdateSizeRequest, metadata *ClientMetadata) (*dto.ServiceSizeDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}
	if _, err := utils.ParseUUID(sizeUUID); err != nil {
		return nil, NewBusinessError("SIZE_NOT_FOUND", "service size not found", ErrSizeNotFound)
	}

	size, err := f.categoryRepo.SizeByUUID(ctx, sizeUUID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, NewBusinessError("SIZE_NOT_FOUND", "service size not found", ErrSizeNotFound)
	}

	if req.Name != nil {
		size.Name = *req.Name
	}
	if req.Price != nil {
		size.Price = *req.Price
	}
	if req.Duration != nil {
		size.Duration = *req.Duration
	}
	if req.SortOrder != nil {
		size.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		size.IsActive = utils.ToPtr(*req.IsActive)
	}

	if err := f.categoryRepo.UpdateSize(ctx, size); err != nil {
		return nil, err
	}

	return &dto.ServiceSizeDTO{
		UUID:     size.UUID.String(),
		Name:     size.Name,
		Price:    size.Price,
		Duration: size.Duration,
	}, nil
}

// CreateAddon creates a booking addon.
func (f *CatalogFlowImpl) CreateAddon(ctx context.Context, req *dto.CreateAddonRequest, metadata *ClientMetadata) (*dto.AddonDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}

	addon := models.Addon{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Duration:         req.Duration,
		LinkedCategories: pq.StringArray(req.LinkedCategories),
		LinkedSizes:      pq.StringArray(req.LinkedSizes),
		SortOrder:        req.SortOrder,
		IsActive:         utils.ToPtr(true),
	}

	if err := f.addonRepo.Save(ctx, &addon); err != nil {
		return nil, err
	}

	out := toAddonDTO(&addon)
	return &out, nil
}

// UpdateAddon applies a partial update to an addon. Present link lists
// replace the stored lists wholesale.
func (f *CatalogFlowImpl) UpdateAddon(ctx context.Context, addonUUID string, req *dto.UpdateAddonRequest, metadata *ClientMetadata) (*dto.AddonDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}
	if _, err := utils.ParseUUID(addonUUID); err != nil {
		return nil, NewBusinessError("ADDON_NOT_FOUND", "addon not found", ErrAddonNotFound)
	}

	addon, err := f.addonRepo.ByUUID(ctx, addonUUID)
	if err != nil {
		return nil, err
	}
	if addon == nil {
		return nil, NewBusinessError("ADDON_NOT_FOUND", "addon not found", ErrAddonNotFound)
	}

	if req.Name != nil {
		addon.Name = *req.Name
	}
	if req.Description != nil {
		addon.Description = *req.Description
	}
	if req.Price != nil {
		addon.Price = *req.Price
	}
	if req.Duration != nil {
		addon.Duration = *req.Duration
	}
	if req.LinkedCategories != nil {
		addon.LinkedCategories = pq.StringArray(*req.LinkedCategories)
	}
	if req.LinkedSizes != nil {
		addon.LinkedSizes = pq.StringArray(*req.LinkedSizes)
	}
	if req.SortOrder != nil {
		addon.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		addon.IsActive = utils.ToPtr(*req.IsActive)
	}

	if err := f.addonRepo.Update(ctx, addon); err != nil {
		return nil, err
	}

	out := toAddonDTO(addon)
	return &out, nil
}

func toCategoryDTO(c *models.StyleCategory) dto.StyleCategoryDTO {
	sizes := make([]dto.ServiceSizeDTO, 0, len(c.Sizes))
	for _, s := range c.Sizes {
		sizes = append(sizes, dto.ServiceSizeDTO{
			UUID:     s.UUID.String(),
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.Duration,
		})
	}
	return dto.StyleCategoryDTO{
		UUID:        c.UUID.String(),
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Tag:         c.Tag,
		Sizes:       sizes,
	}
}

func toAddonDTO(a *models.Addon) dto.AddonDTO {
	return dto.AddonDTO{
		UUID:             a.UUID.String(),
		Name:             a.Name,
		Description:      a.Description,
		Price:            a.Price,
		Duration:         a.Duration,
		LinkedCategories: a.LinkedCategories,
		LinkedSizes:      a.LinkedSizes,
	}
}
