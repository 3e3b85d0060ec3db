package tests

import (
	"testing"

	"github.com/solangehq/maison-api/app/dto"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/solangehq/maison-api/repository"
	testingutil "github.com/solangehq/maison-api/testing"
	"github.com/solangehq/maison-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		categoryRepo := repository.NewStyleCategoryRepository(testDB.DB)
		addonRepo := repository.NewAddonRepository(testDB.DB)
		flow := businessflow.NewCatalogFlow(categoryRepo, addonRepo, testDB.DB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		var categoryUUID, sizeUUID, addonUUID string

		t.Run("EmptyCatalogServesFallback", func(t *testing.T) {
			catalog, err := flow.GetCatalog(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, catalog.Categories)

			var knotless *dto.StyleCategoryDTO
			for i := range catalog.Categories {
				if catalog.Categories[i].Slug == "knotless-braids" {
					knotless = &catalog.Categories[i]
				}
			}
			require.NotNil(t, knotless)
			require.Len(t, knotless.Sizes, 3)
			assert.Equal(t, "kb-m", knotless.Sizes[1].UUID)
			assert.Equal(t, 250, knotless.Sizes[1].Price)
		})

		t.Run("CreateCategoryWithSizes", func(t *testing.T) {
			created, err := flow.CreateCategory(ctx, &dto.CreateCategoryRequest{
				Slug: "  Passion-Twists  ",
				Name: "Passion Twists",
				Tag:  "New",
				Sizes: []dto.CreateSizeRequest{
					{Name: "Small", Price: 280, Duration: 360},
					{Name: "Medium", Price: 230, Duration: 280},
				},
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "passion-twists", created.Slug)
			require.Len(t, created.Sizes, 2)
			assert.NotEmpty(t, created.Sizes[0].UUID)
			categoryUUID = created.UUID
			sizeUUID = created.Sizes[0].UUID
		})

		t.Run("CreateCategoryRejectsDuplicateSlug", func(t *testing.T) {
			_, err := flow.CreateCategory(ctx, &dto.CreateCategoryRequest{
				Slug: "passion-twists",
				Name: "Passion Twists Again",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSlugAlreadyExists(err))
		})

		t.Run("ConfiguredCatalogReplacesFallback", func(t *testing.T) {
			catalog, err := flow.GetCatalog(ctx)
			require.NoError(t, err)
			require.Len(t, catalog.Categories, 1)
			assert.Equal(t, "passion-twists", catalog.Categories[0].Slug)
		})

		t.Run("CreateAddon", func(t *testing.T) {
			created, err := flow.CreateAddon(ctx, &dto.CreateAddonRequest{
				Name:             "Hair Jewelry",
				Price:            20,
				Duration:         15,
				LinkedCategories: []string{"passion-twists"},
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, created.UUID)
			assert.Equal(t, []string{"passion-twists"}, created.LinkedCategories)

			catalog, err := flow.GetCatalog(ctx)
			require.NoError(t, err)
			require.Len(t, catalog.Addons, 1)
			assert.Equal(t, "Hair Jewelry", catalog.Addons[0].Name)
			addonUUID = created.UUID
		})

		t.Run("UpdateCategoryRenames", func(t *testing.T) {
			updated, err := flow.UpdateCategory(ctx, categoryUUID, &dto.UpdateCategoryRequest{
				Name: utils.ToPtr("Passion Twists Deluxe"),
				Tag:  utils.ToPtr(""),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Passion Twists Deluxe", updated.Name)
			assert.Empty(t, updated.Tag)
			assert.Equal(t, "passion-twists", updated.Slug)
		})

		t.Run("UpdateCategoryRejectsTakenSlug", func(t *testing.T) {
			other, err := flow.CreateCategory(ctx, &dto.CreateCategoryRequest{
				Slug: "boho-knotless",
				Name: "Boho Knotless",
			}, metadata)
			require.NoError(t, err)

			_, err = flow.UpdateCategory(ctx, other.UUID, &dto.UpdateCategoryRequest{
				Slug: utils.ToPtr("passion-twists"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSlugAlreadyExists(err))
		})

		t.Run("UpdateCategoryNotFound", func(t *testing.T) {
			_, err := flow.UpdateCategory(ctx, "not-a-uuid", &dto.UpdateCategoryRequest{
				Name: utils.ToPtr("Ghost"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsCategoryNotFound(err))
		})

		t.Run("UpdateSizeReprices", func(t *testing.T) {
			updated, err := flow.UpdateSize(ctx, sizeUUID, &dto.UpdateSizeRequest{
				Price:    utils.ToPtr(310),
				Duration: utils.ToPtr(390),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, 310, updated.Price)
			assert.Equal(t, 390, updated.Duration)
			assert.Equal(t, "Small", updated.Name)
		})

		t.Run("UpdateSizeDeactivateHidesFromCatalog", func(t *testing.T) {
			_, err := flow.UpdateSize(ctx, sizeUUID, &dto.UpdateSizeRequest{
				IsActive: utils.ToPtr(false),
			}, metadata)
			require.NoError(t, err)

			catalog, err := flow.GetCatalog(ctx)
			require.NoError(t, err)
			for _, c := range catalog.Categories {
				if c.Slug != "passion-twists" {
					continue
				}
				require.Len(t, c.Sizes, 1)
				assert.Equal(t, "Medium", c.Sizes[0].Name)
			}
		})

		t.Run("UpdateSizeNotFound", func(t *testing.T) {
			_, err := flow.UpdateSize(ctx, "11111111-2222-3333-4444-555555555555", &dto.UpdateSizeRequest{
				Price: utils.ToPtr(100),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSizeNotFound(err))
		})

		t.Run("UpdateAddonRelinks", func(t *testing.T) {
			updated, err := flow.UpdateAddon(ctx, addonUUID, &dto.UpdateAddonRequest{
				Price:            utils.ToPtr(25),
				LinkedCategories: utils.ToPtr([]string{}),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, 25, updated.Price)
			assert.Empty(t, updated.LinkedCategories)
		})

		t.Run("UpdateAddonDeactivateRemovesFromCatalog", func(t *testing.T) {
			_, err := flow.UpdateAddon(ctx, addonUUID, &dto.UpdateAddonRequest{
				IsActive: utils.ToPtr(false),
			}, metadata)
			require.NoError(t, err)

			catalog, err := flow.GetCatalog(ctx)
			require.NoError(t, err)
			assert.Empty(t, catalog.Addons)
		})

		t.Run("UpdateAddonNotFound", func(t *testing.T) {
			_, err := flow.UpdateAddon(ctx, "not-a-uuid", &dto.UpdateAddonRequest{
				Price: utils.ToPtr(5),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAddonNotFound(err))
		})

		t.Run("DeactivatedCategoriesRestoreFallback", func(t *testing.T) {
			catalog, err := flow.GetCatalog(ctx)
			require.NoError(t, err)
			for _, c := range catalog.Categories {
				_, err := flow.UpdateCategory(ctx, c.UUID, &dto.UpdateCategoryRequest{
					IsActive: utils.ToPtr(false),
				}, metadata)
				require.NoError(t, err)
			}

			catalog, err = flow.GetCatalog(ctx)
			require.NoError(t, err)

			slugs := make([]string, 0, len(catalog.Categories))
			for _, c := range catalog.Categories {
				slugs = append(slugs, c.Slug)
			}
			assert.Contains(t, slugs, "knotless-braids")
			assert.NotContains(t, slugs, "passion-twists")
		})

		return nil
	})
	require.NoError(t, err)
}
