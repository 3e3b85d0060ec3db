// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"strings"
	"testing"
	"time"

	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	testingutil "github.com/solangehq/maison-api/testing"
	"github.com/solangehq/maison-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaAssetRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewMediaAssetRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndByUUID", func(t *testing.T) {
			asset, err := fixtures.CreateTestMediaAsset()
			require.NoError(t, err)
			assert.NotZero(t, asset.ID)

			found, err := repo.ByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, asset.OriginalFilename, found.OriginalFilename)
			assert.Equal(t, asset.SizeBytes, found.SizeBytes)
			assert.Equal(t, asset.Payload, found.Payload)
		})

		t.Run("ByUUIDNotFound", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, testingutil.GenerateUUID())
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ListMetadataNewestFirstWithoutPayload", func(t *testing.T) {
			first, err := fixtures.CreateTestMediaAsset()
			require.NoError(t, err)
			second, err := fixtures.CreateTestMediaAsset()
			require.NoError(t, err)

			items, err := repo.ListMetadata(ctx, 50, 0)
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(items), 2)

			var firstIdx, secondIdx int = -1, -1
			for i, item := range items {
				assert.Empty(t, item.Payload)
				if item.UUID == first.UUID {
					firstIdx = i
				}
				if item.UUID == second.UUID {
					secondIdx = i
				}
			}
			require.NotEqual(t, -1, firstIdx)
			require.NotEqual(t, -1, secondIdx)
			assert.Less(t, secondIdx, firstIdx)
		})

		t.Run("DeleteByUUID", func(t *testing.T) {
			asset, err := fixtures.CreateTestMediaAsset()
			require.NoError(t, err)

			deleted, err := repo.DeleteByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			assert.True(t, deleted)

			found, err := repo.ByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			assert.Nil(t, found)

			deleted, err = repo.DeleteByUUID(ctx, asset.UUID.String())
			require.NoError(t, err)
			assert.False(t, deleted)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestStyleCategoryRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewStyleCategoryRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		category, err := fixtures.CreateTestCategory("knotless-braids", "Knotless Braids",
			[3]any{"Small", 300, 420}, [3]any{"Medium", 250, 300})
		require.NoError(t, err)

		t.Run("BySlug", func(t *testing.T) {
			found, err := repo.BySlug(ctx, "knotless-braids")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Knotless Braids", found.Name)
		})

		t.Run("BySlugNotFound", func(t *testing.T) {
			found, err := repo.BySlug(ctx, "missing-slug")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ListActiveWithSizes", func(t *testing.T) {
			categories, err := repo.ListActiveWithSizes(ctx)
			require.NoError(t, err)
			require.Len(t, categories, 1)
			require.Len(t, categories[0].Sizes, 2)
			assert.Equal(t, "Small", categories[0].Sizes[0].Name)
			assert.Equal(t, 300, categories[0].Sizes[0].Price)
			assert.Equal(t, "Medium", categories[0].Sizes[1].Name)
		})

		t.Run("ListActiveSkipsInactive", func(t *testing.T) {
			_, err := fixtures.CreateTestCategory("retired-style", "Retired Style", [3]any{"Only", 100, 60})
			require.NoError(t, err)
			require.NoError(t, testDB.DB.Model(&models.StyleCategory{}).
				Where("slug = ?", "retired-style").
				Update("is_active", false).Error)

			categories, err := repo.ListActiveWithSizes(ctx)
			require.NoError(t, err)
			for _, c := range categories {
				assert.NotEqual(t, "retired-style", c.Slug)
			}
		})

		t.Run("SizeByUUIDPreloadsCategory", func(t *testing.T) {
			size, err := repo.SizeByUUID(ctx, category.Sizes[1].UUID.String())
			require.NoError(t, err)
			require.NotNil(t, size)
			assert.Equal(t, "Medium", size.Name)
			require.NotNil(t, size.Category)
			assert.Equal(t, "knotless-braids", size.Category.Slug)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAddonRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewAddonRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		addon, err := fixtures.CreateTestAddon("Deep Conditioning Treatment", 25, 30)
		require.NoError(t, err)
		linked, err := fixtures.CreateTestAddon("Beads", 15, 20, "box-braids")
		require.NoError(t, err)

		t.Run("ByUUID", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, addon.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, 25, found.Price)
		})

		t.Run("ListActive", func(t *testing.T) {
			addons, err := repo.ListActive(ctx)
			require.NoError(t, err)
			assert.Len(t, addons, 2)
		})

		t.Run("AppliesTo", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, linked.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.True(t, found.AppliesTo("box-braids", addon.UUID))
			assert.False(t, found.AppliesTo("cornrows", addon.UUID))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBookingRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewBookingRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveGeneratesConfirmationNumber", func(t *testing.T) {
			booking, err := fixtures.CreateTestBooking("ada@example.com", "Medium", "2026-10-05", "9:00 AM")
			require.NoError(t, err)
			assert.NotZero(t, booking.ID)
			assert.Contains(t, booking.ConfirmationNumber, "SOL-")
			assert.Len(t, booking.ConfirmationNumber, 10)
		})

		t.Run("ByConfirmationNumber", func(t *testing.T) {
			booking, err := fixtures.CreateTestBooking("grace@example.com", "Medium", "2026-10-06", "10:00 AM")
			require.NoError(t, err)

			found, err := repo.ByConfirmationNumber(ctx, booking.ConfirmationNumber)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "grace@example.com", found.ClientEmail)
		})

		t.Run("UpdateStatus", func(t *testing.T) {
			booking, err := fixtures.CreateTestBooking("joan@example.com", "Medium", "2026-10-07", "11:00 AM")
			require.NoError(t, err)

			require.NoError(t, repo.UpdateStatus(ctx, booking.ID, models.BookingStatusConfirmed))

			found, err := repo.ByUUID(ctx, booking.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, models.BookingStatusConfirmed, found.Status)
		})

		t.Run("MarkDepositPaid", func(t *testing.T) {
			booking, err := fixtures.CreateTestBooking("mary@example.com", "Medium", "2026-10-08", "1:00 PM")
			require.NoError(t, err)

			require.NoError(t, repo.MarkDepositPaid(ctx, booking.ID, "cs_test_123"))

			found, err := repo.ByUUID(ctx, booking.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, models.DepositPaid, found.DepositStatus)
			require.NotNil(t, found.CheckoutRef)
			assert.Equal(t, "cs_test_123", *found.CheckoutRef)
		})

		t.Run("FindDuplicatePending", func(t *testing.T) {
			booking, err := fixtures.CreateTestBooking("dup@example.com", "Medium", "2026-10-09", "2:00 PM")
			require.NoError(t, err)

			date := time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)
			since := utils.UTCNow().Add(-10 * time.Minute)

			found, err := repo.FindDuplicatePending(ctx, "dup@example.com", "knotless-braids", "Medium", date, "2:00 PM", since)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, booking.UUID, found.UUID)

			// A different slot is not a duplicate
			found, err = repo.FindDuplicatePending(ctx, "dup@example.com", "knotless-braids", "Medium", date, "3:30 PM", since)
			require.NoError(t, err)
			assert.Nil(t, found)

			// Same size name under another category is not a duplicate
			found, err = repo.FindDuplicatePending(ctx, "dup@example.com", "box-braids", "Medium", date, "2:00 PM", since)
			require.NoError(t, err)
			assert.Nil(t, found)

			// Cancelled bookings are not duplicates
			require.NoError(t, repo.UpdateStatus(ctx, booking.ID, models.BookingStatusCancelled))
			found, err = repo.FindDuplicatePending(ctx, "dup@example.com", "knotless-braids", "Medium", date, "2:00 PM", since)
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ListForDateRangeExcludesCancelled", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			kept, err := fixtures.CreateTestBooking("kept@example.com", "Medium", "2026-11-02", "9:00 AM")
			require.NoError(t, err)
			cancelled, err := fixtures.CreateTestBooking("gone@example.com", "Medium", "2026-11-03", "9:00 AM")
			require.NoError(t, err)
			require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, models.BookingStatusCancelled))

			from := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
			bookings, err := repo.ListForDateRange(ctx, from, to)
			require.NoError(t, err)
			require.Len(t, bookings, 1)
			assert.Equal(t, kept.UUID, bookings[0].UUID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSiteSettingsRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewSiteSettingsRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("CurrentEmpty", func(t *testing.T) {
			settings, err := repo.Current(ctx)
			require.NoError(t, err)
			assert.Nil(t, settings)
		})

		t.Run("SaveAndUpdate", func(t *testing.T) {
			settings := &models.SiteSettings{
				SalonName: "Maison Solange",
				Tagline:   "Braids with intention",
			}
			require.NoError(t, repo.Save(ctx, settings))

			settings.Tagline = "Crafted protective styles"
			require.NoError(t, repo.Update(ctx, settings))

			current, err := repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, current)
			assert.Equal(t, "Crafted protective styles", current.Tagline)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAdminRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewAdminRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		admin, err := fixtures.CreateTestAdmin()
		require.NoError(t, err)

		t.Run("ByEmailCaseInsensitive", func(t *testing.T) {
			found, err := repo.ByEmail(ctx, strings.ToUpper(admin.Email))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, admin.UUID, found.UUID)

			found, err = repo.ByEmail(ctx, "nobody@example.com")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("TouchLastLogin", func(t *testing.T) {
			at := utils.UTCNow().Truncate(time.Second)
			require.NoError(t, repo.TouchLastLogin(ctx, admin.ID, at))

			found, err := repo.ByUUID(ctx, admin.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			require.NotNil(t, found.LastLoginAt)
			assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
		})

		return nil
	})
	require.NoError(t, err)
}
