package tests

import (
	"testing"
	"time"

	"github.com/solangehq/maison-api/app/dto"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/solangehq/maison-api/repository"
	testingutil "github.com/solangehq/maison-api/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		settingsRepo := repository.NewSiteSettingsRepository(testDB.DB)
		mediaRepo := repository.NewMediaAssetRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := businessflow.NewSettingsFlow(settingsRepo, mediaRepo, nil, "maison", time.Minute)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("GetSettingsEmptyReturnsDefaults", func(t *testing.T) {
			settings, err := flow.GetSettings(ctx)
			require.NoError(t, err)
			require.NotNil(t, settings)
			assert.Empty(t, settings.SalonName)
			assert.Empty(t, settings.HeroMediaURL)
		})

		t.Run("UpdateCreatesSettings", func(t *testing.T) {
			result, err := flow.UpdateSettings(ctx, &dto.UpdateSiteSettingsRequest{
				SalonName:    "Maison Solange",
				Tagline:      "Braids with intention",
				ContactEmail: "hello@maisonsolange.com",
				InstagramURL: "https://instagram.com/maisonsolange",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Maison Solange", result.SalonName)
			assert.NotEmpty(t, result.UpdatedAt)

			settings, err := flow.GetSettings(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Braids with intention", settings.Tagline)
		})

		t.Run("UpdateSetsHeroMedia", func(t *testing.T) {
			asset, err := fixtures.CreateTestMediaAsset()
			require.NoError(t, err)

			heroUUID := asset.UUID.String()
			result, err := flow.UpdateSettings(ctx, &dto.UpdateSiteSettingsRequest{
				SalonName:     "Maison Solange",
				HeroMediaUUID: &heroUUID,
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "/api/v1/uploads/"+heroUUID, result.HeroMediaURL)
		})

		t.Run("UpdateRejectsUnknownHeroMedia", func(t *testing.T) {
			missing := testingutil.GenerateUUID()
			_, err := flow.UpdateSettings(ctx, &dto.UpdateSiteSettingsRequest{
				SalonName:     "Maison Solange",
				HeroMediaUUID: &missing,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsMediaNotFound(err))
		})

		t.Run("UpdateClearsHeroMedia", func(t *testing.T) {
			result, err := flow.UpdateSettings(ctx, &dto.UpdateSiteSettingsRequest{
				SalonName: "Maison Solange",
			}, metadata)
			require.NoError(t, err)
			assert.Empty(t, result.HeroMediaURL)
		})

		return nil
	})
	require.NoError(t, err)
}
