package tests

import (
	"testing"
	"time"

	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/app/services"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	testingutil "github.com/solangehq/maison-api/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	svc, err := services.NewTokenService(15*time.Minute, 24*time.Hour, "maison-api", "maison-admin", false, "", "", "test-secret-key-with-enough-entropy")
	require.NoError(t, err)
	return svc
}

func TestAdminAuthFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		adminRepo := repository.NewAdminRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := businessflow.NewAdminAuthFlow(adminRepo, newTestTokenService(t))
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		admin, err := fixtures.CreateTestAdmin()
		require.NoError(t, err)

		t.Run("LoginSuccess", func(t *testing.T) {
			result, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    admin.Email,
				Password: "TestPass123!",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, admin.Email, result.Admin.Email)
			assert.Equal(t, models.AdminRoleOwner, result.Admin.Role)
			assert.NotEmpty(t, result.Session.AccessToken)
			assert.NotEmpty(t, result.Session.RefreshToken)
			assert.Equal(t, "Bearer", result.Session.TokenType)
			assert.Equal(t, int((15 * time.Minute).Seconds()), result.Session.ExpiresIn)
			assert.NotEmpty(t, result.Admin.LastLoginAt)
		})

		t.Run("LoginWrongPassword", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    admin.Email,
				Password: "WrongPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("LoginUnknownEmail", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAdminNotFound(err))
		})

		t.Run("LoginInactiveAccount", func(t *testing.T) {
			inactive, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, testDB.DB.Model(&models.Admin{}).
				Where("id = ?", inactive.ID).
				Update("is_active", false).Error)

			_, err = flow.Login(ctx, &dto.LoginRequest{
				Email:    inactive.Email,
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAdminInactive(err))
		})

		t.Run("Me", func(t *testing.T) {
			result, err := flow.Me(ctx, admin.ID)
			require.NoError(t, err)
			assert.Equal(t, admin.Email, result.Email)
			assert.Equal(t, "Test Owner", result.DisplayName)
		})

		t.Run("MeUnknownAdmin", func(t *testing.T) {
			_, err := flow.Me(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsAdminNotFound(err))
		})

		t.Run("Refresh", func(t *testing.T) {
			login, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    admin.Email,
				Password: "TestPass123!",
			}, metadata)
			require.NoError(t, err)

			session, err := flow.Refresh(ctx, &dto.RefreshRequest{
				RefreshToken: login.Session.RefreshToken,
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEmpty(t, session.RefreshToken)

			// Access tokens are not accepted for refresh
			_, err = flow.Refresh(ctx, &dto.RefreshRequest{
				RefreshToken: login.Session.AccessToken,
			}, metadata)
			require.Error(t, err)
		})

		t.Run("RefreshRejectsGarbage", func(t *testing.T) {
			_, err := flow.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "junk"}, metadata)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_TOKEN", bizErr.Code)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestEnsureSeedAdmin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		adminRepo := repository.NewAdminRepository(testDB.DB)
		flow := businessflow.NewAdminAuthFlow(adminRepo, newTestTokenService(t))
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("CreatesInitialAccount", func(t *testing.T) {
			require.NoError(t, flow.EnsureSeedAdmin(ctx, "Owner@MaisonSolange.com", "SeedPass123!", "Solange"))

			result, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "owner@maisonsolange.com",
				Password: "SeedPass123!",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Solange", result.Admin.DisplayName)
		})

		t.Run("ExistingAccountIsLeftAlone", func(t *testing.T) {
			require.NoError(t, flow.EnsureSeedAdmin(ctx, "owner@maisonsolange.com", "ChangedPass456!", "Someone Else"))

			// The original password still works
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "owner@maisonsolange.com",
				Password: "SeedPass123!",
			}, metadata)
			require.NoError(t, err)
		})

		t.Run("BlankCredentialsAreANoOp", func(t *testing.T) {
			require.NoError(t, flow.EnsureSeedAdmin(ctx, "", "", ""))
		})

		return nil
	})
	require.NoError(t, err)
}
