package tests

import (
	"context"
	"errors"
	"strings"
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

// fixedNow pins the booking window to a known Monday so date assertions
// do not depend on when the suite runs.
var fixedNow = time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

// flakyDupRepo fails the duplicate lookup while leaving every other
// booking operation intact.
type flakyDupRepo struct {
	repository.BookingRepository
}

func (r *flakyDupRepo) FindDuplicatePending(ctx context.Context, email, categorySlug, sizeName string, date time.Time, timeSlot string, since time.Time) (*models.Booking, error) {
	return nil, errors.New("connection reset by peer")
}

func testNow() time.Time { return fixedNow }

func submitRequest(sizeID, date, timeSlot string) *dto.SubmitBookingRequest {
	return &dto.SubmitBookingRequest{
		SizeID:    sizeID,
		Date:      date,
		TimeSlot:  timeSlot,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Phone:     "+15551234567",
	}
}

func TestBookingFlowSubmit(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		bookingRepo := repository.NewBookingRepository(testDB.DB)
		categoryRepo := repository.NewStyleCategoryRepository(testDB.DB)
		addonRepo := repository.NewAddonRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		flow := businessflow.NewBookingFlow(bookingRepo, categoryRepo, addonRepo, nil, nil, testNow)

		category, err := fixtures.CreateTestCategory("knotless-braids", "Knotless Braids",
			[3]any{"Medium", 250, 300})
		require.NoError(t, err)
		sizeID := category.Sizes[0].UUID.String()

		addon, err := fixtures.CreateTestAddon("Deep Conditioning Treatment", 25, 30)
		require.NoError(t, err)
		boxOnly, err := fixtures.CreateTestAddon("Beads", 15, 20, "box-braids")
		require.NoError(t, err)

		t.Run("SuccessWithAddon", func(t *testing.T) {
			req := submitRequest(sizeID, "2026-09-08", "9:00 AM")
			req.AddonIDs = []string{addon.UUID.String()}

			result, err := flow.SubmitBooking(ctx, req, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Contains(t, result.ConfirmationNumber, "SOL-")
			assert.Equal(t, "Knotless Braids", result.CategoryName)
			assert.Equal(t, "Medium", result.SizeName)
			assert.Equal(t, 275, result.TotalPrice)
			assert.Equal(t, 330, result.TotalDuration)
			assert.Equal(t, 30, result.DepositAmount)
			assert.Equal(t, models.BookingStatusPending, result.Status)
			assert.Equal(t, models.DepositUnpaid, result.DepositStatus)
			assert.Equal(t, "ada@example.com", result.Email)
			assert.Empty(t, result.CheckoutURL)
			require.Len(t, result.Addons, 1)
			assert.Equal(t, "Deep Conditioning Treatment", result.Addons[0].Name)
		})

		t.Run("FallbackCatalogSize", func(t *testing.T) {
			result, err := flow.SubmitBooking(ctx, submitRequest("kb-m", "2026-09-09", "10:00 AM"), metadata)
			require.NoError(t, err)
			assert.Equal(t, "Knotless Braids", result.CategoryName)
			assert.Equal(t, "Medium", result.SizeName)
			assert.Equal(t, 250, result.TotalPrice)
			assert.Equal(t, 300, result.TotalDuration)
		})

		t.Run("SizeNotFound", func(t *testing.T) {
			_, err := flow.SubmitBooking(ctx, submitRequest("no-such-size", "2026-09-08", "9:00 AM"), metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSizeNotFound(err))
		})

		t.Run("SalonClosedOnSunday", func(t *testing.T) {
			_, err := flow.SubmitBooking(ctx, submitRequest(sizeID, "2026-09-13", "9:00 AM"), metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSalonClosed(err))
		})

		t.Run("DateOutOfRange", func(t *testing.T) {
			_, err := flow.SubmitBooking(ctx, submitRequest(sizeID, "2026-10-15", "9:00 AM"), metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsDateOutOfRange(err))

			_, err = flow.SubmitBooking(ctx, submitRequest(sizeID, "2026-09-04", "9:00 AM"), metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsDateOutOfRange(err))
		})

		t.Run("InvalidTimeSlot", func(t *testing.T) {
			_, err := flow.SubmitBooking(ctx, submitRequest(sizeID, "2026-09-08", "8:00 AM"), metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidTimeSlot(err))
		})

		t.Run("AddonNotFound", func(t *testing.T) {
			req := submitRequest(sizeID, "2026-09-08", "11:00 AM")
			req.AddonIDs = []string{testingutil.GenerateUUID()}
			_, err := flow.SubmitBooking(ctx, req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAddonNotFound(err))
		})

		t.Run("AddonNotApplicable", func(t *testing.T) {
			req := submitRequest(sizeID, "2026-09-08", "11:00 AM")
			req.AddonIDs = []string{boxOnly.UUID.String()}
			_, err := flow.SubmitBooking(ctx, req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAddonNotApplicable(err))
		})

		t.Run("DuplicateSubmissionAbsorbed", func(t *testing.T) {
			req := submitRequest(sizeID, "2026-09-10", "1:00 PM")
			first, err := flow.SubmitBooking(ctx, req, metadata)
			require.NoError(t, err)

			second, err := flow.SubmitBooking(ctx, req, metadata)
			require.NoError(t, err)
			assert.Equal(t, first.ConfirmationNumber, second.ConfirmationNumber)
			assert.Equal(t, first.UUID, second.UUID)
		})

		t.Run("SameSizeNameOtherCategoryNotAbsorbed", func(t *testing.T) {
			knotless, err := flow.SubmitBooking(ctx, submitRequest("kb-m", "2026-09-11", "2:00 PM"), metadata)
			require.NoError(t, err)

			box, err := flow.SubmitBooking(ctx, submitRequest("bb-m", "2026-09-11", "2:00 PM"), metadata)
			require.NoError(t, err)
			assert.NotEqual(t, knotless.UUID, box.UUID)
			assert.NotEqual(t, knotless.ConfirmationNumber, box.ConfirmationNumber)
			assert.Equal(t, "Box Braids", box.CategoryName)
		})

		t.Run("DuplicateLookupFailureStillBooks", func(t *testing.T) {
			flaky := businessflow.NewBookingFlow(&flakyDupRepo{bookingRepo}, categoryRepo, addonRepo, nil, nil, testNow)
			result, err := flaky.SubmitBooking(ctx, submitRequest("kb-s", "2026-09-12", "9:00 AM"), metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, result.ConfirmationNumber)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBookingFlowBackOffice(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		bookingRepo := repository.NewBookingRepository(testDB.DB)
		categoryRepo := repository.NewStyleCategoryRepository(testDB.DB)
		addonRepo := repository.NewAddonRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		flow := businessflow.NewBookingFlow(bookingRepo, categoryRepo, addonRepo, nil, nil, testNow)

		booking, err := fixtures.CreateTestBooking("ada@example.com", "Medium", "2026-09-08", "9:00 AM")
		require.NoError(t, err)
		_, err = fixtures.CreateTestBooking("grace@example.com", "Medium", "2026-09-09", "10:00 AM")
		require.NoError(t, err)

		t.Run("GetByConfirmationCaseInsensitive", func(t *testing.T) {
			found, err := flow.GetByConfirmation(ctx, "  "+strings.ToLower(booking.ConfirmationNumber)+"  ")
			require.NoError(t, err)
			assert.Equal(t, booking.ConfirmationNumber, found.ConfirmationNumber)
		})

		t.Run("GetByConfirmationNotFound", func(t *testing.T) {
			_, err := flow.GetByConfirmation(ctx, "SOL-ZZZZZZ")
			require.Error(t, err)
			assert.True(t, businessflow.IsBookingNotFound(err))
		})

		t.Run("ListBookingsFilterByEmail", func(t *testing.T) {
			result, err := flow.ListBookings(ctx, &dto.ListBookingsRequest{Email: "Ada@example.com"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), result.Total)
			require.Len(t, result.Items, 1)
			assert.Equal(t, "ada@example.com", result.Items[0].Email)
		})

		t.Run("ListBookingsPaging", func(t *testing.T) {
			result, err := flow.ListBookings(ctx, &dto.ListBookingsRequest{Page: 1, PageSize: 1})
			require.NoError(t, err)
			assert.Equal(t, int64(2), result.Total)
			assert.Len(t, result.Items, 1)
			assert.Equal(t, 1, result.PageSize)
		})

		t.Run("ListBookingsRejectsInvertedRange", func(t *testing.T) {
			_, err := flow.ListBookings(ctx, &dto.ListBookingsRequest{
				DateFrom: "2026-09-20",
				DateTo:   "2026-09-10",
			})
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_REQUEST", bizErr.Code)
		})

		t.Run("UpdateStatus", func(t *testing.T) {
			result, err := flow.UpdateStatus(ctx, booking.UUID.String(),
				&dto.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.BookingStatusConfirmed, result.Status)
		})

		t.Run("UpdateStatusRejectsUnknown", func(t *testing.T) {
			_, err := flow.UpdateStatus(ctx, booking.UUID.String(),
				&dto.UpdateBookingStatusRequest{Status: "archived"}, metadata)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_STATUS", bizErr.Code)
		})

		t.Run("UpdateStatusNotFound", func(t *testing.T) {
			_, err := flow.UpdateStatus(ctx, testingutil.GenerateUUID(),
				&dto.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsBookingNotFound(err))
		})

		t.Run("GetCalendarGroupsByDate", func(t *testing.T) {
			result, err := flow.GetCalendar(ctx, "2026-09-01", "2026-09-30")
			require.NoError(t, err)
			assert.Equal(t, "2026-09-01", result.From)
			assert.Equal(t, "2026-09-30", result.To)
			require.Len(t, result.Days, 2)
			for _, day := range result.Days {
				require.NotEmpty(t, day.Bookings)
				for _, b := range day.Bookings {
					assert.Equal(t, day.Date, b.Date)
				}
			}
		})

		t.Run("GetCalendarRejectsInvertedRange", func(t *testing.T) {
			_, err := flow.GetCalendar(ctx, "2026-09-30", "2026-09-01")
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_REQUEST", bizErr.Code)
		})

		t.Run("ExportBookings", func(t *testing.T) {
			data, filename, err := flow.ExportBookings(ctx, &dto.ListBookingsRequest{})
			require.NoError(t, err)
			assert.Equal(t, "bookings-2026-09-07.xlsx", filename)
			assert.NotEmpty(t, data)
			// xlsx files are zip archives
			assert.Equal(t, []byte{'P', 'K'}, data[:2])
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBookingFlowCheckout(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		bookingRepo := repository.NewBookingRepository(testDB.DB)
		categoryRepo := repository.NewStyleCategoryRepository(testDB.DB)
		addonRepo := repository.NewAddonRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		checkout := services.NewMockCheckoutClient()
		flow := businessflow.NewBookingFlow(bookingRepo, categoryRepo, addonRepo, checkout, nil, testNow)

		t.Run("SubmitReturnsCheckoutURL", func(t *testing.T) {
			result, err := flow.SubmitBooking(ctx, submitRequest("kb-m", "2026-09-08", "9:00 AM"), metadata)
			require.NoError(t, err)
			assert.Contains(t, result.CheckoutURL, "https://checkout.example.com/pay/mock_")
		})

		t.Run("CallbackMarksDepositPaidAndConfirms", func(t *testing.T) {
			booking, err := fixtures.CreateTestBooking("paid@example.com", "Medium", "2026-09-10", "1:00 PM")
			require.NoError(t, err)

			req := &dto.CheckoutCallbackRequest{
				SessionID: "mock_" + booking.UUID.String(),
				Reference: booking.UUID.String(),
				Status:    "paid",
			}
			require.NoError(t, flow.HandleCheckoutCallback(ctx, req))

			found, err := bookingRepo.ByUUID(ctx, booking.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, models.DepositPaid, found.DepositStatus)
			assert.Equal(t, models.BookingStatusConfirmed, found.Status)
			require.NotNil(t, found.CheckoutRef)
			assert.Equal(t, req.SessionID, *found.CheckoutRef)

			// Replays are harmless
			require.NoError(t, flow.HandleCheckoutCallback(ctx, req))
		})

		t.Run("CallbackUnknownBooking", func(t *testing.T) {
			missing := testingutil.GenerateUUID()
			err := flow.HandleCheckoutCallback(ctx, &dto.CheckoutCallbackRequest{
				SessionID: "mock_" + missing,
				Reference: missing,
				Status:    "paid",
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsBookingNotFound(err))
		})

		t.Run("CallbackWithoutProvider", func(t *testing.T) {
			bare := businessflow.NewBookingFlow(bookingRepo, categoryRepo, addonRepo, nil, nil, testNow)
			err := bare.HandleCheckoutCallback(ctx, &dto.CheckoutCallbackRequest{
				SessionID: "mock_x",
				Reference: "x",
				Status:    "paid",
			})
			require.Error(t, err)
			assert.True(t, businessflow.IsCheckoutUnavailable(err))
		})

		return nil
	})
	require.NoError(t, err)
}
