package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/app/services"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	"github.com/solangehq/maison-api/utils"
	"github.com/solangehq/maison-api/wizard"
	"github.com/xuri/excelize/v2"
)

// BookingFlow defines operations for client bookings and the back office.
type BookingFlow interface {
	SubmitBooking(ctx context.Context, req *dto.SubmitBookingRequest, metadata *ClientMetadata) (*dto.BookingDTO, error)
	GetByConfirmation(ctx context.Context, number string) (*dto.BookingDTO, error)
	ListBookings(ctx context.Context, req *dto.ListBookingsRequest) (*dto.ListBookingsResponse, error)
	UpdateStatus(ctx context.Context, bookingUUID string, req *dto.UpdateBookingStatusRequest, metadata *ClientMetadata) (*dto.BookingDTO, error)
	ExportBookings(ctx context.Context, req *dto.ListBookingsRequest) ([]byte, string, error)
	GetCalendar(ctx context.Context, from, to string) (*dto.CalendarResponse, error)
	HandleCheckoutCallback(ctx context.Context, req *dto.CheckoutCallbackRequest) error
}

// BookingFlowImpl implements BookingFlow.
type BookingFlowImpl struct {
	bookingRepo  repository.BookingRepository
	categoryRepo repository.StyleCategoryRepository
	addonRepo    repository.AddonRepository
	checkout     services.CheckoutClient
	notifier     services.NotificationService
	now          func() time.Time
}

// NewBookingFlow creates a new booking flow instance. checkout and
// notifier may be nil; submission then skips the deposit redirect and
// the confirmation email.
func NewBookingFlow(
	bookingRepo repository.BookingRepository,
	categoryRepo repository.StyleCategoryRepository,
	addonRepo repository.AddonRepository,
	checkout services.CheckoutClient,
	notifier services.NotificationService,
	now func() time.Time,
) BookingFlow {
	if now == nil {
		now = utils.UTCNow
	}
	return &BookingFlowImpl{
		bookingRepo:  bookingRepo,
		categoryRepo: categoryRepo,
		addonRepo:    addonRepo,
		checkout:     checkout,
		notifier:     notifier,
		now:          now,
	}
}

// duplicateWindow is how far back a matching pending booking absorbs a
// repeated submission instead of creating a second row.
const duplicateWindow = 10 * time.Minute

// selection is a resolved size choice with its category context.
type selection struct {
	categorySlug string
	categoryName string
	sizeName     string
	sizePrice    int
	sizeDuration int
	sizeUUID     uuid.UUID // Nil for fallback catalog sizes
}

func (f *BookingFlowImpl) SubmitBooking(ctx context.Context, req *dto.SubmitBookingRequest, metadata *ClientMetadata) (*dto.BookingDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, NewBusinessError("INVALID_REQUEST", "date must be YYYY-MM-DD", err)
	}
	if date.Weekday() == time.Sunday {
		return nil, NewBusinessError("SALON_CLOSED", "the salon is closed on Sundays", ErrSalonClosed)
	}
	if !wizard.IsBookableDate(f.now(), date) {
		return nil, NewBusinessErrorf("DATE_OUT_OF_RANGE", "date must fall within the next %d days", ErrDateOutOfRange, wizard.BookingWindowDays)
	}
	if !wizard.IsTimeSlot(req.TimeSlot) {
		return nil, NewBusinessErrorf("INVALID_TIME_SLOT", "time slot %q is not offered", ErrInvalidTimeSlot, req.TimeSlot)
	}

	sel, err := f.resolveSelection(ctx, req.SizeID)
	if err != nil {
		return nil, err
	}

	snapshots, err := f.resolveAddons(ctx, req.AddonIDs, sel)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	dup, err := f.bookingRepo.FindDuplicatePending(ctx, email, sel.categorySlug, sel.sizeName, date, req.TimeSlot, f.now().Add(-duplicateWindow))
	if err != nil {
		log.Printf("duplicate booking lookup failed for %s: %v", email, err)
	} else if dup != nil {
		out := ToBookingDTO(*dup)
		return &out, nil
	}

	totalPrice := sel.sizePrice
	totalDuration := sel.sizeDuration
	for _, a := range snapshots {
		totalPrice += a.Price
		totalDuration += a.Duration
	}

	addonsJSON, err := json.Marshal(snapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to encode addons: %w", err)
	}

	booking := models.Booking{
		CategorySlug:    sel.categorySlug,
		CategoryName:    sel.categoryName,
		SizeName:        sel.sizeName,
		SizePrice:       sel.sizePrice,
		SizeDuration:    sel.sizeDuration,
		Addons:          addonsJSON,
		AppointmentDate: date,
		TimeSlot:        req.TimeSlot,
		ClientFirstName: strings.TrimSpace(req.FirstName),
		ClientLastName:  strings.TrimSpace(req.LastName),
		ClientEmail:     email,
		ClientPhone:     strings.TrimSpace(req.Phone),
		Notes:           strings.TrimSpace(req.Notes),
		TotalPrice:      totalPrice,
		TotalDuration:   totalDuration,
		DepositAmount:   utils.DepositAmountUSD,
		Status:          models.BookingStatusPending,
		DepositStatus:   models.DepositUnpaid,
	}

	if err := f.bookingRepo.Save(ctx, &booking); err != nil {
		return nil, err
	}

	out := ToBookingDTO(booking)

	if f.checkout != nil {
		session, err := f.checkout.CreateDepositSession(ctx, services.CheckoutSessionInput{
			BookingUUID: booking.UUID.String(),
			ServiceName: fmt.Sprintf("%s (%s)", sel.categoryName, sel.sizeName),
			ClientEmail: email,
			AmountUSD:   booking.DepositAmount,
		})
		if err != nil {
			log.Printf("checkout session creation failed for booking %s: %v", booking.ConfirmationNumber, err)
		} else {
			out.CheckoutURL = session.URL
		}
	}

	if f.notifier != nil {
		subject, body := buildConfirmationEmail(&booking)
		if err := f.notifier.SendEmail(email, subject, body); err != nil {
			log.Printf("confirmation email failed for booking %s: %v", booking.ConfirmationNumber, err)
		}
	}

	return &out, nil
}

// resolveSelection looks the size up in the configured catalog, falling
// back to the built-in wizard catalog when the id is not a UUID.
func (f *BookingFlowImpl) resolveSelection(ctx context.Context, sizeID string) (*selection, error) {
	if _, err := utils.ParseUUID(sizeID); err == nil {
		size, err := f.categoryRepo.SizeByUUID(ctx, sizeID)
		if err != nil {
			return nil, err
		}
		if size == nil || !utils.IsTrue(size.IsActive) || size.Category == nil {
			return nil, NewBusinessError("SIZE_NOT_FOUND", "service size not found", ErrSizeNotFound)
		}
		return &selection{
			categorySlug: size.Category.Slug,
			categoryName: size.Category.Name,
			sizeName:     size.Name,
			sizePrice:    size.Price,
			sizeDuration: size.Duration,
			sizeUUID:     size.UUID,
		}, nil
	}

	fallback := wizard.FallbackCatalog()
	for _, cat := range fallback.Categories {
		if size := cat.SizeByID(sizeID); size != nil {
			return &selection{
				categorySlug: cat.Slug,
				categoryName: cat.Name,
				sizeName:     size.Name,
				sizePrice:    size.Price,
				sizeDuration: size.Duration,
			}, nil
		}
	}
	return nil, NewBusinessError("SIZE_NOT_FOUND", "service size not found", ErrSizeNotFound)
}

// resolveAddons validates each addon id against the selection and
// produces priced snapshots.
func (f *BookingFlowImpl) resolveAddons(ctx context.Context, addonIDs []string, sel *selection) ([]models.BookingAddon, error) {
	snapshots := make([]models.BookingAddon, 0, len(addonIDs))
	seen := make(map[string]bool, len(addonIDs))
	for _, id := range addonIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if _, err := utils.ParseUUID(id); err != nil {
			return nil, NewBusinessErrorf("ADDON_NOT_FOUND", "addon %q not found", ErrAddonNotFound, id)
		}
		addon, err := f.addonRepo.ByUUID(ctx, id)
		if err != nil {
			return nil, err
		}
		if addon == nil || !utils.IsTrue(addon.IsActive) {
			return nil, NewBusinessErrorf("ADDON_NOT_FOUND", "addon %q not found", ErrAddonNotFound, id)
		}
		if !addon.AppliesTo(sel.categorySlug, sel.sizeUUID) {
			return nil, NewBusinessErrorf("ADDON_NOT_APPLICABLE", "addon %q is not offered for the selected service", ErrAddonNotApplicable, addon.Name)
		}
		snapshots = append(snapshots, models.BookingAddon{
			UUID:     addon.UUID,
			Name:     addon.Name,
			Price:    addon.Price,
			Duration: addon.Duration,
		})
	}
	return snapshots, nil
}

func (f *BookingFlowImpl) GetByConfirmation(ctx context.Context, number string) (*dto.BookingDTO, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, NewBusinessError("INVALID_REQUEST", "confirmation number is required", nil)
	}

	booking, err := f.bookingRepo.ByConfirmationNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewBusinessError("BOOKING_NOT_FOUND", "booking not found", ErrBookingNotFound)
	}

	out := ToBookingDTO(*booking)
	return &out, nil
}

func (f *BookingFlowImpl) buildFilter(req *dto.ListBookingsRequest) (models.BookingFilter, error) {
	var filter models.BookingFilter
	if req == nil {
		return filter, nil
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}
	if req.Email != "" {
		email := strings.ToLower(req.Email)
		filter.ClientEmail = &email
	}
	if req.DateFrom != "" {
		from, err := time.ParseInLocation("2006-01-02", req.DateFrom, time.UTC)
		if err != nil {
			return filter, NewBusinessError("INVALID_REQUEST", "date_from must be YYYY-MM-DD", err)
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.ParseInLocation("2006-01-02", req.DateTo, time.UTC)
		if err != nil {
			return filter, NewBusinessError("INVALID_REQUEST", "date_to must be YYYY-MM-DD", err)
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return filter, NewBusinessError("INVALID_REQUEST", "date_from cannot be after date_to", ErrStartDateAfterEndDate)
	}
	return filter, nil
}

func (f *BookingFlowImpl) ListBookings(ctx context.Context, req *dto.ListBookingsRequest) (*dto.ListBookingsResponse, error) {
	filter, err := f.buildFilter(req)
	if err != nil {
		return nil, err
	}

	page, pageSize := 1, 20
	if req != nil {
		if req.Page > 0 {
			page = req.Page
		}
		if req.PageSize > 0 {
			pageSize = req.PageSize
		}
	}

	rows, err := f.bookingRepo.ListRecent(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	total, err := f.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BookingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToBookingDTO(*row))
	}

	return &dto.ListBookingsResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (f *BookingFlowImpl) UpdateStatus(ctx context.Context, bookingUUID string, req *dto.UpdateBookingStatusRequest, metadata *ClientMetadata) (*dto.BookingDTO, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}
	switch req.Status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted:
	default:
		return nil, NewBusinessErrorf("INVALID_STATUS", "status %q is not valid", ErrInvalidBookingStatus, req.Status)
	}

	booking, err := f.bookingRepo.ByUUID(ctx, bookingUUID)
	if err != nil {
		return nil, NewBusinessError("BOOKING_NOT_FOUND", "booking not found", ErrBookingNotFound)
	}
	if booking == nil {
		return nil, NewBusinessError("BOOKING_NOT_FOUND", "booking not found", ErrBookingNotFound)
	}

	if err := f.bookingRepo.UpdateStatus(ctx, booking.ID, req.Status); err != nil {
		return nil, err
	}

	booking.Status = req.Status
	out := ToBookingDTO(*booking)
	return &out, nil
}

var exportHeader = []string{
	"Confirmation", "Date", "Time", "First Name", "Last Name", "Email", "Phone",
	"Service", "Size", "Addons", "Total ($)", "Deposit ($)", "Deposit Status", "Status", "Created At",
}

// ExportBookings renders the filtered booking list as an xlsx workbook.
func (f *BookingFlowImpl) ExportBookings(ctx context.Context, req *dto.ListBookingsRequest) ([]byte, string, error) {
	filter, err := f.buildFilter(req)
	if err != nil {
		return nil, "", err
	}

	rows, err := f.bookingRepo.ListRecent(ctx, filter, 0, 0)
	if err != nil {
		return nil, "", err
	}

	fx := excelize.NewFile()
	defer func() { _ = fx.Close() }()

	sheet := "Bookings"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = fx.SetCellValue(sheet, cell, title)
	}

	for i, b := range rows {
		d := ToBookingDTO(*b)
		addonNames := make([]string, 0, len(d.Addons))
		for _, a := range d.Addons {
			addonNames = append(addonNames, a.Name)
		}
		values := []any{
			d.ConfirmationNumber,
			d.Date,
			d.TimeSlot,
			d.FirstName,
			d.LastName,
			d.Email,
			d.Phone,
			d.CategoryName,
			d.SizeName,
			strings.Join(addonNames, ", "),
			d.TotalPrice,
			d.DepositAmount,
			d.DepositStatus,
			d.Status,
			d.CreatedAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = fx.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := fx.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render bookings export: %w", err)
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", f.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (f *BookingFlowImpl) GetCalendar(ctx context.Context, from, to string) (*dto.CalendarResponse, error) {
	now := f.now()
	fromDate := utils.TruncateToDay(now)
	toDate := fromDate.AddDate(0, 0, 30)

	var err error
	if from != "" {
		fromDate, err = time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			return nil, NewBusinessError("INVALID_REQUEST", "from must be YYYY-MM-DD", err)
		}
	}
	if to != "" {
		toDate, err = time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			return nil, NewBusinessError("INVALID_REQUEST", "to must be YYYY-MM-DD", err)
		}
	}
	if fromDate.After(toDate) {
		return nil, NewBusinessError("INVALID_REQUEST", "from cannot be after to", ErrStartDateAfterEndDate)
	}

	rows, err := f.bookingRepo.ListForDateRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]dto.BookingDTO)
	var order []string
	for _, b := range rows {
		d := ToBookingDTO(*b)
		if _, ok := byDate[d.Date]; !ok {
			order = append(order, d.Date)
		}
		byDate[d.Date] = append(byDate[d.Date], d)
	}

	days := make([]dto.CalendarDayDTO, 0, len(order))
	for _, date := range order {
		days = append(days, dto.CalendarDayDTO{Date: date, Bookings: byDate[date]})
	}

	return &dto.CalendarResponse{
		From: fromDate.Format("2006-01-02"),
		To:   toDate.Format("2006-01-02"),
		Days: days,
	}, nil
}

// HandleCheckoutCallback verifies a completed deposit checkout with the
// provider and records the payment. Replays of an already-recorded
// session succeed without side effects.
func (f *BookingFlowImpl) HandleCheckoutCallback(ctx context.Context, req *dto.CheckoutCallbackRequest) error {
	if req == nil {
		return NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}
	if f.checkout == nil {
		return NewBusinessError("CHECKOUT_UNAVAILABLE", "checkout provider not configured", ErrCheckoutUnavailable)
	}

	status, err := f.checkout.GetSession(ctx, req.SessionID)
	if err != nil {
		return NewBusinessError("CHECKOUT_SESSION_INVALID", "failed to verify checkout session", err)
	}
	if !status.Paid {
		return NewBusinessError("CHECKOUT_SESSION_INVALID", "checkout session is not paid", ErrCheckoutSessionInvalid)
	}

	bookingUUID := status.BookingUUID
	if bookingUUID == "" {
		bookingUUID = req.Reference
	}

	booking, err := f.bookingRepo.ByUUID(ctx, bookingUUID)
	if err != nil {
		return NewBusinessError("BOOKING_NOT_FOUND", "booking not found", ErrBookingNotFound)
	}
	if booking == nil {
		return NewBusinessError("BOOKING_NOT_FOUND", "booking not found", ErrBookingNotFound)
	}

	if booking.DepositStatus == models.DepositPaid {
		return nil
	}

	if err := f.bookingRepo.MarkDepositPaid(ctx, booking.ID, req.SessionID); err != nil {
		return err
	}
	if booking.IsPending() {
		if err := f.bookingRepo.UpdateStatus(ctx, booking.ID, models.BookingStatusConfirmed); err != nil {
			return err
		}
	}
	return nil
}

func buildConfirmationEmail(b *models.Booking) (subject, body string) {
	subject = fmt.Sprintf("Your appointment request %s", b.ConfirmationNumber)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", b.ClientFirstName)
	sb.WriteString("Thank you for booking with us. Here are your appointment details:\n\n")
	fmt.Fprintf(&sb, "Confirmation number: %s\n", b.ConfirmationNumber)
	fmt.Fprintf(&sb, "Service: %s (%s)\n", b.CategoryName, b.SizeName)
	fmt.Fprintf(&sb, "Date: %s at %s\n", b.AppointmentDate.Format("Monday, January 2, 2006"), b.TimeSlot)
	fmt.Fprintf(&sb, "Estimated duration: %s\n", formatDuration(b.TotalDuration))
	fmt.Fprintf(&sb, "Total: $%d (a $%d deposit secures your slot)\n\n", b.TotalPrice, b.DepositAmount)
	sb.WriteString("We will confirm your appointment shortly. Reply to this email if anything changes.\n")

	return subject, sb.String()
}

func formatDuration(mins int) string {
	h := mins / 60
	m := mins % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
