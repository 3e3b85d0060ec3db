// Package testing provides test utilities and database setup for the booking system
package testing

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCategory creates a style category with the given sizes.
// Sizes are tuples of (name, price, duration).
func (tf *TestFixtures) CreateTestCategory(slug, name string, sizes ...[3]any) (*models.StyleCategory, error) {
	category := &models.StyleCategory{
		Slug:     slug,
		Name:     name,
		IsActive: utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create test category: %w", err)
	}

	for i, s := range sizes {
		size := &models.ServiceSize{
			CategoryID: category.ID,
			Name:       s[0].(string),
			Price:      s[1].(int),
			Duration:   s[2].(int),
			SortOrder:  i,
			IsActive:   utils.ToPtr(true),
		}
		if err := tf.DB.DB.Create(size).Error; err != nil {
			return nil, fmt.Errorf("failed to create test size %s: %w", size.Name, err)
		}
		category.Sizes = append(category.Sizes, *size)
	}

	return category, nil
}

// CreateTestAddon creates an addon, optionally linked to category slugs.
func (tf *TestFixtures) CreateTestAddon(name string, price, duration int, linkedCategories ...string) (*models.Addon, error) {
	addon := &models.Addon{
		Name:             name,
		Price:            price,
		Duration:         duration,
		LinkedCategories: pq.StringArray(linkedCategories),
		IsActive:         utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(addon).Error; err != nil {
		return nil, fmt.Errorf("failed to create test addon: %w", err)
	}
	return addon, nil
}

// CreateTestAdmin creates an active admin with the password "TestPass123!".
func (tf *TestFixtures) CreateTestAdmin() (*models.Admin, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:        fmt.Sprintf("owner.%d@example.com", rand.Intn(1000000)),
		PasswordHash: string(hashedPassword),
		DisplayName:  "Test Owner",
		Role:         models.AdminRoleOwner,
		IsActive:     utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create test admin: %w", err)
	}
	return admin, nil
}

// CreateTestMediaAsset stores a small png-typed asset.
func (tf *TestFixtures) CreateTestMediaAsset() (*models.MediaAsset, error) {
	payload := []byte("not a real image but close enough for storage tests")
	asset := &models.MediaAsset{
		OriginalFilename: "hero.png",
		StoredName:       fmt.Sprintf("%d-hero.png", time.Now().UnixMilli()),
		MimeType:         "image/png",
		SizeBytes:        int64(len(payload)),
		Payload:          payload,
	}
	if err := tf.DB.DB.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create test media asset: %w", err)
	}
	return asset, nil
}

// CreateTestBooking creates a pending booking on the given date and slot.
func (tf *TestFixtures) CreateTestBooking(email, sizeName, date, timeSlot string) (*models.Booking, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date %s: %w", date, err)
	}

	number, err := models.GenerateConfirmationNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation number: %w", err)
	}

	booking := &models.Booking{
		ConfirmationNumber: number,
		CategorySlug:       "knotless-braids",
		CategoryName:       "Knotless Braids",
		SizeName:           sizeName,
		SizePrice:          250,
		SizeDuration:       300,
		AppointmentDate:    day,
		TimeSlot:           timeSlot,
		ClientFirstName:    "Ada",
		ClientLastName:     "Lovelace",
		ClientEmail:        email,
		ClientPhone:        "+15550001111",
		TotalPrice:         250,
		TotalDuration:      300,
		DepositAmount:      utils.DepositAmountUSD,
		Status:             models.BookingStatusPending,
		DepositStatus:      models.DepositUnpaid,
	}
	if err := tf.DB.DB.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create test booking: %w", err)
	}
	return booking, nil
}

// PNGDataURL returns a valid base64 data URL holding a tiny png payload.
func PNGDataURL() string {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

// GenerateUUID returns a fresh UUID string for lookups that must miss.
func GenerateUUID() string {
	return uuid.NewString()
}
