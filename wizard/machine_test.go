package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Monday, so the whole week ahead is bookable.
func fixedNow() time.Time {
	return time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
}

func testCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{
				ID:   "knotless-braids",
				Name: "Knotless Braids",
				Sizes: []Size{
					{ID: "kb-s", Name: "Small", Price: 300, Duration: 420},
					{ID: "kb-m", Name: "Medium", Price: 250, Duration: 300},
				},
			},
			{
				ID:   "locs",
				Name: "Starter Locs",
				Sizes: []Size{
					{ID: "locs-std", Name: "Standard", Price: 200, Duration: 240},
				},
			},
		},
		Addons: []Addon{
			{ID: "deep-conditioning", Name: "Deep Conditioning", Price: 25, Duration: 30},
			{ID: "boho-curls", Name: "Boho Curls", Price: 40, Duration: 45, LinkedCategories: []string{"knotless-braids"}},
			{ID: "loc-jewelry", Name: "Loc Jewelry", Price: 15, Duration: 15, LinkedSizes: []string{"locs-std"}},
		},
	}
}

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)

	require.Equal(t, StepCategory, m.Step())
	require.NoError(t, m.SelectCategory("knotless-braids"))
	require.Equal(t, StepSize, m.Step())

	require.NoError(t, m.SelectSize("kb-m"))
	require.Equal(t, StepAddons, m.Step())

	require.NoError(t, m.ToggleAddon("deep-conditioning"))
	assert.Equal(t, 275, m.TotalPrice())
	assert.Equal(t, 330, m.TotalDuration())

	require.NoError(t, m.ConfirmAddons())
	require.NoError(t, m.SelectDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, m.SelectTime("2:00 PM"))
	require.NoError(t, m.ConfirmDateTime())

	require.NoError(t, m.SetContact(ContactInfo{
		FirstName: "Amara",
		LastName:  "Diallo",
		Email:     "amara@example.com",
		Phone:     "+15551234567",
	}))

	req, err := m.BuildRequest()
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, m.Step())
	assert.Equal(t, "Knotless Braids", req.CategoryName)
	assert.Equal(t, "Medium", req.SizeName)
	assert.Equal(t, 275, req.TotalPrice)
	assert.Equal(t, 330, req.TotalDuration)
	assert.Equal(t, "2:00 PM", req.TimeSlot)
	assert.Equal(t, "2025-03-10", req.Date.Format("2006-01-02"))
	require.Len(t, req.Addons, 1)
	assert.Equal(t, "Deep Conditioning", req.Addons[0].Name)
}

func TestMachineSingleSizeSkipsSizeStep(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)

	require.NoError(t, m.SelectCategory("locs"))
	assert.Equal(t, StepAddons, m.Step())
	require.NotNil(t, m.Size())
	assert.Equal(t, "Standard", m.Size().Name)
}

func TestMachineAddonToggleIsIdempotent(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("knotless-braids"))
	require.NoError(t, m.SelectSize("kb-s"))

	base := m.TotalPrice()

	require.NoError(t, m.ToggleAddon("deep-conditioning"))
	require.NoError(t, m.ToggleAddon("deep-conditioning"))
	assert.Empty(t, m.Addons())
	assert.Equal(t, base, m.TotalPrice())

	// Order of toggles does not change the sum.
	require.NoError(t, m.ToggleAddon("boho-curls"))
	require.NoError(t, m.ToggleAddon("deep-conditioning"))
	assert.Equal(t, base+40+25, m.TotalPrice())
	assert.Equal(t, 420+45+30, m.TotalDuration())
}

func TestMachineAddonOffering(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))

	offered := m.OfferedAddons()
	var names []string
	for _, a := range offered {
		names = append(names, a.Name)
	}
	// Unlinked addons always apply; linked ones only via their lists.
	assert.Contains(t, names, "Deep Conditioning")
	assert.Contains(t, names, "Loc Jewelry")
	assert.NotContains(t, names, "Boho Curls")

	err := m.ToggleAddon("boho-curls")
	require.ErrorIs(t, err, ErrAddonNotOffered)
}

func TestMachineDateClearsTime(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.NoError(t, m.ConfirmAddons())

	require.NoError(t, m.SelectDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, m.SelectTime("9:00 AM"))
	assert.Equal(t, "9:00 AM", m.TimeSlot())

	require.NoError(t, m.SelectDate(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, m.TimeSlot())

	err := m.ConfirmDateTime()
	require.Error(t, err)
}

func TestMachineRejectsSundaysAndOutOfWindow(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.NoError(t, m.ConfirmAddons())

	// 2025-03-09 is a Sunday.
	err := m.SelectDate(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrDateNotBookable)

	// Past the 21-day window.
	err = m.SelectDate(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrDateNotBookable)

	// Before today.
	err = m.SelectDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrDateNotBookable)
}

func TestMachineRejectsUnknownTimeSlot(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.NoError(t, m.ConfirmAddons())
	require.NoError(t, m.SelectDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))

	err := m.SelectTime("12:00 PM")
	require.ErrorIs(t, err, ErrTimeSlotNotOffered)
}

func TestMachineBackClearsDependentState(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("knotless-braids"))
	require.NoError(t, m.SelectSize("kb-s"))
	require.NoError(t, m.ToggleAddon("deep-conditioning"))

	m.Back()
	assert.Equal(t, StepSize, m.Step())
	assert.Nil(t, m.Size())
	assert.Empty(t, m.Addons())

	m.Back()
	assert.Equal(t, StepCategory, m.Step())
	assert.Nil(t, m.Category())
}

func TestMachineBackFromAddonsWithSingleSize(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.Equal(t, StepAddons, m.Step())

	// The size step was skipped, so back lands on category selection.
	m.Back()
	assert.Equal(t, StepCategory, m.Step())
	assert.Nil(t, m.Category())
	assert.Nil(t, m.Size())
}

func TestMachineBackFromDateTime(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.NoError(t, m.ConfirmAddons())
	require.NoError(t, m.SelectDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, m.SelectTime("9:00 AM"))

	m.Back()
	assert.Equal(t, StepAddons, m.Step())
	assert.Nil(t, m.Date())
	assert.Empty(t, m.TimeSlot())
}

func TestMachineWrongStepOperations(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)

	require.ErrorIs(t, m.SelectSize("kb-s"), ErrWrongStep)
	require.ErrorIs(t, m.ToggleAddon("deep-conditioning"), ErrWrongStep)
	require.ErrorIs(t, m.SelectTime("9:00 AM"), ErrWrongStep)
	_, err := m.BuildRequest()
	require.ErrorIs(t, err, ErrWrongStep)
}

func TestMachineSkipAddonsClearsSelection(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("knotless-braids"))
	require.NoError(t, m.SelectSize("kb-s"))
	require.NoError(t, m.ToggleAddon("deep-conditioning"))

	require.NoError(t, m.SkipAddons())
	assert.Equal(t, StepDateTime, m.Step())
	assert.Empty(t, m.Addons())
	assert.Equal(t, 300, m.TotalPrice())
}

func TestMachineReset(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.NoError(t, m.ConfirmAddons())
	require.NoError(t, m.SelectDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, m.SelectTime("9:00 AM"))

	m.Reset()
	assert.Equal(t, StepCategory, m.Step())
	assert.Nil(t, m.Category())
	assert.Nil(t, m.Size())
	assert.Nil(t, m.Date())
	assert.Empty(t, m.TimeSlot())
}

func TestMachineIncompleteContactRejected(t *testing.T) {
	m := NewMachine(testCatalog(), fixedNow)
	require.NoError(t, m.SelectCategory("locs"))
	require.NoError(t, m.ConfirmAddons())
	require.NoError(t, m.SelectDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, m.SelectTime("9:00 AM"))
	require.NoError(t, m.ConfirmDateTime())

	require.NoError(t, m.SetContact(ContactInfo{FirstName: "Amara"}))
	_, err := m.BuildRequest()
	require.ErrorIs(t, err, ErrIncompleteInfo)
}
