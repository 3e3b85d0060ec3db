// Package wizard implements the booking wizard: the selectable catalog,
// the appointment date and time rules, and the step state machine that
// drives a client from style selection to confirmation.
package wizard

import "time"

// Size is a priced variant of a style category.
type Size struct {
	ID       string
	Name     string
	Price    int
	Duration int
}

// Category is a bookable style with one or more size variants.
type Category struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Tag         string
	Sizes       []Size
}

// Addon is an optional extra. Empty link lists mean the addon is offered
// with every service; otherwise it is offered when the selected category
// or size appears in a link list.
type Addon struct {
	ID               string
	Name             string
	Description      string
	Price            int
	Duration         int
	LinkedCategories []string
	LinkedSizes      []string
}

// Catalog is everything the wizard can sell.
type Catalog struct {
	Categories []Category
	Addons     []Addon
}

// AppliesTo reports whether the addon is offered for the selection.
func (a Addon) AppliesTo(categoryID, sizeID string) bool {
	if len(a.LinkedCategories) == 0 && len(a.LinkedSizes) == 0 {
		return true
	}
	for _, c := range a.LinkedCategories {
		if c == categoryID {
			return true
		}
	}
	for _, s := range a.LinkedSizes {
		if s == sizeID {
			return true
		}
	}
	return false
}

// CategoryByID returns the category with the given id, or nil.
func (c Catalog) CategoryByID(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// SizeByID returns the size with the given id within the category, or nil.
func (cat Category) SizeByID(id string) *Size {
	for i := range cat.Sizes {
		if cat.Sizes[i].ID == id {
			return &cat.Sizes[i]
		}
	}
	return nil
}

// AddonByID returns the addon with the given id, or nil.
func (c Catalog) AddonByID(id string) *Addon {
	for i := range c.Addons {
		if c.Addons[i].ID == id {
			return &c.Addons[i]
		}
	}
	return nil
}

// OfferedAddons returns the addons applicable to the selection, in
// catalog order.
func (c Catalog) OfferedAddons(categoryID, sizeID string) []Addon {
	var out []Addon
	for _, a := range c.Addons {
		if a.AppliesTo(categoryID, sizeID) {
			out = append(out, a)
		}
	}
	return out
}

// TimeSlots are the selectable appointment start times, in display order.
var TimeSlots = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"1:00 PM",
	"2:00 PM",
	"3:30 PM",
	"4:30 PM",
}

// IsTimeSlot reports whether the label is one of the offered slots.
func IsTimeSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// BookingWindowDays is the span of calendar days, starting today, that a
// client can book within.
const BookingWindowDays = 21

// AvailableDates returns the bookable calendar days starting today,
// spanning BookingWindowDays days and skipping Sundays.
func AvailableDates(now time.Time) []time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var out []time.Time
	for i := 0; i < BookingWindowDays; i++ {
		d := day.AddDate(0, 0, i)
		if d.Weekday() == time.Sunday {
			continue
		}
		out = append(out, d)
	}
	return out
}

// IsBookableDate reports whether the date falls inside the window
// returned by AvailableDates.
func IsBookableDate(now, date time.Time) bool {
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	for _, d := range AvailableDates(now) {
		if d.Equal(target) {
			return true
		}
	}
	return false
}

// FallbackCatalog is served when no catalog has been configured, so the
// booking flow keeps working on a fresh install.
func FallbackCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{
				ID:          "box-braids",
				Slug:        "box-braids",
				Name:        "Premium Box Braids",
				Tag:         "Most popular",
				Description: "Classic tension-free structural partings with a clean squared finish.",
				Sizes: []Size{
					{ID: "bb-s", Name: "Small", Price: 250, Duration: 360},
					{ID: "bb-m", Name: "Medium", Price: 200, Duration: 240},
					{ID: "bb-l", Name: "Large", Price: 150, Duration: 180},
				},
			},
			{
				ID:          "knotless-braids",
				Slug:        "knotless-braids",
				Name:        "Knotless Braids",
				Tag:         "Signature",
				Description: "Seamless, painless roots with an invisible finish.",
				Sizes: []Size{
					{ID: "kb-s", Name: "Small", Price: 300, Duration: 420},
					{ID: "kb-m", Name: "Medium", Price: 250, Duration: 300},
					{ID: "kb-l", Name: "Large", Price: 200, Duration: 240},
				},
			},
			{
				ID:          "cornrows",
				Slug:        "cornrows",
				Name:        "Signature Cornrows",
				Tag:         "Editorial",
				Description: "Architectural straight-backs or custom braided patterns by appointment.",
				Sizes: []Size{
					{ID: "cr-s", Name: "Small / Detailed Pattern", Price: 180, Duration: 240},
					{ID: "cr-m", Name: "Medium / 6-8 Rows", Price: 120, Duration: 120},
					{ID: "cr-l", Name: "Large / 2-4 Feed-ins", Price: 80, Duration: 90},
				},
			},
		},
	}
}
