package wizard

import (
	"errors"
	"fmt"
	"time"
)

// Step identifies a wizard screen.
type Step string

const (
	StepCategory     Step = "category"
	StepSize         Step = "size"
	StepAddons       Step = "addons"
	StepDateTime     Step = "datetime"
	StepInfo         Step = "info"
	StepConfirmation Step = "confirmation"
)

// Wizard errors.
var (
	ErrWrongStep          = errors.New("operation not valid at current step")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownSize        = errors.New("unknown size")
	ErrUnknownAddon       = errors.New("unknown addon")
	ErrAddonNotOffered    = errors.New("addon not offered for selection")
	ErrDateNotBookable    = errors.New("date not bookable")
	ErrTimeSlotNotOffered = errors.New("time slot not offered")
	ErrNoDateSelected     = errors.New("no date selected")
	ErrIncompleteInfo     = errors.New("contact info incomplete")
	ErrIncomplete         = errors.New("selection incomplete")
)

// ContactInfo is the client details collected at the info step.
type ContactInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     string
}

// Request is the completed selection, ready for submission.
type Request struct {
	CategoryID    string
	CategoryName  string
	SizeID        string
	SizeName      string
	SizePrice     int
	SizeDuration  int
	Addons        []Addon
	Date          time.Time
	TimeSlot      string
	Contact       ContactInfo
	TotalPrice    int
	TotalDuration int
}

// Machine walks a client through category, size, addons, date and time,
// and contact info. Moving backward clears everything that depended on
// the abandoned step, so forward progress always reflects live choices.
type Machine struct {
	catalog Catalog
	now     func() time.Time

	step     Step
	category *Category
	size     *Size
	addons   []Addon
	date     *time.Time
	timeSlot string
	contact  ContactInfo
}

// NewMachine creates a wizard over the catalog. The now function feeds
// date-window validation; nil selects time.Now.
func NewMachine(catalog Catalog, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{
		catalog: catalog,
		now:     now,
		step:    StepCategory,
	}
}

// Step returns the current wizard step.
func (m *Machine) Step() Step { return m.step }

// Category returns the selected category, or nil.
func (m *Machine) Category() *Category { return m.category }

// Size returns the selected size, or nil.
func (m *Machine) Size() *Size { return m.size }

// Addons returns the selected addons in selection order.
func (m *Machine) Addons() []Addon { return append([]Addon(nil), m.addons...) }

// Date returns the selected date, or nil.
func (m *Machine) Date() *time.Time { return m.date }

// TimeSlot returns the selected time slot label, or empty.
func (m *Machine) TimeSlot() string { return m.timeSlot }

// Contact returns the collected contact info.
func (m *Machine) Contact() ContactInfo { return m.contact }

// TotalPrice sums the size price and all selected addon prices.
func (m *Machine) TotalPrice() int {
	total := 0
	if m.size != nil {
		total = m.size.Price
	}
	for _, a := range m.addons {
		total += a.Price
	}
	return total
}

// TotalDuration sums the size duration and all selected addon durations.
func (m *Machine) TotalDuration() int {
	total := 0
	if m.size != nil {
		total = m.size.Duration
	}
	for _, a := range m.addons {
		total += a.Duration
	}
	return total
}

// SelectCategory picks a style. A category with exactly one size variant
// applies that size immediately and jumps to the addons step.
func (m *Machine) SelectCategory(categoryID string) error {
	if m.step != StepCategory {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	cat := m.catalog.CategoryByID(categoryID)
	if cat == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	m.category = cat
	if len(cat.Sizes) == 1 {
		m.size = &cat.Sizes[0]
		m.step = StepAddons
		return nil
	}
	m.step = StepSize
	return nil
}

// SelectSize picks a size variant within the selected category.
func (m *Machine) SelectSize(sizeID string) error {
	if m.step != StepSize {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	size := m.category.SizeByID(sizeID)
	if size == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSize, sizeID)
	}
	m.size = size
	m.step = StepAddons
	return nil
}

// OfferedAddons lists the addons applicable to the current selection.
func (m *Machine) OfferedAddons() []Addon {
	if m.category == nil || m.size == nil {
		return nil
	}
	return m.catalog.OfferedAddons(m.category.ID, m.size.ID)
}

// ToggleAddon adds the addon to the selection, or removes it when it is
// already selected.
func (m *Machine) ToggleAddon(addonID string) error {
	if m.step != StepAddons {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	for i, a := range m.addons {
		if a.ID == addonID {
			m.addons = append(m.addons[:i], m.addons[i+1:]...)
			return nil
		}
	}
	addon := m.catalog.AddonByID(addonID)
	if addon == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAddon, addonID)
	}
	if !addon.AppliesTo(m.category.ID, m.size.ID) {
		return fmt.Errorf("%w: %q", ErrAddonNotOffered, addonID)
	}
	m.addons = append(m.addons, *addon)
	return nil
}

// ConfirmAddons moves from addon selection to date and time. Addons are
// optional, so this always succeeds at the addons step.
func (m *Machine) ConfirmAddons() error {
	if m.step != StepAddons {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	m.step = StepDateTime
	return nil
}

// SelectDate picks an appointment day. Changing the date clears any
// previously chosen time slot.
func (m *Machine) SelectDate(date time.Time) error {
	if m.step != StepDateTime {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	if !IsBookableDate(m.now(), date) {
		return fmt.Errorf("%w: %s", ErrDateNotBookable, date.Format("2006-01-02"))
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	m.date = &d
	m.timeSlot = ""
	return nil
}

// SelectTime picks a start time for the selected date.
func (m *Machine) SelectTime(label string) error {
	if m.step != StepDateTime {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	if m.date == nil {
		return ErrNoDateSelected
	}
	if !IsTimeSlot(label) {
		return fmt.Errorf("%w: %q", ErrTimeSlotNotOffered, label)
	}
	m.timeSlot = label
	return nil
}

// ConfirmDateTime moves to the contact info step once both a date and a
// time slot are chosen.
func (m *Machine) ConfirmDateTime() error {
	if m.step != StepDateTime {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	if m.date == nil {
		return ErrNoDateSelected
	}
	if m.timeSlot == "" {
		return ErrTimeSlotNotOffered
	}
	m.step = StepInfo
	return nil
}

// SetContact records the client details.
func (m *Machine) SetContact(info ContactInfo) error {
	if m.step != StepInfo {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	m.contact = info
	return nil
}

// SkipAddons discards any selected addons and moves on to date and time.
func (m *Machine) SkipAddons() error {
	if m.step != StepAddons {
		return fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	m.addons = nil
	m.step = StepDateTime
	return nil
}

// resetSet names the wizard fields a backward transition clears.
type resetSet uint8

const (
	resetCategory resetSet = 1 << iota
	resetSize
	resetAddons
	resetDate
	resetTime
	resetContact

	resetAll = resetCategory | resetSize | resetAddons | resetDate | resetTime | resetContact
)

// backTable drives backward navigation: the step to return to and the
// fields cleared on the way. Leaving a step clears everything captured
// at or after it.
var backTable = map[Step]struct {
	to    Step
	reset resetSet
}{
	StepSize:     {StepCategory, resetCategory | resetSize},
	StepAddons:   {StepSize, resetSize | resetAddons},
	StepDateTime: {StepAddons, resetDate | resetTime},
	StepInfo:     {StepDateTime, resetContact},
}

func (m *Machine) applyReset(r resetSet) {
	if r&resetCategory != 0 {
		m.category = nil
	}
	if r&resetSize != 0 {
		m.size = nil
	}
	if r&resetAddons != 0 {
		m.addons = nil
	}
	if r&resetDate != 0 {
		m.date = nil
	}
	if r&resetTime != 0 {
		m.timeSlot = ""
	}
	if r&resetContact != 0 {
		m.contact = ContactInfo{}
	}
}

// Back returns to the previous step per backTable, clearing every choice
// that depended on the step being left. A single-size category was never
// shown a size screen, so backing out of addons skips straight to
// category selection.
func (m *Machine) Back() {
	rule, ok := backTable[m.step]
	if !ok {
		return
	}
	to, reset := rule.to, rule.reset
	if to == StepSize && m.category != nil && len(m.category.Sizes) == 1 {
		to = StepCategory
		reset |= resetCategory
	}
	m.applyReset(reset)
	m.step = to
}

// Reset discards the whole selection and starts over at category choice.
func (m *Machine) Reset() {
	m.applyReset(resetAll)
	m.step = StepCategory
}

// BuildRequest validates the full selection and produces the submission
// payload. On success the wizard moves to the confirmation step.
func (m *Machine) BuildRequest() (*Request, error) {
	if m.step != StepInfo {
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, m.step)
	}
	if m.category == nil || m.size == nil || m.date == nil || m.timeSlot == "" {
		return nil, ErrIncomplete
	}
	if m.contact.FirstName == "" || m.contact.LastName == "" || m.contact.Email == "" || m.contact.Phone == "" {
		return nil, ErrIncompleteInfo
	}

	req := &Request{
		CategoryID:    m.category.ID,
		CategoryName:  m.category.Name,
		SizeID:        m.size.ID,
		SizeName:      m.size.Name,
		SizePrice:     m.size.Price,
		SizeDuration:  m.size.Duration,
		Addons:        append([]Addon(nil), m.addons...),
		Date:          *m.date,
		TimeSlot:      m.timeSlot,
		Contact:       m.contact,
		TotalPrice:    m.TotalPrice(),
		TotalDuration: m.TotalDuration(),
	}
	m.step = StepConfirmation
	return req, nil
}
