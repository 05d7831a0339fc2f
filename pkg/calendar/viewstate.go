package calendar

import "time"

type Mode string

const (
	ModeClosed Mode = "closed"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ViewState is derived on every read from the params and the loaded items.
// It is never stored.
type ViewState struct {
	Mode         Mode       `json:"mode"`
	ModalOpen    bool       `json:"modalOpen"`
	SelectedDate *time.Time `json:"selectedDate"`
	SelectedItem TimedItem  `json:"selectedItem"`
}

// Controller keeps the displayed month and the modal state in sync with a
// ParamStore. A Controller belongs to a single screen visit and is not safe
// for concurrent use.
type Controller struct {
	params    ParamStore
	loc       *time.Location
	now       func() time.Time
	displayed time.Time
	mounted   bool
}

func NewController(params ParamStore, loc *time.Location, now func() time.Time) *Controller {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Controller{
		params:    params,
		loc:       loc,
		now:       now,
		displayed: FirstOfMonth(now().In(loc)),
	}
}

// Mount runs once per screen visit. A missing month param is set to the
// current month; a present one moves the displayed month.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	if c.params.Get(ParamMonth) == "" {
		c.params.Set(ParamMonth, MonthKey(c.displayed))
		return
	}
	c.SyncFromParams()
}

// Month is the first day of the displayed month.
func (c *Controller) Month() time.Time { return c.displayed }

func (c *Controller) MonthKey() string { return MonthKey(c.displayed) }

func (c *Controller) Location() *time.Location { return c.loc }

// SyncFromParams moves the displayed month to a valid month param. It
// reports whether the month changed.
func (c *Controller) SyncFromParams() bool {
	key := c.params.Get(ParamMonth)
	if key == "" || key == MonthKey(c.displayed) {
		return false
	}
	month, err := ParseMonthKey(key, c.loc)
	if err != nil {
		return false
	}
	c.displayed = month
	return true
}

// Navigate displays the month containing date. The month param is only
// written when its value changes.
func (c *Controller) Navigate(date time.Time) {
	c.displayed = FirstOfMonth(date.In(c.loc))
	key := MonthKey(c.displayed)
	if c.params.Get(ParamMonth) != key {
		c.params.Set(ParamMonth, key)
	}
}

func (c *Controller) PrevMonth() { c.Navigate(c.displayed.AddDate(0, -1, 0)) }

func (c *Controller) NextMonth() { c.Navigate(c.displayed.AddDate(0, 1, 0)) }

func (c *Controller) Today() { c.Navigate(c.now()) }

func (c *Controller) OpenCreate(date time.Time) {
	c.params.Set(ParamDay, DateKey(date.In(c.loc)))
	c.params.Delete(ParamEdit)
}

func (c *Controller) OpenEdit(item TimedItem) {
	c.params.Set(ParamEdit, item.ItemID())
	c.params.Delete(ParamDay)
}

func (c *Controller) Close() {
	c.params.Delete(ParamDay)
	c.params.Delete(ParamEdit)
}

// Derive computes the modal state. An edit param naming a loaded item wins
// over a day param; an unknown edit id or an invalid day closes the modal.
func (c *Controller) Derive(items []TimedItem) ViewState {
	if id := c.params.Get(ParamEdit); id != "" {
		for _, item := range items {
			if isNil(item) || item.ItemID() != id {
				continue
			}
			selected := item.Start().In(c.loc)
			return ViewState{Mode: ModeEdit, ModalOpen: true, SelectedDate: &selected, SelectedItem: item}
		}
	}
	if key := c.params.Get(ParamDay); key != "" {
		if day, err := ParseDateKey(key, c.loc); err == nil {
			return ViewState{Mode: ModeCreate, ModalOpen: true, SelectedDate: &day}
		}
	}
	return ViewState{Mode: ModeClosed}
}

// Filter reads a filter param such as eventType.
func (c *Controller) Filter(key string) string { return c.params.Get(key) }

// SetFilter writes a filter param; an empty value removes it.
func (c *Controller) SetFilter(key, value string) {
	if value == "" {
		c.params.Delete(key)
		return
	}
	c.params.Set(key, value)
}
