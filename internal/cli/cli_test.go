package cli

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"studiodesk/internal/calendars/service"
	"studiodesk/internal/session"
	"studiodesk/internal/session/validator"
	"studiodesk/pkg/calendar"
	"studiodesk/pkg/client"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, email, password string) (*client.LoginResult, error) {
	if password != "secret" {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return &client.LoginResult{Token: "tok", User: &model.StaffMember{ID: "u1", Email: email}}, nil
}

func (stubAuth) GetCompanies(context.Context) ([]*model.Company, error) {
	return []*model.Company{{ID: "c1", Name: "North Studio"}}, nil
}

type fakeCalendars struct {
	query string
	form  *model.AvailabilityForm
	err   error
}

func march() []service.DayCell {
	grid := calendar.BuildMonthGrid(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))
	cells := make([]service.DayCell, 0, len(grid))
	for _, c := range grid {
		cells = append(cells, service.DayCell{Cell: c, Entries: []calendar.Entry{}})
	}
	return cells
}

func (f *fakeCalendars) AvailabilityCalendar(_ context.Context, _ session.Scope, rawQuery string) (*service.AvailabilityView, error) {
	f.query = rawQuery
	if f.err != nil {
		return nil, f.err
	}
	return &service.AvailabilityView{
		Month:    "2024-03",
		Weekdays: calendar.Weekdays(),
		Cells:    march(),
		Errors:   []service.CategoryError{{Category: "classes", Message: "Classes are unavailable"}},
	}, nil
}

func (f *fakeCalendars) EventCalendar(_ context.Context, _ session.Scope, rawQuery string) (*service.EventView, error) {
	f.query = rawQuery
	return &service.EventView{Month: "2024-03", Weekdays: calendar.Weekdays(), Cells: march()}, f.err
}

func (f *fakeCalendars) CreateAvailability(_ context.Context, _ session.Scope, form *model.AvailabilityForm) (*model.AvailabilitySlot, error) {
	f.form = form
	if f.err != nil {
		return nil, f.err
	}
	return &model.AvailabilitySlot{
		ID:        "new",
		StartTime: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeCalendars) DeleteAvailability(context.Context, session.Scope, string) error { return f.err }

type fakeReservations struct {
	paid map[string]bool
}

func (f *fakeReservations) List(context.Context, session.Scope, int, int) (*model.Paginated[*model.Reservation], error) {
	return &model.Paginated[*model.Reservation]{Items: []*model.Reservation{{ID: "r1", EventScheduleID: "e1"}}, TotalCount: 1, Page: 1}, nil
}

func (f *fakeReservations) SetPaid(_ context.Context, _ session.Scope, id string, paid bool) (*model.Reservation, error) {
	f.paid[id] = paid
	return &model.Reservation{ID: id, IsPaid: paid}, nil
}

type harness struct {
	ctx          *Context
	out          *bytes.Buffer
	store        *session.MemoryStore
	calendars    *fakeCalendars
	reservations *fakeReservations
}

func newHarness() *harness {
	log := logger.Nop()
	store := session.NewMemoryStore()
	h := &harness{
		out:          &bytes.Buffer{},
		store:        store,
		calendars:    &fakeCalendars{},
		reservations: &fakeReservations{paid: map[string]bool{}},
	}
	h.ctx = &Context{
		Ctx:          context.Background(),
		Session:      session.New("default", store, stubAuth{}, log),
		Validator:    validator.NewSessionValidator(log),
		Calendars:    h.calendars,
		Reservations: h.reservations,
		Out:          h.out,
		Log:          log,
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	var grammar CLI
	parser, err := kong.New(&grammar, Options("test")...)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(h.ctx)
}

func (h *harness) loginAndSelect(t *testing.T) {
	t.Helper()
	require.NoError(t, h.run(t, "login", "anna@example.com", "--password", "secret"))
	require.NoError(t, h.run(t, "company", "select", "c1", "--role", "Trainer"))
	h.out.Reset()
}

func TestLoginAndCompanySelect(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.run(t, "login", "anna@example.com", "--password", "secret"))
	assert.Contains(t, h.out.String(), "c1  North Studio")

	require.NoError(t, h.run(t, "company", "select", "c1", "--role", "Manager"))
	assert.Contains(t, h.out.String(), "Working at North Studio as Manager")

	state, err := h.store.Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "tok", state.Token)
	require.NotNil(t, state.Role)
	assert.Equal(t, model.RoleManager, *state.Role)
}

func TestLoginRejectsBadEmail(t *testing.T) {
	h := newHarness()
	err := h.run(t, "login", "not-an-email", "--password", "secret")
	assert.Error(t, err)
	assert.False(t, h.ctx.Session.IsAuthenticated())
}

func TestAvailabilityShow(t *testing.T) {
	h := newHarness()
	h.loginAndSelect(t)

	require.NoError(t, h.run(t, "availability", "show", "--month", "2024-3", "--nav", "next"))

	values, err := url.ParseQuery(h.calendars.query)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", values.Get("month"))
	assert.Equal(t, "next", values.Get("nav"))
	assert.Empty(t, values.Get("day"))

	out := h.out.String()
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "Classes are unavailable")
}

func TestAvailabilityShowRequiresCompany(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run(t, "login", "anna@example.com", "--password", "secret"))

	err := h.run(t, "availability", "show")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestAvailabilityAdd(t *testing.T) {
	h := newHarness()
	h.loginAndSelect(t)

	require.NoError(t, h.run(t, "availability", "add", "--date", "2024-3-15", "--start", "9:00", "--end", "10:00"))
	assert.Equal(t, &model.AvailabilityForm{Date: "2024-03-15", StartTime: "09:00", EndTime: "10:00"}, h.calendars.form)
	assert.Contains(t, h.out.String(), "09:00 - 10:00")
}

func TestExpiredTokenLogsOut(t *testing.T) {
	h := newHarness()
	h.loginAndSelect(t)
	h.calendars.err = apperrors.Unauthorized("session expired, please log in again")

	err := h.run(t, "events", "show", "--event-type", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "studiodesk login")
	assert.False(t, h.ctx.Session.IsAuthenticated())

	values, parseErr := url.ParseQuery(h.calendars.query)
	require.NoError(t, parseErr)
	assert.Equal(t, "t1", values.Get("eventType"))
}

func TestReservationsPaid(t *testing.T) {
	h := newHarness()
	h.loginAndSelect(t)

	require.NoError(t, h.run(t, "reservations", "paid", "r1"))
	require.NoError(t, h.run(t, "reservations", "unpaid", "r2"))
	assert.Equal(t, map[string]bool{"r1": true, "r2": false}, h.reservations.paid)

	h.out.Reset()
	require.NoError(t, h.run(t, "reservations"))
	assert.Contains(t, h.out.String(), "r1")
	assert.Contains(t, h.out.String(), "unpaid")
}

func TestRenderMonth(t *testing.T) {
	cells := march()
	slot := &model.AvailabilitySlot{ID: "s1", StartTime: time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)}
	class := &model.EventSchedule{ID: "y", EventType: &model.EventType{Name: "Yoga"}, StartTime: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)}
	for i := range cells {
		if cells[i].DateKey == "2024-03-15" {
			cells[i].Entries = []calendar.Entry{
				{Kind: calendar.KindAvailability, Item: slot},
				{Kind: calendar.KindClass, Item: class},
			}
			cells[i].More = 2
		}
	}

	out := RenderMonth("2024-03", calendar.Weekdays(), cells)
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "08:00 avail")
	assert.Contains(t, out, "09:00 Yoga")
	assert.Contains(t, out, "+2 more")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
