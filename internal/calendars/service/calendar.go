package service

import (
	"context"
	"errors"
	"sync"
	"time"

	calendarerrors "studiodesk/internal/calendars/errors"
	"studiodesk/internal/calendars/validator"
	"studiodesk/internal/events"
	"studiodesk/internal/session"
	"studiodesk/pkg/calendar"
	"studiodesk/pkg/client"
	"studiodesk/pkg/config"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/middleware"
	"studiodesk/pkg/model"
)

// ParamNav moves the displayed month relative to the month param: prev,
// next or today. It is consumed and never echoed back.
const ParamNav = "nav"

const (
	categoryAvailability = "availability"
	categoryClasses      = "classes"
	categoryEvents       = "events"
	categoryEventTypes   = "eventTypes"
)

type StaffMemberAPI interface {
	GetAvailability(ctx context.Context, companyID, staffMemberID string) (*model.StaffAvailability, error)
	AddAvailability(ctx context.Context, companyID, staffMemberID string, req model.AvailabilityRequest) (*model.AvailabilitySlot, error)
	RemoveAvailability(ctx context.Context, companyID, availabilityID string) error
	GetEventSchedules(ctx context.Context, companyID, staffMemberID string) ([]*model.EventSchedule, error)
}

type EventScheduleAPI interface {
	GetAll(ctx context.Context, companyID string, query client.EventScheduleQuery) (*model.Paginated[*model.EventSchedule], error)
}

type EventTypeAPI interface {
	GetAll(ctx context.Context, companyID string) ([]*model.EventType, error)
}

type CalendarService interface {
	AvailabilityCalendar(ctx context.Context, scope session.Scope, rawQuery string) (*AvailabilityView, error)
	EventCalendar(ctx context.Context, scope session.Scope, rawQuery string) (*EventView, error)
	CreateAvailability(ctx context.Context, scope session.Scope, form *model.AvailabilityForm) (*model.AvailabilitySlot, error)
	DeleteAvailability(ctx context.Context, scope session.Scope, id string) error
}

type calendarService struct {
	staff      StaffMemberAPI
	schedules  EventScheduleAPI
	eventTypes EventTypeAPI
	validator  *validator.AvailabilityValidator
	publisher  events.Publisher
	cfg        *config.Config
	now        func() time.Time
}

func NewCalendarService(
	staff StaffMemberAPI,
	schedules EventScheduleAPI,
	eventTypes EventTypeAPI,
	validator *validator.AvailabilityValidator,
	publisher events.Publisher,
	cfg *config.Config,
) CalendarService {
	return newCalendarService(staff, schedules, eventTypes, validator, publisher, cfg, time.Now)
}

func newCalendarService(
	staff StaffMemberAPI,
	schedules EventScheduleAPI,
	eventTypes EventTypeAPI,
	validator *validator.AvailabilityValidator,
	publisher events.Publisher,
	cfg *config.Config,
	now func() time.Time,
) *calendarService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &calendarService{
		staff:      staff,
		schedules:  schedules,
		eventTypes: eventTypes,
		validator:  validator,
		publisher:  publisher,
		cfg:        cfg,
		now:        now,
	}
}

// controller mounts a view-state controller over the caller's query and
// applies any nav step. An unreadable month param is replaced by the
// month actually displayed.
func (s *calendarService) controller(rawQuery string) (*calendar.Controller, *calendar.QueryParams) {
	params := calendar.ParseQueryParams(rawQuery)
	ctrl := calendar.NewController(params, s.cfg.Location, s.now)
	ctrl.Mount()

	if _, err := calendar.ParseMonthKey(params.Get(calendar.ParamMonth), ctrl.Location()); err != nil {
		ctrl.Navigate(ctrl.Month())
	}

	switch params.Get(ParamNav) {
	case "prev":
		ctrl.PrevMonth()
	case "next":
		ctrl.NextMonth()
	case "today":
		ctrl.Today()
	}
	params.Delete(ParamNav)

	return ctrl, params
}

func (s *calendarService) AvailabilityCalendar(ctx context.Context, scope session.Scope, rawQuery string) (*AvailabilityView, error) {
	if scope.StaffMemberID == "" {
		return nil, apperrors.Forbidden(calendarerrors.ErrNoStaffMember.Error())
	}
	ctrl, params := s.controller(rawQuery)

	sched := s.fetchSchedule(ctx, scope)
	if err := sessionError(sched.errSlots, sched.errClasses); err != nil {
		return nil, err
	}

	slotIdx := calendar.BuildIndex(sched.slots)
	classIdx := calendar.BuildIndex(sched.classes)
	grid := calendar.BuildMonthGrid(ctrl.Month(), s.now())

	view := &AvailabilityView{
		Month:    ctrl.MonthKey(),
		Weekdays: calendar.Weekdays(),
		Cells: fillCells(grid, func(key string) []calendar.Entry {
			return calendar.MergeDay(slotIdx.ItemsOn(key), classIdx.ItemsOn(key))
		}),
		MonthCount: slotIdx.CountInMonth(ctrl.MonthKey()),
		Total:      slotIdx.Len(),
		View:       ctrl.Derive(calendar.AsTimed(sched.slots)),
		Errors:     []CategoryError{},
	}
	view.Errors = s.categoryError(view.Errors, categoryAvailability, sched.errSlots)
	view.Errors = s.categoryError(view.Errors, categoryClasses, sched.errClasses)

	if view.View.SelectedDate != nil {
		key := calendar.DateKey(*view.View.SelectedDate)
		view.Day = &AvailabilityDay{
			Date:    key,
			Slots:   slotIdx.ItemsOn(key),
			Classes: classIdx.ItemsOn(key),
		}
	}

	// Trainers open the day modal locally; their links never carry it.
	if scope.Role == model.RoleTrainer {
		params = params.Clone()
		params.Delete(calendar.ParamDay)
		params.Delete(calendar.ParamEdit)
	}
	view.Query = params.Encode()

	return view, nil
}

func (s *calendarService) EventCalendar(ctx context.Context, scope session.Scope, rawQuery string) (*EventView, error) {
	ctrl, params := s.controller(rawQuery)
	eventType := ctrl.Filter(calendar.ParamEventType)

	var (
		page                *model.Paginated[*model.EventSchedule]
		types               []*model.EventType
		errEvents, errTypes error
		wg                  sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		page, errEvents = s.schedules.GetAll(ctx, scope.CompanyID, client.EventScheduleQuery{
			Page:        1,
			PageSize:    s.cfg.NormalizePageSize(s.cfg.PageSize),
			EventTypeID: eventType,
		})
	}()
	go func() {
		defer wg.Done()
		types, errTypes = s.eventTypes.GetAll(ctx, scope.CompanyID)
	}()
	wg.Wait()

	if err := sessionError(errEvents, errTypes); err != nil {
		return nil, err
	}

	var schedules []*model.EventSchedule
	if errEvents == nil && page != nil {
		schedules = page.Items
	}
	if types == nil {
		types = []*model.EventType{}
	}

	idx := calendar.BuildIndex(schedules)
	grid := calendar.BuildMonthGrid(ctrl.Month(), s.now())

	view := &EventView{
		Month:    ctrl.MonthKey(),
		Query:    params.Encode(),
		Weekdays: calendar.Weekdays(),
		Cells: fillCells(grid, func(key string) []calendar.Entry {
			return calendar.Entries(calendar.KindEvent, idx.ItemsOn(key))
		}),
		MonthCount: idx.CountInMonth(ctrl.MonthKey()),
		Total:      idx.Len(),
		EventType:  eventType,
		EventTypes: types,
		View:       ctrl.Derive(calendar.AsTimed(schedules)),
		Errors:     []CategoryError{},
	}
	view.Errors = s.categoryError(view.Errors, categoryEvents, errEvents)
	view.Errors = s.categoryError(view.Errors, categoryEventTypes, errTypes)

	if view.View.SelectedDate != nil {
		key := calendar.DateKey(*view.View.SelectedDate)
		view.Day = &EventDay{Date: key, Events: idx.ItemsOn(key)}
	}

	return view, nil
}

// CreateAvailability checks the form, the time range and the day's
// existing slots and classes, in that order, before submitting.
func (s *calendarService) CreateAvailability(ctx context.Context, scope session.Scope, form *model.AvailabilityForm) (*model.AvailabilitySlot, error) {
	if scope.StaffMemberID == "" {
		return nil, apperrors.Forbidden(calendarerrors.ErrNoStaffMember.Error())
	}

	if err := s.validator.ValidateForm(form); err != nil {
		s.cfg.Log.Warn("Availability validation failed",
			"staff_member_id", scope.StaffMemberID,
			"date", form.Date,
			"error", err,
		)
		return nil, apperrors.Validation("Availability validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	day, err := calendar.ParseDateKey(form.Date, s.cfg.Location)
	if err != nil {
		return nil, apperrors.Validation("Availability validation failed", map[string]any{
			"error": err.Error(),
		})
	}
	start, end := atClock(day, form.StartTime), atClock(day, form.EndTime)

	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, apperrors.Validation(err.Error(), map[string]any{
			"field": "endTime",
		})
	}

	sched := s.fetchSchedule(ctx, scope)
	if sched.errSlots != nil {
		return nil, sched.errSlots
	}
	if sched.errClasses != nil {
		return nil, sched.errClasses
	}

	err = calendar.CheckCandidate(calendar.Candidate{
		Start:   start,
		End:     end,
		Slots:   calendar.AsTimed(calendar.BuildIndex(sched.slots).ItemsOn(form.Date)),
		Classes: calendar.AsTimed(calendar.BuildIndex(sched.classes).ItemsOn(form.Date)),
	})
	var conflict *calendar.ConflictError
	if errors.As(err, &conflict) {
		s.cfg.Log.Info("Availability conflicts with existing entries",
			"staff_member_id", scope.StaffMemberID,
			"date", form.Date,
			"kind", conflict.Kind,
			"conflicts", len(conflict.Conflicts),
		)
		return nil, apperrors.Conflict(conflict.Error()).WithDetails(map[string]any{
			"kind":      conflict.Kind,
			"conflicts": conflict.Ranges(),
		})
	}
	if err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	req := model.AvailabilityRequest{
		Date:      form.Date,
		StartTime: model.FormatLocal(start),
		EndTime:   model.FormatLocal(end),
	}
	if err := s.validator.ValidateRequest(&req); err != nil {
		return nil, apperrors.Internal("Failed to build availability request", err)
	}

	slot, err := s.staff.AddAvailability(ctx, scope.CompanyID, scope.StaffMemberID, req)
	if err != nil {
		s.cfg.Log.Error("Failed to create availability",
			"staff_member_id", scope.StaffMemberID,
			"date", form.Date,
			"error", err,
		)
		return nil, err
	}
	if slot == nil {
		slot = &model.AvailabilitySlot{
			StaffMemberID: scope.StaffMemberID,
			Date:          day,
			StartTime:     start,
			EndTime:       end,
		}
	}

	events.PublishBestEffort(ctx, s.publisher, s.cfg.Log, events.Event{
		Type:          events.AvailabilityCreated,
		Key:           scope.StaffMemberID,
		CorrelationID: middleware.RequestID(ctx),
		Payload: events.AvailabilityCreatedPayload{
			CompanyID:     scope.CompanyID,
			StaffMemberID: scope.StaffMemberID,
			Slot:          slot,
			Request:       req,
		},
	})

	s.cfg.Log.Info("Availability created",
		"id", slot.ID,
		"staff_member_id", scope.StaffMemberID,
		"start", req.StartTime,
		"end", req.EndTime,
	)
	return slot, nil
}

func (s *calendarService) DeleteAvailability(ctx context.Context, scope session.Scope, id string) error {
	if id == "" {
		return apperrors.InvalidInput(calendarerrors.ErrInvalidAvailabilityID.Error())
	}

	if err := s.staff.RemoveAvailability(ctx, scope.CompanyID, id); err != nil {
		s.cfg.Log.Error("Failed to delete availability",
			"id", id,
			"company_id", scope.CompanyID,
			"error", err,
		)
		return err
	}

	events.PublishBestEffort(ctx, s.publisher, s.cfg.Log, events.Event{
		Type:          events.AvailabilityDeleted,
		Key:           scope.StaffMemberID,
		CorrelationID: middleware.RequestID(ctx),
		Payload: events.AvailabilityDeletedPayload{
			CompanyID:      scope.CompanyID,
			StaffMemberID:  scope.StaffMemberID,
			AvailabilityID: id,
		},
	})

	s.cfg.Log.Info("Availability deleted", "id", id, "company_id", scope.CompanyID)
	return nil
}

// staffSchedule is a staff member's availability and classes. Each half
// loads independently; a failed half is empty and carries its error.
type staffSchedule struct {
	slots      []*model.AvailabilitySlot
	classes    []*model.EventSchedule
	errSlots   error
	errClasses error
}

// fetchSchedule loads both halves of a staffSchedule concurrently.
func (s *calendarService) fetchSchedule(ctx context.Context, scope session.Scope) staffSchedule {
	var (
		out staffSchedule
		wg  sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		availability, err := s.staff.GetAvailability(ctx, scope.CompanyID, scope.StaffMemberID)
		if err != nil {
			out.errSlots = err
			return
		}
		if availability != nil {
			out.slots = availability.AvailableSlots
		}
	}()
	go func() {
		defer wg.Done()
		classes, err := s.staff.GetEventSchedules(ctx, scope.CompanyID, scope.StaffMemberID)
		if err != nil {
			out.errClasses = err
			return
		}
		out.classes = classes
	}()
	wg.Wait()

	return out
}

func (s *calendarService) categoryError(list []CategoryError, category string, err error) []CategoryError {
	if err == nil {
		return list
	}
	s.cfg.Log.Warn("Calendar category failed to load", "category", category, "error", err)
	return append(list, CategoryError{Category: category, Message: apperrors.UserMessage(err)})
}

// sessionError picks out a rejected token. It fails the whole screen
// rather than rendering empty categories.
func sessionError(errs ...error) error {
	for _, err := range errs {
		if apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			return err
		}
	}
	return nil
}

func atClock(day time.Time, clock string) time.Time {
	y, m, d := day.Date()
	t, _ := time.Parse(model.ClockLayout, clock)
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}
