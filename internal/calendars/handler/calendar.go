package handler

import (
	"context"
	"net/http"

	"studiodesk/internal/calendars/service"
	"studiodesk/internal/session"
	httputil "studiodesk/pkg/http"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"
	"studiodesk/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

// SessionOpener is implemented by *session.Manager.
type SessionOpener interface {
	Open(ctx context.Context, id string) (*session.Session, error)
}

type CalendarHandler struct {
	service  service.CalendarService
	sessions SessionOpener
	log      *logger.Logger
}

func NewCalendarHandler(service service.CalendarService, sessions SessionOpener, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		service:  service,
		sessions: sessions,
		log:      log,
	}
}

func (h *CalendarHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, scope, err := h.scope(r)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	view, err := h.service.AvailabilityCalendar(ctx, scope, r.URL.RawQuery)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) CreateAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, scope, err := h.scope(r)
	if err != nil {
		h.writeError(w, "CreateAvailability", err)
		return
	}

	var form model.AvailabilityForm
	if err := httputil.DecodeBody(r, &form); err != nil {
		h.writeError(w, "CreateAvailability", err)
		return
	}
	form.Date = sanitizer.SanitizeDate(form.Date)
	form.StartTime = sanitizer.SanitizeClock(form.StartTime)
	form.EndTime = sanitizer.SanitizeClock(form.EndTime)

	slot, err := h.service.CreateAvailability(ctx, scope, &form)
	if err != nil {
		h.writeError(w, "CreateAvailability", err)
		return
	}

	if err := httputil.WriteCreated(w, slot); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateAvailability", "operation", "WriteCreated", "error", err)
	}
}

func (h *CalendarHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, scope, err := h.scope(r)
	if err != nil {
		h.writeError(w, "DeleteAvailability", err)
		return
	}

	if err := h.service.DeleteAvailability(ctx, scope, sanitizer.SanitizeID(ps.ByName("id"))); err != nil {
		h.writeError(w, "DeleteAvailability", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CalendarHandler) Events(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, scope, err := h.scope(r)
	if err != nil {
		h.writeError(w, "Events", err)
		return
	}

	view, err := h.service.EventCalendar(ctx, scope, r.URL.RawQuery)
	if err != nil {
		h.writeError(w, "Events", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Events", "operation", "WriteSuccess", "error", err)
	}
}

// scope opens the caller's session and returns a context carrying its token.
func (h *CalendarHandler) scope(r *http.Request) (context.Context, session.Scope, error) {
	id, err := httputil.SessionID(r)
	if err != nil {
		return nil, session.Scope{}, err
	}
	s, err := h.sessions.Open(r.Context(), id)
	if err != nil {
		return nil, session.Scope{}, err
	}
	scope, err := s.RequireCompany()
	if err != nil {
		return nil, session.Scope{}, err
	}
	return s.Context(r.Context()), scope, nil
}

func (h *CalendarHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *CalendarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/calendars/availability", h.Availability)
	router.POST("/api/v1/calendars/availability", h.CreateAvailability)
	router.DELETE("/api/v1/calendars/availability/:id", h.DeleteAvailability)
	router.GET("/api/v1/calendars/events", h.Events)
}
