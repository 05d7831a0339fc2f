package handler

import (
	"context"
	"net/http"

	"studiodesk/internal/reservations/service"
	"studiodesk/internal/session"
	httputil "studiodesk/pkg/http"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

// SessionOpener is implemented by *session.Manager.
type SessionOpener interface {
	Open(ctx context.Context, id string) (*session.Session, error)
}

type ReservationHandler struct {
	service  service.ReservationService
	sessions SessionOpener
	log      *logger.Logger
}

func NewReservationHandler(service service.ReservationService, sessions SessionOpener, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service:  service,
		sessions: sessions,
		log:      log,
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, scope, err := h.scope(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	page, pageSize, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	result, err := h.service.List(ctx, scope, page, pageSize)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, result.Items, result.TotalCount, result.Page, result.PageSize); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReservationHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setPaid(w, r, sanitizer.SanitizeID(ps.ByName("id")), true, "MarkAsPaid")
}

func (h *ReservationHandler) UnmarkAsPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setPaid(w, r, sanitizer.SanitizeID(ps.ByName("id")), false, "UnmarkAsPaid")
}

func (h *ReservationHandler) setPaid(w http.ResponseWriter, r *http.Request, id string, paid bool, handler string) {
	ctx, scope, err := h.scope(r)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	reservation, err := h.service.SetPaid(ctx, scope, id, paid)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) scope(r *http.Request) (context.Context, session.Scope, error) {
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

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/reservations", h.GetAll)
	router.PATCH("/api/v1/reservations/:id/paid", h.MarkAsPaid)
	router.DELETE("/api/v1/reservations/:id/paid", h.UnmarkAsPaid)
}
