package handler

import (
	"context"
	"net/http"

	"studiodesk/internal/session"
	"studiodesk/internal/session/validator"
	apperrors "studiodesk/pkg/errors"
	httputil "studiodesk/pkg/http"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"
	"studiodesk/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

// SessionService is implemented by *session.Manager.
type SessionService interface {
	Create(ctx context.Context, email, password string) (*session.Session, error)
	Open(ctx context.Context, id string) (*session.Session, error)
	Restore(ctx context.Context, id string) (*session.Session, error)
	Discard(ctx context.Context, id string) error
}

type SessionHandler struct {
	service   SessionService
	validator *validator.SessionValidator
	log       *logger.Logger
}

func NewSessionHandler(service SessionService, validator *validator.SessionValidator, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

// View is the client-facing shape of a session. The token never leaves
// the server.
type View struct {
	SessionID       string             `json:"sessionId"`
	User            *model.StaffMember `json:"user,omitempty"`
	Companies       []*model.Company   `json:"companies"`
	SelectedCompany *model.Company     `json:"selectedCompany,omitempty"`
	Role            string             `json:"role,omitempty"`
}

func NewView(s *session.Session) View {
	state := s.State()
	view := View{
		SessionID:       s.ID(),
		User:            state.User,
		Companies:       state.Companies,
		SelectedCompany: state.SelectedCompany,
	}
	if view.Companies == nil {
		view.Companies = []*model.Company{}
	}
	if state.Role != nil {
		view.Role = state.Role.String()
	}
	return view
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeBody(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}
	req.Email = sanitizer.SanitizeEmail(req.Email)

	if err := h.validator.ValidateLogin(&req); err != nil {
		h.writeError(w, "Login", apperrors.Validation("Login validation failed", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	s, err := h.service.Create(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteCreated(w, NewView(s)); err != nil {
		h.log.Error("failed to write created response", "handler", "Login", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := httputil.SessionID(r)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	s, err := h.service.Restore(r.Context(), id)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, NewView(s)); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SelectCompany(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := httputil.SessionID(r)
	if err != nil {
		h.writeError(w, "SelectCompany", err)
		return
	}

	var req model.SelectCompanyRequest
	if err := httputil.DecodeBody(r, &req); err != nil {
		h.writeError(w, "SelectCompany", err)
		return
	}
	if err := h.validator.ValidateSelectCompany(&req); err != nil {
		h.writeError(w, "SelectCompany", apperrors.Validation("Company selection validation failed", map[string]any{
			"error": err.Error(),
		}))
		return
	}
	role, _ := model.ParseStaffRole(sanitizer.TrimAndNormalize(req.Role))

	s, err := h.service.Open(r.Context(), id)
	if err != nil {
		h.writeError(w, "SelectCompany", err)
		return
	}
	if err := s.SelectCompany(r.Context(), req.CompanyID, role); err != nil {
		h.writeError(w, "SelectCompany", err)
		return
	}

	if err := httputil.WriteSuccess(w, NewView(s)); err != nil {
		h.log.Error("failed to write success response", "handler", "SelectCompany", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) ClearCompany(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := httputil.SessionID(r)
	if err != nil {
		h.writeError(w, "ClearCompany", err)
		return
	}

	s, err := h.service.Open(r.Context(), id)
	if err != nil {
		h.writeError(w, "ClearCompany", err)
		return
	}
	if err := s.ClearCompany(r.Context()); err != nil {
		h.writeError(w, "ClearCompany", err)
		return
	}

	if err := httputil.WriteSuccess(w, NewView(s)); err != nil {
		h.log.Error("failed to write success response", "handler", "ClearCompany", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := httputil.SessionID(r)
	if err != nil {
		h.writeError(w, "Logout", err)
		return
	}

	if err := h.service.Discard(r.Context(), id); err != nil {
		h.writeError(w, "Logout", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/session", h.Login)
	router.GET("/api/v1/session", h.Get)
	router.DELETE("/api/v1/session", h.Logout)
	router.PUT("/api/v1/session/company", h.SelectCompany)
	router.DELETE("/api/v1/session/company", h.ClearCompany)
}
