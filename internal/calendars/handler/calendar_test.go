package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studiodesk/internal/calendars/service"
	"studiodesk/internal/session"
	"studiodesk/pkg/client"
	apperrors "studiodesk/pkg/errors"
	httputil "studiodesk/pkg/http"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCalendarService struct {
	token   string
	scope   session.Scope
	query   string
	form    *model.AvailabilityForm
	deleted string
	err     error
}

func (m *mockCalendarService) AvailabilityCalendar(ctx context.Context, scope session.Scope, rawQuery string) (*service.AvailabilityView, error) {
	m.token, m.scope, m.query = client.TokenFrom(ctx), scope, rawQuery
	if m.err != nil {
		return nil, m.err
	}
	return &service.AvailabilityView{Month: "2024-03", Query: "month=2024-03"}, nil
}

func (m *mockCalendarService) EventCalendar(ctx context.Context, scope session.Scope, rawQuery string) (*service.EventView, error) {
	m.token, m.scope, m.query = client.TokenFrom(ctx), scope, rawQuery
	return &service.EventView{Month: "2024-03", EventType: "t1"}, m.err
}

func (m *mockCalendarService) CreateAvailability(_ context.Context, scope session.Scope, form *model.AvailabilityForm) (*model.AvailabilitySlot, error) {
	m.scope, m.form = scope, form
	if m.err != nil {
		return nil, m.err
	}
	return &model.AvailabilitySlot{ID: "new"}, nil
}

func (m *mockCalendarService) DeleteAvailability(_ context.Context, _ session.Scope, id string) error {
	m.deleted = id
	return m.err
}

func seed(t *testing.T, store session.Store, state *model.SessionState) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), state))
}

func setup(t *testing.T) (*httprouter.Router, *mockCalendarService) {
	t.Helper()
	log := logger.Nop()
	store := session.NewMemoryStore()
	role := model.RoleTrainer
	company := &model.Company{ID: "c1", Name: "North"}
	seed(t, store, &model.SessionState{
		ID:              "sess",
		Token:           "tok",
		User:            &model.StaffMember{ID: "u1"},
		Companies:       []*model.Company{company},
		SelectedCompany: company,
		Role:            &role,
	})
	seed(t, store, &model.SessionState{ID: "nocompany", Token: "tok", User: &model.StaffMember{ID: "u1"}})

	svc := &mockCalendarService{}
	router := httprouter.New()
	NewCalendarHandler(svc, session.NewManager(store, nil, log), log).RegisterRoutes(router)
	return router, svc
}

func do(router http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(httputil.SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestCalendarHandler_Availability(t *testing.T) {
	router, svc := setup(t)

	rec := do(router, http.MethodGet, "/api/v1/calendars/availability?month=2024-03&day=2024-03-15", "sess", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "tok", svc.token)
	assert.Equal(t, session.Scope{CompanyID: "c1", StaffMemberID: "u1", Role: model.RoleTrainer}, svc.scope)
	assert.Equal(t, "month=2024-03&day=2024-03-15", svc.query)

	var body struct {
		Data service.AvailabilityView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03", body.Data.Month)
}

func TestCalendarHandler_SessionChecks(t *testing.T) {
	router, _ := setup(t)

	tests := []struct {
		name       string
		sessionID  string
		wantStatus int
		wantCode   string
	}{
		{"missing header", "", http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{"unknown session", "ghost", http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{"no company", "nocompany", http.StatusForbidden, apperrors.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodGet, "/api/v1/calendars/events", tt.sessionID, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
}

func TestCalendarHandler_CreateAvailability(t *testing.T) {
	router, svc := setup(t)

	rec := do(router, http.MethodPost, "/api/v1/calendars/availability", "sess",
		`{"date":" 2024-03-15 ","startTime":"9:00","endTime":"10.00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, &model.AvailabilityForm{Date: "2024-03-15", StartTime: "09:00", EndTime: "10:00"}, svc.form)

	rec = do(router, http.MethodPost, "/api/v1/calendars/availability", "sess", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarHandler_CreateConflict(t *testing.T) {
	router, svc := setup(t)
	svc.err = apperrors.Conflict("This availability overlaps with existing class(es): 09:00 - 10:00")

	rec := do(router, http.MethodPost, "/api/v1/calendars/availability", "sess",
		`{"date":"2024-03-15","startTime":"09:00","endTime":"10:00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperrors.CodeConflict, errorCode(t, rec))
	assert.Contains(t, rec.Body.String(), "09:00 - 10:00")
}

func TestCalendarHandler_DeleteAvailability(t *testing.T) {
	router, svc := setup(t)

	rec := do(router, http.MethodDelete, "/api/v1/calendars/availability/s1", "sess", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "s1", svc.deleted)
}

func TestCalendarHandler_Events(t *testing.T) {
	router, svc := setup(t)

	rec := do(router, http.MethodGet, "/api/v1/calendars/events?eventType=t1", "sess", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "eventType=t1", svc.query)
	assert.Contains(t, rec.Body.String(), `"eventType":"t1"`)
}
