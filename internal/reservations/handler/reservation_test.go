package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

type paidCall struct {
	id   string
	paid bool
}

type mockReservationService struct {
	token string
	page  int
	size  int
	calls []paidCall
	err   error
}

func (m *mockReservationService) List(ctx context.Context, _ session.Scope, page, pageSize int) (*model.Paginated[*model.Reservation], error) {
	m.token, m.page, m.size = client.TokenFrom(ctx), page, pageSize
	if m.err != nil {
		return nil, m.err
	}
	return &model.Paginated[*model.Reservation]{
		Items:      []*model.Reservation{{ID: "r1"}},
		TotalCount: 11,
		Page:       2,
		PageSize:   10,
	}, nil
}

func (m *mockReservationService) SetPaid(_ context.Context, _ session.Scope, id string, paid bool) (*model.Reservation, error) {
	m.calls = append(m.calls, paidCall{id: id, paid: paid})
	if m.err != nil {
		return nil, m.err
	}
	return &model.Reservation{ID: id, IsPaid: paid}, nil
}

func setup(t *testing.T) (*httprouter.Router, *mockReservationService) {
	t.Helper()
	log := logger.Nop()
	store := session.NewMemoryStore()
	role := model.RoleReceptionEmployee
	company := &model.Company{ID: "c1"}
	require.NoError(t, store.Save(context.Background(), &model.SessionState{
		ID:              "sess",
		Token:           "tok",
		User:            &model.StaffMember{ID: "u1"},
		Companies:       []*model.Company{company},
		SelectedCompany: company,
		Role:            &role,
	}))

	svc := &mockReservationService{}
	router := httprouter.New()
	NewReservationHandler(svc, session.NewManager(store, nil, log), log).RegisterRoutes(router)
	return router, svc
}

func do(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(httputil.SessionHeader, "sess")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReservationHandler_GetAll(t *testing.T) {
	router, svc := setup(t)

	rec := do(router, http.MethodGet, "/api/v1/reservations?page=2&pageSize=10")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "tok", svc.token)
	assert.Equal(t, 2, svc.page)
	assert.Equal(t, 10, svc.size)

	var body httputil.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 11, body.TotalCount)
	assert.Equal(t, 2, body.Page)
}

func TestReservationHandler_GetAllBadPage(t *testing.T) {
	router, _ := setup(t)

	rec := do(router, http.MethodGet, "/api/v1/reservations?page=two")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservationHandler_TogglePaid(t *testing.T) {
	router, svc := setup(t)

	rec := do(router, http.MethodPatch, "/api/v1/reservations/r1/paid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isPaid":true`)

	rec = do(router, http.MethodDelete, "/api/v1/reservations/r1/paid")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []paidCall{{"r1", true}, {"r1", false}}, svc.calls)
}

func TestReservationHandler_RejectedToggle(t *testing.T) {
	router, svc := setup(t)
	svc.err = apperrors.Upstream("Reservation is locked", http.StatusBadRequest, nil)

	rec := do(router, http.MethodPatch, "/api/v1/reservations/r1/paid")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reservation is locked")
}
