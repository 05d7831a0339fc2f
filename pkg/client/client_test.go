package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/model"
)

var testLoc = time.FixedZone("CET", 3600)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HttpClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHttpClient(srv.URL+"/", 2*time.Second)
}

func TestStaffMemberClient_GetAvailability(t *testing.T) {
	var gotPath, gotAuth string
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"staffMember": {"id": "s1", "firstName": "Ala", "role": 2},
			"availableSlots": [
				{"id": "a1", "date": "2024-03-15", "startTime": "2024-03-15T09:00:00", "endTime": "2024-03-15T10:00:00"}
			]
		}`))
	})

	ctx := WithToken(context.Background(), "tok")
	got, err := NewStaffMemberClient(api, testLoc).GetAvailability(ctx, "c1", "s1")
	require.NoError(t, err)

	assert.Equal(t, "/api/StaffMember/c1/availability/s1", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, got.AvailableSlots, 1)
	slot := got.AvailableSlots[0]
	assert.Equal(t, "a1", slot.ID)
	assert.True(t, slot.StartTime.Equal(time.Date(2024, 3, 15, 9, 0, 0, 0, testLoc)))
	assert.Equal(t, testLoc, slot.StartTime.Location())
	assert.Equal(t, model.RoleTrainer, got.StaffMember.Role)
}

func TestStaffMemberClient_GetAvailability_SkipsUnreadableSlot(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"availableSlots": [
			{"id": "a", "startTime": "2024-03-15T09:00:00", "endTime": "2024-03-15T10:00:00"},
			{"id": "b", "startTime": "15/03/2024 11:00", "endTime": "2024-03-15T12:00:00"}
		]}`))
	})

	got, err := NewStaffMemberClient(api, testLoc).GetAvailability(context.Background(), "c1", "s1")
	require.NoError(t, err)
	require.Len(t, got.AvailableSlots, 1)
	assert.Equal(t, "a", got.AvailableSlots[0].ID)
}

func TestStaffMemberClient_GetEventSchedules_SkipsUnreadableClass(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": "bad", "startTime": "2024-03-15T09:00:00", "endTime": "noon"},
			{"id": "yoga", "startTime": "2024-03-15T11:00:00", "endTime": "2024-03-15T12:00:00"}
		]`))
	})

	got, err := NewStaffMemberClient(api, testLoc).GetEventSchedules(context.Background(), "c1", "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "yoga", got[0].ID)
}

func TestStaffMemberClient_AddAvailability(t *testing.T) {
	var body model.AvailabilityRequest
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	})

	req := model.AvailabilityRequest{Date: "2024-03-15", StartTime: "2024-03-15T08:00:00", EndTime: "2024-03-15T16:00:00"}
	slot, err := NewStaffMemberClient(api, testLoc).AddAvailability(context.Background(), "c1", "s1", req)
	require.NoError(t, err)
	assert.Nil(t, slot)
	assert.Equal(t, req, body)
}

func TestStaffMemberClient_GetEventSchedules_BareArray(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/StaffMember/c1/eventSchedules/s1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": "e1", "eventType": {"id": "t1", "name": "Yoga"}, "startTime": "2024-03-15T11:00:00", "endTime": "2024-03-15T12:00:00"}]`))
	})

	got, err := NewStaffMemberClient(api, testLoc).GetEventSchedules(context.Background(), "c1", "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].EventTypeID)
	assert.Equal(t, "Yoga", got[0].Title())
}

func TestEventScheduleClient_GetAll(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "400", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "yoga", r.URL.Query().Get("eventTypeId"))
		_, _ = w.Write([]byte(`{"items": [{"id": "e1", "startTime": "2024-03-15T11:00:00Z", "endTime": "2024-03-15T12:00:00Z"}], "totalCount": 1, "page": 1, "pageSize": 400}`))
	})

	got, err := NewEventScheduleClient(api, testLoc).GetAll(context.Background(), "c1", EventScheduleQuery{Page: 1, PageSize: 400, EventTypeID: "yoga"})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.TotalCount)
	assert.Equal(t, 12, got.Items[0].StartTime.Hour(), "UTC input should be shown in the configured zone")
}

func TestReservationClient_MarkAsPaid(t *testing.T) {
	var gotMethod, gotPath string
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	c := NewReservationClient(api, testLoc)
	require.NoError(t, c.MarkAsPaid(context.Background(), "c1", "r1"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/Reservation/c1/r1/markAsPaid", gotPath)

	require.NoError(t, c.UnmarkAsPaid(context.Background(), "c1", "r1"))
	assert.Equal(t, "/api/Reservation/c1/r1/unmarkAsPaid", gotPath)
}

func TestReservationClient_GetAll(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"id": "r1", "isPaid": true, "paidAt": "2024-03-10T10:00:00",
			"eventSchedule": {"id": "e1", "startTime": "2024-03-15T11:00:00", "endTime": "2024-03-15T12:00:00"}}]}`))
	})

	got, err := NewReservationClient(api, testLoc).GetAll(context.Background(), "c1", 0, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	r := got.Items[0]
	assert.Equal(t, "e1", r.EventScheduleID)
	require.NotNil(t, r.PaidAt)
	assert.Equal(t, 11, r.Start().Hour())
}

func TestAuthClient_Login(t *testing.T) {
	api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token": "jwt", "id": "s1", "email": "ala@example.com", "firstName": "Ala"}`))
	})
	c := NewAuthClient(api)

	got, err := c.Login(context.Background(), "ala@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", got.Token)
	assert.Equal(t, "s1", got.User.ID)

	_, err = c.Login(context.Background(), "ala@example.com", "wrong")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestResponseErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "exceptions list",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"exceptions": [{"message": "Slot overlaps"}], "message": "Bad request"}`,
			wantCode:    apperrors.CodeUpstream,
			wantMessage: "Slot overlaps",
		},
		{
			name:        "message field",
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        `{"message": "Staff member not found"}`,
			wantCode:    apperrors.CodeUpstream,
			wantMessage: "Staff member not found",
		},
		{
			name:        "bare string",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `"Company is closed"`,
			wantCode:    apperrors.CodeUpstream,
			wantMessage: "Company is closed",
		},
		{
			name:        "empty body falls back",
			status:      http.StatusInternalServerError,
			wantCode:    apperrors.CodeUpstream,
			wantMessage: apperrors.FallbackMessage,
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			wantCode:    apperrors.CodeUnauthorized,
			wantMessage: "session expired, please log in again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := NewEventTypeClient(api).GetAll(context.Background(), "c1")
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	api := NewHttpClient(srv.URL, time.Second)
	srv.Close()

	_, err := NewEventTypeClient(api).GetAll(context.Background(), "c1")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUpstream))
	assert.Equal(t, apperrors.FallbackMessage, apperrors.UserMessage(err))
}
