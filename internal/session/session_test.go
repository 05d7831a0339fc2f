package session

import (
	"context"
	"errors"
	"testing"

	"studiodesk/pkg/client"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	loginErr     error
	companies    []*model.Company
	companiesErr error
	seenToken    string
}

func (m *mockAuth) Login(_ context.Context, email, _ string) (*client.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return &client.LoginResult{Token: "tok-" + email, User: &model.StaffMember{ID: "u1", Email: email}}, nil
}

func (m *mockAuth) GetCompanies(ctx context.Context) ([]*model.Company, error) {
	m.seenToken = client.TokenFrom(ctx)
	if m.companiesErr != nil {
		return nil, m.companiesErr
	}
	return m.companies, nil
}

func studios() []*model.Company {
	return []*model.Company{{ID: "c1", Name: "North"}, {ID: "c2", Name: "South"}}
}

func TestSession_LoginAndSelectCompany(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	auth := &mockAuth{companies: studios()}
	s := New("s1", store, auth, logger.Nop())

	require.NoError(t, s.Login(ctx, "anna@example.com", "secret"))
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.HasCompanySelected())
	assert.Equal(t, "tok-anna@example.com", auth.seenToken)

	require.NoError(t, s.SelectCompany(ctx, "c2", model.RoleTrainer))
	assert.True(t, s.HasCompanySelected())
	assert.True(t, s.HasRole(model.RoleTrainer))
	assert.False(t, s.HasRole(model.RoleManager, model.RoleReceptionEmployee))

	scope, err := s.RequireCompany()
	require.NoError(t, err)
	assert.Equal(t, Scope{CompanyID: "c2", StaffMemberID: "u1", Role: model.RoleTrainer}, scope)

	stored, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "c2", stored.SelectedCompany.ID)
	assert.Equal(t, "tok-anna@example.com", stored.Token)
}

func TestSession_SelectUnknownCompany(t *testing.T) {
	ctx := context.Background()
	s := New("s1", NewMemoryStore(), &mockAuth{companies: studios()}, logger.Nop())
	require.NoError(t, s.Login(ctx, "anna@example.com", "secret"))

	err := s.SelectCompany(ctx, "nope", model.RoleManager)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.False(t, s.HasCompanySelected())
}

func TestSession_SelectCompanyRequiresLogin(t *testing.T) {
	s := New("s1", NewMemoryStore(), &mockAuth{}, logger.Nop())

	err := s.SelectCompany(context.Background(), "c1", model.RoleManager)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestSession_LoginFailureKeepsLoggedOut(t *testing.T) {
	s := New("s1", NewMemoryStore(), &mockAuth{loginErr: apperrors.Unauthorized("Invalid credentials")}, logger.Nop())

	err := s.Login(context.Background(), "anna@example.com", "bad")
	assert.EqualError(t, err, "UNAUTHORIZED: Invalid credentials")
	assert.False(t, s.IsAuthenticated())
}

func TestSession_InitRefreshesCompanies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	auth := &mockAuth{companies: studios()}

	first := New("s1", store, auth, logger.Nop())
	require.NoError(t, first.Login(ctx, "anna@example.com", "secret"))
	require.NoError(t, first.SelectCompany(ctx, "c2", model.RoleManager))

	// c2 is gone by the next start.
	auth.companies = []*model.Company{{ID: "c1", Name: "North"}}
	second := New("s1", store, auth, logger.Nop())
	require.NoError(t, second.Init(ctx))

	assert.True(t, second.IsAuthenticated())
	assert.False(t, second.HasCompanySelected())
	assert.Len(t, second.State().Companies, 1)
}

func TestSession_InitLogsOutWhenRefreshFails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	auth := &mockAuth{companies: studios()}

	require.NoError(t, New("s1", store, auth, logger.Nop()).Login(ctx, "anna@example.com", "secret"))

	auth.companiesErr = errors.New("401")
	s := New("s1", store, auth, logger.Nop())
	require.Error(t, s.Init(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err := store.Load(ctx, "s1")
	assert.Error(t, err)
}

func TestSession_InitWithoutStoredState(t *testing.T) {
	s := New("s1", NewMemoryStore(), &mockAuth{}, logger.Nop())

	require.NoError(t, s.Init(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func TestSession_ClearCompanyAndLogout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New("s1", store, &mockAuth{companies: studios()}, logger.Nop())
	require.NoError(t, s.Login(ctx, "anna@example.com", "secret"))
	require.NoError(t, s.SelectCompany(ctx, "c1", model.RoleReceptionEmployee))

	require.NoError(t, s.ClearCompany(ctx))
	assert.False(t, s.HasCompanySelected())
	assert.False(t, s.HasRole(model.RoleReceptionEmployee))

	_, err := s.RequireCompany()
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	_, err = s.RequireCompany()
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestManager_OpenUnknownSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), &mockAuth{}, logger.Nop())

	_, err := m.Open(context.Background(), "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestManager_CreateThenOpen(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), &mockAuth{companies: studios()}, logger.Nop())

	created, err := m.Create(ctx, "anna@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID())

	opened, err := m.Open(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "u1", opened.State().User.ID)

	require.NoError(t, m.Discard(ctx, created.ID()))
	_, err = m.Open(ctx, created.ID())
	assert.Error(t, err)
}
