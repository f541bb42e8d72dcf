package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"opportunityhub-backend/config"
	"opportunityhub-backend/internal/delivery/http/middleware"
	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
	"opportunityhub-backend/pkg/security"
	"opportunityhub-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.RegisterValidators(binding.Validator.Engine().(*validator.Validate))
	os.Exit(m.Run())
}

var (
	youth    = domain.YouthActor{ID: 1}
	employer = domain.EmployerActor{ID: 2}
)

// stubAuth authenticates two fixed tokens; other AuthUsecase methods are
// mocked per test.
type stubAuth struct {
	domain.AuthUsecase
	mock.Mock
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (domain.Actor, error) {
	switch token {
	case "youth-token":
		return youth, nil
	case "employer-token":
		return employer, nil
	}
	return nil, apperror.Unauthorized("Given token not valid for any token type")
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	args := s.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (s *stubAuth) Logout(ctx context.Context, refreshToken string) error {
	return s.Called(refreshToken).Error(0)
}

type mockOpportunityUC struct{ mock.Mock }

func (m *mockOpportunityUC) List(ctx context.Context, filter domain.OpportunityFilter) (*domain.OpportunityPage, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpportunityPage), args.Error(1)
}

func (m *mockOpportunityUC) Get(ctx context.Context, id int64) (*domain.Opportunity, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *mockOpportunityUC) Create(ctx context.Context, actor domain.Actor, input domain.OpportunityInput) (*domain.Opportunity, error) {
	args := m.Called(actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *mockOpportunityUC) Update(ctx context.Context, actor domain.Actor, id int64, input domain.OpportunityInput) (*domain.Opportunity, error) {
	args := m.Called(actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *mockOpportunityUC) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	return m.Called(actor, id).Error(0)
}

type mockApplicationUC struct{ mock.Mock }

func (m *mockApplicationUC) Apply(ctx context.Context, actor domain.Actor, opportunityID int64, coverLetter string) (*domain.Application, error) {
	args := m.Called(actor, opportunityID, coverLetter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *mockApplicationUC) MyApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	args := m.Called(actor)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *mockApplicationUC) EmployerApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	args := m.Called(actor)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *mockApplicationUC) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Application, error) {
	args := m.Called(actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *mockApplicationUC) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	args := m.Called(actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

type stubHealth struct{ healthy bool }

func (s stubHealth) Check(context.Context) (map[string]string, bool) {
	if s.healthy {
		return map[string]string{"status": "ok", "database": "ok"}, true
	}
	return map[string]string{"status": "degraded", "database": "unavailable"}, false
}

type testServer struct {
	router        *gin.Engine
	auth          *stubAuth
	opportunities *mockOpportunityUC
	applications  *mockApplicationUC
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.JWTSecret = "test-secret"

	globalStore, err := middleware.NewRateLimitStore(nil, "test-global")
	require.NoError(t, err)
	authStore, err := middleware.NewRateLimitStore(nil, "test-auth")
	require.NoError(t, err)

	secLogger := security.NewLogger(zap.NewNop(), "test", "test")
	s := &testServer{
		auth:          &stubAuth{},
		opportunities: &mockOpportunityUC{},
		applications:  &mockApplicationUC{},
	}
	s.router = NewRouter(RouterDeps{
		AuthUC:        s.auth,
		OpportunityUC: s.opportunities,
		ApplicationUC: s.applications,
		Health:        stubHealth{healthy: true},
		LoginTracker: security.NewLoginTracker(security.LoginTrackerConfig{MaxAttempts: 5},
			func() *goredis.Client { return nil }, secLogger),
		SecurityLogger:   secLogger,
		GlobalLimitStore: globalStore,
		AuthLimitStore:   authStore,
		Config:           cfg,
	})
	t.Cleanup(func() {
		s.auth.AssertExpectations(t)
		s.opportunities.AssertExpectations(t)
		s.applications.AssertExpectations(t)
	})
	return s
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody(t, w).Success)
}

func TestHealthDegraded(t *testing.T) {
	r := gin.New()
	NewHealthHandler(r.Group("/v1"), stubHealth{healthy: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/auth/me"},
		{http.MethodGet, "/v1/youth/profile"},
		{http.MethodPatch, "/v1/youth/experience/1"},
		{http.MethodGet, "/v1/employers/profile"},
		{http.MethodPost, "/v1/opportunities"},
		{http.MethodGet, "/v1/opportunities/applications/my"},
	} {
		w := s.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("Login", "wanjiku", "Harambee#2025").Return(&domain.AuthResult{
		User:    &domain.Account{ID: 1, Username: "wanjiku", Role: domain.RoleYouth},
		Tokens:  domain.TokenPair{Refresh: "r", Access: "a"},
		Message: "Login successful",
	}, nil).Once()
	s.auth.On("Login", "wanjiku", "wrong").Return(nil, apperror.Unauthorized("Invalid credentials")).Once()

	w := s.do(http.MethodPost, "/v1/auth/login", "", LoginRequest{Username: "wanjiku", Password: "Harambee#2025"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, "a", body.Data.(map[string]interface{})["tokens"].(map[string]interface{})["access"])

	w = s.do(http.MethodPost, "/v1/auth/login", "", LoginRequest{Username: "wanjiku", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w).Message)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("Logout", "bad").Return(apperror.BadRequest("Invalid token")).Once()
	s.auth.On("Logout", "").Return(nil).Once()

	w := s.do(http.MethodPost, "/v1/auth/logout", "youth-token", LogoutRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/auth/logout", "youth-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", decodeBody(t, w).Message)
}

func TestListOpportunitiesParsesFilters(t *testing.T) {
	s := newTestServer(t)
	s.opportunities.On("List", domain.OpportunityFilter{
		Category: "technology",
		County:   "Nairobi",
		Type:     "full-time",
		Skill:    "Go",
		Page:     2,
		PageSize: 5,
	}).Return(&domain.OpportunityPage{Count: 6, Page: 2, PageSize: 5, Results: []domain.Opportunity{{ID: 9}}}, nil).Once()

	w := s.do(http.MethodGet, "/v1/opportunities?category=technology&county=Nairobi&type=full-time&skill=Go&page=2&page_size=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 6, data["count"])
	assert.Len(t, data["results"], 1)
}

func TestGetOpportunity(t *testing.T) {
	s := newTestServer(t)
	s.opportunities.On("Get", int64(3)).Return(nil, apperror.NotFound("Opportunity not found")).Once()

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/opportunities/3", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/opportunities/abc", "", nil).Code)
}

func TestCreateOpportunity(t *testing.T) {
	s := newTestServer(t)
	title := "Junior Developer"
	category := domain.CategoryTechnology
	skills := []string{"Go", "SQL"}
	s.opportunities.On("Create", employer, mock.MatchedBy(func(in domain.OpportunityInput) bool {
		return *in.Title == title && *in.Category == category && len(*in.RequiredSkills) == 2
	})).Return(&domain.Opportunity{ID: 11, Title: title}, nil).Once()
	s.opportunities.On("Create", youth, mock.Anything).
		Return(nil, apperror.Forbidden("Only employers can create opportunities")).Once()

	req := OpportunityRequest{Title: &title, RequiredSkills: &skills}
	cat := string(category)
	req.Category = &cat

	w := s.do(http.MethodPost, "/v1/opportunities", "employer-token", req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Opportunity created successfully", decodeBody(t, w).Message)

	w = s.do(http.MethodPost, "/v1/opportunities", "youth-token", req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOpportunityRejectsUnknownCategory(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/v1/opportunities", "employer-token", map[string]interface{}{
		"title":    "Junior Developer",
		"category": "Space",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w).Error.(map[string]interface{})
	assert.Contains(t, fields, "category")
}

func TestCreateOpportunityRejectsEmojiTitle(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPost, "/v1/opportunities", "employer-token", map[string]interface{}{
		"title":    "Junior Developer 🚀",
		"category": "Technology",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w).Error.(map[string]interface{})
	assert.Contains(t, fields, "title")
	s.opportunities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteOpportunity(t *testing.T) {
	s := newTestServer(t)
	s.opportunities.On("Delete", employer, int64(4)).Return(nil).Once()

	w := s.do(http.MethodDelete, "/v1/opportunities/4", "employer-token", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestApplicationRoutes(t *testing.T) {
	s := newTestServer(t)
	s.applications.On("Apply", youth, int64(5), "Hi").
		Return(&domain.Application{ID: 1, OpportunityID: 5, Status: domain.ApplicationStatusPending}, nil).Once()
	s.applications.On("MyApplications", youth).Return([]domain.Application{{ID: 1}}, nil).Once()
	s.applications.On("EmployerApplications", employer).Return([]domain.Application{}, nil).Once()
	s.applications.On("Get", employer, int64(1)).Return(&domain.Application{ID: 1}, nil).Once()
	s.applications.On("UpdateStatus", employer, int64(1), domain.ApplicationStatusAccepted).
		Return(&domain.Application{ID: 1, Status: domain.ApplicationStatusAccepted}, nil).Once()

	w := s.do(http.MethodPost, "/v1/opportunities/5/apply", "youth-token", ApplyRequest{CoverLetter: "Hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pending", decodeBody(t, w).Data.(map[string]interface{})["status"])

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/opportunities/applications/my", "youth-token", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/opportunities/applications/employer", "employer-token", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/opportunities/applications/1", "employer-token", nil).Code)

	w = s.do(http.MethodPut, "/v1/opportunities/applications/1", "employer-token", UpdateStatusRequest{Status: "accepted"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", decodeBody(t, w).Data.(map[string]interface{})["status"])
}

func TestUpdateStatusRequiresStatus(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodPut, "/v1/opportunities/applications/1", "employer-token", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"status": []interface{}{"This field is required."}}, decodeBody(t, w).Error)
}
