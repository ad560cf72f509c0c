package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"secret-santa-backend/internal/features/user/models"
	"secret-santa-backend/internal/features/user/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, input *models.UserCreate) (*models.UserResponse, error) {
	args := m.Called(ctx, input)
	u, _ := args.Get(0).(*models.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*models.UserResponse, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id string, input *models.UserUpdate) (*models.UserResponse, error) {
	args := m.Called(ctx, id, input)
	u, _ := args.Get(0).(*models.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context) (*models.UsersResponse, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*models.UsersResponse)
	return u, args.Error(1)
}

func (m *mockUserService) ParticipantIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuth trusts the X-Test-User header instead of signed init data.
func fakeAuth(c *gin.Context) {
	switch c.GetHeader("X-Test-User") {
	case "":
		c.AbortWithStatus(http.StatusUnauthorized)
	case "admin":
		c.Set("user", initdata.User{ID: 1})
	default:
		c.Set("user", initdata.User{ID: 42, FirstName: "Mira", LastName: "Lind", PhotoURL: "https://t.me/i/42.jpg"})
	}
}

func fakeAdmin(c *gin.Context) {
	if c.GetHeader("X-Test-User") != "admin" {
		c.AbortWithStatus(http.StatusForbidden)
	}
}

func newTestRouter(svc service.UserService) *gin.Engine {
	r := gin.New()
	NewUserHandler(svc, zerolog.Nop()).RegisterRoutes(r.Group("/api/v1"), fakeAuth, fakeAdmin)
	return r
}

func do(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRegisterUser(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("Register", mock.Anything, &models.UserCreate{ID: "1001", Name: "Alice", Email: "alice@example.com"}).
		Return(&models.UserResponse{ID: "1001", Name: "Alice", Email: "alice@example.com"}, nil).Once()

	w := do(r, http.MethodPost, "/api/v1/users", "admin", `{"id":"1001","name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"1001"`)
	svc.AssertExpectations(t)
}

func TestRegisterUserRequiresID(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	w := do(r, http.MethodPost, "/api/v1/users", "admin", `{"name":"Alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterMeUsesTelegramIdentity(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("Register", mock.Anything, &models.UserCreate{
		ID:                "42",
		Name:              "Mira Lind",
		Email:             "mira@example.com",
		ProfilePictureURL: "https://t.me/i/42.jpg",
		Interests:         "tea",
		Role:              models.RoleUser,
	}).Return(&models.UserResponse{ID: "42", Name: "Mira Lind"}, nil).Once()

	w := do(r, http.MethodPost, "/api/v1/users/me", "user", `{"email":"mira@example.com","interests":"tea","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"42"`)
	svc.AssertExpectations(t)

	svc.On("GetUser", mock.Anything, "42").Return(&models.UserResponse{ID: "42", Name: "Mira Lind"}, nil).Once()
	w = do(r, http.MethodGet, "/api/v1/users/me", "user", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Mira Lind"`)
}

func TestRegisterMeKeepsChosenName(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("Register", mock.Anything, mock.MatchedBy(func(in *models.UserCreate) bool {
		return in.ID == "42" && in.Name == "Mira L."
	})).Return(nil, service.ErrUserExists).Once()

	w := do(r, http.MethodPost, "/api/v1/users/me", "user", `{"name":"Mira L.","email":"mira@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "USER_EXISTS", errorCode(t, w))
}

func TestRegisterMeRequiresAuth(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	w := do(r, http.MethodPost, "/api/v1/users/me", "", `{"email":"mira@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUpdateMe(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("UpdateUser", mock.Anything, "42", &models.UserUpdate{Interests: "books"}).
		Return(&models.UserResponse{ID: "42", Interests: "books"}, nil).Once()
	svc.On("UpdateUser", mock.Anything, "42", &models.UserUpdate{Name: "Nobody"}).
		Return(nil, service.ErrUserNotFound).Once()

	w := do(r, http.MethodPut, "/api/v1/users/me", "user", `{"interests":"books"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"interests":"books"`)

	w = do(r, http.MethodPut, "/api/v1/users/me", "user", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))

	w = do(r, http.MethodPut, "/api/v1/users/me", "user", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestRegisterUserRequiresAdmin(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	w := do(r, http.MethodPost, "/api/v1/users", "user", `{"id":"1001","name":"Alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterUserBadBody(t *testing.T) {
	r := newTestRouter(new(mockUserService))

	w := do(r, http.MethodPost, "/api/v1/users", "admin", `{"id":"1001","name":"Alice","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestRegisterUserConflict(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrUserExists).Once()

	w := do(r, http.MethodPost, "/api/v1/users", "admin", `{"id":"u1","name":"Alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "USER_EXISTS", errorCode(t, w))
}

func TestGetUser(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("GetUser", mock.Anything, "u1").Return(&models.UserResponse{ID: "u1"}, nil).Once()
	svc.On("GetUser", mock.Anything, "ghost").Return(nil, service.ErrUserNotFound).Once()

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/users/u1", "user", "").Code)

	w := do(r, http.MethodGet, "/api/v1/users/ghost", "user", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

func TestGetMe(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("GetUser", mock.Anything, "42").Return(&models.UserResponse{ID: "42", Name: "Me"}, nil).Once()

	w := do(r, http.MethodGet, "/api/v1/users/me", "user", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Me"`)
}

func TestListUsersRequiresAuth(t *testing.T) {
	r := newTestRouter(new(mockUserService))
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/users", "", "").Code)
}

func TestListUsers(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("ListUsers", mock.Anything).Return(&models.UsersResponse{Items: []models.UserResponse{{ID: "a"}}, Total: 1}, nil).Once()

	w := do(r, http.MethodGet, "/api/v1/users", "user", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestDeleteUser(t *testing.T) {
	svc := new(mockUserService)
	r := newTestRouter(svc)

	svc.On("DeleteUser", mock.Anything, "u1").Return(nil).Once()
	svc.On("DeleteUser", mock.Anything, "u2").Return(errors.New("redis down")).Once()

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/v1/users/u1", "admin", "").Code)

	w := do(r, http.MethodDelete, "/api/v1/users/u2", "admin", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "STORAGE_ERROR", errorCode(t, w))
}
