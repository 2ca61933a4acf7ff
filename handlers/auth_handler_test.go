package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/priceoptimizer/backend/auth"
	"github.com/priceoptimizer/backend/internal/access"
	"github.com/priceoptimizer/backend/models"
	"github.com/priceoptimizer/backend/repositories"
	svcauth "github.com/priceoptimizer/backend/services/auth"
)

// MockUserRepository mocks repositories.UserRepository for wiring a real
// auth service behind the handler.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthHandler(t *testing.T) (*AuthHandler, *MockUserRepository, *appauth.TokenManager) {
	t.Helper()
	users := new(MockUserRepository)
	tokens := appauth.NewTokenManager([]byte("test-secret"), 30*time.Minute, 24*time.Hour)
	evaluator := access.NewEvaluator(models.DefaultRoleGrants())
	service := svcauth.NewService(users, tokens, evaluator, zap.NewNop())
	return NewAuthHandler(service, false, zap.NewNop()), users, tokens
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           7,
		Name:         "Sam Supplier",
		Email:        "sam@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleSupplier,
	}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandleSignup(t *testing.T) {
	t.Run("registers and asks the user to log in", func(t *testing.T) {
		handler, users, _ := newAuthHandler(t)
		users.On("GetByEmail", mock.Anything, "sam@example.com").Return(nil, repositories.ErrNotFound)
		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		body := `{"name":"Sam Supplier","email":"sam@example.com","password":"password123","role":"supplier"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleSignup(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "log in")
		assert.Empty(t, rec.Result().Cookies(), "signup must not issue tokens")
	})

	t.Run("short password fails validation", func(t *testing.T) {
		handler, users, _ := newAuthHandler(t)

		body := `{"name":"Sam","email":"sam@example.com","password":"short","role":"supplier"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleSignup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin role fails validation", func(t *testing.T) {
		handler, _, _ := newAuthHandler(t)

		body := `{"name":"Eve","email":"eve@example.com","password":"password123","role":"admin"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleSignup(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		handler, users, _ := newAuthHandler(t)
		users.On("GetByEmail", mock.Anything, "sam@example.com").Return(hashedUser(t, "x"), nil)

		body := `{"name":"Sam","email":"sam@example.com","password":"password123","role":"supplier"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleSignup(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("sets both cookies and returns the session", func(t *testing.T) {
		handler, users, tokens := newAuthHandler(t)
		users.On("GetByEmail", mock.Anything, "sam@example.com").Return(hashedUser(t, "password123"), nil)

		body := `{"email":"sam@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Sam Supplier", resp.UserName)
		assert.Equal(t, int64(7), resp.UserID)
		assert.Equal(t, "supplier", resp.Role)
		assert.Equal(t, int((30 * time.Minute).Seconds()), resp.ExpiresIn)
		assert.NotContains(t, rec.Body.String(), "token", "token material must stay in cookies")

		cookies := rec.Result().Cookies()
		accessCookie := cookieByName(cookies, "access_token")
		require.NotNil(t, accessCookie)
		assert.True(t, accessCookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, accessCookie.SameSite)

		claims, err := tokens.Validate(accessCookie.Value)
		require.NoError(t, err)
		assert.Equal(t, appauth.TokenTypeAccess, claims.TokenType)

		refreshCookie := cookieByName(cookies, "refresh_token")
		require.NotNil(t, refreshCookie)
		assert.True(t, refreshCookie.HttpOnly)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		handler, users, _ := newAuthHandler(t)
		users.On("GetByEmail", mock.Anything, "sam@example.com").Return(hashedUser(t, "password123"), nil)

		body := `{"email":"sam@example.com","password":"nope nope nope"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		handler, _, _ := newAuthHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleRefresh(t *testing.T) {
	t.Run("rotates the session from the refresh cookie", func(t *testing.T) {
		handler, users, tokens := newAuthHandler(t)
		user := hashedUser(t, "password123")
		users.On("GetByEmail", mock.Anything, "sam@example.com").Return(user, nil)

		refreshToken, err := tokens.IssueRefresh(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
		rec := httptest.NewRecorder()
		handler.HandleRefresh(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		accessCookie := cookieByName(rec.Result().Cookies(), "access_token")
		require.NotNil(t, accessCookie)

		claims, err := tokens.Validate(accessCookie.Value)
		require.NoError(t, err)
		assert.Equal(t, models.RoleSupplier, claims.Role)
	})

	t.Run("missing cookie is unauthorized", func(t *testing.T) {
		handler, _, _ := newAuthHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		rec := httptest.NewRecorder()
		handler.HandleRefresh(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token in the cookie is rejected", func(t *testing.T) {
		handler, _, tokens := newAuthHandler(t)

		accessToken, err := tokens.IssueAccess(hashedUser(t, "password123"), nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: accessToken})
		rec := httptest.NewRecorder()
		handler.HandleRefresh(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
