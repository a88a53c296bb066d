package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventra/internal/model"
	"eventra/internal/security"
	"eventra/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, password, fullName string) (*model.User, *model.TokensPair, error) {
	args := m.Called(ctx, email, password, fullName)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*model.TokensPair), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*model.TokensPair), args.Error(2)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*model.User, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, userUUID, refreshToken string) error {
	args := m.Called(ctx, userUUID, refreshToken)
	return args.Error(0)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userUUID string) (*model.User, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthService) ValidateToken(ctx context.Context, accessToken string) (*model.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockJWT struct {
	mock.Mock
}

func (m *mockJWT) GenerateTokensPair(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	args := m.Called(userUUID)
	return args.Get(0).(*model.TokensPair), args.Get(1).(*model.RefreshToken), args.Error(2)
}

func (m *mockJWT) GenerateAccessToken(userUUID string) (string, error) {
	args := m.Called(userUUID)
	return args.String(0), args.Error(1)
}

func (m *mockJWT) ValidateAccessToken(tokenStr string) (*security.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Claims), args.Error(1)
}

func (m *mockJWT) ValidateRefreshToken(tokenStr string) (*security.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Claims), args.Error(1)
}

func (m *mockJWT) AccessTTL() time.Duration  { return 15 * time.Minute }
func (m *mockJWT) RefreshTTL() time.Duration { return 168 * time.Hour }

func newAuthHandlerForTest() (*AuthHandler, *mockAuthService) {
	authService := new(mockAuthService)
	return NewAuthHandler(authService, new(mockJWT), false), authService
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("успешный вход ставит httpOnly куки", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()
		user := &model.User{UUID: "user-1", Email: "user@example.com"}
		pair := &model.TokensPair{AccessToken: "access", RefreshToken: "refresh"}

		authService.On("Login", mock.Anything, "user@example.com", "secret").Return(user, pair, nil)

		body := strings.NewReader(`{"email":"user@example.com","password":"secret"}`)
		request := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		recorder := httptest.NewRecorder()
		h.Login(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Login successful")

		cookies := recorder.Result().Cookies()
		access := findCookie(t, cookies, security.AccessTokenCookie)
		refresh := findCookie(t, cookies, security.RefreshTokenCookie)
		require.NotNil(t, access)
		require.NotNil(t, refresh)
		assert.True(t, access.HttpOnly)
		assert.True(t, refresh.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
	})

	t.Run("неверные учётные данные", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()

		authService.On("Login", mock.Anything, "user@example.com", "wrong").
			Return(nil, nil, service.ErrInvalidCredentials)

		body := strings.NewReader(`{"email":"user@example.com","password":"wrong"}`)
		request := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		recorder := httptest.NewRecorder()
		h.Login(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, recorder.Body.String())
	})

	t.Run("мусор в теле запроса", func(t *testing.T) {
		h, _ := newAuthHandlerForTest()

		request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
		recorder := httptest.NewRecorder()
		h.Login(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("занятый email — 400", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()

		authService.On("Register", mock.Anything, "taken@example.com", "secret", "Someone").
			Return(nil, nil, service.ErrEmailTaken)

		body := strings.NewReader(`{"email":"taken@example.com","password":"secret","fullName":"Someone"}`)
		request := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
		recorder := httptest.NewRecorder()
		h.Register(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"error":"Email already registered"}`, recorder.Body.String())
	})

	t.Run("успешная регистрация — 201", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()
		user := &model.User{UUID: "user-1", Email: "new@example.com", FullName: "New User"}
		pair := &model.TokensPair{AccessToken: "access", RefreshToken: "refresh"}

		authService.On("Register", mock.Anything, "new@example.com", "secret", "New User").
			Return(user, pair, nil)

		body := strings.NewReader(`{"email":"new@example.com","password":"secret","fullName":"New User"}`)
		request := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
		recorder := httptest.NewRecorder()
		h.Register(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Registration successful")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("без refresh-куки — 401", func(t *testing.T) {
		h, _ := newAuthHandlerForTest()

		request := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		recorder := httptest.NewRecorder()
		h.Refresh(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error":"Refresh token required"}`, recorder.Body.String())
	})

	t.Run("обновляется только access-кука", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()
		user := &model.User{UUID: "user-1"}

		authService.On("Refresh", mock.Anything, "refresh-token").Return(user, "new-access", nil)

		request := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		request.AddCookie(&http.Cookie{Name: security.RefreshTokenCookie, Value: "refresh-token"})
		recorder := httptest.NewRecorder()
		h.Refresh(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Token refreshed successfully")

		cookies := recorder.Result().Cookies()
		access := findCookie(t, cookies, security.AccessTokenCookie)
		require.NotNil(t, access)
		assert.Equal(t, "new-access", access.Value)
		// refresh-кука не перевыпускается
		assert.Nil(t, findCookie(t, cookies, security.RefreshTokenCookie))
	})

	t.Run("токен удалён логаутом — 401", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()

		authService.On("Refresh", mock.Anything, "stale-token").
			Return(nil, "", service.ErrInvalidRefreshToken)

		request := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		request.AddCookie(&http.Cookie{Name: security.RefreshTokenCookie, Value: "stale-token"})
		recorder := httptest.NewRecorder()
		h.Refresh(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error":"Invalid refresh token"}`, recorder.Body.String())
	})
}

func TestAuthHandler_Validate(t *testing.T) {
	t.Run("мусорный токен — 200 valid:false", func(t *testing.T) {
		h, authService := newAuthHandlerForTest()

		authService.On("ValidateToken", mock.Anything, "garbage").Return(nil, service.ErrInvalidCredentials)

		request := httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
		request.Header.Set("Authorization", "Bearer garbage")
		recorder := httptest.NewRecorder()
		h.Validate(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"valid":false}`, recorder.Body.String())
	})

	t.Run("без токена — 200 valid:false", func(t *testing.T) {
		h, _ := newAuthHandlerForTest()

		request := httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil)
		recorder := httptest.NewRecorder()
		h.Validate(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"valid":false}`, recorder.Body.String())
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	h, authService := newAuthHandlerForTest()
	user := &model.User{UUID: "user-1"}

	authService.On("Logout", mock.Anything, "user-1", "refresh-token").Return(nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	request.AddCookie(&http.Cookie{Name: security.RefreshTokenCookie, Value: "refresh-token"})
	request = request.WithContext(context.WithValue(request.Context(), security.UserContextKey, user))
	recorder := httptest.NewRecorder()
	h.Logout(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Logged out successfully")

	// обе куки сброшены
	cookies := recorder.Result().Cookies()
	access := findCookie(t, cookies, security.AccessTokenCookie)
	refresh := findCookie(t, cookies, security.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.Empty(t, access.Value)
	assert.Less(t, access.MaxAge, 0)
	assert.Less(t, refresh.MaxAge, 0)
	authService.AssertExpectations(t)
}
