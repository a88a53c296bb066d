package security

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventra/config"
	"eventra/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTServiceForTest(t *testing.T, accessTTL, refreshTTL string) *JWTService {
	t.Helper()
	service, err := NewJWTService(&config.JWTConfig{
		SecretKey:        "test-access-secret",
		RefreshSecretKey: "test-refresh-secret",
		AccessTokenTTL:   accessTTL,
		RefreshTokenTTL:  refreshTTL,
	})
	require.NoError(t, err)
	return service
}

func TestJWTService_GenerateTokensPair(t *testing.T) {
	service := newJWTServiceForTest(t, "15m", "168h")

	pair, record, err := service.GenerateTokensPair("user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	// запись для БД содержит тот же токен, что уйдёт клиенту
	assert.Equal(t, pair.RefreshToken, record.Token)
	assert.Equal(t, "user-1", record.UserUUID)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), record.ExpiresAt, time.Minute)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserUUID)

	claims, err = service.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserUUID)
}

func TestJWTService_SeparateSigningKeys(t *testing.T) {
	service := newJWTServiceForTest(t, "15m", "168h")

	pair, _, err := service.GenerateTokensPair("user-1")
	require.NoError(t, err)

	// access токен не проходит проверку refresh-ключом и наоборот
	_, err = service.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
	_, err = service.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := newJWTServiceForTest(t, "-1m", "168h")

	token, err := service.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

type stubUserLookup struct {
	user *model.User
	err  error
}

func (s *stubUserLookup) FindByUUID(_ context.Context, _ string) (*model.User, error) {
	return s.user, s.err
}

type stubTokenLookup struct {
	record *model.RefreshToken
	err    error
}

func (s *stubTokenLookup) Find(_ context.Context, _ string, _ string) (*model.RefreshToken, error) {
	return s.record, s.err
}

func authTestHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*called = true
		user, err := GetUserFromContext(request.Context())
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UUID)
		writer.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	user := &model.User{UUID: "user-1", Email: "user@example.com"}

	t.Run("без токена — 401", func(t *testing.T) {
		service := newJWTServiceForTest(t, "15m", "168h")
		called := false
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, &stubTokenLookup{}, false)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, called)
		assert.JSONEq(t, `{"error":"Authentication required"}`, recorder.Body.String())
	})

	t.Run("валидный токен из заголовка", func(t *testing.T) {
		service := newJWTServiceForTest(t, "15m", "168h")
		called := false
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, &stubTokenLookup{}, false)

		token, err := service.GenerateAccessToken("user-1")
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, called)
	})

	t.Run("валидный токен из куки", func(t *testing.T) {
		service := newJWTServiceForTest(t, "15m", "168h")
		called := false
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, &stubTokenLookup{}, false)

		token, err := service.GenerateAccessToken("user-1")
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		request.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, called)
	})

	t.Run("просроченный access с живым refresh обновляется прозрачно", func(t *testing.T) {
		// access подписывается с отрицательным TTL, refresh живой
		expiredService := newJWTServiceForTest(t, "-1m", "168h")
		service := newJWTServiceForTest(t, "15m", "168h")

		expiredAccess, err := expiredService.GenerateAccessToken("user-1")
		require.NoError(t, err)
		pair, record, err := service.GenerateTokensPair("user-1")
		require.NoError(t, err)

		called := false
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, &stubTokenLookup{record: record}, false)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		request.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: expiredAccess})
		request.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: pair.RefreshToken})
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, called)

		// клиенту поставлена новая access-кука, refresh-кука не трогается
		cookies := recorder.Result().Cookies()
		var newAccess string
		for _, cookie := range cookies {
			assert.NotEqual(t, RefreshTokenCookie, cookie.Name)
			if cookie.Name == AccessTokenCookie {
				newAccess = cookie.Value
			}
		}
		require.NotEmpty(t, newAccess)
		claims, err := service.ValidateAccessToken(newAccess)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserUUID)
	})

	t.Run("просроченный access без refresh-куки — 401", func(t *testing.T) {
		expiredService := newJWTServiceForTest(t, "-1m", "168h")
		service := newJWTServiceForTest(t, "15m", "168h")

		expiredAccess, err := expiredService.GenerateAccessToken("user-1")
		require.NoError(t, err)

		called := false
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, &stubTokenLookup{}, false)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		request.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: expiredAccess})
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, called)
	})

	t.Run("refresh удалён логаутом — 401 несмотря на валидную подпись", func(t *testing.T) {
		expiredService := newJWTServiceForTest(t, "-1m", "168h")
		service := newJWTServiceForTest(t, "15m", "168h")

		expiredAccess, err := expiredService.GenerateAccessToken("user-1")
		require.NoError(t, err)
		pair, _, err := service.GenerateTokensPair("user-1")
		require.NoError(t, err)

		called := false
		tokens := &stubTokenLookup{err: errors.New("запись не найдена")}
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, tokens, false)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		request.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: expiredAccess})
		request.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: pair.RefreshToken})
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, called)
		assert.JSONEq(t, `{"error":"Invalid refresh token"}`, recorder.Body.String())
	})

	t.Run("мусорный токен — 401 без попытки обновления", func(t *testing.T) {
		service := newJWTServiceForTest(t, "15m", "168h")
		called := false
		middleware := AuthMiddleware(service, &stubUserLookup{user: user}, &stubTokenLookup{}, false)

		request := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		request.Header.Set("Authorization", "Bearer not-a-jwt")
		recorder := httptest.NewRecorder()
		middleware(authTestHandler(t, &called)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, called)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, recorder.Body.String())
	})
}

func TestHashAPIKey(t *testing.T) {
	// хэш детерминирован и не совпадает с самим ключом
	first := HashAPIKey("my-api-key")
	second := HashAPIKey("my-api-key")

	assert.Equal(t, first, second)
	assert.NotEqual(t, "my-api-key", first)
	assert.Len(t, first, 64)
}
