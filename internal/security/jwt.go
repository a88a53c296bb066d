package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eventra/config"
	"eventra/internal/model"
	"eventra/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Claims несёт только идентификатор пользователя,
// остальная идентичность подтягивается из БД на каждый запрос
type Claims struct {
	UserUUID string `json:"userId"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey        []byte
	refreshSecretKey []byte
	accessTTL        time.Duration
	refreshTTL       time.Duration
}

func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}

	return &JWTService{
		secretKey:        []byte(cfg.SecretKey),
		refreshSecretKey: []byte(cfg.RefreshSecretKey),
		accessTTL:        accessTTL,
		refreshTTL:       refreshTTL,
	}, nil
}

func (service *JWTService) AccessTTL() time.Duration  { return service.accessTTL }
func (service *JWTService) RefreshTTL() time.Duration { return service.refreshTTL }

// GenerateTokensPair выдаёт новую пару токенов. Refresh-токен подписывается
// отдельным ключом и возвращается вместе с записью для сохранения в БД:
// пара не должна отдаваться клиенту раньше, чем запись сохранена.
func (service *JWTService) GenerateTokensPair(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	accessToken, err := service.GenerateAccessToken(userUUID)
	if err != nil {
		return nil, nil, err
	}

	expiresAt := time.Now().Add(service.refreshTTL)
	refreshToken, err := service.sign(userUUID, service.refreshSecretKey, service.refreshTTL)
	if err != nil {
		return nil, nil, util.LogError("ошибка подписи refresh токена", err)
	}

	record := &model.RefreshToken{
		Token:     refreshToken,
		UserUUID:  userUUID,
		ExpiresAt: expiresAt,
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, record, nil
}

// GenerateAccessToken выдаёт только access-токен, refresh при этом не трогается
func (service *JWTService) GenerateAccessToken(userUUID string) (string, error) {
	accessToken, err := service.sign(userUUID, service.secretKey, service.accessTTL)
	if err != nil {
		return "", util.LogError("ошибка подписи access токена", err)
	}
	return accessToken, nil
}

func (service *JWTService) sign(userUUID string, key []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "eventra",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jwtToken.SignedString(key)
}

// ValidateAccessToken проверяет подпись и срок действия access-токена.
// Просроченный токен возвращает ошибку, для которой errors.Is(err, jwt.ErrTokenExpired) == true.
func (service *JWTService) ValidateAccessToken(jwtTokenStr string) (*Claims, error) {
	return service.validate(jwtTokenStr, service.secretKey)
}

// ValidateRefreshToken проверяет подпись и срок действия refresh-токена
// отдельным ключом подписи
func (service *JWTService) ValidateRefreshToken(jwtTokenStr string) (*Claims, error) {
	return service.validate(jwtTokenStr, service.refreshSecretKey)
}

func (service *JWTService) validate(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("невалидный токен: %w", err)
	}
	if !jwtToken.Valid {
		return nil, fmt.Errorf("невалидный токен")
	}

	return claims, nil
}

// UserLookup : загрузка пользователя для прикрепления идентичности к запросу
type UserLookup interface {
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
}

// RefreshTokenLookup : проверка существования refresh-токена в БД.
// Запрос обязан отфильтровывать просроченные записи.
type RefreshTokenLookup interface {
	Find(ctx context.Context, token string, userUUID string) (*model.RefreshToken, error)
}

// AuthMiddleware закрывает маршруты access-токеном. Токен берётся из
// заголовка Authorization (обратная совместимость), иначе из куки.
// Просроченный access-токен прозрачно обменивается по refresh-куке:
// не более одной попытки обновления на запрос.
func AuthMiddleware(jwtService *JWTService, users UserLookup, tokens RefreshTokenLookup, secureCookies bool) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, users, tokens, secureCookies, next))
	}
}

func handleAuthentication(jwtService *JWTService, users UserLookup, tokens RefreshTokenLookup, secureCookies bool, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token := ExtractToken(request)
		if token == "" {
			writeAuthError(writer, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				handleTokenRefresh(jwtService, users, tokens, secureCookies, next, writer, request)
				return
			}
			writeAuthError(writer, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := users.FindByUUID(request.Context(), claims.UserUUID)
		if err != nil || user == nil {
			writeAuthError(writer, http.StatusUnauthorized, "User not found")
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, user))
		next.ServeHTTP(writer, req)
	}
}

// handleTokenRefresh : серверная часть обновления. Каждый шаг — жёсткий гейт:
// подпись, наличие записи в БД с совпадающим владельцем, существование
// пользователя. Refresh-токен при успехе не перевыпускается, клиенту ставится
// только новая access-кука.
func handleTokenRefresh(jwtService *JWTService, users UserLookup, tokens RefreshTokenLookup, secureCookies bool, next http.Handler, writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeAuthError(writer, http.StatusUnauthorized, "Refresh token required")
		return
	}
	refreshToken := cookie.Value

	claims, err := jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		writeAuthError(writer, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	record, err := tokens.Find(request.Context(), refreshToken, claims.UserUUID)
	if err != nil || record == nil {
		writeAuthError(writer, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	user, err := users.FindByUUID(request.Context(), claims.UserUUID)
	if err != nil || user == nil {
		writeAuthError(writer, http.StatusUnauthorized, "User not found")
		return
	}

	newAccessToken, err := jwtService.GenerateAccessToken(user.UUID)
	if err != nil {
		writeAuthError(writer, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	SetAccessCookie(writer, newAccessToken, jwtService.AccessTTL(), secureCookies)

	req := request.WithContext(context.WithValue(request.Context(), UserContextKey, user))
	next.ServeHTTP(writer, req)
}

// ExtractToken достаёт access-токен из запроса: сначала Bearer-заголовок,
// затем кука accessToken
func ExtractToken(request *http.Request) string {
	authorizationHeader := request.Header.Get("Authorization")
	if strings.HasPrefix(authorizationHeader, "Bearer ") {
		return strings.TrimPrefix(authorizationHeader, "Bearer ")
	}

	if cookie, err := request.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

func GetUserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return user, nil
}

func writeAuthError(writer http.ResponseWriter, statusCode int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	fmt.Fprintf(writer, `{"error":%q}`+"\n", message)
}
