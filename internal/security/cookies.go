package security

import (
	"net/http"
	"time"

	"eventra/internal/model"
)

// SetAuthCookies ставит httpOnly-куки с парой токенов.
// SameSite=Strict всегда, Secure только в production.
func SetAuthCookies(writer http.ResponseWriter, pair *model.TokensPair, accessTTL, refreshTTL time.Duration, secure bool) {
	SetAccessCookie(writer, pair.AccessToken, accessTTL, secure)
	http.SetCookie(writer, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func SetAccessCookie(writer http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookies сбрасывает обе куки при logout
func ClearAuthCookies(writer http.ResponseWriter, secure bool) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
