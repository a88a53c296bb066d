package handler

import (
	"errors"
	"net/http"

	"eventra/internal/model/requestresponse"
	"eventra/internal/ports"
	"eventra/internal/security"
	"eventra/internal/service"
)

type AuthHandler struct {
	authService   ports.AuthService
	jwtService    ports.JWTServiceInterface
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, jwtService ports.JWTServiceInterface, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// Register регистрирует нового пользователя
// @Summary Регистрация пользователя
// @Description Создаёт пользователя, ставит куки с парой токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param request body requestresponse.RegisterRequest true "Данные регистрации"
// @Success 201 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(writer http.ResponseWriter, request *http.Request) {
	var req requestresponse.RegisterRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	user, pair, err := h.authService.Register(request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			sendErrorResponse(writer, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrEmailTaken):
			sendErrorResponse(writer, http.StatusBadRequest, "Email already registered")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	security.SetAuthCookies(writer, pair, h.jwtService.AccessTTL(), h.jwtService.RefreshTTL(), h.secureCookies)
	sendJSONResponse(writer, http.StatusCreated, requestresponse.AuthResponse{
		User:         user,
		Message:      "Registration successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login аутентифицирует пользователя
// @Summary Вход пользователя
// @Description Проверяет email и пароль, ставит куки с парой токенов
// @Tags auth
// @Accept json
// @Produce json
// @Param request body requestresponse.LoginRequest true "Учётные данные"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(writer http.ResponseWriter, request *http.Request) {
	var req requestresponse.LoginRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	user, pair, err := h.authService.Login(request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			sendErrorResponse(writer, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrInvalidCredentials):
			sendErrorResponse(writer, http.StatusUnauthorized, "Invalid credentials")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	security.SetAuthCookies(writer, pair, h.jwtService.AccessTTL(), h.jwtService.RefreshTTL(), h.secureCookies)
	sendJSONResponse(writer, http.StatusOK, requestresponse.AuthResponse{
		User:         user,
		Message:      "Login successful",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh обновляет access-токен по refresh-куке.
// Refresh-токен не перевыпускается, клиенту ставится только новая access-кука.
// @Summary Обновление access токена
// @Tags auth
// @Produce json
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(security.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		sendErrorResponse(writer, http.StatusUnauthorized, "Refresh token required")
		return
	}

	user, accessToken, err := h.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			sendErrorResponse(writer, http.StatusUnauthorized, "User not found")
		case errors.Is(err, service.ErrInvalidRefreshToken):
			sendErrorResponse(writer, http.StatusUnauthorized, "Invalid refresh token")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Token refresh failed")
		}
		return
	}

	security.SetAccessCookie(writer, accessToken, h.jwtService.AccessTTL(), h.secureCookies)
	sendJSONResponse(writer, http.StatusOK, requestresponse.AuthResponse{
		User:        user,
		Message:     "Token refreshed successfully",
		AccessToken: accessToken,
	})
}

// Me возвращает профиль текущего пользователя
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(writer http.ResponseWriter, request *http.Request) {
	current, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.CurrentUser(request.Context(), current.UUID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			sendErrorResponse(writer, http.StatusNotFound, "User not found")
			return
		}
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to load user")
		return
	}

	sendJSONResponse(writer, http.StatusOK, user)
}

// Validate пробно проверяет access-токен. Любой отказ — это {valid: false}
// со статусом 200, эндпоинт не раскрывает причину.
// @Summary Проверка access токена
// @Tags auth
// @Produce json
// @Success 200 {object} requestresponse.ValidateResponse
// @Router /api/auth/validate [post]
func (h *AuthHandler) Validate(writer http.ResponseWriter, request *http.Request) {
	token := security.ExtractToken(request)
	if token == "" {
		sendJSONResponse(writer, http.StatusOK, requestresponse.ValidateResponse{Valid: false})
		return
	}

	user, err := h.authService.ValidateToken(request.Context(), token)
	if err != nil {
		sendJSONResponse(writer, http.StatusOK, requestresponse.ValidateResponse{Valid: false})
		return
	}

	sendJSONResponse(writer, http.StatusOK, requestresponse.ValidateResponse{Valid: true, User: user})
}

// Logout удаляет refresh-токен из БД и сбрасывает куки
// @Summary Выход пользователя
// @Tags auth
// @Produce json
// @Success 200 {object} requestresponse.MessageResponse
// @Security BearerAuth
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(writer http.ResponseWriter, request *http.Request) {
	current, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	refreshToken := ""
	if cookie, err := request.Cookie(security.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.authService.Logout(request.Context(), current.UUID, refreshToken); err != nil {
		sendErrorResponse(writer, http.StatusInternalServerError, "Logout failed")
		return
	}

	security.ClearAuthCookies(writer, h.secureCookies)
	sendJSONResponse(writer, http.StatusOK, requestresponse.MessageResponse{Message: "Logged out successfully"})
}
