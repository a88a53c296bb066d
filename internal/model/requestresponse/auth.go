package requestresponse

import "eventra/internal/model"

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
	FullName string `json:"fullName" example:"Jane Doe"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// AuthResponse : ответ register/login/refresh. Токены дублируются в теле
// для клиентов без поддержки кук.
type AuthResponse struct {
	User         *model.User `json:"user"`
	Message      string      `json:"message" example:"Login successful"`
	AccessToken  string      `json:"accessToken,omitempty"`
	RefreshToken string      `json:"refreshToken,omitempty"`
}

// ValidateResponse : неброское пробное подтверждение токена,
// всегда 200, valid=false при любой ошибке проверки
type ValidateResponse struct {
	Valid bool        `json:"valid"`
	User  *model.User `json:"user,omitempty"`
}

// MessageResponse : общий ответ-подтверждение
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// RateLimitResponse : ответ при превышении лимита запросов
type RateLimitResponse struct {
	Error      string `json:"error" example:"Too many requests from this IP, please try again later."`
	RetryAfter int    `json:"retryAfter" example:"900"`
	Limit      int    `json:"limit" example:"100"`
}
