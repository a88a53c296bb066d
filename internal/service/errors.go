package service

import "errors"

// Сентинельные ошибки сервисного слоя. Хендлеры сопоставляют их
// через errors.Is и переводят в HTTP-статусы.
var (
	ErrNotFound            = errors.New("ресурс не найден")
	ErrUserNotFound        = errors.New("пользователь не найден")
	ErrEmailTaken          = errors.New("email уже зарегистрирован")
	ErrInvalidCredentials  = errors.New("неверный email или пароль")
	ErrInvalidRefreshToken = errors.New("недействительный refresh токен")
	ErrForbidden           = errors.New("доступ запрещён")
	ErrAlreadyJoined       = errors.New("пользователь уже участвует в событии")
	ErrEventFull           = errors.New("достигнут лимит участников события")
	ErrMissingFields       = errors.New("не заполнены обязательные поля")
	ErrDateOrder           = errors.New("дата окончания раньше даты начала")
	ErrInvalidStatus       = errors.New("недопустимый статус участника")
)
