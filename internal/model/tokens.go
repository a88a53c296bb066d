package model

import "time"

// RefreshToken хранится в БД как подписанная строка целиком.
// Токен действителен, пока запись существует и expires_at в будущем:
// повторная выдача access-токена запись не меняет (ротации нет),
// удаляется запись только при logout или по истечении срока.
type RefreshToken struct {
	Token     string    `db:"token"`
	UserUUID  string    `db:"user_uuid"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT, 15 минут)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (JWT, 7 дней, хранится на сервере)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}
