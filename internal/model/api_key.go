package model

import "time"

// APIKey : статический ключ для service-to-service доступа.
// В БД хранится только SHA-256 хэш, сам ключ показывается один раз при создании.
type APIKey struct {
	UUID       string     `db:"uuid"`
	KeyHash    string     `db:"key_hash"`
	Name       string     `db:"name"`
	IsActive   bool       `db:"is_active"`
	LastUsedAt *time.Time `db:"last_used_at"`
	CreatedAt  time.Time  `db:"created_at"`
}
