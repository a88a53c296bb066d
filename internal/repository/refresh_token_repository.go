package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventra/config"
	"eventra/internal/model"
	"eventra/internal/util"
)

type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// Save сохраняет refresh-токен в базе данных.
// У пользователя может быть несколько живых токенов одновременно (мульти-девайс).
func (r *RefreshTokenRepository) Save(ctx context.Context, refreshToken *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (token, user_uuid, expires_at)
				VALUES ($1, $2, $3)
	`

	_, err := r.DB.ExecContext(ctx, query,
		refreshToken.Token,
		refreshToken.UserUUID,
		refreshToken.ExpiresAt,
	)

	if err != nil {
		return util.LogError("ошибка вставки refresh токена в БД", err)
	}

	return nil
}

// Find ищет живую запись по строке токена и владельцу.
// Просроченные записи отфильтровываются прямо в запросе, фонового
// вычищения нет.
func (r *RefreshTokenRepository) Find(ctx context.Context, token string, userUUID string) (*model.RefreshToken, error) {
	query := `SELECT token, user_uuid, expires_at, created_at
				FROM refresh_tokens
				WHERE token = $1 AND user_uuid = $2 AND expires_at > NOW()`

	refreshToken := &model.RefreshToken{}

	err := r.DB.QueryRowxContext(ctx, query, token, userUUID).Scan(
		&refreshToken.Token,
		&refreshToken.UserUUID,
		&refreshToken.ExpiresAt,
		&refreshToken.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh токен: %w", ErrNotFound)
		}
		return nil, util.LogError("ошибка при поиске refresh токена", err)
	}

	return refreshToken, nil
}

// Delete удаляет запись токена, ограничиваясь владельцем:
// чужой токен удалить нельзя даже при совпадении строки
func (r *RefreshTokenRepository) Delete(ctx context.Context, token string, userUUID string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1 AND user_uuid = $2`

	result, err := r.DB.ExecContext(ctx, query, token, userUUID)
	if err != nil {
		return util.LogError("не удалось удалить refresh токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("не удалось проверить удаление refresh токена", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("refresh токен: %w", ErrNotFound)
	}

	return nil
}
