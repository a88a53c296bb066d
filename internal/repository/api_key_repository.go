package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventra/config"
	"eventra/internal/model"
	"eventra/internal/util"

	"github.com/jmoiron/sqlx"
)

type APIKeyRepository struct {
	*config.Database
}

func NewAPIKeyRepository(database *config.Database) *APIKeyRepository {
	return &APIKeyRepository{database}
}

// Create : сохраняет хэш нового ключа
func (r *APIKeyRepository) Create(ctx context.Context, key *model.APIKey) error {
	query := `INSERT INTO api_keys (uuid, key_hash, name, is_active) VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(ctx, query, key.UUID, key.KeyHash, key.Name, key.IsActive)
	if err != nil {
		return util.LogError("[APIKeyRepo] ошибка вставки ключа в БД", err)
	}

	return nil
}

// FindActiveByHash : ищет действующий ключ по SHA-256 хэшу
func (r *APIKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*model.APIKey, error) {
	query := `SELECT uuid, key_hash, name, is_active, last_used_at, created_at
				FROM api_keys
				WHERE key_hash = $1 AND is_active = TRUE`

	var key model.APIKey
	err := sqlx.GetContext(ctx, r.DB, &key, query, keyHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[APIKeyRepo] ключ: %w", ErrNotFound)
		}
		return nil, util.LogError("[APIKeyRepo] не удалось найти ключ", err)
	}

	return &key, nil
}

// TouchLastUsed : отмечает момент последнего использования ключа
func (r *APIKeyRepository) TouchLastUsed(ctx context.Context, uuid string) error {
	query := `UPDATE api_keys SET last_used_at = NOW() WHERE uuid = $1`

	if _, err := r.DB.ExecContext(ctx, query, uuid); err != nil {
		return util.LogError("[APIKeyRepo] не удалось обновить last_used_at", err)
	}

	return nil
}
