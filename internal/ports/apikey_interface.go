package ports

import (
	"context"

	"eventra/internal/model"
)

type APIKeyRepository interface {
	Create(ctx context.Context, key *model.APIKey) error
	FindActiveByHash(ctx context.Context, keyHash string) (*model.APIKey, error)
	TouchLastUsed(ctx context.Context, uuid string) error
}
