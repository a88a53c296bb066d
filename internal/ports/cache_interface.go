package ports

import (
	"context"

	"eventra/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetEvent(ctx context.Context, event *model.EventWithMeta) error
	GetEvent(ctx context.Context, uuid string) (*model.EventWithMeta, error)
	DeleteEvent(ctx context.Context, uuid string) error
}
