package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventra/config"
	"eventra/internal/model"
	"eventra/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetEvent(ctx context.Context, event *model.EventWithMeta) error {
	data, err := json.Marshal(event)
	if err != nil {
		return util.LogError("ошибка сериализации события", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(event.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения события в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetEvent(ctx context.Context, uuid string) (*model.EventWithMeta, error) {
	val, err := r.client.Client.Get(ctx, r.key(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения события из Redis", err)
	}

	var event model.EventWithMeta
	if err := json.Unmarshal([]byte(val), &event); err != nil {
		return nil, util.LogError("ошибка десериализации события из кэша", err)
	}
	return &event, nil
}

func (r *CacheRepository) DeleteEvent(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.key(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления события из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(uuid string) string {
	return fmt.Sprintf("event:%s", uuid)
}
