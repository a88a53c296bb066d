package ports

import (
	"context"
	"time"

	"eventra/internal/model"
	"eventra/internal/security"
)

type RefreshTokenRepository interface {
	Save(ctx context.Context, token *model.RefreshToken) error
	Find(ctx context.Context, token string, userUUID string) (*model.RefreshToken, error)
	Delete(ctx context.Context, token string, userUUID string) error
}

type JWTServiceInterface interface {
	GenerateTokensPair(userUUID string) (*model.TokensPair, *model.RefreshToken, error)
	GenerateAccessToken(userUUID string) (string, error)
	ValidateAccessToken(tokenStr string) (*security.Claims, error)
	ValidateRefreshToken(tokenStr string) (*security.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
