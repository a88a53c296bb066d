package ports

import (
	"context"

	"eventra/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*model.User, *model.TokensPair, error)
	Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error)
	// Refresh обменивает действующий refresh-токен на новый access-токен,
	// сам refresh-токен при этом не перевыпускается
	Refresh(ctx context.Context, refreshToken string) (*model.User, string, error)
	Logout(ctx context.Context, userUUID, refreshToken string) error
	CurrentUser(ctx context.Context, userUUID string) (*model.User, error)
	ValidateToken(ctx context.Context, accessToken string) (*model.User, error)
}
