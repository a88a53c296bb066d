package service

import (
	"context"
	"errors"
	"fmt"

	"eventra/internal/model"
	"eventra/internal/ports"
	"eventra/internal/repository"
	"eventra/internal/security"
	"eventra/internal/util"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepository  ports.UserRepository
	tokenRepository ports.RefreshTokenRepository
	jwtService      ports.JWTServiceInterface
}

func NewAuthService(
	userRepository ports.UserRepository,
	tokenRepository ports.RefreshTokenRepository,
	jwtService ports.JWTServiceInterface,
) *AuthService {
	return &AuthService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		jwtService:      jwtService,
	}
}

// Register создаёт пользователя и сразу выдаёт пару токенов,
// чтобы после регистрации не требовался отдельный логин
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*model.User, *model.TokensPair, error) {
	if email == "" || password == "" || fullName == "" {
		return nil, nil, ErrMissingFields
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, util.LogError("[AuthService] не удалось захэшировать пароль", err)
	}

	user := &model.User{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("[AuthService] регистрация: %w", err)
	}

	pair, err := s.issueTokens(ctx, created.UUID)
	if err != nil {
		return nil, nil, err
	}

	return created, pair, nil
}

// Login проверяет учётные данные и выдаёт новую пару токенов
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *model.TokensPair, error) {
	if email == "" || password == "" {
		return nil, nil, ErrMissingFields
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("[AuthService] логин: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.UUID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh выдаёт новый access токен по refresh токену.
// Сам refresh токен не ротируется: он живёт до истечения срока
// или до логаута, повторный Refresh с тем же токеном допустим.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.User, string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, "", ErrInvalidRefreshToken
	}

	// подпись верна, но запись могла быть удалена логаутом
	if _, err := s.tokenRepository.Find(ctx, refreshToken, claims.UserUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidRefreshToken
		}
		return nil, "", fmt.Errorf("[AuthService] обновление токена: %w", err)
	}

	user, err := s.userRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("[AuthService] обновление токена: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.UUID)
	if err != nil {
		return nil, "", util.LogError("[AuthService] не удалось сгенерировать access токен", err)
	}

	return user, accessToken, nil
}

// Logout удаляет refresh токен пользователя из базы.
// Отсутствие записи не считается ошибкой: логаут идемпотентен.
func (s *AuthService) Logout(ctx context.Context, userUUID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := s.tokenRepository.Delete(ctx, refreshToken, userUUID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("[AuthService] логаут: %w", err)
	}

	return nil
}

// CurrentUser возвращает профиль пользователя по UUID
func (s *AuthService) CurrentUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("[AuthService] текущий пользователь: %w", err)
	}

	return user, nil
}

// ValidateToken проверяет access токен и возвращает его владельца.
// Любая причина отказа схлопывается в ошибку: вызывающий отвечает
// {valid: false} без деталей.
func (s *AuthService) ValidateToken(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// issueTokens генерирует пару токенов и сохраняет refresh в БД.
// Запись должна существовать до того, как токен уйдёт клиенту,
// иначе немедленный Refresh получил бы отказ.
func (s *AuthService) issueTokens(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	pair, refreshRecord, err := s.jwtService.GenerateTokensPair(userUUID)
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось сгенерировать пару токенов", err)
	}

	if err := s.tokenRepository.Save(ctx, refreshRecord); err != nil {
		return nil, fmt.Errorf("[AuthService] сохранение refresh токена: %w", err)
	}

	return pair, nil
}

var _ ports.AuthService = (*AuthService)(nil)
