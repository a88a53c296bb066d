package service

import (
	"context"
	"time"

	"eventra/internal/model"
	"eventra/internal/security"

	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Save(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) Find(ctx context.Context, token string, userUUID string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepository) Delete(ctx context.Context, token string, userUUID string) error {
	args := m.Called(ctx, token, userUUID)
	return args.Error(0)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateTokensPair(userUUID string) (*model.TokensPair, *model.RefreshToken, error) {
	args := m.Called(userUUID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.TokensPair), args.Get(1).(*model.RefreshToken), args.Error(2)
}

func (m *mockJWTService) GenerateAccessToken(userUUID string) (string, error) {
	args := m.Called(userUUID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateAccessToken(tokenStr string) (*security.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Claims), args.Error(1)
}

func (m *mockJWTService) ValidateRefreshToken(tokenStr string) (*security.Claims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Claims), args.Error(1)
}

func (m *mockJWTService) AccessTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

func (m *mockJWTService) RefreshTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *mockEventRepository) GetByUUID(ctx context.Context, uuid string) (*model.EventWithMeta, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventWithMeta), args.Error(1)
}

func (m *mockEventRepository) List(ctx context.Context) ([]model.EventWithMeta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventWithMeta), args.Error(1)
}

func (m *mockEventRepository) ListCreatedBy(ctx context.Context, userUUID string) ([]model.EventWithMeta, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventWithMeta), args.Error(1)
}

func (m *mockEventRepository) ListParticipating(ctx context.Context, userUUID string) ([]model.EventWithMeta, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventWithMeta), args.Error(1)
}

func (m *mockEventRepository) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *mockEventRepository) Delete(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

type mockParticipantRepository struct {
	mock.Mock
}

func (m *mockParticipantRepository) Create(ctx context.Context, participant *model.Participant) (*model.Participant, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockParticipantRepository) AddGuest(ctx context.Context, guest *model.GuestUser, participant *model.Participant) (*model.Participant, error) {
	args := m.Called(ctx, guest, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockParticipantRepository) FindByEventAndUser(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error) {
	args := m.Called(ctx, eventUUID, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockParticipantRepository) CountByEvent(ctx context.Context, eventUUID string) (int, error) {
	args := m.Called(ctx, eventUUID)
	return args.Int(0), args.Error(1)
}

func (m *mockParticipantRepository) ListByEvent(ctx context.Context, eventUUID string) ([]model.ParticipantInfo, error) {
	args := m.Called(ctx, eventUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParticipantInfo), args.Error(1)
}

func (m *mockParticipantRepository) UpdateStatus(ctx context.Context, participantUUID, status string) (*model.Participant, error) {
	args := m.Called(ctx, participantUUID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockParticipantRepository) Delete(ctx context.Context, participantUUID string) error {
	args := m.Called(ctx, participantUUID)
	return args.Error(0)
}

type mockCacheRepository struct {
	mock.Mock
}

func (m *mockCacheRepository) SetEvent(ctx context.Context, event *model.EventWithMeta) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockCacheRepository) GetEvent(ctx context.Context, uuid string) (*model.EventWithMeta, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventWithMeta), args.Error(1)
}

func (m *mockCacheRepository) DeleteEvent(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}
