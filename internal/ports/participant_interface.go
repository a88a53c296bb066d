package ports

import (
	"context"

	"eventra/internal/model"
)

// ParticipantRepository : SQL слой участников.
// AddGuest создаёт гостя и его участие одной транзакцией.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *model.Participant) (*model.Participant, error)
	AddGuest(ctx context.Context, guest *model.GuestUser, participant *model.Participant) (*model.Participant, error)
	FindByEventAndUser(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error)
	CountByEvent(ctx context.Context, eventUUID string) (int, error)
	ListByEvent(ctx context.Context, eventUUID string) ([]model.ParticipantInfo, error)
	UpdateStatus(ctx context.Context, participantUUID, status string) (*model.Participant, error)
	Delete(ctx context.Context, participantUUID string) error
}

type ParticipantService interface {
	ListByEvent(ctx context.Context, eventUUID string) ([]model.ParticipantInfo, error)
	AddUser(ctx context.Context, eventUUID, targetUserUUID, status string) (*model.Participant, error)
	AddGuest(ctx context.Context, eventUUID, email, fullName, status string) (*model.Participant, error)
	UpdateStatus(ctx context.Context, participantUUID, status string) (*model.Participant, error)
	Remove(ctx context.Context, participantUUID string) error
}
