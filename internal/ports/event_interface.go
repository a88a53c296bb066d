package ports

import (
	"context"

	"eventra/internal/model"
)

// EventRepository : SQL слой событий
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	GetByUUID(ctx context.Context, uuid string) (*model.EventWithMeta, error)
	List(ctx context.Context) ([]model.EventWithMeta, error)
	ListCreatedBy(ctx context.Context, userUUID string) ([]model.EventWithMeta, error)
	ListParticipating(ctx context.Context, userUUID string) ([]model.EventWithMeta, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, uuid string) error
}

type EventService interface {
	List(ctx context.Context) ([]model.EventWithMeta, error)
	Dashboard(ctx context.Context, userUUID string) (*model.DashboardEvents, error)
	Get(ctx context.Context, uuid string) (*model.EventWithMeta, error)
	Create(ctx context.Context, userUUID string, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, eventUUID, userUUID string, upd *model.EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, eventUUID, userUUID string) error
	Join(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error)
	ParticipantOf(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error)
}
