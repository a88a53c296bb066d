package service

import (
	"context"
	"errors"
	"fmt"

	"eventra/internal/model"
	"eventra/internal/ports"
	"eventra/internal/repository"
	"eventra/internal/util"

	"github.com/google/uuid"
)

type EventService struct {
	eventRepository       ports.EventRepository
	participantRepository ports.ParticipantRepository
	cacheRepository       ports.CacheRepository
}

func NewEventService(
	eventRepository ports.EventRepository,
	participantRepository ports.ParticipantRepository,
	cacheRepository ports.CacheRepository,
) *EventService {
	return &EventService{
		eventRepository:       eventRepository,
		participantRepository: participantRepository,
		cacheRepository:       cacheRepository,
	}
}

// List возвращает все события с мета-данными
func (s *EventService) List(ctx context.Context) ([]model.EventWithMeta, error) {
	events, err := s.eventRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("[EventService] список событий: %w", err)
	}
	return events, nil
}

// Dashboard собирает созданные пользователем события и события,
// где он участвует
func (s *EventService) Dashboard(ctx context.Context, userUUID string) (*model.DashboardEvents, error) {
	created, err := s.eventRepository.ListCreatedBy(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[EventService] дашборд: %w", err)
	}

	participating, err := s.eventRepository.ListParticipating(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[EventService] дашборд: %w", err)
	}

	return &model.DashboardEvents{
		CreatedEvents:       created,
		ParticipatingEvents: participating,
	}, nil
}

// Get возвращает событие, сначала проверяя кэш.
// Ошибки Redis не роняют запрос: идём в БД.
func (s *EventService) Get(ctx context.Context, eventUUID string) (*model.EventWithMeta, error) {
	cached, err := s.cacheRepository.GetEvent(ctx, eventUUID)
	if err == nil && cached != nil {
		return cached, nil
	}

	event, err := s.eventRepository.GetByUUID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[EventService] получение события: %w", err)
	}

	if err := s.cacheRepository.SetEvent(ctx, event); err != nil {
		util.LogError("[EventService] не удалось закэшировать событие", err)
	}

	return event, nil
}

// Create валидирует и сохраняет новое событие от имени пользователя
func (s *EventService) Create(ctx context.Context, userUUID string, event *model.Event) (*model.Event, error) {
	if event.Name == "" || event.Description == "" || event.Location == "" ||
		event.StartDatetime.IsZero() || event.EndDatetime.IsZero() {
		return nil, ErrMissingFields
	}
	if !event.EndDatetime.After(event.StartDatetime) {
		return nil, ErrDateOrder
	}

	event.UUID = uuid.NewString()
	event.CreatedBy = userUUID

	created, err := s.eventRepository.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("[EventService] создание события: %w", err)
	}

	return created, nil
}

// Update частично обновляет событие. Менять событие может только создатель,
// но отсутствие события проверяется раньше прав.
func (s *EventService) Update(ctx context.Context, eventUUID, userUUID string, upd *model.EventUpdate) (*model.Event, error) {
	existing, err := s.eventRepository.GetByUUID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[EventService] обновление события: %w", err)
	}

	if existing.CreatedBy != userUUID {
		return nil, ErrForbidden
	}

	merged := existing.Event
	applyUpdate(&merged, upd)

	if !merged.EndDatetime.After(merged.StartDatetime) {
		return nil, ErrDateOrder
	}

	updated, err := s.eventRepository.Update(ctx, &merged)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[EventService] обновление события: %w", err)
	}

	if err := s.cacheRepository.DeleteEvent(ctx, eventUUID); err != nil {
		util.LogError("[EventService] не удалось инвалидировать кэш события", err)
	}

	return updated, nil
}

// Delete удаляет событие, доступно только создателю
func (s *EventService) Delete(ctx context.Context, eventUUID, userUUID string) error {
	existing, err := s.eventRepository.GetByUUID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("[EventService] удаление события: %w", err)
	}

	if existing.CreatedBy != userUUID {
		return ErrForbidden
	}

	if err := s.eventRepository.Delete(ctx, eventUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("[EventService] удаление события: %w", err)
	}

	if err := s.cacheRepository.DeleteEvent(ctx, eventUUID); err != nil {
		util.LogError("[EventService] не удалось инвалидировать кэш события", err)
	}

	return nil
}

// Join записывает пользователя участником события со статусом pending
func (s *EventService) Join(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error) {
	event, err := s.eventRepository.GetByUUID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[EventService] вступление в событие: %w", err)
	}

	if _, err := s.participantRepository.FindByEventAndUser(ctx, eventUUID, userUUID); err == nil {
		return nil, ErrAlreadyJoined
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("[EventService] вступление в событие: %w", err)
	}

	if err := s.checkCapacity(ctx, eventUUID, event.MaxAttendees); err != nil {
		return nil, err
	}

	participant := &model.Participant{
		UUID:      uuid.NewString(),
		EventUUID: eventUUID,
		UserUUID:  &userUUID,
		Status:    model.StatusPending,
	}

	created, err := s.participantRepository.Create(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("[EventService] вступление в событие: %w", err)
	}

	// счётчик участников в кэше устарел
	if err := s.cacheRepository.DeleteEvent(ctx, eventUUID); err != nil {
		util.LogError("[EventService] не удалось инвалидировать кэш события", err)
	}

	return created, nil
}

// ParticipantOf возвращает участие пользователя в событии.
// Если событие есть, но участия нет — (nil, nil), это не ошибка.
func (s *EventService) ParticipantOf(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error) {
	if _, err := s.eventRepository.GetByUUID(ctx, eventUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[EventService] поиск участия: %w", err)
	}

	participant, err := s.participantRepository.FindByEventAndUser(ctx, eventUUID, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("[EventService] поиск участия: %w", err)
	}

	return participant, nil
}

// checkCapacity сверяет текущее число участников с лимитом события
func (s *EventService) checkCapacity(ctx context.Context, eventUUID string, maxAttendees *int) error {
	if maxAttendees == nil {
		return nil
	}

	count, err := s.participantRepository.CountByEvent(ctx, eventUUID)
	if err != nil {
		return fmt.Errorf("[EventService] проверка вместимости: %w", err)
	}
	if count >= *maxAttendees {
		return ErrEventFull
	}

	return nil
}

func applyUpdate(event *model.Event, upd *model.EventUpdate) {
	if upd.Name != nil {
		event.Name = *upd.Name
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.StartDatetime != nil {
		event.StartDatetime = *upd.StartDatetime
	}
	if upd.EndDatetime != nil {
		event.EndDatetime = *upd.EndDatetime
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.LocationDetails != nil {
		event.LocationDetails = upd.LocationDetails
	}
	if upd.PreparationInfo != nil {
		event.PreparationInfo = upd.PreparationInfo
	}
	if upd.MinAttendees != nil {
		event.MinAttendees = upd.MinAttendees
	}
	if upd.MaxAttendees != nil {
		event.MaxAttendees = upd.MaxAttendees
	}
}

var _ ports.EventService = (*EventService)(nil)
