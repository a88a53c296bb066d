package service

import (
	"context"
	"errors"
	"fmt"

	"eventra/internal/model"
	"eventra/internal/ports"
	"eventra/internal/repository"

	"github.com/google/uuid"
)

type ParticipantService struct {
	participantRepository ports.ParticipantRepository
	eventRepository       ports.EventRepository
	userRepository        ports.UserRepository
}

func NewParticipantService(
	participantRepository ports.ParticipantRepository,
	eventRepository ports.EventRepository,
	userRepository ports.UserRepository,
) *ParticipantService {
	return &ParticipantService{
		participantRepository: participantRepository,
		eventRepository:       eventRepository,
		userRepository:        userRepository,
	}
}

// ListByEvent возвращает участников события, новые первыми
func (s *ParticipantService) ListByEvent(ctx context.Context, eventUUID string) ([]model.ParticipantInfo, error) {
	participants, err := s.participantRepository.ListByEvent(ctx, eventUUID)
	if err != nil {
		return nil, fmt.Errorf("[ParticipantService] список участников: %w", err)
	}
	return participants, nil
}

// AddUser добавляет зарегистрированного пользователя участником события
func (s *ParticipantService) AddUser(ctx context.Context, eventUUID, targetUserUUID, status string) (*model.Participant, error) {
	event, err := s.eventRepository.GetByUUID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[ParticipantService] добавление участника: %w", err)
	}

	if _, err := s.userRepository.FindByUUID(ctx, targetUserUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("[ParticipantService] добавление участника: %w", err)
	}

	if _, err := s.participantRepository.FindByEventAndUser(ctx, eventUUID, targetUserUUID); err == nil {
		return nil, ErrAlreadyJoined
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("[ParticipantService] добавление участника: %w", err)
	}

	if err := s.checkCapacity(ctx, eventUUID, event.MaxAttendees); err != nil {
		return nil, err
	}

	status, err = normalizeStatus(status)
	if err != nil {
		return nil, err
	}

	participant := &model.Participant{
		UUID:      uuid.NewString(),
		EventUUID: eventUUID,
		UserUUID:  &targetUserUUID,
		Status:    status,
	}

	created, err := s.participantRepository.Create(ctx, participant)
	if err != nil {
		return nil, fmt.Errorf("[ParticipantService] добавление участника: %w", err)
	}

	return created, nil
}

// AddGuest добавляет незарегистрированного гостя участником события
func (s *ParticipantService) AddGuest(ctx context.Context, eventUUID, email, fullName, status string) (*model.Participant, error) {
	if email == "" || fullName == "" {
		return nil, ErrMissingFields
	}

	event, err := s.eventRepository.GetByUUID(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[ParticipantService] добавление гостя: %w", err)
	}

	if err := s.checkCapacity(ctx, eventUUID, event.MaxAttendees); err != nil {
		return nil, err
	}

	status, err = normalizeStatus(status)
	if err != nil {
		return nil, err
	}

	guest := &model.GuestUser{
		UUID:     uuid.NewString(),
		Email:    email,
		FullName: fullName,
	}
	participant := &model.Participant{
		UUID:      uuid.NewString(),
		EventUUID: eventUUID,
		GuestUUID: &guest.UUID,
		Status:    status,
	}

	created, err := s.participantRepository.AddGuest(ctx, guest, participant)
	if err != nil {
		return nil, fmt.Errorf("[ParticipantService] добавление гостя: %w", err)
	}

	return created, nil
}

// UpdateStatus меняет статус участия
func (s *ParticipantService) UpdateStatus(ctx context.Context, participantUUID, status string) (*model.Participant, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	updated, err := s.participantRepository.UpdateStatus(ctx, participantUUID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[ParticipantService] смена статуса: %w", err)
	}

	return updated, nil
}

// Remove удаляет участие из события
func (s *ParticipantService) Remove(ctx context.Context, participantUUID string) error {
	err := s.participantRepository.Delete(ctx, participantUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("[ParticipantService] удаление участника: %w", err)
	}

	return nil
}

func (s *ParticipantService) checkCapacity(ctx context.Context, eventUUID string, maxAttendees *int) error {
	if maxAttendees == nil {
		return nil
	}

	count, err := s.participantRepository.CountByEvent(ctx, eventUUID)
	if err != nil {
		return fmt.Errorf("[ParticipantService] проверка вместимости: %w", err)
	}
	if count >= *maxAttendees {
		return ErrEventFull
	}

	return nil
}

// normalizeStatus подставляет pending при пустом статусе
func normalizeStatus(status string) (string, error) {
	if status == "" {
		return model.StatusPending, nil
	}
	if !model.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

var _ ports.ParticipantService = (*ParticipantService)(nil)
