package service

import (
	"context"
	"testing"

	"eventra/internal/model"
	"eventra/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newParticipantServiceForTest() (*ParticipantService, *mockParticipantRepository, *mockEventRepository, *mockUserRepository) {
	participants := new(mockParticipantRepository)
	events := new(mockEventRepository)
	users := new(mockUserRepository)
	return NewParticipantService(participants, events, users), participants, events, users
}

func TestParticipantService_AddUser(t *testing.T) {
	t.Run("пустой статус превращается в pending", func(t *testing.T) {
		svc, participants, events, users := newParticipantServiceForTest()

		events.On("GetByUUID", mock.Anything, "event-1").Return(eventForTest(nil), nil)
		users.On("FindByUUID", mock.Anything, "user-2").Return(&model.User{UUID: "user-2"}, nil)
		participants.On("FindByEventAndUser", mock.Anything, "event-1", "user-2").Return(nil, repository.ErrNotFound)
		participants.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Participant) bool {
			return p.Status == model.StatusPending
		})).Return(&model.Participant{UUID: "participant-1", Status: model.StatusPending}, nil)

		participant, err := svc.AddUser(context.Background(), "event-1", "user-2", "")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, participant.Status)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		svc, _, events, users := newParticipantServiceForTest()

		events.On("GetByUUID", mock.Anything, "event-1").Return(eventForTest(nil), nil)
		users.On("FindByUUID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

		_, err := svc.AddUser(context.Background(), "event-1", "ghost", "")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("пользователь уже участвует", func(t *testing.T) {
		svc, participants, events, users := newParticipantServiceForTest()

		events.On("GetByUUID", mock.Anything, "event-1").Return(eventForTest(nil), nil)
		users.On("FindByUUID", mock.Anything, "user-2").Return(&model.User{UUID: "user-2"}, nil)
		participants.On("FindByEventAndUser", mock.Anything, "event-1", "user-2").
			Return(&model.Participant{UUID: "participant-1"}, nil)

		_, err := svc.AddUser(context.Background(), "event-1", "user-2", "")

		assert.ErrorIs(t, err, ErrAlreadyJoined)
	})

	t.Run("недопустимый статус", func(t *testing.T) {
		svc, participants, events, users := newParticipantServiceForTest()

		events.On("GetByUUID", mock.Anything, "event-1").Return(eventForTest(nil), nil)
		users.On("FindByUUID", mock.Anything, "user-2").Return(&model.User{UUID: "user-2"}, nil)
		participants.On("FindByEventAndUser", mock.Anything, "event-1", "user-2").Return(nil, repository.ErrNotFound)

		_, err := svc.AddUser(context.Background(), "event-1", "user-2", "maybe")

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("лимит участников достигнут", func(t *testing.T) {
		svc, participants, events, users := newParticipantServiceForTest()
		maxTwo := 2

		events.On("GetByUUID", mock.Anything, "event-1").Return(eventForTest(&maxTwo), nil)
		users.On("FindByUUID", mock.Anything, "user-2").Return(&model.User{UUID: "user-2"}, nil)
		participants.On("FindByEventAndUser", mock.Anything, "event-1", "user-2").Return(nil, repository.ErrNotFound)
		participants.On("CountByEvent", mock.Anything, "event-1").Return(2, nil)

		_, err := svc.AddUser(context.Background(), "event-1", "user-2", "")

		assert.ErrorIs(t, err, ErrEventFull)
	})
}

func TestParticipantService_AddGuest(t *testing.T) {
	t.Run("гость и участие создаются вместе", func(t *testing.T) {
		svc, participants, events, _ := newParticipantServiceForTest()

		events.On("GetByUUID", mock.Anything, "event-1").Return(eventForTest(nil), nil)
		participants.On("AddGuest", mock.Anything,
			mock.MatchedBy(func(g *model.GuestUser) bool {
				return g.Email == "guest@example.com" && g.FullName == "Guest" && g.UUID != ""
			}),
			mock.MatchedBy(func(p *model.Participant) bool {
				return p.GuestUUID != nil && p.UserUUID == nil
			}),
		).Return(&model.Participant{UUID: "participant-1", Status: model.StatusPending}, nil)

		participant, err := svc.AddGuest(context.Background(), "event-1", "guest@example.com", "Guest", "")

		assert.NoError(t, err)
		assert.Equal(t, "participant-1", participant.UUID)
	})

	t.Run("пустые email или имя", func(t *testing.T) {
		svc, _, _, _ := newParticipantServiceForTest()

		_, err := svc.AddGuest(context.Background(), "event-1", "", "Guest", "")

		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestParticipantService_UpdateStatus(t *testing.T) {
	t.Run("статус валидируется до похода в БД", func(t *testing.T) {
		svc, participants, _, _ := newParticipantServiceForTest()

		_, err := svc.UpdateStatus(context.Background(), "participant-1", "maybe")

		assert.ErrorIs(t, err, ErrInvalidStatus)
		participants.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("участник не найден", func(t *testing.T) {
		svc, participants, _, _ := newParticipantServiceForTest()

		participants.On("UpdateStatus", mock.Anything, "missing", model.StatusConfirmed).
			Return(nil, repository.ErrNotFound)

		_, err := svc.UpdateStatus(context.Background(), "missing", model.StatusConfirmed)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestParticipantService_Remove(t *testing.T) {
	t.Run("удаление существующего участия", func(t *testing.T) {
		svc, participants, _, _ := newParticipantServiceForTest()

		participants.On("Delete", mock.Anything, "participant-1").Return(nil)

		assert.NoError(t, svc.Remove(context.Background(), "participant-1"))
	})

	t.Run("удаление отсутствующего участия", func(t *testing.T) {
		svc, participants, _, _ := newParticipantServiceForTest()

		participants.On("Delete", mock.Anything, "missing").Return(repository.ErrNotFound)

		assert.ErrorIs(t, svc.Remove(context.Background(), "missing"), ErrNotFound)
	})
}
