package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventra/config"
	"eventra/internal/model"
	"eventra/internal/util"

	"github.com/jmoiron/sqlx"
)

type ParticipantRepository struct {
	*config.Database
}

func NewParticipantRepository(database *config.Database) *ParticipantRepository {
	return &ParticipantRepository{database}
}

// Create : сохраняет участие зарегистрированного пользователя
func (r *ParticipantRepository) Create(ctx context.Context, participant *model.Participant) (*model.Participant, error) {
	return createParticipant(ctx, r.DB, participant)
}

// AddGuest : создаёт гостя и его участие одной транзакцией,
// чтобы не оставлять гостей-сирот при сбое второй вставки
func (r *ParticipantRepository) AddGuest(ctx context.Context, guest *model.GuestUser, participant *model.Participant) (*model.Participant, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, util.LogError("[ParticipantRepo] не удалось открыть транзакцию", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO guest_users (uuid, email, full_name)
	VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, guest.UUID, guest.Email, guest.FullName); err != nil {
		return nil, util.LogError("[ParticipantRepo] ошибка вставки гостя в БД", err)
	}

	created, err := createParticipant(ctx, tx, participant)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, util.LogError("[ParticipantRepo] не удалось закоммитить транзакцию", err)
	}

	return created, nil
}

func createParticipant(ctx context.Context, exec sqlx.ExtContext, participant *model.Participant) (*model.Participant, error) {
	query := `
	INSERT INTO event_participants (uuid, event_uuid, user_uuid, guest_uuid, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, event_uuid, user_uuid, guest_uuid, status, created_at
	`

	created := &model.Participant{}
	err := exec.QueryRowxContext(ctx, query,
		participant.UUID, participant.EventUUID,
		participant.UserUUID, participant.GuestUUID, participant.Status,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[ParticipantRepo] ошибка вставки участника в БД", err)
	}

	return created, nil
}

// FindByEventAndUser : участие пользователя в событии, если есть
func (r *ParticipantRepository) FindByEventAndUser(ctx context.Context, eventUUID, userUUID string) (*model.Participant, error) {
	query := `SELECT uuid, event_uuid, user_uuid, guest_uuid, status, created_at
				FROM event_participants
				WHERE event_uuid = $1 AND user_uuid = $2`

	var participant model.Participant
	err := sqlx.GetContext(ctx, r.DB, &participant, query, eventUUID, userUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[ParticipantRepo] участие: %w", ErrNotFound)
		}
		return nil, util.LogError("[ParticipantRepo] не удалось найти участие", err)
	}

	return &participant, nil
}

// CountByEvent : число участников события для проверки вместимости
func (r *ParticipantRepository) CountByEvent(ctx context.Context, eventUUID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM event_participants WHERE event_uuid = $1`
	if err := sqlx.GetContext(ctx, r.DB, &count, query, eventUUID); err != nil {
		return 0, util.LogError("[ParticipantRepo] не удалось посчитать участников", err)
	}
	return count, nil
}

// ListByEvent : участники события в формате выдачи, новые первыми.
// Имя и email берутся из users либо guest_users в зависимости от типа.
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventUUID string) ([]model.ParticipantInfo, error) {
	query := `
	SELECT p.uuid, p.status, p.created_at,
		COALESCE(u.full_name, g.full_name) AS participant_name,
		COALESCE(u.email, g.email) AS participant_email,
		CASE WHEN p.user_uuid IS NOT NULL THEN 'registered' ELSE 'guest' END AS participant_type
	FROM event_participants p
	LEFT JOIN users u ON u.uuid = p.user_uuid
	LEFT JOIN guest_users g ON g.uuid = p.guest_uuid
	WHERE p.event_uuid = $1
	ORDER BY p.created_at DESC
	`

	participants := []model.ParticipantInfo{}
	if err := sqlx.SelectContext(ctx, r.DB, &participants, query, eventUUID); err != nil {
		return nil, util.LogError("[ParticipantRepo] не удалось получить список участников", err)
	}

	return participants, nil
}

// UpdateStatus : смена статуса участия
func (r *ParticipantRepository) UpdateStatus(ctx context.Context, participantUUID, status string) (*model.Participant, error) {
	query := `
	UPDATE event_participants SET status = $2
	WHERE uuid = $1
	RETURNING uuid, event_uuid, user_uuid, guest_uuid, status, created_at
	`

	updated := &model.Participant{}
	err := r.DB.QueryRowxContext(ctx, query, participantUUID, status).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[ParticipantRepo] участник %s: %w", participantUUID, ErrNotFound)
		}
		return nil, util.LogError("[ParticipantRepo] не удалось обновить статус участника", err)
	}

	return updated, nil
}

// Delete : удаляет участие по UUID
func (r *ParticipantRepository) Delete(ctx context.Context, participantUUID string) error {
	query := `DELETE FROM event_participants WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, participantUUID)
	if err != nil {
		return util.LogError("[ParticipantRepo] не удалось удалить участника", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ParticipantRepo] не удалось проверить удаление участника", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ParticipantRepo] участник %s: %w", participantUUID, ErrNotFound)
	}

	return nil
}
