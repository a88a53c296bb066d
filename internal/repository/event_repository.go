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

type EventRepository struct {
	*config.Database
}

func NewEventRepository(database *config.Database) *EventRepository {
	return &EventRepository{database}
}

// eventWithMetaColumns : общая часть выборки события с именем создателя
// и числом участников
const eventWithMetaColumns = `
	e.uuid, e.name, e.description, e.start_datetime, e.end_datetime,
	e.location, e.location_details, e.preparation_info,
	e.min_attendees, e.max_attendees, e.created_by, e.created_at, e.updated_at,
	u.full_name AS creator_name,
	COUNT(p.uuid) AS participant_count
`

const eventWithMetaGroupBy = `
	GROUP BY e.uuid, u.full_name
`

// Create : сохраняет новое событие
func (r *EventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
	INSERT INTO events (uuid, name, description, start_datetime, end_datetime,
		location, location_details, preparation_info, min_attendees, max_attendees, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING uuid, name, description, start_datetime, end_datetime,
		location, location_details, preparation_info, min_attendees, max_attendees,
		created_by, created_at, updated_at
	`

	created := &model.Event{}
	err := r.DB.QueryRowxContext(ctx, query,
		event.UUID, event.Name, event.Description, event.StartDatetime, event.EndDatetime,
		event.Location, event.LocationDetails, event.PreparationInfo,
		event.MinAttendees, event.MaxAttendees, event.CreatedBy,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[EventRepo] ошибка вставки события в БД", err)
	}

	return created, nil
}

// GetByUUID : событие с мета-данными по UUID
func (r *EventRepository) GetByUUID(ctx context.Context, uuid string) (*model.EventWithMeta, error) {
	query := `
	SELECT ` + eventWithMetaColumns + `
	FROM events e
	JOIN users u ON u.uuid = e.created_by
	LEFT JOIN event_participants p ON p.event_uuid = e.uuid
	WHERE e.uuid = $1
	` + eventWithMetaGroupBy

	var event model.EventWithMeta
	err := sqlx.GetContext(ctx, r.DB, &event, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[EventRepo] событие %s: %w", uuid, ErrNotFound)
		}
		return nil, util.LogError("[EventRepo] не удалось найти событие", err)
	}

	return &event, nil
}

// List : все события, новые по дате начала — первыми
func (r *EventRepository) List(ctx context.Context) ([]model.EventWithMeta, error) {
	query := `
	SELECT ` + eventWithMetaColumns + `
	FROM events e
	JOIN users u ON u.uuid = e.created_by
	LEFT JOIN event_participants p ON p.event_uuid = e.uuid
	` + eventWithMetaGroupBy + `
	ORDER BY e.start_datetime DESC
	`

	events := []model.EventWithMeta{}
	if err := sqlx.SelectContext(ctx, r.DB, &events, query); err != nil {
		return nil, util.LogError("[EventRepo] не удалось получить список событий", err)
	}

	return events, nil
}

// ListCreatedBy : события, созданные пользователем
func (r *EventRepository) ListCreatedBy(ctx context.Context, userUUID string) ([]model.EventWithMeta, error) {
	query := `
	SELECT ` + eventWithMetaColumns + `
	FROM events e
	JOIN users u ON u.uuid = e.created_by
	LEFT JOIN event_participants p ON p.event_uuid = e.uuid
	WHERE e.created_by = $1
	` + eventWithMetaGroupBy + `
	ORDER BY e.start_datetime DESC
	`

	events := []model.EventWithMeta{}
	if err := sqlx.SelectContext(ctx, r.DB, &events, query, userUUID); err != nil {
		return nil, util.LogError("[EventRepo] не удалось получить созданные события", err)
	}

	return events, nil
}

// ListParticipating : события, где пользователь — участник
func (r *EventRepository) ListParticipating(ctx context.Context, userUUID string) ([]model.EventWithMeta, error) {
	query := `
	SELECT ` + eventWithMetaColumns + `
	FROM events e
	JOIN users u ON u.uuid = e.created_by
	JOIN event_participants mine ON mine.event_uuid = e.uuid AND mine.user_uuid = $1
	LEFT JOIN event_participants p ON p.event_uuid = e.uuid
	` + eventWithMetaGroupBy + `
	ORDER BY e.start_datetime DESC
	`

	events := []model.EventWithMeta{}
	if err := sqlx.SelectContext(ctx, r.DB, &events, query, userUUID); err != nil {
		return nil, util.LogError("[EventRepo] не удалось получить события участия", err)
	}

	return events, nil
}

// Update : перезаписывает событие целиком, слияние полей делает сервис
func (r *EventRepository) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
	UPDATE events
	SET name = $2, description = $3, start_datetime = $4, end_datetime = $5,
		location = $6, location_details = $7, preparation_info = $8,
		min_attendees = $9, max_attendees = $10, updated_at = NOW()
	WHERE uuid = $1
	RETURNING uuid, name, description, start_datetime, end_datetime,
		location, location_details, preparation_info, min_attendees, max_attendees,
		created_by, created_at, updated_at
	`

	updated := &model.Event{}
	err := r.DB.QueryRowxContext(ctx, query,
		event.UUID, event.Name, event.Description, event.StartDatetime, event.EndDatetime,
		event.Location, event.LocationDetails, event.PreparationInfo,
		event.MinAttendees, event.MaxAttendees,
	).StructScan(updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[EventRepo] событие %s: %w", event.UUID, ErrNotFound)
		}
		return nil, util.LogError("[EventRepo] не удалось обновить событие", err)
	}

	return updated, nil
}

// Delete : удаляет событие вместе с участниками (каскад в схеме)
func (r *EventRepository) Delete(ctx context.Context, uuid string) error {
	query := `DELETE FROM events WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[EventRepo] не удалось удалить событие", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[EventRepo] не удалось проверить удаление события", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[EventRepo] событие %s: %w", uuid, ErrNotFound)
	}

	return nil
}
