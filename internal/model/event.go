package model

import "time"

type Event struct {
	UUID            string    `db:"uuid" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	StartDatetime   time.Time `db:"start_datetime" json:"startDatetime"`
	EndDatetime     time.Time `db:"end_datetime" json:"endDatetime"`
	Location        string    `db:"location" json:"location"`
	LocationDetails *string   `db:"location_details" json:"locationDetails,omitempty"`
	PreparationInfo *string   `db:"preparation_info" json:"preparationInfo,omitempty"`
	MinAttendees    *int      `db:"min_attendees" json:"minAttendees,omitempty"`
	MaxAttendees    *int      `db:"max_attendees" json:"maxAttendees,omitempty"`
	CreatedBy       string    `db:"created_by" json:"createdBy"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// EventWithMeta : событие вместе с именем создателя и числом участников,
// как его отдают списочные и детальные ручки
type EventWithMeta struct {
	Event
	CreatorName      string `db:"creator_name" json:"creatorName"`
	ParticipantCount int    `db:"participant_count" json:"participantCount"`
}

// EventUpdate : частичное обновление, nil-поля не трогаются
type EventUpdate struct {
	Name            *string
	Description     *string
	StartDatetime   *time.Time
	EndDatetime     *time.Time
	Location        *string
	LocationDetails *string
	PreparationInfo *string
	MinAttendees    *int
	MaxAttendees    *int
}

// DashboardEvents : события пользователя для дашборда
type DashboardEvents struct {
	CreatedEvents       []EventWithMeta `json:"createdEvents"`
	ParticipatingEvents []EventWithMeta `json:"participatingEvents"`
}
