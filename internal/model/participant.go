package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

// ValidStatus проверяет, что статус участия входит в допустимый набор
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// GuestUser : участник без учётной записи, только имя и email
type GuestUser struct {
	UUID      string    `db:"uuid" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"fullName"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// Participant : связь события с зарегистрированным пользователем или гостем.
// Заполнено ровно одно из UserUUID/GuestUUID.
type Participant struct {
	UUID      string    `db:"uuid" json:"id"`
	EventUUID string    `db:"event_uuid" json:"eventId"`
	UserUUID  *string   `db:"user_uuid" json:"userId,omitempty"`
	GuestUUID *string   `db:"guest_uuid" json:"guestId,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ParticipantInfo : строка списка участников события для JSON-ответа
type ParticipantInfo struct {
	UUID      string    `db:"uuid" json:"id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Name      string    `db:"participant_name" json:"participant_name"`
	Email     string    `db:"participant_email" json:"participant_email"`
	Type      string    `db:"participant_type" json:"participant_type"`
}
