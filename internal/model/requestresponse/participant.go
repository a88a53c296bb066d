package requestresponse

import "eventra/internal/model"

// AddUserParticipantRequest : добавление зарегистрированного пользователя
type AddUserParticipantRequest struct {
	UserID string `json:"userId" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Status string `json:"status,omitempty" example:"pending"`
}

// AddGuestParticipantRequest : добавление гостя без учётной записи
type AddGuestParticipantRequest struct {
	Email    string `json:"email" example:"guest@example.com"`
	FullName string `json:"fullName" example:"Guest User"`
	Status   string `json:"status,omitempty" example:"pending"`
}

// UpdateParticipantStatusRequest : смена статуса участия
type UpdateParticipantStatusRequest struct {
	Status string `json:"status" example:"confirmed"`
}

// JoinEventResponse : ответ на вступление в событие
type JoinEventResponse struct {
	Message     string             `json:"message" example:"Event joined successfully"`
	Participant *model.Participant `json:"participant"`
}

// ParticipantLookupResponse : запись участия текущего пользователя,
// participant=null если пользователь не участвует
type ParticipantLookupResponse struct {
	Participant *model.Participant `json:"participant"`
}
