package requestresponse

import "time"

// CreateEventRequest : тело запроса создания события.
// Имена полей в snake_case сохранены как во внешнем контракте API.
type CreateEventRequest struct {
	Name            string  `json:"name" example:"Team offsite"`
	Description     string  `json:"description" example:"Quarterly planning"`
	StartDatetime   string  `json:"start_datetime" example:"2025-12-25T10:00:00Z"`
	EndDatetime     string  `json:"end_datetime" example:"2025-12-25T12:00:00Z"`
	Location        string  `json:"location" example:"Berlin"`
	LocationDetails *string `json:"location_details,omitempty"`
	PreparationInfo *string `json:"preparation_info,omitempty"`
	MinAttendees    *int    `json:"min_attendees,omitempty"`
	MaxAttendees    *int    `json:"max_attendees,omitempty"`
}

// UpdateEventRequest : частичное обновление, отсутствующие поля не меняются
type UpdateEventRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	StartDatetime   *string `json:"start_datetime,omitempty"`
	EndDatetime     *string `json:"end_datetime,omitempty"`
	Location        *string `json:"location,omitempty"`
	LocationDetails *string `json:"location_details,omitempty"`
	PreparationInfo *string `json:"preparation_info,omitempty"`
	MinAttendees    *int    `json:"min_attendees,omitempty"`
	MaxAttendees    *int    `json:"max_attendees,omitempty"`
}

// ParseDatetime разбирает дату контракта (RFC3339)
func ParseDatetime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
