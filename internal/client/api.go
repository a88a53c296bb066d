package client

import (
	"context"
	"fmt"
	"net/http"

	"eventra/internal/model"
	"eventra/internal/model/requestresponse"
)

// Register создаёт пользователя, куки с токенами сохраняются в jar
func (c *Client) Register(ctx context.Context, req requestresponse.RegisterRequest) (*requestresponse.AuthResponse, error) {
	var resp requestresponse.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login аутентифицирует пользователя, куки с токенами сохраняются в jar
func (c *Client) Login(ctx context.Context, req requestresponse.LoginRequest) (*requestresponse.AuthResponse, error) {
	var resp requestresponse.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout завершает сессию на сервере и сбрасывает куки
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Validate пробно проверяет токен без побочных эффектов
func (c *Client) Validate(ctx context.Context) (*requestresponse.ValidateResponse, error) {
	var resp requestresponse.ValidateResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/validate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Events возвращает все события
func (c *Client) Events(ctx context.Context) ([]model.EventWithMeta, error) {
	var events []model.EventWithMeta
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Dashboard возвращает события текущего пользователя
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardEvents, error) {
	var dashboard model.DashboardEvents
	if err := c.do(ctx, http.MethodGet, "/api/events/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Event возвращает событие по UUID
func (c *Client) Event(ctx context.Context, eventUUID string) (*model.EventWithMeta, error) {
	var event model.EventWithMeta
	if err := c.do(ctx, http.MethodGet, "/api/events/"+eventUUID, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent создаёт событие
func (c *Client) CreateEvent(ctx context.Context, req requestresponse.CreateEventRequest) (*model.Event, error) {
	var event model.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent частично обновляет событие
func (c *Client) UpdateEvent(ctx context.Context, eventUUID string, req requestresponse.UpdateEventRequest) (*model.Event, error) {
	var event model.Event
	if err := c.do(ctx, http.MethodPut, "/api/events/"+eventUUID, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent удаляет событие
func (c *Client) DeleteEvent(ctx context.Context, eventUUID string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+eventUUID, nil, nil)
}

// JoinEvent записывает текущего пользователя участником события
func (c *Client) JoinEvent(ctx context.Context, eventUUID string) (*requestresponse.JoinEventResponse, error) {
	var resp requestresponse.JoinEventResponse
	if err := c.do(ctx, http.MethodPost, "/api/events/"+eventUUID+"/join", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyParticipation возвращает участие текущего пользователя в событии,
// Participant равен nil если участия нет
func (c *Client) MyParticipation(ctx context.Context, eventUUID string) (*requestresponse.ParticipantLookupResponse, error) {
	var resp requestresponse.ParticipantLookupResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/"+eventUUID+"/participant", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Participants возвращает участников события
func (c *Client) Participants(ctx context.Context, eventUUID string) ([]model.ParticipantInfo, error) {
	var participants []model.ParticipantInfo
	path := fmt.Sprintf("/api/participants/event/%s", eventUUID)
	if err := c.do(ctx, http.MethodGet, path, nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// AddUserParticipant добавляет зарегистрированного пользователя в событие
func (c *Client) AddUserParticipant(ctx context.Context, eventUUID string, req requestresponse.AddUserParticipantRequest) (*model.Participant, error) {
	var participant model.Participant
	path := fmt.Sprintf("/api/participants/event/%s/user", eventUUID)
	if err := c.do(ctx, http.MethodPost, path, req, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// AddGuestParticipant добавляет гостя в событие
func (c *Client) AddGuestParticipant(ctx context.Context, eventUUID string, req requestresponse.AddGuestParticipantRequest) (*model.Participant, error) {
	var participant model.Participant
	path := fmt.Sprintf("/api/participants/event/%s/guest", eventUUID)
	if err := c.do(ctx, http.MethodPost, path, req, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// UpdateParticipantStatus меняет статус участия
func (c *Client) UpdateParticipantStatus(ctx context.Context, participantUUID, status string) (*model.Participant, error) {
	var participant model.Participant
	req := requestresponse.UpdateParticipantStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPatch, "/api/participants/"+participantUUID, req, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// RemoveParticipant удаляет участие из события
func (c *Client) RemoveParticipant(ctx context.Context, participantUUID string) error {
	return c.do(ctx, http.MethodDelete, "/api/participants/"+participantUUID, nil, nil)
}
