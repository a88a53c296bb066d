package handler

import (
	"errors"
	"net/http"

	"eventra/internal/model"
	"eventra/internal/model/requestresponse"
	"eventra/internal/ports"
	"eventra/internal/security"
	"eventra/internal/service"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List возвращает все события
// @Summary Список событий
// @Tags events
// @Produce json
// @Success 200 {array} model.EventWithMeta
// @Security BearerAuth
// @Router /api/events [get]
func (h *EventHandler) List(writer http.ResponseWriter, request *http.Request) {
	events, err := h.eventService.List(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to load events")
		return
	}

	sendJSONResponse(writer, http.StatusOK, events)
}

// Dashboard возвращает события пользователя: созданные и с участием
// @Summary Дашборд пользователя
// @Tags events
// @Produce json
// @Success 200 {object} model.DashboardEvents
// @Security BearerAuth
// @Router /api/events/dashboard [get]
func (h *EventHandler) Dashboard(writer http.ResponseWriter, request *http.Request) {
	user, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	dashboard, err := h.eventService.Dashboard(request.Context(), user.UUID)
	if err != nil {
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	sendJSONResponse(writer, http.StatusOK, dashboard)
}

// Get возвращает событие по UUID
// @Summary Событие по идентификатору
// @Tags events
// @Produce json
// @Param id path string true "UUID события"
// @Success 200 {object} model.EventWithMeta
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/events/{id} [get]
func (h *EventHandler) Get(writer http.ResponseWriter, request *http.Request) {
	eventUUID := chi.URLParam(request, "id")

	event, err := h.eventService.Get(request.Context(), eventUUID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
			return
		}
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to load event")
		return
	}

	sendJSONResponse(writer, http.StatusOK, event)
}

// Create создаёт событие от имени текущего пользователя
// @Summary Создание события
// @Tags events
// @Accept json
// @Produce json
// @Param request body requestresponse.CreateEventRequest true "Данные события"
// @Success 201 {object} model.Event
// @Failure 400 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/events [post]
func (h *EventHandler) Create(writer http.ResponseWriter, request *http.Request) {
	user, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req requestresponse.CreateEventRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	event, badRequest := eventFromCreateRequest(&req)
	if badRequest != "" {
		sendErrorResponse(writer, http.StatusBadRequest, badRequest)
		return
	}

	created, err := h.eventService.Create(request.Context(), user.UUID, event)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			sendErrorResponse(writer, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrDateOrder):
			sendErrorResponse(writer, http.StatusBadRequest, "End date must be after start date")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to create event")
		}
		return
	}

	sendJSONResponse(writer, http.StatusCreated, created)
}

// Update частично обновляет событие, доступно только создателю
// @Summary Обновление события
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "UUID события"
// @Param request body requestresponse.UpdateEventRequest true "Изменяемые поля"
// @Success 200 {object} model.Event
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/events/{id} [put]
func (h *EventHandler) Update(writer http.ResponseWriter, request *http.Request) {
	user, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventUUID := chi.URLParam(request, "id")

	var req requestresponse.UpdateEventRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	upd, badRequest := eventUpdateFromRequest(&req)
	if badRequest != "" {
		sendErrorResponse(writer, http.StatusBadRequest, badRequest)
		return
	}

	updated, err := h.eventService.Update(request.Context(), eventUUID, user.UUID, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrForbidden):
			sendErrorResponse(writer, http.StatusForbidden, "Not authorized to update this event")
		case errors.Is(err, service.ErrDateOrder):
			sendErrorResponse(writer, http.StatusBadRequest, "End date must be after start date")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to update event")
		}
		return
	}

	sendJSONResponse(writer, http.StatusOK, updated)
}

// Delete удаляет событие, доступно только создателю
// @Summary Удаление события
// @Tags events
// @Produce json
// @Param id path string true "UUID события"
// @Success 204 "No Content"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/events/{id} [delete]
func (h *EventHandler) Delete(writer http.ResponseWriter, request *http.Request) {
	user, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventUUID := chi.URLParam(request, "id")

	if err := h.eventService.Delete(request.Context(), eventUUID, user.UUID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrForbidden):
			sendErrorResponse(writer, http.StatusForbidden, "Not authorized to delete this event")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to delete event")
		}
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// Join записывает текущего пользователя участником события
// @Summary Вступление в событие
// @Tags events
// @Produce json
// @Param id path string true "UUID события"
// @Success 200 {object} requestresponse.JoinEventResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/events/{id}/join [post]
func (h *EventHandler) Join(writer http.ResponseWriter, request *http.Request) {
	user, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventUUID := chi.URLParam(request, "id")

	participant, err := h.eventService.Join(request.Context(), eventUUID, user.UUID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrAlreadyJoined):
			sendErrorResponse(writer, http.StatusBadRequest, "You have already joined this event")
		case errors.Is(err, service.ErrEventFull):
			sendErrorResponse(writer, http.StatusBadRequest, "Event has reached maximum participants")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to join event")
		}
		return
	}

	sendJSONResponse(writer, http.StatusOK, requestresponse.JoinEventResponse{
		Message:     "Event joined successfully",
		Participant: participant,
	})
}

// Participant возвращает участие текущего пользователя в событии.
// participant=null при отсутствии участия, это не ошибка.
// @Summary Участие текущего пользователя
// @Tags events
// @Produce json
// @Param id path string true "UUID события"
// @Success 200 {object} requestresponse.ParticipantLookupResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/events/{id}/participant [get]
func (h *EventHandler) Participant(writer http.ResponseWriter, request *http.Request) {
	user, err := security.GetUserFromContext(request.Context())
	if err != nil {
		sendErrorResponse(writer, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventUUID := chi.URLParam(request, "id")

	participant, err := h.eventService.ParticipantOf(request.Context(), eventUUID, user.UUID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
			return
		}
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to load participant")
		return
	}

	sendJSONResponse(writer, http.StatusOK, requestresponse.ParticipantLookupResponse{Participant: participant})
}

// eventFromCreateRequest собирает модель события из тела запроса,
// возвращает текст ошибки при кривых датах
func eventFromCreateRequest(req *requestresponse.CreateEventRequest) (*model.Event, string) {
	start, err := requestresponse.ParseDatetime(req.StartDatetime)
	if err != nil {
		return nil, "Invalid start_datetime format"
	}
	end, err := requestresponse.ParseDatetime(req.EndDatetime)
	if err != nil {
		return nil, "Invalid end_datetime format"
	}

	return &model.Event{
		Name:            req.Name,
		Description:     req.Description,
		StartDatetime:   start,
		EndDatetime:     end,
		Location:        req.Location,
		LocationDetails: req.LocationDetails,
		PreparationInfo: req.PreparationInfo,
		MinAttendees:    req.MinAttendees,
		MaxAttendees:    req.MaxAttendees,
	}, ""
}

func eventUpdateFromRequest(req *requestresponse.UpdateEventRequest) (*model.EventUpdate, string) {
	upd := &model.EventUpdate{
		Name:            req.Name,
		Description:     req.Description,
		Location:        req.Location,
		LocationDetails: req.LocationDetails,
		PreparationInfo: req.PreparationInfo,
		MinAttendees:    req.MinAttendees,
		MaxAttendees:    req.MaxAttendees,
	}

	if req.StartDatetime != nil {
		start, err := requestresponse.ParseDatetime(*req.StartDatetime)
		if err != nil {
			return nil, "Invalid start_datetime format"
		}
		upd.StartDatetime = &start
	}
	if req.EndDatetime != nil {
		end, err := requestresponse.ParseDatetime(*req.EndDatetime)
		if err != nil {
			return nil, "Invalid end_datetime format"
		}
		upd.EndDatetime = &end
	}

	return upd, ""
}
