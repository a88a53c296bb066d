package handler

import (
	"errors"
	"net/http"

	"eventra/internal/model/requestresponse"
	"eventra/internal/ports"
	"eventra/internal/service"

	"github.com/go-chi/chi/v5"
)

type ParticipantHandler struct {
	participantService ports.ParticipantService
}

func NewParticipantHandler(participantService ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// List возвращает участников события
// @Summary Участники события
// @Tags participants
// @Produce json
// @Param eventId path string true "UUID события"
// @Success 200 {array} model.ParticipantInfo
// @Security BearerAuth
// @Router /api/participants/event/{eventId} [get]
func (h *ParticipantHandler) List(writer http.ResponseWriter, request *http.Request) {
	eventUUID := chi.URLParam(request, "eventId")

	participants, err := h.participantService.ListByEvent(request.Context(), eventUUID)
	if err != nil {
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to load participants")
		return
	}

	sendJSONResponse(writer, http.StatusOK, participants)
}

// AddUser добавляет зарегистрированного пользователя в событие
// @Summary Добавление пользователя в участники
// @Tags participants
// @Accept json
// @Produce json
// @Param eventId path string true "UUID события"
// @Param request body requestresponse.AddUserParticipantRequest true "Пользователь и статус"
// @Success 201 {object} model.Participant
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/participants/event/{eventId}/user [post]
func (h *ParticipantHandler) AddUser(writer http.ResponseWriter, request *http.Request) {
	eventUUID := chi.URLParam(request, "eventId")

	var req requestresponse.AddUserParticipantRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	participant, err := h.participantService.AddUser(request.Context(), eventUUID, req.UserID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrUserNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrAlreadyJoined):
			sendErrorResponse(writer, http.StatusBadRequest, "User is already a participant")
		case errors.Is(err, service.ErrEventFull):
			sendErrorResponse(writer, http.StatusBadRequest, "Event has reached maximum participants")
		case errors.Is(err, service.ErrInvalidStatus):
			sendErrorResponse(writer, http.StatusBadRequest, "Invalid status")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to add participant")
		}
		return
	}

	sendJSONResponse(writer, http.StatusCreated, participant)
}

// AddGuest добавляет гостя без учётной записи в событие
// @Summary Добавление гостя в участники
// @Tags participants
// @Accept json
// @Produce json
// @Param eventId path string true "UUID события"
// @Param request body requestresponse.AddGuestParticipantRequest true "Данные гостя"
// @Success 201 {object} model.Participant
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/participants/event/{eventId}/guest [post]
func (h *ParticipantHandler) AddGuest(writer http.ResponseWriter, request *http.Request) {
	eventUUID := chi.URLParam(request, "eventId")

	var req requestresponse.AddGuestParticipantRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	participant, err := h.participantService.AddGuest(request.Context(), eventUUID, req.Email, req.FullName, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			sendErrorResponse(writer, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "Event not found")
		case errors.Is(err, service.ErrEventFull):
			sendErrorResponse(writer, http.StatusBadRequest, "Event has reached maximum participants")
		case errors.Is(err, service.ErrInvalidStatus):
			sendErrorResponse(writer, http.StatusBadRequest, "Invalid status")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to add guest")
		}
		return
	}

	sendJSONResponse(writer, http.StatusCreated, participant)
}

// UpdateStatus меняет статус участия
// @Summary Смена статуса участника
// @Tags participants
// @Accept json
// @Produce json
// @Param participantId path string true "UUID участия"
// @Param request body requestresponse.UpdateParticipantStatusRequest true "Новый статус"
// @Success 200 {object} model.Participant
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/participants/{participantId} [patch]
func (h *ParticipantHandler) UpdateStatus(writer http.ResponseWriter, request *http.Request) {
	participantUUID := chi.URLParam(request, "participantId")

	var req requestresponse.UpdateParticipantStatusRequest
	if !decodeJSON(writer, request, &req) {
		return
	}

	participant, err := h.participantService.UpdateStatus(request.Context(), participantUUID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			sendErrorResponse(writer, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(writer, http.StatusNotFound, "Participant not found")
		default:
			sendErrorResponse(writer, http.StatusInternalServerError, "Failed to update participant")
		}
		return
	}

	sendJSONResponse(writer, http.StatusOK, participant)
}

// Delete удаляет участие из события
// @Summary Удаление участника
// @Tags participants
// @Param participantId path string true "UUID участия"
// @Success 204 "No Content"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security BearerAuth
// @Router /api/participants/{participantId} [delete]
func (h *ParticipantHandler) Delete(writer http.ResponseWriter, request *http.Request) {
	participantUUID := chi.URLParam(request, "participantId")

	if err := h.participantService.Remove(request.Context(), participantUUID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(writer, http.StatusNotFound, "Participant not found")
			return
		}
		sendErrorResponse(writer, http.StatusInternalServerError, "Failed to remove participant")
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
