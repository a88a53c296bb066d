package handler

import (
	"encoding/json"
	"net/http"

	"eventra/internal/model/requestresponse"
	"eventra/internal/util"
)

// sendJSONResponse сериализует payload с заданным статусом
func sendJSONResponse(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		util.LogError("не удалось сериализовать ответ", err)
	}
}

// sendErrorResponse отдаёт ошибку в формате {"error": "..."}
func sendErrorResponse(writer http.ResponseWriter, statusCode int, message string) {
	sendJSONResponse(writer, statusCode, requestresponse.ErrorResponse{Error: message})
}

// decodeJSON разбирает тело запроса, при мусоре на входе пишет 400
func decodeJSON(writer http.ResponseWriter, request *http.Request, dst any) bool {
	if err := json.NewDecoder(request.Body).Decode(dst); err != nil {
		sendErrorResponse(writer, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
