package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"

	"eventra/internal/model"
)

// APIKeyLookup : поиск и учёт использования API ключей
type APIKeyLookup interface {
	FindActiveByHash(ctx context.Context, keyHash string) (*model.APIKey, error)
	TouchLastUsed(ctx context.Context, uuid string) error
}

// HashAPIKey приводит ключ к виду, в котором он хранится в БД
func HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// APIKeyMiddleware закрывает маршруты статическим ключом из заголовка
// x-api-key. Это user-agnostic граница доверия для service-to-service
// вызовов: идентичность пользователя к запросу не прикрепляется.
func APIKeyMiddleware(keys APIKeyLookup) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			apiKey := request.Header.Get("x-api-key")
			if apiKey == "" {
				writeAPIKeyError(writer, http.StatusUnauthorized, "API key required", "Please include x-api-key header")
				return
			}

			record, err := keys.FindActiveByHash(request.Context(), HashAPIKey(apiKey))
			if err != nil || record == nil {
				writeAPIKeyError(writer, http.StatusForbidden, "Invalid API key", "The provided API key is not valid")
				return
			}

			if err := keys.TouchLastUsed(request.Context(), record.UUID); err != nil {
				log.Printf("не удалось обновить last_used_at ключа %s: %v", record.UUID, err)
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func writeAPIKeyError(writer http.ResponseWriter, statusCode int, errText, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	json.NewEncoder(writer).Encode(map[string]string{
		"error":   errText,
		"message": message,
	})
}
