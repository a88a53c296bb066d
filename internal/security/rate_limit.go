package security

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"eventra/config"
)

// RateLimiter : лимит запросов на IP за фиксированное окно.
// Счётчики живут в Redis, так что лимит общий для всех реплик сервера.
type RateLimiter struct {
	client  *config.RedisClient
	prefix  string
	window  time.Duration
	max     int
	message string
}

func NewRateLimiter(client *config.RedisClient, prefix string, window time.Duration, max int, message string) *RateLimiter {
	if message == "" {
		message = "Too many requests from this IP, please try again later."
	}
	return &RateLimiter{
		client:  client,
		prefix:  prefix,
		window:  window,
		max:     max,
		message: message,
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ip, _, err := net.SplitHostPort(request.RemoteAddr)
		if err != nil {
			ip = request.RemoteAddr
		}

		key := fmt.Sprintf("ratelimit:%s:%s", l.prefix, ip)

		// INCR и EXPIRE уходят одной транзакцией: счётчик без TTL
		// не должен появиться даже при обрыве между командами,
		// иначе ключ зависнет и IP останется залоченным навсегда.
		// ExpireNX ставит срок только первому инкременту окна.
		pipe := l.client.Client.TxPipeline()
		incr := pipe.Incr(request.Context(), key)
		pipe.ExpireNX(request.Context(), key, l.window)
		if _, err := pipe.Exec(request.Context()); err != nil {
			// Redis недоступен — пропускаем запрос, лимит не повод ронять API
			log.Printf("ошибка инкремента счётчика лимита: %v", err)
			next.ServeHTTP(writer, request)
			return
		}

		if incr.Val() > int64(l.max) {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(writer).Encode(map[string]interface{}{
				"error":      l.message,
				"retryAfter": int(l.window.Seconds()),
				"limit":      l.max,
			})
			return
		}

		next.ServeHTTP(writer, request)
	})
}
