// Package client реализует HTTP-клиент API с прозрачным обновлением
// access-токена. Токены живут в httpOnly-куках, клиент хранит их в cookie jar
// и никогда не разбирает сами токены.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/sync/singleflight"
)

// AuthFailureHandler вызывается ровно один раз на каждый неудавшийся
// цикл обновления: сессия мертва, приложению пора на экран логина.
type AuthFailureHandler func(err error)

// APIError : ошибка уровня API с HTTP-статусом и текстом из тела ответа
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: статус %d: %s", e.Status, e.Message)
}

// IsAuthError сообщает, что сервер отказал в аутентификации
func (e *APIError) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	// refresh схлопывает конкурентные обновления в один запрос:
	// все 401-цы одного момента ждут общий результат
	refresh singleflight.Group

	onAuthFailure AuthFailureHandler
}

type Option func(*Client)

// WithAuthFailureHandler задаёт наблюдателя провала обновления сессии
func WithAuthFailureHandler(handler AuthFailureHandler) Option {
	return func(c *Client) {
		c.onAuthFailure = handler
	}
}

// WithTimeout задаёт таймаут HTTP-запросов
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: не удалось создать cookie jar: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do выполняет запрос с одной попыткой обновления токена.
// При 401 клиент дожидается общего refresh-запроса и повторяет
// исходный запрос ровно один раз; повторный 401 уже окончательный.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, payload, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && renewable(path) {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}

		status, payload, err = c.roundTrip(ctx, method, path, body)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return &APIError{Status: status, Message: errorMessage(payload)}
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("client: не удалось разобрать ответ: %w", err)
		}
	}

	return nil
}

// renewable отсекает эндпоинты, где 401 означает отказ по существу,
// а не протухшую сессию: их обновлять бессмысленно
func renewable(path string) bool {
	switch path {
	case "/api/auth/login", "/api/auth/register", "/api/auth/refresh":
		return false
	}
	return true
}

// refreshSession выполняет обновление токена через singleflight:
// сколько бы запросов ни поймало 401 одновременно, на проводе будет
// один POST /api/auth/refresh, остальные ждут его результат.
// Наблюдатель провала вызывается внутри общего вызова, то есть
// один раз на цикл, а не на каждого ожидающего.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		status, payload, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh", nil)
		if err != nil {
			return nil, err
		}
		if status >= 400 {
			// 401 от самого refresh — терминальный, второй попытки нет
			refreshErr := &APIError{Status: status, Message: errorMessage(payload)}
			if c.onAuthFailure != nil {
				c.onAuthFailure(refreshErr)
			}
			return nil, refreshErr
		}
		return nil, nil
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("client: не удалось сериализовать тело запроса: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("client: не удалось создать запрос: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("client: запрос %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("client: чтение ответа: %w", err)
	}

	return response.StatusCode, payload, nil
}

func errorMessage(payload []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return string(payload)
}
