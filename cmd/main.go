package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventra/config"
	"eventra/internal/handler"
	"eventra/internal/repository"
	"eventra/internal/security"
	"eventra/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:generate swag init -g cmd/main.go --output docs

// @title Eventra API
// @version 1.0
// @description REST API для управления событиями и участниками

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	database, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("ошибка закрытия соединения с БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("ошибка закрытия соединения с Redis: %v", err)
		}
	}()

	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("ошибка инициализации JWT сервиса: %v", err)
	}

	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewRefreshTokenRepository(database)
	eventRepository := repository.NewEventRepository(database)
	participantRepository := repository.NewParticipantRepository(database)
	apiKeyRepository := repository.NewAPIKeyRepository(database)
	cacheRepository := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.EventCache)*time.Second)

	authService := service.NewAuthService(userRepository, tokenRepository, jwtService)
	eventService := service.NewEventService(eventRepository, participantRepository, cacheRepository)
	participantService := service.NewParticipantService(participantRepository, eventRepository, userRepository)

	secureCookies := cfg.IsProduction()
	authHandler := handler.NewAuthHandler(authService, jwtService, secureCookies)
	eventHandler := handler.NewEventHandler(eventService)
	participantHandler := handler.NewParticipantHandler(participantService)

	server, router := config.SetupServer(cfg.ServerAddr)

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	generalLimiter := newRateLimiter(redisClient, "general", cfg.RateLimit.Window, cfg.RateLimit.Max, cfg.RateLimit.Message)
	authLimiter := newRateLimiter(redisClient, "auth", cfg.RateLimit.AuthWindow, cfg.RateLimit.AuthMax, cfg.RateLimit.Message)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	requireAuth := security.AuthMiddleware(jwtService, userRepository, tokenRepository, secureCookies)

	var apiKeyGate func(http.Handler) http.Handler
	if cfg.APIKey.Enabled {
		// service-to-service режим: статический ключ поверх JWT
		apiKeyGate = security.APIKeyMiddleware(apiKeyRepository)
	}

	registerRoutes(router, routeHandlers{
		auth:         authHandler,
		events:       eventHandler,
		participants: participantHandler,
		requireAuth:  requireAuth,
		generalLimit: generalLimiter.Middleware,
		authLimit:    authLimiter.Middleware,
		apiKeyGate:   apiKeyGate,
	})

	runServer(server)
}

type routeHandlers struct {
	auth         *handler.AuthHandler
	events       *handler.EventHandler
	participants *handler.ParticipantHandler

	requireAuth  func(http.Handler) http.Handler
	generalLimit func(http.Handler) http.Handler
	authLimit    func(http.Handler) http.Handler
	apiKeyGate   func(http.Handler) http.Handler
}

// registerRoutes собирает дерево маршрутов API.
// Строгий лимит накрывает весь /api/auth, включая refresh и validate.
func registerRoutes(router chi.Router, h routeHandlers) {
	router.Route("/api", func(api chi.Router) {
		api.Use(h.generalLimit)
		if h.apiKeyGate != nil {
			api.Use(h.apiKeyGate)
		}

		api.Route("/auth", func(auth chi.Router) {
			auth.Use(h.authLimit)

			auth.Post("/register", h.auth.Register)
			auth.Post("/login", h.auth.Login)
			auth.Post("/refresh", h.auth.Refresh)
			auth.Post("/validate", h.auth.Validate)

			auth.Group(func(protected chi.Router) {
				protected.Use(h.requireAuth)
				protected.Get("/me", h.auth.Me)
				protected.Post("/logout", h.auth.Logout)
			})
		})

		api.Route("/events", func(events chi.Router) {
			events.Use(h.requireAuth)

			events.Get("/", h.events.List)
			events.Post("/", h.events.Create)
			events.Get("/dashboard", h.events.Dashboard)

			events.Route("/{id}", func(event chi.Router) {
				event.Get("/", h.events.Get)
				event.Put("/", h.events.Update)
				event.Delete("/", h.events.Delete)
				event.Post("/join", h.events.Join)
				event.Get("/participant", h.events.Participant)
			})
		})

		api.Route("/participants", func(participants chi.Router) {
			participants.Use(h.requireAuth)

			participants.Get("/event/{eventId}", h.participants.List)
			participants.Post("/event/{eventId}/user", h.participants.AddUser)
			participants.Post("/event/{eventId}/guest", h.participants.AddGuest)
			participants.Patch("/{participantId}", h.participants.UpdateStatus)
			participants.Delete("/{participantId}", h.participants.Delete)
		})
	})
}

func newRateLimiter(client *config.RedisClient, prefix, window string, max int, message string) *security.RateLimiter {
	duration, err := time.ParseDuration(window)
	if err != nil {
		log.Fatalf("ошибка парсинга окна лимита %q: %v", window, err)
	}
	return security.NewRateLimiter(client, prefix, duration, max, message)
}

// runServer запускает сервер и ждёт сигнала остановки,
// на выходе даёт 10 секунд на завершение активных запросов
func runServer(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("сервер запущен на %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ошибка запуска сервера: %v", err)
		}
	}()

	<-stop
	log.Println("получен сигнал остановки, завершаем работу")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("ошибка остановки сервера: %v", err)
	}
	log.Println("сервер остановлен")
}
