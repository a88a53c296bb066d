package config

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Env            string          `yaml:"env"`
	ServerAddr     string          `yaml:"serverAddr"`
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	JWT            JWTConfig       `yaml:"jwt"`
	APIKey         APIKeyConfig    `yaml:"apiKey"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	TTL            TTL             `yaml:"TTL"`
}

// LoadConfig читает config.yaml и накладывает секреты из переменных окружения.
// Файл .env подхватывается, если присутствует рядом с бинарником.
func LoadConfig(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseConfig.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisConfig.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.SecretKey = v
	}
	if v := os.Getenv("JWT_REFRESH_SECRET"); v != "" {
		cfg.JWT.RefreshSecretKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if v[0] != ':' {
			cfg.ServerAddr = ":" + v
		} else {
			cfg.ServerAddr = v
		}
	}

	return &cfg, nil
}

// IsProduction : secure-куки и скрытие деталей ошибок включаются только в production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Env == "production"
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
