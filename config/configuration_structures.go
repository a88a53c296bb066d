package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey        string `yaml:"secret_key"`
	RefreshSecretKey string `yaml:"refresh_secret_key"`
	AccessTokenTTL   string `yaml:"access_token_ttl"`
	RefreshTokenTTL  string `yaml:"refresh_token_ttl"`
}

type APIKeyConfig struct {
	// Enabled включает service-to-service режим: все /api маршруты
	// дополнительно закрыты статическим API ключом (заголовок x-api-key)
	Enabled bool `yaml:"enabled"`
}

type RateLimitConfig struct {
	Window     string `yaml:"window"`
	Max        int    `yaml:"max"`
	AuthWindow string `yaml:"auth_window"`
	AuthMax    int    `yaml:"auth_max"`
	Message    string `yaml:"message"`
}

type TTL struct {
	// EventCache : время жизни кэша событий в Redis, в секундах
	EventCache int `yaml:"event_cache"`
}
