// apikeygen создаёт новый API ключ для service-to-service доступа.
// Сам ключ печатается один раз, в базе остаётся только его SHA-256 хэш.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"time"

	"eventra/config"
	"eventra/internal/model"
	"eventra/internal/repository"
	"eventra/internal/security"

	"github.com/google/uuid"
)

func main() {
	name := flag.String("name", "system", "имя ключа")
	configPath := flag.String("config", "config.yaml", "путь к конфигурации")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	database, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("ошибка подключения к базе данных: %v", err)
	}
	defer database.Close()

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("ошибка генерации ключа: %v", err)
	}
	apiKey := hex.EncodeToString(raw)

	record := &model.APIKey{
		UUID:     uuid.NewString(),
		KeyHash:  security.HashAPIKey(apiKey),
		Name:     *name,
		IsActive: true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	keys := repository.NewAPIKeyRepository(database)
	if err := keys.Create(ctx, record); err != nil {
		log.Fatalf("ошибка сохранения ключа: %v", err)
	}

	fmt.Printf("API ключ %q создан.\n", *name)
	fmt.Printf("Сохраните ключ, он больше не будет показан:\n\n  %s\n", apiKey)
}
