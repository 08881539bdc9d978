package main

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"pkfit.com.br/pkfitsystem/internal/bootstrap"
	"pkfit.com.br/pkfitsystem/internal/config"
	"pkfit.com.br/pkfitsystem/internal/server"
	"pkfit.com.br/pkfitsystem/pkg/database"
	"pkfit.com.br/pkfitsystem/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedGlobalAdmin(db); err != nil {
		log.Fatalf("failed to seed global admin: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoAcademy(db); err != nil {
			log.Fatalf("failed to seed demo academy: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting and caching disabled")
	}

	var logoStorage storage.ImageStorage
	if os.Getenv("CLOUDINARY_URL") != "" {
		logoStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, logo upload disabled")
	}

	srv := server.NewServer(cfg, db, redisClient, logoStorage)

	log.Printf("server listening on port %s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
