package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	mongoMigration "aquavalle/internal/migrations/mongo"
	"aquavalle/pkg/config"

	"github.com/joho/godotenv"
)

const JobName = "mongo-migration"

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")
	defer cfg.GracefulShutdown()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := mongoMigration.SeedRooms(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Room seed failed: %v", err)
	}

	if err := mongoMigration.SeedAdmin(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.AdminEmail, os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}

	fmt.Println("Migration completed successfully.")
}
