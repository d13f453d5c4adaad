package mongo

import (
	"context"
	"fmt"
	"time"

	"aquavalle/pkg/auth"
	"aquavalle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedRooms inserts the cabin's two rooms. Runs only against an empty
// collection so re-running the job never duplicates them.
func SeedRooms(ctx context.Context, client *mongo.Client, dbName string) error {
	coll := client.Database(dbName).Collection("rooms")

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if count > 0 {
		fmt.Println("ℹ️ Rooms already seeded, skipping")
		return nil
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	rooms := []any{
		&model.Room{
			ID:            primitive.NewObjectID().Hex(),
			Name:          "Pacho",
			Capacity:      7,
			PricePerNight: 70,
			Description:   "Ground-floor room with garden access",
			Features:      []string{"private_bathroom", "garden_view"},
			Images:        []string{},
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		&model.Room{
			ID:            primitive.NewObjectID().Hex(),
			Name:          "D'Jesus",
			Capacity:      8,
			PricePerNight: 80,
			Description:   "Upper-floor room with lake view",
			Features:      []string{"private_bathroom", "lake_view", "balcony"},
			Images:        []string{},
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}

	if _, err := coll.InsertMany(ctx, rooms); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	fmt.Println("🛏️ Seeded rooms: Pacho, D'Jesus")
	return nil
}

// SeedAdmin creates the initial admin account when none exists for the
// email. Password arrives via environment, never hardcoded.
func SeedAdmin(ctx context.Context, client *mongo.Client, dbName, email, password string) error {
	if email == "" || password == "" {
		fmt.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	coll := client.Database(dbName).Collection("admin_users")

	count, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		fmt.Println("ℹ️ Admin user already exists, skipping")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.AdminUser{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	fmt.Printf("👤 Seeded admin user: %s\n", email)
	return nil
}
