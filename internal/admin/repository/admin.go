package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	adminerrors "aquavalle/internal/admin/errors"
	"aquavalle/pkg/config"
	"aquavalle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "admin_users"

type AdminRepository interface {
	Create(ctx context.Context, admin *model.AdminUser) error
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type mongoAdminRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdminRepository(cfg *config.Config) AdminRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAdminRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAdminRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAdminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if admin.ID == "" {
		admin.ID = primitive.NewObjectID().Hex()
	}
	admin.Email = strings.ToLower(admin.Email)
	admin.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

func (r *mongoAdminRepository) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", adminerrors.ErrInvalidID, id)
	}

	var admin model.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminerrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	return &admin, nil
}

func (r *mongoAdminRepository) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var admin model.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminerrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin user: %w", err)
	}

	return &admin, nil
}

func (r *mongoAdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}
	if result.MatchedCount == 0 {
		return adminerrors.ErrAdminNotFound
	}
	return nil
}
