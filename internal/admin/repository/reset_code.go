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

const ResetCodeCollectionName = "password_reset_codes"

type ResetCodeRepository interface {
	Create(ctx context.Context, code *model.PasswordResetCode) error
	FindActive(ctx context.Context, email, code string) (*model.PasswordResetCode, error)
	MarkUsed(ctx context.Context, id string) error
}

type mongoResetCodeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoResetCodeRepository(cfg *config.Config) ResetCodeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoResetCodeRepository{
		cfg:        cfg,
		collection: db.Collection(ResetCodeCollectionName),
	}
}

func (r *mongoResetCodeRepository) Create(ctx context.Context, code *model.PasswordResetCode) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if code.ID == "" {
		code.ID = primitive.NewObjectID().Hex()
	}
	code.Email = strings.ToLower(code.Email)
	code.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	return nil
}

// FindActive returns the matching unused, unexpired code.
func (r *mongoResetCodeRepository) FindActive(ctx context.Context, email, code string) (*model.PasswordResetCode, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"email":      strings.ToLower(email),
		"code":       code,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var resetCode model.PasswordResetCode
	err := r.collection.FindOne(ctx, filter).Decode(&resetCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminerrors.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to find reset code: %w", err)
	}

	return &resetCode, nil
}

func (r *mongoResetCodeRepository) MarkUsed(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark reset code used: %w", err)
	}
	if result.MatchedCount == 0 {
		return adminerrors.ErrCodeNotFound
	}
	return nil
}
