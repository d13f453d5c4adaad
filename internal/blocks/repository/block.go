package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	blockserrors "aquavalle/internal/blocks/errors"
	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	"aquavalle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "availability_blocks"
)

type BlockRepository interface {
	Create(ctx context.Context, block *model.AvailabilityBlock) error
	FindByID(ctx context.Context, id string) (*model.AvailabilityBlock, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.AvailabilityBlock, error)
	Count(ctx context.Context) (int64, error)
	FindOverlapping(ctx context.Context, from, to dates.Date) ([]*model.AvailabilityBlock, error)
	Delete(ctx context.Context, id string) error
}

type mongoBlockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBlockRepository(cfg *config.Config) BlockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBlockRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBlockRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBlockRepository) Create(ctx context.Context, block *model.AvailabilityBlock) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if block.ID == "" {
		block.ID = primitive.NewObjectID().Hex()
	}
	block.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.collection.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("failed to create availability block: %w", err)
	}
	return nil
}

func (r *mongoBlockRepository) FindByID(ctx context.Context, id string) (*model.AvailabilityBlock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", blockserrors.ErrInvalidID, id)
	}

	var block model.AvailabilityBlock
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&block)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, blockserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability block: %w", err)
	}

	return &block, nil
}

func (r *mongoBlockRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.AvailabilityBlock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find availability blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []*model.AvailabilityBlock
	if err = cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode availability blocks: %w", err)
	}

	return blocks, nil
}

func (r *mongoBlockRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count availability blocks: %w", err)
	}
	return count, nil
}

// FindOverlapping returns blocks whose inclusive [start_date, end_date]
// interval touches the half-open query range [from, to).
func (r *mongoBlockRepository) FindOverlapping(ctx context.Context, from, to dates.Date) ([]*model.AvailabilityBlock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"start_date": bson.M{"$lt": to},
		"end_date":   bson.M{"$gte": from},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []*model.AvailabilityBlock
	if err = cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode availability blocks: %w", err)
	}

	return blocks, nil
}

func (r *mongoBlockRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", blockserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete availability block: %w", err)
	}
	if result.DeletedCount == 0 {
		return blockserrors.ErrNotFound
	}
	return nil
}
