package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reserrors "aquavalle/internal/reservations/errors"
	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	mongotx "aquavalle/pkg/db/mongo"
	"aquavalle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "reservations"
)

// ListFilter narrows reservation queries. Zero values mean "no constraint".
// From/To bound the check-in date, half-open.
type ListFilter struct {
	Status string
	Type   string
	From   *dates.Date
	To     *dates.Date
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Reservation, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	Update(ctx context.Context, id string, reservation *model.Reservation) (*mongo.UpdateResult, error)
	FindLodgingInRange(ctx context.Context, roomIDs []string, from, to dates.Date) ([]*model.Reservation, error)
	FindFulldayInRange(ctx context.Context, from, to dates.Date) ([]*model.Reservation, error)
	SumFulldayGuestsOn(ctx context.Context, date dates.Date, excludeID string) (int, error)
	StatusCounts(ctx context.Context, filter ListFilter) (map[string]int64, error)
	TypeCounts(ctx context.Context, filter ListFilter) (map[string]int64, error)
	Revenue(ctx context.Context, filter ListFilter) (float64, error)
	CountCheckInsBetween(ctx context.Context, from, to dates.Date) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless it is a transaction
// session context, which must not be wrapped.
func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if reservation.ID == "" {
		reservation.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	var reservation model.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "check_in_date", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	return count, nil
}

func (r *mongoReservationRepository) Update(ctx context.Context, id string, reservation *model.Reservation) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"client_id":      reservation.ClientID,
			"check_in_date":  reservation.CheckInDate,
			"check_out_date": reservation.CheckOutDate,
			"num_guests":     reservation.NumGuests,
			"room_ids":       reservation.RoomIDs,
			"total_price":    reservation.TotalPrice,
			"status":         reservation.Status,
			"notes":          reservation.Notes,
			"updated_at":     time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, reserrors.ErrNotFound
	}

	return result, nil
}

// FindLodgingInRange returns non-cancelled lodging reservations whose stay
// interval [check_in, check_out) intersects [from, to). An empty roomIDs
// slice matches every room.
func (r *mongoReservationRepository) FindLodgingInRange(ctx context.Context, roomIDs []string, from, to dates.Date) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"reservation_type": model.TypeLodging,
		"status":           bson.M{"$ne": model.StatusCancelled},
		"check_in_date":    bson.M{"$lt": to},
		"check_out_date":   bson.M{"$gt": from},
	}
	if len(roomIDs) > 0 {
		filter["room_ids"] = bson.M{"$in": roomIDs}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find lodging reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// FindFulldayInRange returns non-cancelled day passes whose date falls in
// [from, to).
func (r *mongoReservationRepository) FindFulldayInRange(ctx context.Context, from, to dates.Date) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"reservation_type": model.TypeFullday,
		"status":           bson.M{"$ne": model.StatusCancelled},
		"check_in_date":    bson.M{"$gte": from, "$lt": to},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find fullday reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// SumFulldayGuestsOn returns the committed guest total for a date across
// non-cancelled day passes. excludeID leaves one reservation out of the sum,
// so an edit is counted at its new values only.
func (r *mongoReservationRepository) SumFulldayGuestsOn(ctx context.Context, date dates.Date, excludeID string) (int, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	match := bson.M{
		"reservation_type": model.TypeFullday,
		"status":           bson.M{"$ne": model.StatusCancelled},
		"check_in_date":    date,
	}
	if excludeID != "" {
		match["_id"] = bson.M{"$ne": excludeID}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$num_guests"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum fullday guests: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode guest sum: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *mongoReservationRepository) StatusCounts(ctx context.Context, filter ListFilter) (map[string]int64, error) {
	return r.groupCounts(ctx, filter, "$status")
}

func (r *mongoReservationRepository) TypeCounts(ctx context.Context, filter ListFilter) (map[string]int64, error) {
	return r.groupCounts(ctx, filter, "$reservation_type")
}

func (r *mongoReservationRepository) groupCounts(ctx context.Context, filter ListFilter, field string) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := []bson.M{
		{"$match": buildListFilter(filter)},
		{"$group": bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group reservations by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode group counts: %w", err)
	}

	counts := make(map[string]int64, len(results))
	for _, result := range results {
		counts[result.ID] = result.Count
	}
	return counts, nil
}

// Revenue sums total_price over confirmed and completed reservations within
// the filter window.
func (r *mongoReservationRepository) Revenue(ctx context.Context, filter ListFilter) (float64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	match := buildListFilter(filter)
	match["status"] = bson.M{"$in": []string{model.StatusConfirmed, model.StatusCompleted}}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_price"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to compute revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *mongoReservationRepository) CountCheckInsBetween(ctx context.Context, from, to dates.Date) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"status":        bson.M{"$ne": model.StatusCancelled},
		"check_in_date": bson.M{"$gte": from, "$lt": to},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming check-ins: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func buildListFilter(filter ListFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["reservation_type"] = filter.Type
	}

	dateFilter := bson.M{}
	if filter.From != nil {
		dateFilter["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateFilter["$lt"] = *filter.To
	}
	if len(dateFilter) > 0 {
		query["check_in_date"] = dateFilter
	}

	return query
}
