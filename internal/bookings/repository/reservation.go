package repository

import (
	"context"
	"fmt"
	"time"

	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReservationRepository interface {
	// FindBlocking returns reservations on date, for any of tableIDs, whose
	// status still occupies the table.
	FindBlocking(ctx context.Context, date string, tableIDs []string) ([]*model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionReservations),
	}
}

func (r *mongoReservationRepository) FindBlocking(ctx context.Context, date string, tableIDs []string) ([]*model.Reservation, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"reservation_date": date,
		"table_id":         bson.M{"$in": tableIDs},
		"status":           bson.M{"$in": model.BlockingReservationStatuses},
	}

	cursor, err := r.collection.Find(ctx, filter)
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

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}
