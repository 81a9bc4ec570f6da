package repository

import (
	"context"
	"fmt"

	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ConfirmationRepository interface {
	Create(ctx context.Context, c *model.ReservationConfirmation) error
	// Exists reports whether a confirmation of this type already went out.
	Exists(ctx context.Context, reservationID, confirmationType string) (bool, error)
}

type mongoConfirmationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoConfirmationRepository(cfg *config.Config) ConfirmationRepository {
	return &mongoConfirmationRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionReservationConfirmations),
	}
}

func (r *mongoConfirmationRepository) Create(ctx context.Context, c *model.ReservationConfirmation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to record confirmation: %w", err)
	}
	return nil
}

func (r *mongoConfirmationRepository) Exists(ctx context.Context, reservationID, confirmationType string) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{
		"reservation_id":    reservationID,
		"confirmation_type": confirmationType,
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up confirmation: %w", err)
	}
	return n > 0, nil
}
