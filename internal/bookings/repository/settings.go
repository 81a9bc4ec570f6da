package repository

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "tablebooker/internal/bookings/errors"
	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.ReservationSettings, error)
	Upsert(ctx context.Context, settings *model.ReservationSettings) error
}

type mongoSettingsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSettingsRepository(cfg *config.Config) SettingsRepository {
	return &mongoSettingsRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionReservationSettings),
	}
}

func (r *mongoSettingsRepository) Get(ctx context.Context) (*model.ReservationSettings, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var settings model.ReservationSettings
	err := r.collection.FindOne(ctx, bson.M{"_id": model.ReservationSettingsID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load reservation settings: %w", err)
	}
	return &settings, nil
}

func (r *mongoSettingsRepository) Upsert(ctx context.Context, settings *model.ReservationSettings) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if settings.ID == "" {
		settings.ID = model.ReservationSettingsID
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": settings.ID}, settings, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert reservation settings: %w", err)
	}
	return nil
}
