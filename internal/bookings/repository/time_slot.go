package repository

import (
	"context"
	"fmt"

	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TimeSlotRepository interface {
	FindActiveByDay(ctx context.Context, dayOfWeek int) ([]model.TimeSlot, error)
	Upsert(ctx context.Context, slot *model.TimeSlot) error
}

type mongoTimeSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTimeSlotRepository(cfg *config.Config) TimeSlotRepository {
	return &mongoTimeSlotRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionReservationTimeSlots),
	}
}

func (r *mongoTimeSlotRepository) FindActiveByDay(ctx context.Context, dayOfWeek int) ([]model.TimeSlot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"day_of_week": dayOfWeek, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find time slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []model.TimeSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode time slots: %w", err)
	}
	return slots, nil
}

func (r *mongoTimeSlotRepository) Upsert(ctx context.Context, slot *model.TimeSlot) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": slot.ID}, slot, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert time slot %s: %w", slot.ID, err)
	}
	return nil
}
