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

type TableRepository interface {
	// FindActiveWithCapacity returns active tables seating at least minCapacity,
	// smallest capacity first.
	FindActiveWithCapacity(ctx context.Context, minCapacity int) ([]model.Table, error)
	Upsert(ctx context.Context, table *model.Table) error
}

type SectionRepository interface {
	FindByID(ctx context.Context, id string) (*model.FloorSection, error)
	Upsert(ctx context.Context, section *model.FloorSection) error
}

type mongoTableRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTableRepository(cfg *config.Config) TableRepository {
	return &mongoTableRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionTables),
	}
}

func (r *mongoTableRepository) FindActiveWithCapacity(ctx context.Context, minCapacity int) ([]model.Table, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"is_active": true,
		"capacity":  bson.M{"$gte": minCapacity},
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "capacity", Value: 1},
		{Key: "table_number", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []model.Table
	if err = cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}
	return tables, nil
}

func (r *mongoTableRepository) Upsert(ctx context.Context, table *model.Table) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": table.ID}, table, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert table %d: %w", table.TableNumber, err)
	}
	return nil
}

type mongoSectionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSectionRepository(cfg *config.Config) SectionRepository {
	return &mongoSectionRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionFloorSections),
	}
}

func (r *mongoSectionRepository) FindByID(ctx context.Context, id string) (*model.FloorSection, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var section model.FloorSection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&section)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find section: %w", err)
	}
	return &section, nil
}

func (r *mongoSectionRepository) Upsert(ctx context.Context, section *model.FloorSection) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": section.ID}, section, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert section %s: %w", section.Name, err)
	}
	return nil
}
