package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tablebooker/internal/migrations/mongo/validators"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/logger"
)

var (
	TimeSlotsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "day_of_week", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	TablesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "capacity", Value: 1}}},
		{
			Keys:    bson.D{{Key: "table_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "reservation_date", Value: 1},
			{Key: "table_id", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}

	CustomersIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	}

	// Locks left behind by a crashed request are reaped by Mongo at expires_at.
	ReservationLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	ConfirmationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "reservation_id", Value: 1}, {Key: "confirmation_type", Value: 1}}},
	}
)

type CollectionSpec struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the services use, in creation order.
func Collections() []CollectionSpec {
	return []CollectionSpec{
		{Name: mongotx.CollectionReservationSettings, Validator: validators.SettingsValidator},
		{Name: mongotx.CollectionReservationTimeSlots, Indexes: TimeSlotsIndexes, Validator: validators.TimeSlotValidator},
		{Name: mongotx.CollectionFloorSections, Validator: validators.SectionValidator},
		{Name: mongotx.CollectionTables, Indexes: TablesIndexes, Validator: validators.TableValidator},
		{Name: mongotx.CollectionCustomers, Indexes: CustomersIndexes, Validator: validators.CustomerValidator},
		{Name: mongotx.CollectionReservations, Indexes: ReservationsIndexes, Validator: validators.ReservationValidator},
		{Name: mongotx.CollectionReservationLocks, Indexes: ReservationLocksIndexes, Validator: validators.ReservationLockValidator},
		{Name: mongotx.CollectionReservationConfirmations, Indexes: ConfirmationsIndexes, Validator: validators.ConfirmationValidator},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
