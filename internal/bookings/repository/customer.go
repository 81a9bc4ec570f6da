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

type CustomerRepository interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
	// FindIDByPhone matches any of the given spellings of one phone number.
	FindIDByPhone(ctx context.Context, phones ...string) (string, error)
}

type mongoCustomerRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCustomerRepository(cfg *config.Config) CustomerRepository {
	return &mongoCustomerRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionCustomers),
	}
}

func (r *mongoCustomerRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	return r.findID(ctx, bson.M{"email": email})
}

func (r *mongoCustomerRepository) FindIDByPhone(ctx context.Context, phones ...string) (string, error) {
	if len(phones) == 0 {
		return "", bookingserrors.ErrNotFound
	}
	return r.findID(ctx, bson.M{"phone": bson.M{"$in": phones}})
}

func (r *mongoCustomerRepository) findID(ctx context.Context, filter bson.M) (string, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var customer model.Customer
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.collection.FindOne(ctx, filter, opts).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", bookingserrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}
	return customer.ID, nil
}
