package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "tablebooker/internal/bookings/errors"
	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationLockRepository provides advisory locks over (table, date).
type ReservationLockRepository interface {
	// Acquire returns ErrLockHeld while another owner holds an unexpired lock.
	Acquire(ctx context.Context, lock *model.ReservationLock) error
	// Refresh moves the expiry of a lock owner still holds. Called with a
	// transaction context it also writes the lock inside that transaction, so
	// two commits racing on one lock collide. Returns ErrLockLost when owner no
	// longer holds it.
	Refresh(ctx context.Context, lockID, owner string, expiresAt time.Time) error
	Release(ctx context.Context, lockID, owner string) error
}

type mongoReservationLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationLockRepository(cfg *config.Config) ReservationLockRepository {
	return &mongoReservationLockRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongotx.CollectionReservationLocks),
	}
}

func (r *mongoReservationLockRepository) Acquire(ctx context.Context, lock *model.ReservationLock) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	// The TTL monitor only runs about once a minute, so clear a stale lock here.
	now := time.Now()
	if _, err := r.collection.DeleteOne(ctx, expiredLockFilter(lock.ID, now)); err != nil {
		return fmt.Errorf("failed to clear expired lock: %w", err)
	}

	lock.CreatedAt = now
	_, err := r.collection.InsertOne(ctx, lock)
	return acquireResult(err)
}

func (r *mongoReservationLockRepository) Refresh(ctx context.Context, lockID, owner string, expiresAt time.Time) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx, ownedLockFilter(lockID, owner), bson.M{
		"$set": bson.M{"expires_at": expiresAt},
	})
	return refreshResult(res, err)
}

// Release removes the lock only if owner still holds it.
func (r *mongoReservationLockRepository) Release(ctx context.Context, lockID, owner string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, ownedLockFilter(lockID, owner))
	return err
}

// expiredLockFilter matches the lock only once its expiry has passed, so a
// live holder is never cleared.
func expiredLockFilter(lockID string, now time.Time) bson.M {
	return bson.M{
		"_id":        lockID,
		"expires_at": bson.M{"$lte": now},
	}
}

func ownedLockFilter(lockID, owner string) bson.M {
	return bson.M{"_id": lockID, "owner": owner}
}

// acquireResult maps the lock insert outcome. A duplicate _id means a live
// lock survived the stale-lock cleanup.
func acquireResult(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return bookingserrors.ErrLockHeld
	}
	return fmt.Errorf("failed to acquire lock: %w", err)
}

func refreshResult(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if res == nil || res.MatchedCount == 0 {
		return bookingserrors.ErrLockLost
	}
	return nil
}
