package service

import (
	"context"
	"errors"
	"time"

	"tablebooker/internal/bookings/allocator"
	bookingserrors "tablebooker/internal/bookings/errors"
	apperrors "tablebooker/pkg/errors"
	"tablebooker/pkg/model"
)

var errTableTaken = errors.New("table taken by a concurrent reservation")

// reserve walks free in order and commits the reservation on the first table
// that is still free once its (table, date) lock is held. A held lock is
// waited out, so a writer on another time of the same table never pushes the
// request off its table. Only a re-read under the lock that shows an overlap
// moves on to the next table.
func (s *bookingService) reserve(ctx context.Context, free []model.Table, r *model.Reservation, requested allocator.Interval) (*model.Table, error) {
	for i := range free {
		table := &free[i]

		err := s.reserveTable(ctx, table, r, requested)
		if errors.Is(err, errTableTaken) {
			s.cfg.Log.Debug("Table taken before commit, trying next table", "table_id", table.ID)
			continue
		}
		if err != nil {
			return nil, err
		}
		return table, nil
	}

	s.cfg.Log.Info("No table left after concurrent allocation",
		"reservation_date", r.ReservationDate,
		"start_time", r.StartTime,
		"party_size", r.PartySize,
	)
	return nil, bookingserrors.NoAvailability()
}

// reserveTable holds the table lock for one commit. A lock that expired and
// went to another request before the commit wrote it is taken again, at most
// LockRetries times.
func (s *bookingService) reserveTable(ctx context.Context, table *model.Table, r *model.Reservation, requested allocator.Interval) error {
	lockID := model.ReservationLockID(table.ID, r.ReservationDate)

	for attempt := 0; ; attempt++ {
		expiresAt, err := s.acquireLock(ctx, lockID, table.ID, r)
		if err != nil {
			return err
		}

		err = s.commitOnTable(ctx, lockID, expiresAt, table, r, requested)
		if !errors.Is(err, bookingserrors.ErrLockLost) {
			return err
		}
		if attempt >= s.cfg.LockRetries {
			s.cfg.Log.Error("Reservation lock kept expiring before commit", "lock_id", lockID, "attempts", attempt+1)
			return bookingserrors.Persistence(err)
		}
		s.cfg.Log.Warn("Reservation lock lost before commit, retrying", "lock_id", lockID, "attempt", attempt+1)
	}
}

// commitOnTable must finish before the lock it holds expires. The transaction
// first rewrites the lock, so a commit racing under a stolen lock conflicts
// with it instead of committing beside it.
func (s *bookingService) commitOnTable(ctx context.Context, lockID string, expiresAt time.Time, table *model.Table, r *model.Reservation, requested allocator.Interval) error {
	defer s.releaseLock(ctx, lockID, r.ID)

	commitCtx, cancel := context.WithDeadline(ctx, expiresAt)
	defer cancel()

	err := s.repos.Tx.ExecuteTransaction(commitCtx, func(txCtx context.Context) error {
		if err := s.repos.Locks.Refresh(txCtx, lockID, r.ID, time.Now().Add(s.cfg.LockTTL)); err != nil {
			if errors.Is(err, bookingserrors.ErrLockLost) {
				return err
			}
			return apperrors.Internal("Failed to refresh reservation lock", err)
		}

		current, err := s.repos.Reservations.FindBlocking(txCtx, r.ReservationDate, []string{table.ID})
		if err != nil {
			return apperrors.Internal("Failed to re-check table availability", err)
		}
		if !allocator.TableIsFree(table.ID, current, requested) {
			return errTableTaken
		}

		r.TableID = table.ID
		if err := s.repos.Reservations.Create(txCtx, r); err != nil {
			r.TableID = ""
			s.cfg.Log.Error("Failed to insert reservation", "id", r.ID, "table_id", table.ID, "error", err)
			return bookingserrors.Persistence(err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil && errors.Is(commitCtx.Err(), context.DeadlineExceeded) {
		r.TableID = ""
		s.cfg.Log.Error("Reservation commit outlived its lock", "lock_id", lockID, "error", err)
		return apperrors.Timeout("Timed out while saving the reservation")
	}
	return err
}

// acquireLock waits for a held lock until ctx ends. The wait is bounded even
// without a deadline because an abandoned lock expires after LockTTL. It
// returns the expiry of the lock it now holds.
func (s *bookingService) acquireLock(ctx context.Context, lockID, tableID string, r *model.Reservation) (time.Time, error) {
	for {
		expiresAt := time.Now().Add(s.cfg.LockTTL)
		err := s.repos.Locks.Acquire(ctx, &model.ReservationLock{
			ID:        lockID,
			Owner:     r.ID,
			TableID:   tableID,
			Date:      r.ReservationDate,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return expiresAt, nil
		}
		if !errors.Is(err, bookingserrors.ErrLockHeld) {
			s.cfg.Log.Error("Failed to acquire reservation lock", "lock_id", lockID, "error", err)
			return time.Time{}, bookingserrors.Persistence(err)
		}

		select {
		case <-ctx.Done():
			s.cfg.Log.Info("Gave up waiting for table lock", "lock_id", lockID, "error", ctx.Err())
			return time.Time{}, apperrors.Timeout("Request cancelled while waiting for table")
		case <-time.After(s.cfg.LockRetryDelay):
		}
	}
}

func (s *bookingService) releaseLock(ctx context.Context, lockID, owner string) {
	if err := s.repos.Locks.Release(context.WithoutCancel(ctx), lockID, owner); err != nil {
		s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", lockID, "error", err)
	}
}
