package model

import (
	"fmt"
	"time"
)

// ReservationLock is an advisory lock over one table on one date. The _id is
// derived from the table and date so a second insert fails with a duplicate
// key while the first is held.
type ReservationLock struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	TableID   string    `bson:"table_id"`
	Date      string    `bson:"reservation_date"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func ReservationLockID(tableID, date string) string {
	return fmt.Sprintf("reservation_lock_%s_%s", tableID, date)
}
