package allocator

import (
	"sort"
	"time"

	"tablebooker/pkg/model"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(date, clock string, durationMin int) (Interval, error) {
	start, err := At(date, clock)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: start.Add(time.Duration(durationMin) * time.Minute)}, nil
}

// Overlaps treats intervals as half-open, so touching boundaries do not
// conflict.
func (i Interval) Overlaps(o Interval) bool {
	return overlaps(i.Start, i.End, o.Start, o.End)
}

func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// StoredDurationMin is the length assumed for a stored reservation without
// one. It does not follow the configured length of new bookings.
const StoredDurationMin = 90

// ReservationInterval is the span an existing reservation occupies.
func ReservationInterval(r *model.Reservation) (Interval, error) {
	duration := r.EstimatedDurationMinutes
	if duration <= 0 {
		duration = StoredDurationMin
	}
	return NewInterval(r.ReservationDate, r.StartTime, duration)
}

// QualifyingTables keeps active tables that seat partySize, smallest first.
// Ties are broken by table number so the order is deterministic.
func QualifyingTables(tables []model.Table, partySize int) []model.Table {
	out := make([]model.Table, 0, len(tables))
	for _, t := range tables {
		if t.IsActive && t.Capacity >= partySize {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].TableNumber < out[j].TableNumber
	})
	return out
}

// TableIsFree reports whether no blocking reservation on tableID intersects
// req. A reservation whose start cannot be parsed blocks the table.
func TableIsFree(tableID string, existing []*model.Reservation, req Interval) bool {
	for _, r := range existing {
		if r.TableID != tableID || !r.IsBlocking() {
			continue
		}
		iv, err := ReservationInterval(r)
		if err != nil {
			return false
		}
		if req.Overlaps(iv) {
			return false
		}
	}
	return true
}

// FreeTables filters candidates, keeping their order.
func FreeTables(candidates []model.Table, existing []*model.Reservation, req Interval) []model.Table {
	free := make([]model.Table, 0, len(candidates))
	for _, t := range candidates {
		if TableIsFree(t.ID, existing, req) {
			free = append(free, t)
		}
	}
	return free
}
