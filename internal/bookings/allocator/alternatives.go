package allocator

import (
	"time"

	"tablebooker/pkg/model"
)

const MaxAlternatives = 3

var AlternativeOffsets = []time.Duration{
	-30 * time.Minute,
	30 * time.Minute,
	-60 * time.Minute,
	60 * time.Minute,
}

// Alternatives proposes nearby start times, as HH:MM, that stay on date, fall
// inside an active slot and leave at least one candidate table free.
func Alternatives(date, clock string, durationMin int, slots []model.TimeSlot, candidates []model.Table, existing []*model.Reservation) []string {
	requested, err := At(date, clock)
	if err != nil {
		return nil
	}

	var out []string
	for _, offset := range AlternativeOffsets {
		if len(out) == MaxAlternatives {
			break
		}
		at := requested.Add(offset)
		if at.Format(DateLayout) != date {
			continue
		}
		candidate := at.Format(ShortClock)
		if _, ok := MatchSlot(slots, candidate); !ok {
			continue
		}
		req, err := NewInterval(date, candidate, durationMin)
		if err != nil {
			continue
		}
		if len(FreeTables(candidates, existing, req)) > 0 {
			out = append(out, candidate)
		}
	}
	return out
}
