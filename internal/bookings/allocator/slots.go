package allocator

import (
	"sort"

	"tablebooker/pkg/model"
)

// MatchSlot finds the first active slot with start <= clock < end. Both sides
// are compared as normalized HH:MM:SS strings.
func MatchSlot(slots []model.TimeSlot, clock string) (*model.TimeSlot, bool) {
	at, err := NormalizeClock(clock)
	if err != nil {
		return nil, false
	}

	for i := range slots {
		slot := &slots[i]
		if !slot.IsActive {
			continue
		}
		start, err := NormalizeClock(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := NormalizeClock(slot.EndTime)
		if err != nil {
			continue
		}
		if start <= at && at < end {
			return slot, true
		}
	}
	return nil, false
}

// SlotWindows lists slots as HH:MM windows ordered by start time.
func SlotWindows(slots []model.TimeSlot) []model.SlotWindow {
	windows := make([]model.SlotWindow, 0, len(slots))
	for _, slot := range slots {
		windows = append(windows, model.SlotWindow{
			StartTime: TrimClock(slot.StartTime),
			EndTime:   TrimClock(slot.EndTime),
		})
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].StartTime < windows[j].StartTime
	})
	return windows
}
