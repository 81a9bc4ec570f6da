package allocator

import (
	"testing"
	"time"

	"tablebooker/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2030-06-03" // a Monday

func reservation(tableID, start string, duration int, status string) *model.Reservation {
	return &model.Reservation{
		ID:                       tableID + "-" + start,
		TableID:                  tableID,
		ReservationDate:          testDate,
		StartTime:                start,
		EstimatedDurationMinutes: duration,
		Status:                   status,
	}
}

func mustInterval(t *testing.T, clock string, duration int) Interval {
	t.Helper()
	iv, err := NewInterval(testDate, clock, duration)
	require.NoError(t, err)
	return iv
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"19:00", "19:00:00", false},
		{"07:05", "07:05:00", false},
		{"18:30:00", "18:30:00", false},
		{"23:59", "23:59:00", false},
		{"24:00", "", true},
		{"19:60", "", true},
		{"9:30", "", true},
		{"1900", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimClock(t *testing.T) {
	assert.Equal(t, "18:00", TrimClock("18:00:00"))
	assert.Equal(t, "18:00", TrimClock("18:00"))
}

func TestWeekday(t *testing.T) {
	day, err := Weekday(testDate)
	require.NoError(t, err)
	assert.Equal(t, 1, day)

	day, err = Weekday("2030-06-02")
	require.NoError(t, err)
	assert.Equal(t, 0, day, "Sunday is zero")

	_, err = Weekday("2030-02-30")
	assert.Error(t, err)
}

func TestRequestMoment(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	midnight, err := RequestMoment(testDate, "19:00", loc, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 3, 0, 0, 0, 0, loc), midnight)

	exact, err := RequestMoment(testDate, "19:00", loc, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 3, 19, 0, 0, 0, loc), exact)
}

func TestUntil(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	hours, days := Until(now, now.Add(36*time.Hour))
	assert.InDelta(t, 36.0, hours, 1e-9)
	assert.InDelta(t, 1.5, days, 1e-9)

	hours, _ = Until(now, now.Add(-2*time.Hour))
	assert.Less(t, hours, 0.0)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		aDur     int
		bDur     int
		expected bool
	}{
		{"identical", "19:00", "19:00", 90, 90, true},
		{"starts inside", "19:30", "19:00", 90, 90, true},
		{"ends inside", "18:00", "19:00", 90, 90, true},
		{"contains", "18:00", "19:00", 240, 30, true},
		{"touching after", "19:30", "18:00", 90, 90, false},
		{"touching before", "17:30", "19:00", 90, 90, false},
		{"disjoint", "12:00", "19:00", 90, 90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustInterval(t, tt.a, tt.aDur)
			b := mustInterval(t, tt.b, tt.bDur)
			assert.Equal(t, tt.expected, a.Overlaps(b))
			assert.Equal(t, tt.expected, b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestMatchSlot(t *testing.T) {
	slots := []model.TimeSlot{
		{ID: "lunch", StartTime: "13:00:00", EndTime: "16:00:00", IsActive: true},
		{ID: "dinner", StartTime: "18:00", EndTime: "23:00", IsActive: true},
		{ID: "brunch", StartTime: "10:00:00", EndTime: "12:00:00", IsActive: false},
	}

	tests := []struct {
		clock  string
		wantID string
	}{
		{"13:00", "lunch"},
		{"15:59", "lunch"},
		{"16:00", ""},
		{"18:00", "dinner"},
		{"22:59", "dinner"},
		{"23:00", ""},
		{"23:30", ""},
		{"11:00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			slot, ok := MatchSlot(slots, tt.clock)
			if tt.wantID == "" {
				assert.False(t, ok)
				assert.Nil(t, slot)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantID, slot.ID)
		})
	}
}

func TestSlotWindows(t *testing.T) {
	slots := []model.TimeSlot{
		{StartTime: "18:00:00", EndTime: "23:00:00"},
		{StartTime: "13:00:00", EndTime: "16:00:00"},
	}
	assert.Equal(t, []model.SlotWindow{
		{StartTime: "13:00", EndTime: "16:00"},
		{StartTime: "18:00", EndTime: "23:00"},
	}, SlotWindows(slots))
}

func TestQualifyingTables(t *testing.T) {
	tables := []model.Table{
		{ID: "t6", TableNumber: 6, Capacity: 6, IsActive: true},
		{ID: "t2", TableNumber: 2, Capacity: 2, IsActive: true},
		{ID: "t5", TableNumber: 5, Capacity: 4, IsActive: true},
		{ID: "t4", TableNumber: 4, Capacity: 4, IsActive: true},
		{ID: "t9", TableNumber: 9, Capacity: 4, IsActive: false},
	}

	got := QualifyingTables(tables, 3)

	ids := make([]string, 0, len(got))
	for _, tb := range got {
		ids = append(ids, tb.ID)
	}
	assert.Equal(t, []string{"t4", "t5", "t6"}, ids)
}

func firstFree(candidates []model.Table, existing []*model.Reservation, req Interval) (string, bool) {
	free := FreeTables(candidates, existing, req)
	if len(free) == 0 {
		return "", false
	}
	return free[0].ID, true
}

func TestFreeTables_SmallestFreeFirst(t *testing.T) {
	candidates := []model.Table{
		{ID: "small", TableNumber: 1, Capacity: 4, IsActive: true},
		{ID: "large", TableNumber: 2, Capacity: 8, IsActive: true},
	}
	req := mustInterval(t, "19:00", 90)

	tests := []struct {
		name     string
		existing []*model.Reservation
		wantID   string
		wantOK   bool
	}{
		{
			name:   "empty ledger picks smallest",
			wantID: "small",
			wantOK: true,
		},
		{
			name:     "busy small table falls through to large",
			existing: []*model.Reservation{reservation("small", "18:30:00", 90, model.ReservationStatusConfirmed)},
			wantID:   "large",
			wantOK:   true,
		},
		{
			name: "cancelled reservations never block",
			existing: []*model.Reservation{
				reservation("small", "19:00:00", 90, model.ReservationStatusCancelled),
				reservation("small", "19:00:00", 90, model.ReservationStatusNoShow),
				reservation("small", "19:00:00", 90, model.ReservationStatusCompleted),
			},
			wantID: "small",
			wantOK: true,
		},
		{
			name: "seated reservation blocks",
			existing: []*model.Reservation{
				reservation("small", "19:00:00", 90, model.ReservationStatusSeated),
				reservation("large", "19:00:00", 90, model.ReservationStatusPending),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := firstFree(candidates, tt.existing, req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestFreeTables_OverlapsBothNeighbours(t *testing.T) {
	only := []model.Table{{ID: "t1", TableNumber: 1, Capacity: 4, IsActive: true}}
	existing := []*model.Reservation{
		reservation("t1", "19:00:00", 90, model.ReservationStatusConfirmed),
		reservation("t1", "20:00:00", 90, model.ReservationStatusConfirmed),
	}

	assert.Empty(t, FreeTables(only, existing, mustInterval(t, "19:30", 90)))
}

func TestFreeTables_TouchingBoundaryIsFree(t *testing.T) {
	only := []model.Table{{ID: "t1", TableNumber: 1, Capacity: 4, IsActive: true}}
	existing := []*model.Reservation{reservation("t1", "18:00:00", 90, model.ReservationStatusConfirmed)}

	id, ok := firstFree(only, existing, mustInterval(t, "19:30", 90))
	require.True(t, ok)
	assert.Equal(t, "t1", id)
}

func TestReservationInterval_MissingDurationIsNinetyMinutes(t *testing.T) {
	r := reservation("t1", "18:00:00", 0, model.ReservationStatusPending)
	iv, err := ReservationInterval(r)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, iv.End.Sub(iv.Start))
}

func TestTableIsFree_MissingDurationIgnoresRequestLength(t *testing.T) {
	existing := []*model.Reservation{reservation("t1", "18:00:00", 0, model.ReservationStatusConfirmed)}

	assert.False(t, TableIsFree("t1", existing, mustInterval(t, "19:00", 60)))
	assert.True(t, TableIsFree("t1", existing, mustInterval(t, "19:30", 60)))
}

func TestTableIsFree_UnparseableStartBlocks(t *testing.T) {
	existing := []*model.Reservation{reservation("t1", "late", 90, model.ReservationStatusPending)}
	assert.False(t, TableIsFree("t1", existing, mustInterval(t, "12:00", 90)))
}

func TestAlternatives(t *testing.T) {
	slots := []model.TimeSlot{{StartTime: "18:00:00", EndTime: "23:00:00", IsActive: true}}
	candidates := []model.Table{{ID: "t1", TableNumber: 1, Capacity: 4, IsActive: true}}

	t.Run("suggests free neighbours inside the slot", func(t *testing.T) {
		existing := []*model.Reservation{reservation("t1", "19:30:00", 60, model.ReservationStatusConfirmed)}
		// 19:30 busy until 20:30: 19:00 collides, 20:00 collides, 18:30 ends at 20:00 and collides,
		// 20:30 is free.
		got := Alternatives(testDate, "19:30", 90, slots, candidates, existing)
		assert.Equal(t, []string{"20:30"}, got)
	})

	t.Run("caps at three", func(t *testing.T) {
		existing := []*model.Reservation{reservation("t1", "20:00:00", 30, model.ReservationStatusConfirmed)}
		got := Alternatives(testDate, "20:00", 30, slots, candidates, existing)
		assert.Equal(t, []string{"19:30", "20:30", "19:00"}, got)
	})

	t.Run("skips times outside operating hours", func(t *testing.T) {
		existing := []*model.Reservation{reservation("t1", "18:00:00", 30, model.ReservationStatusConfirmed)}
		got := Alternatives(testDate, "18:00", 30, slots, candidates, existing)
		assert.Equal(t, []string{"18:30", "19:00"}, got)
	})

	t.Run("never crosses midnight", func(t *testing.T) {
		late := []model.TimeSlot{{StartTime: "00:00:00", EndTime: "23:59:00", IsActive: true}}
		existing := []*model.Reservation{reservation("t1", "00:15:00", 30, model.ReservationStatusConfirmed)}
		got := Alternatives(testDate, "00:15", 30, late, candidates, existing)
		assert.Equal(t, []string{"00:45", "01:15"}, got)
	})
}
