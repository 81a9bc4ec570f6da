package service

import (
	"context"
	"sync"
	"time"

	bookingserrors "tablebooker/internal/bookings/errors"
	"tablebooker/internal/bookings/repository"
	"tablebooker/internal/bookings/validator"
	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
	"tablebooker/pkg/logger"
	"tablebooker/pkg/model"
)

// ────────────────────────────────────────────────
// In-memory store backing every repository interface
// ────────────────────────────────────────────────

type memoryStore struct {
	mu sync.Mutex

	settings     *model.ReservationSettings
	slots        []model.TimeSlot
	tables       []model.Table
	sections     map[string]model.FloorSection
	reservations []*model.Reservation
	customers    []model.Customer
	locks        map[string]model.ReservationLock

	settingsErr  error
	customerErr  error
	createErr    error
	createDelay  time.Duration
	releaseCalls int
	refreshCalls int
	// stealLocks hands the next n refreshed locks to another owner, as if
	// they had expired mid-commit.
	stealLocks int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sections: map[string]model.FloorSection{},
		locks:    map[string]model.ReservationLock{},
	}
}

func (m *memoryStore) repositories() *repository.Repositories {
	return &repository.Repositories{
		Settings:     (*fakeSettings)(m),
		TimeSlots:    (*fakeSlots)(m),
		Tables:       (*fakeTables)(m),
		Sections:     (*fakeSections)(m),
		Reservations: (*fakeReservations)(m),
		Customers:    (*fakeCustomers)(m),
		Locks:        (*fakeLocks)(m),
		Tx:           fakeTx{},
	}
}

func (m *memoryStore) reservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

type fakeSettings memoryStore

func (f *fakeSettings) Get(ctx context.Context) (*model.ReservationSettings, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settingsErr != nil {
		return nil, m.settingsErr
	}
	if m.settings == nil {
		return nil, bookingserrors.ErrSettingsNotFound
	}
	copied := *m.settings
	return &copied, nil
}

func (f *fakeSettings) Upsert(ctx context.Context, s *model.ReservationSettings) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

type fakeSlots memoryStore

func (f *fakeSlots) FindActiveByDay(ctx context.Context, day int) ([]model.TimeSlot, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TimeSlot
	for _, s := range m.slots {
		if s.DayOfWeek == day && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlots) Upsert(ctx context.Context, slot *model.TimeSlot) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, *slot)
	return nil
}

type fakeTables memoryStore

func (f *fakeTables) FindActiveWithCapacity(ctx context.Context, minCapacity int) ([]model.Table, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Table
	for _, t := range m.tables {
		if t.IsActive && t.Capacity >= minCapacity {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTables) Upsert(ctx context.Context, table *model.Table) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = append(m.tables, *table)
	return nil
}

type fakeSections memoryStore

func (f *fakeSections) FindByID(ctx context.Context, id string) (*model.FloorSection, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sections[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSections) Upsert(ctx context.Context, s *model.FloorSection) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sections[s.ID] = *s
	return nil
}

type fakeReservations memoryStore

func (f *fakeReservations) FindBlocking(ctx context.Context, date string, tableIDs []string) ([]*model.Reservation, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range tableIDs {
		wanted[id] = true
	}
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.ReservationDate == date && wanted[r.TableID] && r.IsBlocking() {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReservations) Create(ctx context.Context, r *model.Reservation) error {
	m := (*memoryStore)(f)
	if m.createDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.createDelay):
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	copied := *r
	m.reservations = append(m.reservations, &copied)
	return nil
}

type fakeCustomers memoryStore

func (f *fakeCustomers) FindIDByEmail(ctx context.Context, email string) (string, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.customerErr != nil {
		return "", m.customerErr
	}
	for _, c := range m.customers {
		if c.Email == email {
			return c.ID, nil
		}
	}
	return "", bookingserrors.ErrNotFound
}

func (f *fakeCustomers) FindIDByPhone(ctx context.Context, phones ...string) (string, error) {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.customerErr != nil {
		return "", m.customerErr
	}
	for _, c := range m.customers {
		for _, p := range phones {
			if c.Phone == p {
				return c.ID, nil
			}
		}
	}
	return "", bookingserrors.ErrNotFound
}

type fakeLocks memoryStore

func (f *fakeLocks) Acquire(ctx context.Context, lock *model.ReservationLock) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	if held, ok := m.locks[lock.ID]; ok && held.ExpiresAt.After(time.Now()) {
		return bookingserrors.ErrLockHeld
	}
	m.locks[lock.ID] = *lock
	return nil
}

func (f *fakeLocks) Refresh(ctx context.Context, lockID, owner string, expiresAt time.Time) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCalls++
	held, ok := m.locks[lockID]
	if !ok || held.Owner != owner {
		return bookingserrors.ErrLockLost
	}
	if m.stealLocks > 0 {
		m.stealLocks--
		held.Owner = "stale-" + owner
		held.ExpiresAt = time.Now().Add(-time.Second)
		m.locks[lockID] = held
		return bookingserrors.ErrLockLost
	}
	held.ExpiresAt = expiresAt
	m.locks[lockID] = held
	return nil
}

func (m *memoryStore) releaseLockLater(lockID string, after time.Duration) {
	time.AfterFunc(after, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.locks, lockID)
	})
}

func (f *fakeLocks) Release(ctx context.Context, lockID, owner string) error {
	m := (*memoryStore)(f)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCalls++
	if held, ok := m.locks[lockID]; ok && held.Owner == owner {
		delete(m.locks, lockID)
	}
	return nil
}

type fakeTx struct{}

func (fakeTx) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*model.ReservationCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishReservationCreated(ctx context.Context, e *model.ReservationCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

// Saturday 1 June 2030, 10:00 UTC. The next Monday is 2030-06-03.
var fixedNow = time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)

const nextMonday = "2030-06-03"

func ptr[T any](v T) *T { return &v }

func defaultSettings() *model.ReservationSettings {
	return &model.ReservationSettings{
		ID:                     model.ReservationSettingsID,
		AllowOnlineBooking:     ptr(true),
		MaxPartySize:           ptr(12),
		MinAdvanceBookingHours: ptr(2.0),
		MaxAdvanceBookingDays:  ptr(60.0),
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Log:                    logger.Discard(),
		RestaurantLocation:     time.UTC,
		RestaurantContactPhone: "+34 971 000 000",
		AdvanceNoticeMode:      config.AdvanceNoticeDate,
		BookingDurationMin:     90,
		LockTTL:                10 * time.Second,
		LockRetries:            3,
		LockRetryDelay:         time.Millisecond,
	}
}

// mondayStore is one Monday dinner slot and one four-seat table.
func mondayStore() *memoryStore {
	m := newMemoryStore()
	m.settings = defaultSettings()
	m.slots = []model.TimeSlot{
		{ID: "mon-dinner", DayOfWeek: 1, Name: "Dinner", StartTime: "18:00:00", EndTime: "23:00:00", IsActive: true},
	}
	m.sections["terrace"] = model.FloorSection{ID: "terrace", Name: "Terrace", IsActive: true}
	m.tables = []model.Table{
		{ID: "t1", TableNumber: 1, Capacity: 4, SectionID: "terrace", IsActive: true},
	}
	return m
}

func newTestService(m *memoryStore, cfg *config.Config, pub EventPublisher) BookingService {
	return NewBookingService(
		m.repositories(),
		validator.NewBookingValidator(cfg.Log),
		pub,
		cfg,
		WithClock(func() time.Time { return fixedNow }),
	)
}

func bookingRequest(clock string, partySize int) *model.BookingRequest {
	return &model.BookingRequest{
		GuestName:       "Anna de Vries",
		GuestEmail:      "anna@example.com",
		GuestPhone:      "+31612345678",
		PartySize:       partySize,
		ReservationDate: nextMonday,
		StartTime:       clock,
	}
}

func existingReservation(tableID, clock string, duration int) *model.Reservation {
	return &model.Reservation{
		ID:                       tableID + "-" + clock,
		TableID:                  tableID,
		ReservationDate:          nextMonday,
		StartTime:                clock,
		EstimatedDurationMinutes: duration,
		Status:                   model.ReservationStatusConfirmed,
	}
}

func newTestValidator(cfg *config.Config) *validator.BookingValidator {
	return validator.NewBookingValidator(cfg.Log)
}
