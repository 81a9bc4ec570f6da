package repository

import (
	"tablebooker/pkg/config"
	mongotx "tablebooker/pkg/db/mongo"
)

// Repositories groups every store the booking service reads or writes.
type Repositories struct {
	Settings     SettingsRepository
	TimeSlots    TimeSlotRepository
	Tables       TableRepository
	Sections     SectionRepository
	Reservations ReservationRepository
	Customers    CustomerRepository
	Locks        ReservationLockRepository
	Tx           mongotx.TransactionManager
}

func NewMongoRepositories(cfg *config.Config) *Repositories {
	return &Repositories{
		Settings:     NewMongoSettingsRepository(cfg),
		TimeSlots:    NewMongoTimeSlotRepository(cfg),
		Tables:       NewMongoTableRepository(cfg),
		Sections:     NewMongoSectionRepository(cfg),
		Reservations: NewMongoReservationRepository(cfg),
		Customers:    NewMongoCustomerRepository(cfg),
		Locks:        NewMongoReservationLockRepository(cfg),
		Tx:           mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}
