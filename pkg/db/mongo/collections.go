package mongo

const (
	CollectionReservationSettings      = "Reservation_settings"
	CollectionReservationTimeSlots     = "Reservation_time_slots"
	CollectionFloorSections            = "Floor_sections"
	CollectionTables                   = "Tables"
	CollectionReservations             = "Reservations"
	CollectionCustomers                = "Customers"
	CollectionReservationLocks         = "Reservation_locks"
	CollectionReservationConfirmations = "Reservation_confirmations"
)
