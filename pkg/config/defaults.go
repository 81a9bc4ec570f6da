package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tablebooker"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRestaurantTimezone     = "Europe/Madrid"
	DefaultRestaurantContactPhone = "+34 971 000 000"
	DefaultAdvanceNoticeMode      = AdvanceNoticeDate
	DefaultBookingDurationMin     = 90

	DefaultLockTTL        = 45 * time.Second
	DefaultLockRetries    = 3
	DefaultLockRetryDelay = 50 * time.Millisecond

	DefaultKafkaEnabled              = false
	DefaultKafkaReservationsTopic    = "reservations.created"
	DefaultKafkaReservationsDLQTopic = "reservations.created.dlq"
	DefaultKafkaNotifierGroup        = "reservation-notifier"

	DefaultNotifyQueueSize   = 256
	DefaultNotifyMaxAttempts = 3
	DefaultNotifyRetryDelay  = 2 * time.Second

	DefaultMailFromName  = "GrandCafe Cheers"
	DefaultMailFromEmail = "noreply@cheersmallorca.com"
)

// Advance notice is measured either to midnight of the requested date or to the
// exact requested date and time.
const (
	AdvanceNoticeDate     = "date"
	AdvanceNoticeDateTime = "datetime"
)
