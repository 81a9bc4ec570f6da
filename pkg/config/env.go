package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRedisURL = "REDIS_URL"

	EnvRestaurantTimezone     = "RESTAURANT_TIMEZONE"
	EnvRestaurantContactPhone = "RESTAURANT_CONTACT_PHONE"
	EnvAdvanceNoticeMode      = "ADVANCE_NOTICE_MODE"
	EnvBookingDurationMin     = "BOOKING_DURATION_MIN"

	EnvLockTTL        = "LOCK_TTL"
	EnvLockRetries    = "LOCK_RETRIES"
	EnvLockRetryDelay = "LOCK_RETRY_DELAY"

	EnvKafkaEnabled              = "KAFKA_ENABLED"
	EnvKafkaReservationsTopic    = "KAFKA_RESERVATIONS_TOPIC"
	EnvKafkaReservationsDLQTopic = "KAFKA_RESERVATIONS_DLQ_TOPIC"
	EnvKafkaNotifierGroup        = "KAFKA_NOTIFIER_GROUP"

	EnvNotifyQueueSize   = "NOTIFY_QUEUE_SIZE"
	EnvNotifyMaxAttempts = "NOTIFY_MAX_ATTEMPTS"
	EnvNotifyRetryDelay  = "NOTIFY_RETRY_DELAY"

	EnvMailerSendAPIKey = "MAILERSEND_API_KEY"
	EnvMailFromName     = "MAIL_FROM_NAME"
	EnvMailFromEmail    = "MAIL_FROM_EMAIL"
)
