package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tablebooker/pkg/client"
	"tablebooker/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RedisURL string

	RestaurantTimezone     string
	RestaurantLocation     *time.Location
	RestaurantContactPhone string
	AdvanceNoticeMode      string
	BookingDurationMin     int

	LockTTL        time.Duration
	LockRetries    int
	LockRetryDelay time.Duration

	KafkaEnabled              bool
	KafkaReservationsTopic    string
	KafkaReservationsDLQTopic string
	KafkaNotifierGroup        string

	NotifyQueueSize   int
	NotifyMaxAttempts int
	NotifyRetryDelay  time.Duration

	MailerSendAPIKey string
	MailFromName     string
	MailFromEmail    string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RedisURL: getEnvStr(EnvRedisURL, ""),

		RestaurantTimezone:     getEnvStr(EnvRestaurantTimezone, DefaultRestaurantTimezone),
		RestaurantContactPhone: getEnvStr(EnvRestaurantContactPhone, DefaultRestaurantContactPhone),
		AdvanceNoticeMode:      strings.ToLower(getEnvStr(EnvAdvanceNoticeMode, DefaultAdvanceNoticeMode)),
		BookingDurationMin:     getEnvNum(EnvBookingDurationMin, DefaultBookingDurationMin),

		LockTTL:        getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockRetries:    getEnvNum(EnvLockRetries, DefaultLockRetries),
		LockRetryDelay: getEnvDuration(EnvLockRetryDelay, DefaultLockRetryDelay),

		KafkaEnabled:              getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaReservationsTopic:    getEnvStr(EnvKafkaReservationsTopic, DefaultKafkaReservationsTopic),
		KafkaReservationsDLQTopic: getEnvStr(EnvKafkaReservationsDLQTopic, DefaultKafkaReservationsDLQTopic),
		KafkaNotifierGroup:        getEnvStr(EnvKafkaNotifierGroup, DefaultKafkaNotifierGroup),

		NotifyQueueSize:   getEnvNum(EnvNotifyQueueSize, DefaultNotifyQueueSize),
		NotifyMaxAttempts: getEnvNum(EnvNotifyMaxAttempts, DefaultNotifyMaxAttempts),
		NotifyRetryDelay:  getEnvDuration(EnvNotifyRetryDelay, DefaultNotifyRetryDelay),

		MailerSendAPIKey: getEnvStr(EnvMailerSendAPIKey, ""),
		MailFromName:     getEnvStr(EnvMailFromName, DefaultMailFromName),
		MailFromEmail:    getEnvStr(EnvMailFromEmail, DefaultMailFromEmail),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	if cfg.RedisURL == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL, cfg.MongoConnTimeout)
}

// Validate checks every setting and resolves RestaurantLocation. All problems
// are reported together.
func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.RedisURL != "" && !regexp.MustCompile(`^rediss?://`).MatchString(cfg.RedisURL) {
		errors = append(errors, fmt.Sprintf("RedisURL must start with 'redis://' or 'rediss://', got: %s", redactURI(cfg.RedisURL)))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"LockTTL", cfg.LockTTL},
		{"LockRetryDelay", cfg.LockRetryDelay},
		{"NotifyRetryDelay", cfg.NotifyRetryDelay},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}
	// A booking holds its table lock across one read and one write.
	if cfg.LockTTL > 0 && cfg.LockTTL <= cfg.ReadTimeout+cfg.WriteTimeout {
		errors = append(errors, fmt.Sprintf("LockTTL must exceed ReadTimeout+WriteTimeout (%s), got: %s", cfg.ReadTimeout+cfg.WriteTimeout, cfg.LockTTL))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.LockRetries < 0 {
		errors = append(errors, fmt.Sprintf("LockRetries cannot be negative, got: %d", cfg.LockRetries))
	}
	if cfg.NotifyQueueSize <= 0 {
		errors = append(errors, fmt.Sprintf("NotifyQueueSize must be positive, got: %d", cfg.NotifyQueueSize))
	}
	if cfg.NotifyMaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("NotifyMaxAttempts must be positive, got: %d", cfg.NotifyMaxAttempts))
	}

	if cfg.BookingDurationMin < 15 || cfg.BookingDurationMin > 24*60 {
		errors = append(errors, fmt.Sprintf("BookingDurationMin must be between 15 and 1440, got: %d", cfg.BookingDurationMin))
	}

	switch cfg.AdvanceNoticeMode {
	case AdvanceNoticeDate, AdvanceNoticeDateTime:
	default:
		errors = append(errors, fmt.Sprintf("AdvanceNoticeMode must be '%s' or '%s', got: %s", AdvanceNoticeDate, AdvanceNoticeDateTime, cfg.AdvanceNoticeMode))
	}

	loc, err := time.LoadLocation(cfg.RestaurantTimezone)
	if err != nil || cfg.RestaurantTimezone == "" {
		errors = append(errors, fmt.Sprintf("RestaurantTimezone must be a valid IANA zone, got: %q", cfg.RestaurantTimezone))
	} else {
		cfg.RestaurantLocation = loc
	}

	if cfg.KafkaEnabled {
		if cfg.KafkaReservationsTopic == "" {
			errors = append(errors, "KafkaReservationsTopic cannot be empty when Kafka is enabled")
		}
		if cfg.KafkaNotifierGroup == "" {
			errors = append(errors, "KafkaNotifierGroup cannot be empty when Kafka is enabled")
		}
	}

	if cfg.MailFromEmail == "" {
		errors = append(errors, "MailFromEmail cannot be empty")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"redis_uri", redactURI(cfg.RedisURL),
		"restaurant_timezone", cfg.RestaurantTimezone,
		"advance_notice_mode", cfg.AdvanceNoticeMode,
		"booking_duration_min", cfg.BookingDurationMin,
		"lock_ttl", cfg.LockTTL,
		"lock_retries", cfg.LockRetries,
		"lock_retry_delay", cfg.LockRetryDelay,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_reservations_topic", cfg.KafkaReservationsTopic,
		"kafka_reservations_dlq_topic", cfg.KafkaReservationsDLQTopic,
		"kafka_notifier_group", cfg.KafkaNotifierGroup,
		"notify_queue_size", cfg.NotifyQueueSize,
		"notify_max_attempts", cfg.NotifyMaxAttempts,
		"notify_retry_delay", cfg.NotifyRetryDelay,
		"mailersend_key_set", cfg.MailerSendAPIKey != "",
		"mail_from", cfg.MailFromEmail,
	)
}

func redactURI(uri string) string {
	credentialRegex := regexp.MustCompile(`([a-z+]+://)[^:/@]*:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
