package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		MongoURI:               DefaultMongoURI,
		MongoDatabaseName:      DefaultMongoDatabaseName,
		MongoConnTimeout:       DefaultMongoConnTimeout,
		Port:                   DefaultPort,
		RateLimitRequests:      DefaultRateLimitRequests,
		RateLimitWindow:        DefaultRateLimitWindow,
		RequestTimeout:         DefaultRequestTimeout,
		IdempotencyTTL:         DefaultIdempotencyTTL,
		MaxRequestSize:         DefaultMaxRequestSize,
		ReadTimeout:            DefaultReadTimeout,
		WriteTimeout:           DefaultWriteTimeout,
		IdleTimeout:            DefaultIdleTimeout,
		ShutdownTimeout:        DefaultShutdownTimeout,
		RestaurantTimezone:     DefaultRestaurantTimezone,
		RestaurantContactPhone: DefaultRestaurantContactPhone,
		AdvanceNoticeMode:      DefaultAdvanceNoticeMode,
		BookingDurationMin:     DefaultBookingDurationMin,
		LockTTL:                DefaultLockTTL,
		LockRetries:            DefaultLockRetries,
		LockRetryDelay:         DefaultLockRetryDelay,
		NotifyQueueSize:        DefaultNotifyQueueSize,
		NotifyMaxAttempts:      DefaultNotifyMaxAttempts,
		NotifyRetryDelay:       DefaultNotifyRetryDelay,
		MailFromName:           DefaultMailFromName,
		MailFromEmail:          DefaultMailFromEmail,
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := defaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultRestaurantTimezone, cfg.RestaurantLocation.String())
}

func TestValidate_LockTTL(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "default outlasts a read and a write",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "old ten second default is too short",
			mutate:  func(cfg *Config) { cfg.LockTTL = 10 * time.Second },
			wantErr: "LockTTL must exceed ReadTimeout+WriteTimeout (30s), got: 10s",
		},
		{
			name:    "equal to the budget is too short",
			mutate:  func(cfg *Config) { cfg.LockTTL = 30 * time.Second },
			wantErr: "LockTTL must exceed ReadTimeout+WriteTimeout",
		},
		{
			name: "shorter timeouts allow a shorter lock",
			mutate: func(cfg *Config) {
				cfg.ReadTimeout = 2 * time.Second
				cfg.WriteTimeout = 2 * time.Second
				cfg.LockTTL = 5 * time.Second
			},
		},
		{
			name:    "zero retry delay would spin",
			mutate:  func(cfg *Config) { cfg.LockRetryDelay = 0 },
			wantErr: "LockRetryDelay must be positive",
		},
		{
			name:    "zero ttl reported once",
			mutate:  func(cfg *Config) { cfg.LockTTL = 0 },
			wantErr: "LockTTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 1, strings.Count(err.Error(), "LockTTL")+strings.Count(err.Error(), "LockRetryDelay"))
		})
	}
}
