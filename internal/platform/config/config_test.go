// Copyright (c) 2026 Tasker. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasker/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "./data/tasks.db", cfg.SQLitePath)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockoutWindow)
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://tasker@localhost/tasks")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("EXTRA_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.ExtraOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Environment:        "development",
			StorageDriver:      "sqlite",
			SQLitePath:         ":memory:",
			SessionTTL:         time.Hour,
			BcryptCost:         10,
			CookieSecure:       true,
			LoginMaxAttempts:   5,
			LoginLockoutWindow: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid", func(*config.Config) {}, ""},
		{"unknown_driver", func(c *config.Config) { c.StorageDriver = "mysql" }, "STORAGE_DRIVER"},
		{"postgres_without_url", func(c *config.Config) { c.StorageDriver = "postgres" }, "DATABASE_URL"},
		{"sqlite_without_path", func(c *config.Config) { c.SQLitePath = " " }, "SQLITE_PATH"},
		{"zero_ttl", func(c *config.Config) { c.SessionTTL = 0 }, "SESSION_TTL"},
		{"cost_too_high", func(c *config.Config) { c.BcryptCost = 40 }, "BCRYPT_COST"},
		{"window_missing", func(c *config.Config) { c.LoginLockoutWindow = 0 }, "LOGIN_LOCKOUT_WINDOW"},
		{"throttling_disabled", func(c *config.Config) { c.LoginMaxAttempts, c.LoginLockoutWindow = 0, 0 }, ""},
		{"insecure_cookie_in_production", func(c *config.Config) {
			c.Environment = "production"
			c.CookieSecure = false
		}, "COOKIE_SECURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
