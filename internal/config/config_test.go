package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.Checkout.DeliveryFee)
	assert.Equal(t, int64(8000), cfg.Checkout.FreeDeliveryMin)
	assert.Equal(t, 45*time.Minute, cfg.Checkout.EstimatedDelivery)
	assert.True(t, cfg.Checkout.AllowOversellOnError)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	t.Run("short jwt secret", func(t *testing.T) {
		bad := *cfg
		bad.JWT.Secret = "short"
		assert.Error(t, bad.Validate())
	})

	t.Run("missing admin credentials", func(t *testing.T) {
		bad := *cfg
		bad.Admin.PasswordHash = ""
		assert.Error(t, bad.Validate())
	})

	t.Run("negative delivery fee", func(t *testing.T) {
		bad := *cfg
		bad.Checkout.DeliveryFee = -1
		assert.Error(t, bad.Validate())
	})
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "restaurant_user",
			Password: "secret",
			Name:     "restaurant_db",
			SSLMode:  "disable",
		},
	}
	assert.Equal(t,
		"host=localhost port=5432 user=restaurant_user password=secret dbname=restaurant_db sslmode=disable",
		cfg.GetDatabaseDSN())
}
