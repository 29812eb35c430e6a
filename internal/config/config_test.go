package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "products", cfg.Store.Table)
	assert.Equal(t, "product-events", cfg.Events.Exchange)
	assert.NotEmpty(t, cfg.Events.Target)
	assert.NotEmpty(t, cfg.Events.CreateEmail)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerWindow)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PRODUCTS_TABLE", "catalog")
	t.Setenv("EVENTS_TARGET", "downstream")
	t.Setenv("EVENT_EMAIL_DELETE", "ops@example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "catalog", cfg.Store.Table)
	assert.Equal(t, "downstream", cfg.Events.Target)
	assert.Equal(t, "ops@example.com", cfg.Events.DeleteEmail)
}
