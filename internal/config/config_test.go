package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("CART_STORE", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("ORDER_SERVICE_URL", "")
	t.Setenv("CART_TTL", "")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "swiftCart", cfg.StoreKey)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, time.Duration(0), cfg.CartTTL)
	assert.Equal(t, "http://localhost:5000", cfg.OrderServiceURL)
	assert.Equal(t, "/orders/latest", cfg.OrderConfirmationPath)
}

func TestFromEnv_RedisSelectedWhenHostSet(t *testing.T) {
	t.Setenv("CART_STORE", "")
	t.Setenv("REDIS_HOST", "localhost:6379")

	cfg := FromEnv()

	assert.Equal(t, StoreRedis, cfg.StoreBackend)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CART_STORE", "MEMORY")
	t.Setenv("ORDER_SERVICE_URL", "https://shop.example.com/")
	t.Setenv("CART_TTL", "720h")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := FromEnv()

	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "https://shop.example.com", cfg.OrderServiceURL)
	assert.Equal(t, 720*time.Hour, cfg.CartTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}
