package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "cok-gizli-en-az-otuz-iki-karakterlik-anahtar"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, testSecret, cfg.JWTSecret)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigins)
	assert.Equal(t, "https://sandbox-api.iyzipay.com", cfg.IyzicoBaseURL)
	assert.NotEmpty(t, cfg.CallbackURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://takas.example")
	t.Setenv("IYZICO_BASE_URL", "https://api.iyzipay.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "https://takas.example", cfg.CORSOrigins)
	assert.Equal(t, "https://api.iyzipay.com", cfg.IyzicoBaseURL)
}
