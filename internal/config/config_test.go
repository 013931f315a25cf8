package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Pin every variable Load reads so ambient environment cannot leak in.
	for _, key := range []string{
		"ENV", "PORT", "ALLOWED_ORIGINS", "FRONTEND_URL", "FRONTEND_URL_2",
		"MONGODB_URI", "MONGO_URI", "POSTGRES_URI", "REDIS_URI",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"COHERE_API_KEY", "COHERE_URL", "COHERE_MODEL", "COMPLETION_TIMEOUT",
		"GEOCODE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.Equal(t, "https://api.cohere.ai/v1/chat", cfg.CohereURL)
	assert.Equal(t, "command-r", cfg.CohereModel)
	assert.Equal(t, 20*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.GeocodeURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production ")
	t.Setenv("ALLOWED_ORIGINS", "https://vds.example.com, https://admin.vds.example.com")
	t.Setenv("COMPLETION_TIMEOUT", "5s")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://vds.example.com", "https://admin.vds.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.CompletionTimeout)
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"a", "b"}, parseOrigins(" a ,, b "))
}
