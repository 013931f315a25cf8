package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI    string
	PostgresURI string
	RedisURI    string

	Port           string
	Environment    string   // ENV: production, development, etc.
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Remote text-completion service (assistant chat).
	CohereAPIKey      string
	CohereURL         string
	CohereModel       string
	CompletionTimeout time.Duration

	// Geocoding lookup for the recovery-station map search.
	GeocodeURL string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	completionTimeout := 20 * time.Second
	if v := getEnv("COMPLETION_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			completionTimeout = d
		}
	}

	return &Config{
		MongoURI:    getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/vds")),
		PostgresURI: getEnv("POSTGRES_URI", "postgres://localhost:5432/vds?sslmode=disable"),
		RedisURI:    getEnv("REDIS_URI", "redis://localhost:6379/0"),

		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		AllowedOrigins: allowedOrigins,

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		CohereAPIKey:      getEnv("COHERE_API_KEY", ""),
		CohereURL:         getEnv("COHERE_URL", "https://api.cohere.ai/v1/chat"),
		CohereModel:       getEnv("COHERE_MODEL", "command-r"),
		CompletionTimeout: completionTimeout,

		GeocodeURL: getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org/search"),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
