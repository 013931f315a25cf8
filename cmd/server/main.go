package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/virtual-defence/vds-backend/internal/config"
	"github.com/virtual-defence/vds-backend/internal/database"
	"github.com/virtual-defence/vds-backend/internal/events"
	"github.com/virtual-defence/vds-backend/internal/handlers"
	"github.com/virtual-defence/vds-backend/internal/middleware"
	"github.com/virtual-defence/vds-backend/internal/repository"
	"github.com/virtual-defence/vds-backend/internal/routes"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL (recovery station reference data)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	// Log connection attempt (without showing password)
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}

	// Connect to MongoDB
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Ensure MongoDB indexes for chat history
	if err := repository.EnsureChatIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB chat indexes: %v", err)
	} else {
		log.Println("✅ MongoDB chat indexes ensured")
	}

	// Wire handlers to services and repositories
	handlers.Init(cfg)

	// Start the Redis Pub/Sub subscriber that feeds the live-update hub
	events.StartSubscriber(context.Background())
	log.Println("✅ Live update subscriber started")

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	log.Printf("🚀 Virtual Defence backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
