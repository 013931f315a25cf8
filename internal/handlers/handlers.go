// Package handlers contains the HTTP and WebSocket handlers for the portal
// API. Services and repositories are wired once at startup via Init.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/virtual-defence/vds-backend/internal/config"
	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
	"github.com/virtual-defence/vds-backend/internal/services"
)

var (
	userService         *services.UserService
	complaintService    *services.ComplaintService
	adminRequestService *services.AdminRequestService
	assistantService    *services.AssistantService
	geocodeService      *services.GeocodeService

	chatMessages  repository.ChatMessageRepository
	notifications repository.NotificationRepository
	stations      repository.StationRepository
)

// Init wires repositories and services. Must be called after the database
// connections are established.
func Init(cfg *config.Config) {
	userRepo := repository.NewUserRepository()
	complaintRepo := repository.NewComplaintRepository()
	requestRepo := repository.NewAdminRequestRepository()

	chatMessages = repository.NewChatMessageRepository()
	notifications = repository.NewNotificationRepository()
	stations = repository.NewStationRepository()

	userService = services.NewUserService(userRepo)
	complaintService = services.NewComplaintService(complaintRepo, notifications)
	adminRequestService = services.NewAdminRequestService(requestRepo, userRepo)
	assistantService = services.NewAssistantService(
		chatMessages,
		services.NewCohereClient(cfg.CohereAPIKey, cfg.CohereURL, cfg.CohereModel, cfg.CompletionTimeout),
		cfg.CompletionTimeout,
	)
	geocodeService = services.NewGeocodeService(cfg.GeocodeURL)
}

func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// currentUser resolves the caller from the bearer token. Returns nil when
// the request is unauthenticated; many routes tolerate that (guest filings).
func currentUser(r *http.Request) *models.User {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil
	}

	uid, ok := services.ValidateSession(r.Context(), token)
	if !ok {
		return nil
	}

	user, err := userService.GetByUID(r.Context(), uid)
	if err != nil {
		return nil
	}
	return user
}

// requireUser resolves the caller or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	user := currentUser(r)
	if user == nil {
		http.Error(w, "missing or invalid session token", http.StatusUnauthorized)
		return nil
	}
	return user
}

// requireAdmin resolves the caller and enforces the admin flag. The flag
// check mirrors the store's own access rules; a non-admin gets 403 exactly
// as a rejected write would surface.
func requireAdmin(w http.ResponseWriter, r *http.Request) *models.User {
	user := requireUser(w, r)
	if user == nil {
		return nil
	}
	if !user.IsAdmin {
		http.Error(w, "admin access required", http.StatusForbidden)
		return nil
	}
	return user
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": success,
		"message": message,
	})
}
