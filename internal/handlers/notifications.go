package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/virtual-defence/vds-backend/internal/models"
)

type sendNotificationRequest struct {
	Message    string `json:"message"`
	TargetUser string `json:"target_user"` // empty or "all" broadcasts to everyone
}

// SendNotification creates a broadcast record (admin only).
func SendNotification(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeMessage(w, http.StatusBadRequest, false, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	n := &models.Notification{
		Message:    req.Message,
		TargetUser: strings.TrimSpace(req.TargetUser),
	}
	if _, err := notifications.Create(ctx, n); err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to send notification")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"notification": n,
	})
}

// GetNotifications returns notifications addressed to the caller or to
// everyone, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := notifications.ForUser(ctx, user.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to fetch notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": list,
		"count":         len(list),
	})
}
