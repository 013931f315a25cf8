package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/virtual-defence/vds-backend/pkg/utils"
)

// GetProfile returns the caller's profile.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

type updateProfileRequest struct {
	Username string `json:"username"`
	PhotoURL string `json:"photo_url"`
}

// UpdateProfile sets the caller's username and/or photo URL.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := userService.UpdateProfile(ctx, user.UID, req.Username, req.PhotoURL)
	if err != nil {
		var vErr *utils.ValidationError
		if errors.As(err, &vErr) {
			writeMessage(w, http.StatusBadRequest, false, vErr.Message)
			return
		}
		writeMessage(w, http.StatusInternalServerError, false, "failed to update profile")
		return
	}

	writeMessage(w, http.StatusOK, true, "profile updated")
}
