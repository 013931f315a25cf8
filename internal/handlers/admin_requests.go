package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
	"github.com/virtual-defence/vds-backend/internal/services"
)

// CreateAdminRequest files a pending admin-access request for the caller.
func CreateAdminRequest(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, err := adminRequestService.Request(ctx, user.UID, user.Email)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to create request")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"request": req,
	})
}

// GetAdminRequestStatus reports whether the caller has a pending request.
func GetAdminRequestStatus(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r)
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pending, err := adminRequestService.HasPending(ctx, user.UID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to check request status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"pending":  pending,
		"is_admin": user.IsAdmin,
	})
}

// GetAdminRequests lists all admin requests (admin only).
func GetAdminRequests(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	requests, err := adminRequestService.List(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to fetch requests")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"requests": requests,
		"count":    len(requests),
	})
}

type requestUpdateBody struct {
	ID     string                    `json:"id"`
	Status models.AdminRequestStatus `json:"status"`
	UID    string                    `json:"uid"`
}

// UpdateAdminRequest approves or rejects a request (admin only). Approval
// flips the target user's admin flag.
func UpdateAdminRequest(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var body requestUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" || body.UID == "" {
		writeMessage(w, http.StatusBadRequest, false, "request id, uid and status are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := adminRequestService.HandleRequestUpdate(ctx, body.ID, body.Status, body.UID)
	if errors.Is(err, services.ErrBadRequestStatus) {
		writeMessage(w, http.StatusBadRequest, false, "status must be approved or rejected")
		return
	}
	if errors.Is(err, services.ErrRequestMismatch) {
		writeMessage(w, http.StatusBadRequest, false, "uid does not match the request")
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, false, "request not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to update request")
		return
	}

	writeMessage(w, http.StatusOK, true, "request "+string(body.Status))
}
