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

// CreateComplaint files a new complaint. Filing works for guests too; the
// record is attributed to the caller's email when a session is present.
func CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var complaint models.Complaint
	if err := json.NewDecoder(r.Body).Decode(&complaint); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return
	}

	filedBy := "Guest"
	if user := currentUser(r); user != nil {
		filedBy = user.Email
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := complaintService.Submit(ctx, &complaint, filedBy)
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		writeMessage(w, http.StatusBadRequest, false, vErr.Error())
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to submit complaint")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"complaint": complaint,
	})
}

// GetComplaints returns the ledger, optionally narrowed by exact crime type
// and/or creation date (YYYY-MM-DD). The filter runs over the fetched
// snapshot; both criteria compose with AND.
func GetComplaints(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	complaints, err := complaintService.GetAll(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to fetch complaints")
		return
	}

	filtered := services.FilterComplaints(complaints, services.ComplaintFilter{
		Type: r.URL.Query().Get("type"),
		Date: r.URL.Query().Get("date"),
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"complaints": filtered,
		"count":      len(filtered),
	})
}

type statusUpdateRequest struct {
	ID     string                 `json:"id"`
	Status models.ComplaintStatus `json:"status"`
}

// UpdateComplaintStatus overwrites a complaint's status (admin only) and
// notifies the filing user as a side effect.
func UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeMessage(w, http.StatusBadRequest, false, "complaint id and status are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := complaintService.SetStatus(ctx, req.ID, req.Status)
	if errors.Is(err, services.ErrUnknownStatus) {
		writeMessage(w, http.StatusBadRequest, false, "unknown complaint status")
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, false, "complaint not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to update complaint")
		return
	}

	writeMessage(w, http.StatusOK, true, "complaint status updated")
}

// DeleteComplaint removes a Resolved complaint (admin only). Deleting a
// complaint in any other status is rejected.
func DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, false, "complaint id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := complaintService.Delete(ctx, id)
	if errors.Is(err, services.ErrNotResolved) {
		writeMessage(w, http.StatusConflict, false, "only Resolved complaints can be deleted")
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, false, "complaint not found")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to delete complaint")
		return
	}

	writeMessage(w, http.StatusOK, true, "complaint deleted")
}
