// Package services holds the business logic between the HTTP handlers and
// the entity repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
)

var (
	// ErrNotResolved is returned when deleting a complaint that has not
	// reached the Resolved status.
	ErrNotResolved = errors.New("complaint must be Resolved before deletion")
	// ErrUnknownStatus is returned for a status outside the bounded set.
	ErrUnknownStatus = errors.New("unknown complaint status")
)

// ValidationError reports a missing or malformed complaint field. These are
// caught before any write reaches the store.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}

// ComplaintService implements the complaint lifecycle: submit, filter,
// status transitions and the Resolved-only deletion gate.
type ComplaintService struct {
	complaints    repository.ComplaintRepository
	notifications repository.NotificationRepository
}

func NewComplaintService(complaints repository.ComplaintRepository, notifications repository.NotificationRepository) *ComplaintService {
	return &ComplaintService{complaints: complaints, notifications: notifications}
}

// Submit validates the form fields, stamps the creation time, forces the
// status to Pending and appends the complaint to the ledger. filedBy is the
// caller's email; anonymous filings come through as "Guest".
func (s *ComplaintService) Submit(ctx context.Context, c *models.Complaint, filedBy string) error {
	fields := map[string]string{
		"cnic":        c.CNIC,
		"phone":       c.Phone,
		"full_name":   c.FullName,
		"dob":         c.DOB,
		"crime_type":  c.CrimeType,
		"description": c.Description,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: name}
		}
	}
	if !models.ValidCrimeType(c.CrimeType) {
		return &ValidationError{Field: "crime_type"}
	}

	if filedBy == "" {
		filedBy = "Guest"
	}
	c.User = filedBy
	c.Status = models.ComplaintPending
	c.CreatedAt = time.Now().UTC()

	_, err := s.complaints.Create(ctx, c)
	return err
}

// GetAll returns the full ledger, newest first.
func (s *ComplaintService) GetAll(ctx context.Context) ([]models.Complaint, error) {
	return s.complaints.GetAll(ctx)
}

// SetStatus unconditionally overwrites the complaint's status and then
// enqueues a notification addressed to the filing user. The two writes are
// independent: a failed notification is logged, never propagated.
func (s *ComplaintService) SetStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	if !models.ValidStatus(status) {
		return ErrUnknownStatus
	}

	c, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.complaints.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	n := &models.Notification{
		Message:    fmt.Sprintf("Your complaint has been marked as %s", status),
		TargetUser: c.User,
	}
	// Guest filings carry no deliverable address; those notifications go to
	// the broadcast target instead.
	if n.TargetUser == "" || n.TargetUser == "Guest" {
		n.TargetUser = models.NotifyAll
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		log.Printf("failed to create status notification for complaint %s: %v", id, err)
	}

	return nil
}

// Delete removes a complaint from the ledger. Only Resolved complaints may
// be deleted; the gate lives here so it holds regardless of UI gating.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	c, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Status != models.ComplaintResolved {
		return ErrNotResolved
	}
	return s.complaints.Delete(ctx, id)
}

// ComplaintFilter narrows the ledger snapshot. Empty fields match all.
type ComplaintFilter struct {
	Type string // exact match on CrimeType
	Date string // exact match on CreatedAt's UTC calendar day, YYYY-MM-DD
}

// FilterComplaints is a pure function over an in-memory snapshot: the result
// is always a subset of the input, and both criteria compose with AND.
func FilterComplaints(complaints []models.Complaint, f ComplaintFilter) []models.Complaint {
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if f.Type != "" && c.CrimeType != f.Type {
			continue
		}
		if f.Date != "" && c.CreatedAt.UTC().Format("2006-01-02") != f.Date {
			continue
		}
		out = append(out, c)
	}
	return out
}
