package services

import (
	"context"
	"errors"

	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
)

var (
	// ErrBadRequestStatus is returned when a request update is neither an
	// approval nor a rejection.
	ErrBadRequestStatus = errors.New("request status must be approved or rejected")
	// ErrRequestMismatch is returned when the submitted uid does not match
	// the request being resolved.
	ErrRequestMismatch = errors.New("uid does not match the request")
)

// AdminRequestService runs the admin gate: pending requests become approved
// or rejected, and approval flips the target user's admin flag.
type AdminRequestService struct {
	requests repository.AdminRequestRepository
	users    repository.UserRepository
}

func NewAdminRequestService(requests repository.AdminRequestRepository, users repository.UserRepository) *AdminRequestService {
	return &AdminRequestService{requests: requests, users: users}
}

// Request files a pending admin request for the user. Duplicate pending
// requests per uid are allowed; HasPending is advisory, for display.
func (s *AdminRequestService) Request(ctx context.Context, uid, email string) (*models.AdminRequest, error) {
	req := &models.AdminRequest{
		UID:    uid,
		Email:  email,
		Status: models.RequestPending,
	}
	if _, err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// HasPending reports whether the uid has an outstanding pending request.
func (s *AdminRequestService) HasPending(ctx context.Context, uid string) (bool, error) {
	return s.requests.HasPending(ctx, uid)
}

// List returns all requests, newest first.
func (s *AdminRequestService) List(ctx context.Context) ([]models.AdminRequest, error) {
	return s.requests.GetAll(ctx)
}

// HandleRequestUpdate resolves a request. Approval also sets the target
// user's isAdmin flag; rejection touches only the request itself. The two
// writes are independent, with no atomicity guarantee. The submitted uid
// must match the request record, so an approval can never promote a
// different account than the one that petitioned.
func (s *AdminRequestService) HandleRequestUpdate(ctx context.Context, id string, status models.AdminRequestStatus, uid string) error {
	if status != models.RequestApproved && status != models.RequestRejected {
		return ErrBadRequestStatus
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if uid != req.UID {
		return ErrRequestMismatch
	}

	if err := s.requests.SetStatus(ctx, id, status); err != nil {
		return err
	}

	if status == models.RequestApproved {
		if err := s.users.SetAdmin(ctx, req.UID); err != nil {
			return err
		}
	}
	return nil
}
