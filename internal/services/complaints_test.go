package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/virtual-defence/vds-backend/internal/models"
	"github.com/virtual-defence/vds-backend/internal/repository"
)

func validComplaint() *models.Complaint {
	return &models.Complaint{
		CNIC:        "12345-1234567-1",
		Phone:       "03001234567",
		FullName:    "Ali Khan",
		DOB:         "1990-01-01",
		CrimeType:   "Theft",
		Description: "Stolen bicycle from the parking lot",
	}
}

func TestSubmitStampsPendingAndCreatedAt(t *testing.T) {
	complaints := new(MockComplaintRepository)
	notifications := new(MockNotificationRepository)
	svc := NewComplaintService(complaints, notifications)

	complaints.On("Create", mock.Anything, mock.Anything).Return("id-1", nil)

	c := validComplaint()
	before := time.Now().UTC()
	err := svc.Submit(context.Background(), c, "ali@example.com")
	require.NoError(t, err)

	assert.Equal(t, models.ComplaintPending, c.Status)
	assert.Equal(t, "ali@example.com", c.User)
	assert.False(t, c.CreatedAt.Before(before))
	complaints.AssertExpectations(t)
}

func TestSubmitGuestFallback(t *testing.T) {
	complaints := new(MockComplaintRepository)
	svc := NewComplaintService(complaints, new(MockNotificationRepository))

	complaints.On("Create", mock.Anything, mock.Anything).Return("id-1", nil)

	c := validComplaint()
	err := svc.Submit(context.Background(), c, "")
	require.NoError(t, err)
	assert.Equal(t, "Guest", c.User)
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Complaint)
	}{
		{"missing cnic", func(c *models.Complaint) { c.CNIC = "" }},
		{"missing phone", func(c *models.Complaint) { c.Phone = "" }},
		{"missing full_name", func(c *models.Complaint) { c.FullName = "  " }},
		{"missing dob", func(c *models.Complaint) { c.DOB = "" }},
		{"missing crime_type", func(c *models.Complaint) { c.CrimeType = "" }},
		{"missing description", func(c *models.Complaint) { c.Description = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complaints := new(MockComplaintRepository)
			svc := NewComplaintService(complaints, new(MockNotificationRepository))

			c := validComplaint()
			tt.mutate(c)
			err := svc.Submit(context.Background(), c, "user@example.com")

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			complaints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitRejectsUnknownCrimeType(t *testing.T) {
	complaints := new(MockComplaintRepository)
	svc := NewComplaintService(complaints, new(MockNotificationRepository))

	c := validComplaint()
	c.CrimeType = "Arson"
	err := svc.Submit(context.Background(), c, "user@example.com")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "crime_type", vErr.Field)
}

func TestSetStatusNotifiesFilingUser(t *testing.T) {
	complaints := new(MockComplaintRepository)
	notifications := new(MockNotificationRepository)
	svc := NewComplaintService(complaints, notifications)

	complaints.On("GetByID", mock.Anything, "abc").
		Return(&models.Complaint{User: "ali@example.com", Status: models.ComplaintPending}, nil)
	complaints.On("UpdateStatus", mock.Anything, "abc", models.ComplaintResolved).Return(nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.TargetUser == "ali@example.com" && strings.Contains(n.Message, "Resolved")
	})).Return("n-1", nil)

	err := svc.SetStatus(context.Background(), "abc", models.ComplaintResolved)
	require.NoError(t, err)
	notifications.AssertExpectations(t)
}

func TestSetStatusGuestComplaintNotifiesBroadcastTarget(t *testing.T) {
	complaints := new(MockComplaintRepository)
	notifications := new(MockNotificationRepository)
	svc := NewComplaintService(complaints, notifications)

	complaints.On("GetByID", mock.Anything, "abc").
		Return(&models.Complaint{User: "Guest", Status: models.ComplaintPending}, nil)
	complaints.On("UpdateStatus", mock.Anything, "abc", models.ComplaintInReview).Return(nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.TargetUser == models.NotifyAll
	})).Return("n-1", nil)

	err := svc.SetStatus(context.Background(), "abc", models.ComplaintInReview)
	require.NoError(t, err)
	notifications.AssertExpectations(t)
}

func TestSetStatusNotificationFailureIsSwallowed(t *testing.T) {
	complaints := new(MockComplaintRepository)
	notifications := new(MockNotificationRepository)
	svc := NewComplaintService(complaints, notifications)

	complaints.On("GetByID", mock.Anything, "abc").
		Return(&models.Complaint{User: "ali@example.com"}, nil)
	complaints.On("UpdateStatus", mock.Anything, "abc", models.ComplaintInReview).Return(nil)
	notifications.On("Create", mock.Anything, mock.Anything).Return("", errors.New("outbox down"))

	err := svc.SetStatus(context.Background(), "abc", models.ComplaintInReview)
	assert.NoError(t, err)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	complaints := new(MockComplaintRepository)
	svc := NewComplaintService(complaints, new(MockNotificationRepository))

	err := svc.SetStatus(context.Background(), "abc", models.ComplaintStatus("Closed"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
	complaints.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetStatusUnknownComplaint(t *testing.T) {
	complaints := new(MockComplaintRepository)
	svc := NewComplaintService(complaints, new(MockNotificationRepository))

	complaints.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	err := svc.SetStatus(context.Background(), "missing", models.ComplaintResolved)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteRequiresResolved(t *testing.T) {
	complaints := new(MockComplaintRepository)
	svc := NewComplaintService(complaints, new(MockNotificationRepository))

	complaints.On("GetByID", mock.Anything, "abc").
		Return(&models.Complaint{Status: models.ComplaintInReview}, nil)

	err := svc.Delete(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNotResolved)
	complaints.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteResolvedComplaint(t *testing.T) {
	complaints := new(MockComplaintRepository)
	svc := NewComplaintService(complaints, new(MockNotificationRepository))

	complaints.On("GetByID", mock.Anything, "abc").
		Return(&models.Complaint{Status: models.ComplaintResolved}, nil)
	complaints.On("Delete", mock.Anything, "abc").Return(nil)

	err := svc.Delete(context.Background(), "abc")
	require.NoError(t, err)
	complaints.AssertExpectations(t)
}

func TestFilterComplaints(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC)

	ledger := []models.Complaint{
		{CrimeType: "Theft", CreatedAt: day1},
		{CrimeType: "Fraud", CreatedAt: day1},
		{CrimeType: "Theft", CreatedAt: day2},
	}

	t.Run("empty filter returns everything", func(t *testing.T) {
		got := FilterComplaints(ledger, ComplaintFilter{})
		assert.Len(t, got, 3)
	})

	t.Run("by type", func(t *testing.T) {
		got := FilterComplaints(ledger, ComplaintFilter{Type: "Theft"})
		require.Len(t, got, 2)
		for _, c := range got {
			assert.Equal(t, "Theft", c.CrimeType)
		}
	})

	t.Run("by date", func(t *testing.T) {
		got := FilterComplaints(ledger, ComplaintFilter{Date: "2025-03-10"})
		assert.Len(t, got, 2)
	})

	t.Run("type and date compose with AND", func(t *testing.T) {
		got := FilterComplaints(ledger, ComplaintFilter{Type: "Theft", Date: "2025-03-11"})
		require.Len(t, got, 1)
		assert.Equal(t, day2, got[0].CreatedAt)
	})

	t.Run("no matches yields empty, not nil panic", func(t *testing.T) {
		got := FilterComplaints(ledger, ComplaintFilter{Type: "Assault"})
		assert.Empty(t, got)
	})

	t.Run("result is always a subset of the input", func(t *testing.T) {
		got := FilterComplaints(ledger, ComplaintFilter{Date: "2025-03-10"})
		assert.LessOrEqual(t, len(got), len(ledger))
		for _, c := range got {
			assert.Contains(t, ledger, c)
		}
	})
}
