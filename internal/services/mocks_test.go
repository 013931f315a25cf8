package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/virtual-defence/vds-backend/internal/models"
)

// MockComplaintRepository is a mock implementation of repository.ComplaintRepository.
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, c *models.Complaint) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockComplaintRepository) GetByID(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) GetAll(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockComplaintRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationRepository) ForUser(ctx context.Context, email string) ([]models.Notification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

// MockChatMessageRepository is a mock implementation of repository.ChatMessageRepository.
type MockChatMessageRepository struct {
	mock.Mock
}

func (m *MockChatMessageRepository) Append(ctx context.Context, msg *models.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatMessageRepository) BySession(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatMessageRepository) Search(ctx context.Context, query string) ([]models.ChatMessage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

// MockAdminRequestRepository is a mock implementation of repository.AdminRequestRepository.
type MockAdminRequestRepository struct {
	mock.Mock
}

func (m *MockAdminRequestRepository) Create(ctx context.Context, req *models.AdminRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAdminRequestRepository) GetByID(ctx context.Context, id string) (*models.AdminRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminRequest), args.Error(1)
}

func (m *MockAdminRequestRepository) GetAll(ctx context.Context) ([]models.AdminRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminRequest), args.Error(1)
}

func (m *MockAdminRequestRepository) SetStatus(ctx context.Context, id string, status models.AdminRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAdminRequestRepository) HasPending(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, uid, username, photoURL string) error {
	args := m.Called(ctx, uid, username, photoURL)
	return args.Error(0)
}

// MockCompletionClient is a mock implementation of CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
