package assignment_test

import (
	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListUsers(role string) ([]models.User, error) {
	args := m.Called(role)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) FindEligibleWorkers(category string, cap int) ([]models.User, error) {
	args := m.Called(category, cap)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) ReserveAssignmentSlot(workerID string, cap int) (bool, error) {
	args := m.Called(workerID, cap)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) AdjustActiveCount(workerID string, delta int) error {
	args := m.Called(workerID, delta)
	return args.Error(0)
}

func (m *MockStorage) ApplyFreeUpDelta(workerID string, reassigned bool) error {
	args := m.Called(workerID, reassigned)
	return args.Error(0)
}

func (m *MockStorage) RecountActiveComplaints(workerID string) (int, error) {
	args := m.Called(workerID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) UpdateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) DeleteComplaint(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListComplaints(filter storage.ComplaintFilter) ([]models.Complaint, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) FindOldestPendingForSkills(skills []string) (*models.Complaint, error) {
	args := m.Called(skills)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ClaimPendingComplaint(complaintID, workerID string) (bool, error) {
	args := m.Called(complaintID, workerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) PublishNotification(n models.AssignmentNotification) error {
	args := m.Called(n)
	return args.Error(0)
}

// MockNotifier records notifications so tests can assert on them without
// touching Redis.
type MockNotifier struct {
	Notifications []models.AssignmentNotification
}

func (m *MockNotifier) Notify(workerID, complaintID, message string) {
	m.Notifications = append(m.Notifications, models.AssignmentNotification{
		WorkerID:    workerID,
		ComplaintID: complaintID,
		Message:     message,
	})
}
