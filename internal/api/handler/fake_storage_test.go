package handler_test

import (
	"sort"
	"time"

	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"
)

// fakeStorage is an in-memory storage.Storage used to drive handlers and
// the engine end to end without Postgres or Redis.
type fakeStorage struct {
	users         map[string]*models.User
	complaints    map[string]*models.Complaint
	notifications []models.AssignmentNotification
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:      make(map[string]*models.User),
		complaints: make(map[string]*models.Complaint),
	}
}

func (f *fakeStorage) SaveUser(user *models.User) error {
	if user.ID == "" {
		_ = user.BeforeCreate(nil)
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStorage) UpdateUser(user *models.User) error {
	return f.SaveUser(user)
}

func (f *fakeStorage) GetUserByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStorage) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStorage) ListUsers(role string) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if role == "" || user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (f *fakeStorage) FindEligibleWorkers(category string, cap int) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.Role == models.RoleWorker && user.IsAvailable &&
			user.HasSkill(category) && user.ActiveComplaintCount < cap {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ActiveComplaintCount != out[j].ActiveComplaintCount {
			return out[i].ActiveComplaintCount < out[j].ActiveComplaintCount
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStorage) ReserveAssignmentSlot(workerID string, cap int) (bool, error) {
	user, ok := f.users[workerID]
	if !ok || user.ActiveComplaintCount >= cap {
		return false, nil
	}
	user.ActiveComplaintCount++
	return true, nil
}

func (f *fakeStorage) AdjustActiveCount(workerID string, delta int) error {
	if user, ok := f.users[workerID]; ok {
		user.ActiveComplaintCount += delta
		if user.ActiveComplaintCount < 0 {
			user.ActiveComplaintCount = 0
		}
	}
	return nil
}

func (f *fakeStorage) ApplyFreeUpDelta(workerID string, reassigned bool) error {
	if err := f.AdjustActiveCount(workerID, -1); err != nil {
		return err
	}
	if reassigned {
		return f.AdjustActiveCount(workerID, 1)
	}
	return nil
}

func (f *fakeStorage) RecountActiveComplaints(workerID string) (int, error) {
	count := 0
	for _, c := range f.complaints {
		if c.AssignedTo != nil && *c.AssignedTo == workerID && c.Status == models.StatusInProgress {
			count++
		}
	}
	if user, ok := f.users[workerID]; ok {
		user.ActiveComplaintCount = count
	}
	return count, nil
}

func (f *fakeStorage) CreateComplaint(complaint *models.Complaint) error {
	if complaint.ID == "" {
		_ = complaint.BeforeCreate(nil)
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now()
	}
	copied := *complaint
	f.complaints[complaint.ID] = &copied
	return nil
}

func (f *fakeStorage) UpdateComplaint(complaint *models.Complaint) error {
	copied := *complaint
	f.complaints[complaint.ID] = &copied
	return nil
}

func (f *fakeStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeStorage) DeleteComplaint(id string) error {
	delete(f.complaints, id)
	return nil
}

func (f *fakeStorage) ListComplaints(filter storage.ComplaintFilter) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.complaints {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.SubmittedBy != "" && c.SubmittedBy != filter.SubmittedBy {
			continue
		}
		if filter.AssignedTo != "" && (c.AssignedTo == nil || *c.AssignedTo != filter.AssignedTo) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStorage) FindOldestPendingForSkills(skills []string) (*models.Complaint, error) {
	skillSet := make(map[string]bool, len(skills))
	for _, s := range skills {
		skillSet[s] = true
	}
	var oldest *models.Complaint
	for _, c := range f.complaints {
		if c.Status != models.StatusPending || !skillSet[c.Category] {
			continue
		}
		if oldest == nil || c.CreatedAt.Before(oldest.CreatedAt) {
			oldest = c
		}
	}
	if oldest == nil {
		return nil, nil
	}
	copied := *oldest
	return &copied, nil
}

func (f *fakeStorage) ClaimPendingComplaint(complaintID, workerID string) (bool, error) {
	c, ok := f.complaints[complaintID]
	if !ok || c.Status != models.StatusPending {
		return false, nil
	}
	c.Status = models.StatusInProgress
	c.AssignedTo = &workerID
	return true, nil
}

func (f *fakeStorage) PublishNotification(n models.AssignmentNotification) error {
	f.notifications = append(f.notifications, n)
	return nil
}
