package storage

import (
	"context"
	"encoding/json"
	"errors"

	"fixtrack/backend/internal/models"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AssignmentChannel is the Redis pub/sub channel assignment notifications
// are published on.
const AssignmentChannel = "assignments"

// ComplaintFilter narrows ListComplaints results. Zero-value fields are
// ignored.
type ComplaintFilter struct {
	Status      string
	Category    string
	SubmittedBy string
	AssignedTo  string
}

type Storage interface {
	// Users
	SaveUser(user *models.User) error
	UpdateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(role string) ([]models.User, error)

	// Worker registry
	FindEligibleWorkers(category string, cap int) ([]models.User, error)
	ReserveAssignmentSlot(workerID string, cap int) (bool, error)
	AdjustActiveCount(workerID string, delta int) error
	ApplyFreeUpDelta(workerID string, reassigned bool) error
	RecountActiveComplaints(workerID string) (int, error)

	// Complaints
	CreateComplaint(complaint *models.Complaint) error
	UpdateComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	DeleteComplaint(id string) error
	ListComplaints(filter ComplaintFilter) ([]models.Complaint, error)
	FindOldestPendingForSkills(skills []string) (*models.Complaint, error)
	ClaimPendingComplaint(complaintID, workerID string) (bool, error)

	// Notifications
	PublishNotification(n models.AssignmentNotification) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser persists a user, creating it if new.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// UpdateUser persists changes to an existing user.
func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID returns the user with the given id, or nil if none exists.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.WithError(err).WithField("user_id", id).Error("failed to load user")
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user with the given email, or nil if none exists.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users, optionally filtered by role.
func (s *Service) ListUsers(role string) ([]models.User, error) {
	var users []models.User
	q := s.DB.Order("created_at asc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		log.WithError(err).Error("failed to list users")
		return nil, err
	}
	return users, nil
}

// FindEligibleWorkers returns available workers skilled in category whose
// active load is below cap, least-loaded first. Ties break on worker id so
// the ordering is deterministic.
func (s *Service) FindEligibleWorkers(category string, cap int) ([]models.User, error) {
	var workers []models.User
	err := s.DB.
		Where("role = ?", models.RoleWorker).
		Where("is_available = ?", true).
		Where("? = ANY(skills)", category).
		Where("active_complaint_count < ?", cap).
		Order("active_complaint_count asc, id asc").
		Find(&workers).Error
	if err != nil {
		log.WithError(err).WithField("category", category).Error("failed to query eligible workers")
		return nil, err
	}
	return workers, nil
}

// ReserveAssignmentSlot bumps a worker's counter only while it is below
// cap. The guard runs in the same UPDATE as the increment, so concurrent
// submissions racing over a worker's last slot serialize on the row and
// at most one wins. False means the worker was already at the cap.
func (s *Service) ReserveAssignmentSlot(workerID string, cap int) (bool, error) {
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND active_complaint_count < ?", workerID, cap).
		UpdateColumn("active_complaint_count",
			gorm.Expr("active_complaint_count + 1"))
	if res.Error != nil {
		log.WithError(res.Error).WithField("worker_id", workerID).Error("failed to reserve assignment slot")
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AdjustActiveCount shifts a worker's active complaint counter by delta,
// floored at zero. The arithmetic runs in SQL so concurrent adjustments
// for the same worker serialize on the row.
func (s *Service) AdjustActiveCount(workerID string, delta int) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", workerID).
		UpdateColumn("active_complaint_count",
			gorm.Expr("GREATEST(active_complaint_count + ?, 0)", delta)).Error
}

// ApplyFreeUpDelta records the outcome of a free-up event in a single
// write: the completed complaint's decrement (floored at zero), plus one
// if the worker immediately picked up a backlog complaint.
func (s *Service) ApplyFreeUpDelta(workerID string, reassigned bool) error {
	bonus := 0
	if reassigned {
		bonus = 1
	}
	return s.DB.Model(&models.User{}).
		Where("id = ?", workerID).
		UpdateColumn("active_complaint_count",
			gorm.Expr("GREATEST(active_complaint_count - 1, 0) + ?", bonus)).Error
}

// RecountActiveComplaints recomputes a worker's counter from the
// complaints table and stores it. Reconciliation tool against drift; the
// engine itself only ever adjusts incrementally.
func (s *Service) RecountActiveComplaints(workerID string) (int, error) {
	var count int64
	err := s.DB.Model(&models.Complaint{}).
		Where("assigned_to = ? AND status = ?", workerID, models.StatusInProgress).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	err = s.DB.Model(&models.User{}).
		Where("id = ?", workerID).
		UpdateColumn("active_complaint_count", count).Error
	return int(count), err
}

// CreateComplaint inserts a new complaint record.
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if err := s.DB.Create(complaint).Error; err != nil {
		log.WithError(err).WithField("title", complaint.Title).Error("failed to create complaint")
		return err
	}
	return nil
}

// UpdateComplaint persists changes to an existing complaint.
func (s *Service) UpdateComplaint(complaint *models.Complaint) error {
	return s.DB.Save(complaint).Error
}

// GetComplaintByID returns the complaint with the given id, or nil if none
// exists.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.WithError(err).WithField("complaint_id", id).Error("failed to load complaint")
		return nil, err
	}
	return &complaint, nil
}

// DeleteComplaint removes a complaint record.
func (s *Service) DeleteComplaint(id string) error {
	return s.DB.Delete(&models.Complaint{}, "id = ?", id).Error
}

// ListComplaints returns complaints matching filter, newest first.
func (s *Service) ListComplaints(filter ComplaintFilter) ([]models.Complaint, error) {
	var complaints []models.Complaint
	q := s.DB.Order("created_at desc")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SubmittedBy != "" {
		q = q.Where("submitted_by = ?", filter.SubmittedBy)
	}
	if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	if err := q.Find(&complaints).Error; err != nil {
		log.WithError(err).Error("failed to list complaints")
		return nil, err
	}
	return complaints, nil
}

// FindOldestPendingForSkills returns the longest-waiting pending complaint
// whose category matches one of skills, or nil if the backlog has none.
func (s *Service) FindOldestPendingForSkills(skills []string) (*models.Complaint, error) {
	if len(skills) == 0 {
		return nil, nil
	}
	var complaint models.Complaint
	err := s.DB.
		Where("status = ?", models.StatusPending).
		Where("category = ANY(?)", pq.Array(skills)).
		Order("created_at asc").
		First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.WithError(err).Error("failed to scan backlog")
		return nil, err
	}
	return &complaint, nil
}

// ClaimPendingComplaint atomically moves a complaint from pending to
// in progress and assigns it to workerID. Returns false if the complaint
// was no longer pending at write time, which callers treat as "no backlog
// item found" rather than an error.
func (s *Service) ClaimPendingComplaint(complaintID, workerID string) (bool, error) {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND status = ?", complaintID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":      models.StatusInProgress,
			"assigned_to": workerID,
		})
	if res.Error != nil {
		log.WithError(res.Error).WithField("complaint_id", complaintID).Error("failed to claim pending complaint")
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// PublishNotification publishes an assignment notification on the Redis
// pub/sub channel.
func (s *Service) PublishNotification(n models.AssignmentNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, AssignmentChannel, payload).Err()
}

// SubscribeAssignments subscribes to the assignment notification channel.
// Used by the real-time gateway and the Telegram relay.
func (s *Service) SubscribeAssignments() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, AssignmentChannel)
}
