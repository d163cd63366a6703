package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in progress"
	StatusResolved   = "resolved"
	StatusRejected   = "rejected"
)

// Complaint categories. A category doubles as the skill tag a worker
// needs to be assigned the complaint.
const (
	CategoryElectrical = "electrical"
	CategoryPlumbing   = "plumbing"
	CategoryGeneral    = "general"
)

// Complaint priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Complaint is a maintenance request submitted by a resident.
// AssignedTo and Status are mutated together by the assignment engine;
// a complaint with an assignee is never pending.
type Complaint struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"`
	Priority    string `gorm:"not null;default:medium" json:"priority"`
	Status      string `gorm:"not null;default:pending;index" json:"status"`

	// SubmittedBy references the resident who filed the complaint.
	// Set once at creation.
	SubmittedBy string `gorm:"not null;index" json:"submittedBy"`
	// AssignedTo references the worker handling the complaint, if any.
	AssignedTo *string `gorm:"index" json:"assignedTo,omitempty"`

	ApartmentNumber string `json:"apartmentNumber,omitempty"`

	// CreatedAt is the FIFO tie-break for backlog selection.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for the complaint if one is not set yet.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Terminal reports whether status is one of the terminal lifecycle states.
func Terminal(status string) bool {
	return status == StatusResolved || status == StatusRejected
}

// ValidStatus reports whether status is a known lifecycle status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// ValidCategory reports whether category is a known complaint category.
func ValidCategory(category string) bool {
	switch category {
	case CategoryElectrical, CategoryPlumbing, CategoryGeneral:
		return true
	}
	return false
}

// ValidPriority reports whether priority is a known complaint priority.
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
