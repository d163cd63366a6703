// Package assignment implements the complaint auto-assignment engine:
// worker selection on submission, the free-up/backlog-drain step on status
// transitions, manual admin overrides, and the active-load bookkeeping
// that ties them together.
package assignment

import (
	"fmt"
	"strings"

	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Notifier receives fire-and-forget assignment notifications. Delivery is
// best-effort and never a precondition for assignment success.
type Notifier interface {
	Notify(workerID, complaintID, message string)
}

// Engine selects workers for complaints and keeps each worker's active
// complaint counter in sync as complaints move through their lifecycle.
// It assumes the store serializes counter arithmetic per worker row.
type Engine struct {
	Storage  storage.Storage
	Notifier Notifier

	// Cap is the maximum number of in-progress complaints a single worker
	// may hold.
	Cap int
}

// NewEngine creates an assignment engine with the given load cap.
func NewEngine(s storage.Storage, n Notifier, cap int) *Engine {
	return &Engine{Storage: s, Notifier: n, Cap: cap}
}

// SubmitInput carries a resident's new complaint.
type SubmitInput struct {
	Title           string
	Description     string
	Category        string
	Priority        string
	SubmittedBy     string
	ApartmentNumber string
}

// Submit validates and creates a complaint, auto-assigning it to the
// least-loaded eligible worker when one exists. With no eligible worker
// the complaint lands in the backlog as pending; that is the normal path,
// not an error.
func (e *Engine) Submit(in SubmitInput) (*models.Complaint, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !models.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	complaint := &models.Complaint{
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		Priority:        in.Priority,
		Status:          models.StatusPending,
		SubmittedBy:     in.SubmittedBy,
		ApartmentNumber: in.ApartmentNumber,
	}

	worker, err := e.tryAssign(in.Category)
	if err != nil {
		return nil, err
	}
	if worker != nil {
		complaint.Status = models.StatusInProgress
		complaint.AssignedTo = &worker.ID
	}

	if err := e.Storage.CreateComplaint(complaint); err != nil {
		if worker != nil {
			// The slot was reserved before the write; hand it back.
			if relErr := e.Storage.AdjustActiveCount(worker.ID, -1); relErr != nil {
				log.WithError(relErr).WithField("worker_id", worker.ID).Error("submit: slot release failed")
			}
		}
		return nil, err
	}

	if worker != nil {
		e.notifyAssigned(worker.ID, complaint)
	}
	return complaint, nil
}

// tryAssign picks the least-loaded available worker skilled in category
// whose active load is below the cap. The registry orders candidates by
// load then worker id, so selection is deterministic. The slot is taken
// with a conditional counter increment, so two submissions racing over
// the same worker cannot push the count past the cap; a lost reservation
// falls through to the next candidate. Returns nil when no candidate
// could be reserved.
func (e *Engine) tryAssign(category string) (*models.User, error) {
	candidates, err := e.Storage.FindEligibleWorkers(category, e.Cap)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		claimed, err := e.Storage.ReserveAssignmentSlot(candidates[i].ID, e.Cap)
		if err != nil {
			return nil, err
		}
		if claimed {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// SetStatus writes a new lifecycle status onto a complaint. Completing an
// in-progress complaint frees its worker: the worker's counter drops and
// the oldest matching backlog complaint, if any, is pulled in immediately.
func (e *Engine) SetStatus(complaintID, newStatus string) (*models.Complaint, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	complaint, err := e.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %s", ErrNotFound, complaintID)
	}

	oldStatus := complaint.Status
	previous := complaint.AssignedTo
	complaint.Status = newStatus
	if newStatus == models.StatusPending {
		// A pending complaint never carries an assignee.
		complaint.AssignedTo = nil
	}
	if err := e.Storage.UpdateComplaint(complaint); err != nil {
		return nil, err
	}

	wasActive := oldStatus == models.StatusInProgress
	switch {
	case models.Terminal(newStatus) && wasActive && complaint.AssignedTo != nil:
		e.freeUpWorker(*complaint.AssignedTo)
	case newStatus == models.StatusPending && wasActive && previous != nil:
		// Dropping active work back into the backlog releases the
		// worker's slot. No backlog scan here: the dropped complaint is
		// itself the oldest relevant backlog item, and pulling it straight
		// back would undo the drop.
		if err := e.Storage.AdjustActiveCount(*previous, -1); err != nil {
			log.WithError(err).WithField("worker_id", *previous).Error("pending drop: counter update failed")
		}
	}
	return complaint, nil
}

// freeUpWorker handles a free-up event: decrement the worker's counter
// (floored at zero) and scan the backlog for the oldest pending complaint
// the worker can take. Decrement and any re-increment land in a single
// counter write. Races over the same backlog item resolve silently: a
// failed claim means another caller got there first.
func (e *Engine) freeUpWorker(workerID string) {
	worker, err := e.Storage.GetUserByID(workerID)
	if err != nil || worker == nil {
		log.WithError(err).WithField("worker_id", workerID).Error("free-up: worker lookup failed")
		return
	}

	reassigned := false
	var next *models.Complaint

	// After the decrement the worker holds one slot fewer; only pull
	// backlog work if that leaves room under the cap and the worker is
	// still taking assignments.
	postCount := worker.ActiveComplaintCount - 1
	if postCount < 0 {
		postCount = 0
	}
	if worker.IsAvailable && postCount < e.Cap {
		next, err = e.Storage.FindOldestPendingForSkills(worker.Skills)
		if err != nil {
			log.WithError(err).WithField("worker_id", workerID).Error("free-up: backlog scan failed")
		}
		if err == nil && next != nil {
			reassigned, err = e.Storage.ClaimPendingComplaint(next.ID, workerID)
			if err != nil {
				log.WithError(err).WithField("complaint_id", next.ID).Error("free-up: backlog claim failed")
				reassigned = false
			}
		}
	}

	if err := e.Storage.ApplyFreeUpDelta(workerID, reassigned); err != nil {
		log.WithError(err).WithField("worker_id", workerID).Error("free-up: counter update failed")
	}

	if reassigned {
		next.Status = models.StatusInProgress
		next.AssignedTo = &workerID
		e.notifyAssigned(workerID, next)
	}
}

// Assign is the admin override: bind a complaint to a specific worker,
// bypassing availability and the load cap but never the skill gate.
// Counters are still maintained so the load accounting stays truthful.
func (e *Engine) Assign(complaintID, workerID string) (*models.Complaint, error) {
	complaint, err := e.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %s", ErrNotFound, complaintID)
	}

	worker, err := e.Storage.GetUserByID(workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil || worker.Role != models.RoleWorker {
		return nil, fmt.Errorf("%w: worker %s", ErrNotFound, workerID)
	}
	if !worker.HasSkill(complaint.Category) {
		return nil, fmt.Errorf("%w: worker %s lacks skill %q", ErrValidation, workerID, complaint.Category)
	}

	wasActive := complaint.Status == models.StatusInProgress
	previous := complaint.AssignedTo
	if wasActive && previous != nil && *previous == workerID {
		// Already assigned to this worker; nothing to do.
		return complaint, nil
	}

	complaint.Status = models.StatusInProgress
	complaint.AssignedTo = &workerID
	if err := e.Storage.UpdateComplaint(complaint); err != nil {
		return nil, err
	}

	if err := e.Storage.AdjustActiveCount(workerID, 1); err != nil {
		return nil, err
	}
	if wasActive && previous != nil {
		if err := e.Storage.AdjustActiveCount(*previous, -1); err != nil {
			log.WithError(err).WithField("worker_id", *previous).Error("manual assign: previous worker counter update failed")
		}
	}

	e.notifyAssigned(workerID, complaint)
	return complaint, nil
}

func (e *Engine) notifyAssigned(workerID string, complaint *models.Complaint) {
	if e.Notifier == nil {
		return
	}
	msg := fmt.Sprintf("New complaint assigned: %s", complaint.Title)
	e.Notifier.Notify(workerID, complaint.ID, msg)
}
