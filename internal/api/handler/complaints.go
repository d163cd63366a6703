package handler

import (
	"fmt"
	"net/http"

	"fixtrack/backend/internal/assignment"
	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type submitComplaintRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Priority        string `json:"priority"`
	ApartmentNumber string `json:"apartmentNumber"`
}

// SubmitComplaint files a new complaint for the calling resident and runs
// auto-assignment.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var req submitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint, err := h.Engine.Submit(assignment.SubmitInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        req.Priority,
		SubmittedBy:     currentUser(c).ID,
		ApartmentNumber: req.ApartmentNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints returns complaints visible to the caller: admins see
// everything, workers see their own assignments. Supports ?status= and
// ?category= filters.
func (h *Handler) ListComplaints(c *gin.Context) {
	filter := storage.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	user := currentUser(c)
	if user.Role == models.RoleWorker {
		filter.AssignedTo = user.ID
	}

	complaints, err := h.Storage.ListComplaints(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(complaints),
		"data":  complaints,
	})
}

// MyComplaints returns the complaints submitted by the caller.
func (h *Handler) MyComplaints(c *gin.Context) {
	complaints, err := h.Storage.ListComplaints(storage.ComplaintFilter{
		SubmittedBy: currentUser(c).ID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(complaints),
		"data":  complaints,
	})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a complaint to a new lifecycle status via the
// assignment engine, which handles the free-up and backlog drain.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint, err := h.Engine.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

type assignRequest struct {
	WorkerID string `json:"workerId" binding:"required"`
}

// AssignComplaint is the admin override binding a complaint to a chosen
// worker.
func (h *Handler) AssignComplaint(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint, err := h.Engine.Assign(c.Param("id"), req.WorkerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// DeleteComplaint removes a complaint. Only the submitter or an admin may
// delete it.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if complaint == nil {
		respondError(c, fmt.Errorf("%w: complaint %s", assignment.ErrNotFound, c.Param("id")))
		return
	}

	user := currentUser(c)
	if user.Role != models.RoleAdmin && complaint.SubmittedBy != user.ID {
		respondError(c, fmt.Errorf("%w: not your complaint", assignment.ErrForbidden))
		return
	}

	if err := h.Storage.DeleteComplaint(complaint.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if complaint.Status == models.StatusInProgress && complaint.AssignedTo != nil {
		// Deleting active work releases the assignee's slot.
		if err := h.Storage.AdjustActiveCount(*complaint.AssignedTo, -1); err != nil {
			log.WithError(err).WithField("worker_id", *complaint.AssignedTo).Error("failed to release worker slot after delete")
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "complaint removed"})
}
