package models_test

import (
	"testing"

	"fixtrack/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComplaintBeforeCreate_GeneratesUUID(t *testing.T) {
	complaint := &models.Complaint{Title: "Leak", Description: "leaky", Category: models.CategoryPlumbing}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(complaint.ID)
	assert.NoError(t, parseErr)
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusPending, models.StatusInProgress,
		models.StatusResolved, models.StatusRejected,
	} {
		assert.True(t, models.ValidStatus(status), status)
	}
	assert.False(t, models.ValidStatus("done"))
	assert.False(t, models.ValidStatus(""))
	assert.False(t, models.ValidStatus("in-progress"), "statuses use a space, not a dash")
}

func TestTerminal(t *testing.T) {
	assert.True(t, models.Terminal(models.StatusResolved))
	assert.True(t, models.Terminal(models.StatusRejected))
	assert.False(t, models.Terminal(models.StatusPending))
	assert.False(t, models.Terminal(models.StatusInProgress))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, models.ValidCategory(models.CategoryElectrical))
	assert.True(t, models.ValidCategory(models.CategoryPlumbing))
	assert.True(t, models.ValidCategory(models.CategoryGeneral))
	assert.False(t, models.ValidCategory("carpentry"))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, models.ValidPriority(models.PriorityLow))
	assert.True(t, models.ValidPriority(models.PriorityMedium))
	assert.True(t, models.ValidPriority(models.PriorityHigh))
	assert.False(t, models.ValidPriority("urgent"))
}
