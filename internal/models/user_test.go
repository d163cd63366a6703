package models_test

import (
	"testing"

	"fixtrack/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	user := &models.User{
		Name:  "Test Worker",
		Email: "worker@example.com",
		Role:  models.RoleWorker,
	}
	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	// Act - Call the hook directly (GORM would call this automatically)
	err := user.BeforeCreate(nil)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	parsedUUID, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{ID: existingID, Name: "Keeps ID", Email: "keep@example.com"}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

func TestUserPasswordRoundTrip(t *testing.T) {
	user := &models.User{Name: "Resident", Email: "res@example.com"}

	err := user.SetPassword("sup3r-secret")

	assert.NoError(t, err)
	assert.NotEqual(t, "sup3r-secret", user.Password, "stored password must be a hash")
	assert.True(t, user.CheckPassword("sup3r-secret"))
	assert.False(t, user.CheckPassword("wrong-password"))
}

func TestUserHasSkill(t *testing.T) {
	worker := models.User{
		Role:   models.RoleWorker,
		Skills: []string{models.CategoryPlumbing, models.CategoryGeneral},
	}

	assert.True(t, worker.HasSkill(models.CategoryPlumbing))
	assert.True(t, worker.HasSkill(models.CategoryGeneral))
	assert.False(t, worker.HasSkill(models.CategoryElectrical))

	noSkills := models.User{Role: models.RoleWorker}
	assert.False(t, noSkills.HasSkill(models.CategoryPlumbing))
}

func TestValidRole(t *testing.T) {
	assert.True(t, models.ValidRole(models.RoleResident))
	assert.True(t, models.ValidRole(models.RoleWorker))
	assert.True(t, models.ValidRole(models.RoleAdmin))
	assert.False(t, models.ValidRole("superuser"))
	assert.False(t, models.ValidRole(""))
}
