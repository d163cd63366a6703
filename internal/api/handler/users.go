package handler

import (
	"net/http"

	"fixtrack/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=8"`
	Role            string   `json:"role" binding:"required"`
	Skills          []string `json:"skills"`
	ApartmentNumber string   `json:"apartmentNumber"`
	Phone           string   `json:"phone"`
}

// CreateUser lets an admin create an account with any role and skills.
// No token is returned: the admin is creating an account, not logging the
// new user in.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	for _, skill := range req.Skills {
		if !models.ValidCategory(skill) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown skill: " + skill})
			return
		}
	}

	existing, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user with that email already exists"})
		return
	}

	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Role:            req.Role,
		Skills:          req.Skills,
		ApartmentNumber: req.ApartmentNumber,
		Phone:           req.Phone,
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if err := h.Storage.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// ListUsers returns all users, optionally filtered with ?role=.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Storage.ListUsers(c.Query("role"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(users),
		"data":  users,
	})
}

type availabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// UpdateAvailability toggles the calling worker's availability.
func (h *Handler) UpdateAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	user.IsAvailable = *req.IsAvailable
	if err := h.Storage.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"isAvailable": user.IsAvailable,
	})
}
