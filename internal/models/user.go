package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User roles. A role is fixed at creation: residents register themselves,
// workers and admins are created by an admin.
const (
	RoleResident = "resident"
	RoleWorker   = "worker"
	RoleAdmin    = "admin"
)

// User represents an account in the system. For workers the Skills,
// IsAvailable and ActiveComplaintCount fields drive complaint assignment.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password_hash" json:"-"`
	Role     string `gorm:"not null;default:resident;index" json:"role"`

	ApartmentNumber string `json:"apartmentNumber,omitempty"`
	Phone           string `json:"phone,omitempty"`

	// Skills lists the complaint categories this worker can handle.
	Skills pq.StringArray `gorm:"type:text[]" json:"skills"`
	// IsAvailable is toggled by the worker; assignment only considers
	// available workers.
	IsAvailable bool `gorm:"default:false" json:"isAvailable"`
	// ActiveComplaintCount tracks how many complaints are currently
	// in progress for this worker. Maintained incrementally by the
	// assignment engine, never recomputed per request.
	ActiveComplaintCount int `gorm:"default:0" json:"activeComplaintCount"`

	// TelegramChatID links the worker to a Telegram chat for the optional
	// notification relay. Zero means not linked.
	TelegramChatID int64 `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for the user if one is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// SetPassword replaces the stored hash with a bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// HasSkill reports whether the worker is eligible for the given category.
func (u *User) HasSkill(category string) bool {
	for _, s := range u.Skills {
		if s == category {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleResident, RoleWorker, RoleAdmin:
		return true
	}
	return false
}
