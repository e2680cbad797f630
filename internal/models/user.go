package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	EncryptedPassword string    `gorm:"column:encrypted_password;not null" json:"-"`
	Role              string    `gorm:"default:tenant" json:"role"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Status            string    `gorm:"default:active" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	Tenancies     []Tenancy      `gorm:"foreignKey:UserID" json:"tenancies,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAgent    = "agent"
)

// Status constants
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleTenant
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// IsActive returns true if the user can log in
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsManager returns true for roles that can administer buildings
func (u *User) IsManager() bool {
	return u.Role == RoleLandlord || u.Role == RoleAgent
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName,
		Phone:    u.Phone,
		Status:   u.Status,
	}
}
