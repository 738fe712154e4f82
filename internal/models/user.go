package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null;size:100"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`
	FullName     string   `json:"full_name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"size:255"`

	// Free-text department label matched against departments.name. This is a
	// deliberate denormalization carried over from the original schema: renaming
	// a department does not rewrite user rows.
	Department string `json:"department" gorm:"size:100;index"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Identity is the authenticated view of a user, carried explicitly through
// every service call instead of being held as ambient state.
type Identity struct {
	ID         uint     `json:"id"`
	Username   string   `json:"username"`
	Role       UserRole `json:"role"`
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		FullName:   u.FullName,
		Email:      u.Email,
		Department: u.Department,
	}
}
