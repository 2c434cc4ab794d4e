package models

import (
	"time"
)

// UserType identifies the role of an account
type UserType string

const (
	// UserTypeStudent is a student account
	UserTypeStudent UserType = "student"
	// UserTypeOrgAdmin is an organization signatory account
	UserTypeOrgAdmin UserType = "org_admin"
	// UserTypeSysAdmin is a system administrator account
	UserTypeSysAdmin UserType = "sys_admin"
)

// User defines the account model based on the 'users' table
type User struct {
	ID           int64      `json:"userId" db:"user_id" example:"1"`
	Username     string     `json:"username" db:"username" example:"jdelacruz"`
	Email        string     `json:"email" db:"email" example:"jdelacruz@school.edu.ph"`
	PasswordHash string     `json:"-" db:"password_hash"`
	UserType     UserType   `json:"userType" db:"user_type" example:"student"`
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

// NewUser builds an account with caller-suppliable fields only.
// Role and active status are system-assigned: a registration payload can
// never escalate itself to an admin role or toggle activation.
func NewUser(username, email, passwordHash string, userType UserType) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		UserType:     userType,
		IsActive:     true,
	}
}
