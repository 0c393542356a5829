package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Roles. Admin accounts are provisioned out of band; registration
// always creates customers.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a registered account.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        *string    `json:"phone" db:"phone"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeInvalidUser        = "USR004"
	ErrCodeAccountDisabled    = "USR005"
)
