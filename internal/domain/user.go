package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser        Role = "User"
	RoleAdmin       Role = "Admin"
	RoleFlightowner Role = "Flightowner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleFlightowner:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is what a verified bearer token says about the caller.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
	Name   string
}

func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

const MinPasswordLength = 6

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
