// Copyright (c) 2026 Raytha. All rights reserved.

package auth

import (
	"strings"
	"time"
)

// Account is an administrative user of the platform. Public visitors are
// never represented here; only admins and editors sign in.
type Account struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	LastLoggedInAt *time.Time `json:"last_logged_in_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FullName returns the display name of the account.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
