// Copyright (c) 2026 Raytha. All rights reserved.

package auth

import (
	"context"
	"time"
)

// Repository is the persistence boundary for administrative accounts.
type Repository interface {
	Create(context context.Context, account *Account) error
	FindByID(context context.Context, id string) (*Account, error)
	FindByEmail(context context.Context, email string) (*Account, error)
	List(context context.Context, limit, offset int) ([]*Account, int, error)
	ExistsByEmail(context context.Context, email string) (bool, error)

	SetIsActive(context context.Context, id string, isActive bool) error
	TouchLastLogin(context context.Context, id string) error
}

// TokenStore holds opaque refresh tokens with expiry. Lookups return the
// account id the token was issued for.
type TokenStore interface {
	Save(context context.Context, token, accountID string, timeToLive time.Duration) error
	Resolve(context context.Context, token string) (string, error)
	Delete(context context.Context, token string) error
}
