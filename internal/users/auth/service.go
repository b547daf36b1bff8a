// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package auth implements administrative sign-in and account management.

Access tokens are short-lived RS256 JWTs verified statelessly by the
middleware; refresh tokens are opaque, stored in redis with a TTL, and
rotated on every use.
*/
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/constants"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Validation field identifiers surfaced in error details.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"
)

// invalidCredentials deliberately does not reveal whether the email or
// the password was wrong.
const invalidCredentials = "Invalid email or password"

// AccessTokenIssuer signs access tokens. Satisfied by [sec.TokenService].
type AccessTokenIssuer interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service orchestrates sign-in, token rotation, and account management.
type Service struct {
	repo   Repository
	tokens TokenStore
	issuer AccessTokenIssuer
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, tokens TokenStore, issuer AccessTokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens, issuer: issuer}
}

// # Inputs and Outputs

// LoginInput carries sign-in credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccountInput carries a new administrative account.
type CreateAccountInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Session is the result of a successful login or refresh.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	Account      *Account `json:"account"`
}

// # Sign-In

/*
Login verifies credentials and opens a session.

Description: A failed lookup and a failed password check return the same
UNAUTHORIZED error so the endpoint does not leak which emails exist.
Disabled accounts are rejected with FORBIDDEN even when the password is
correct.

Parameters:
  - input: LoginInput (Email, Password)

Returns:
  - *Session: Access token, rotating refresh token, and the account
  - error: UNAUTHORIZED or FORBIDDEN
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	account, err := service.repo.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized(invalidCredentials)
	}
	if !account.IsActive {
		return nil, apperr.Forbidden("This account has been deactivated")
	}

	if err := service.repo.TouchLastLogin(context, account.ID); err != nil {
		return nil, err
	}
	return service.openSession(context, account)
}

// Refresh exchanges a refresh token for a fresh session. The presented
// token is consumed; each refresh token works exactly once.
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {
	accountID, err := service.tokens.Resolve(context, refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Refresh token is invalid or expired")
	}

	if err := service.tokens.Delete(context, refreshToken); err != nil {
		return nil, err
	}

	account, err := service.repo.FindByID(context, accountID)
	if err != nil {
		return nil, apperr.Unauthorized("Refresh token is invalid or expired")
	}
	if !account.IsActive {
		return nil, apperr.Forbidden("This account has been deactivated")
	}

	return service.openSession(context, account)
}

// Logout discards a refresh token. Unknown tokens are ignored so logout
// is idempotent.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.tokens.Delete(context, refreshToken)
}

// Me returns the account of the authenticated caller.
func (service *Service) Me(context context.Context) (*Account, error) {
	actorID := ctxutil.GetActorID(context)
	if actorID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.repo.FindByID(context, actorID)
}

// # Account Management

// CreateAccount registers a new administrative account.
func (service *Service) CreateAccount(context context.Context, input CreateAccountInput) (*Account, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	validator.Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, 80)
	validator.Required(FieldLastName, input.LastName).MaxLen(FieldLastName, input.LastName, 80)
	validator.OneOf(FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleEditor))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(fmt.Sprintf("An account for %q already exists", input.Email))
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	created := &Account{
		ID:           uuidv7.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		IsActive:     true,
	}

	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetAccount fetches a single account by id.
func (service *Service) GetAccount(context context.Context, id string) (*Account, error) {
	return service.repo.FindByID(context, id)
}

// ListAccounts retrieves a paginated collection of accounts.
func (service *Service) ListAccounts(context context.Context, limit, offset int) ([]*Account, int, error) {
	return service.repo.List(context, limit, offset)
}

// SetIsActive enables or disables an account. Callers cannot deactivate
// themselves; that would strand the last admin.
func (service *Service) SetIsActive(context context.Context, id string, isActive bool) error {
	if !isActive && ctxutil.GetActorID(context) == id {
		return validate.RequiredError(FieldEmail, "You cannot deactivate your own account")
	}

	if _, err := service.repo.FindByID(context, id); err != nil {
		return err
	}
	return service.repo.SetIsActive(context, id, isActive)
}

// # Internals

func (service *Service) openSession(context context.Context, account *Account) (*Session, error) {
	accessToken, err := service.issuer.GenerateAccessToken(account.ID, account.Email, account.Role, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth: sign access token: %w", err)
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := service.tokens.Save(context, refreshToken, account.ID, constants.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(constants.AccessTokenTTL.Seconds()),
		Account:      account,
	}, nil
}

func newRefreshToken() (string, error) {
	buffer := make([]byte, 32)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("auth: generate refresh token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
