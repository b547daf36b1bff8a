// Copyright (c) 2026 Raytha. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/sec"
	"github.com/RaythaHQ/raytha-sub000/internal/users/auth"
)

// fakeAccountRepository is an in-memory Repository for service tests.
type fakeAccountRepository struct {
	accounts map[string]*auth.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: make(map[string]*auth.Account)}
}

func (f *fakeAccountRepository) Create(_ context.Context, account *auth.Account) error {
	clone := *account
	f.accounts[account.ID] = &clone
	return nil
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	stored, ok := f.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, stored := range f.accounts {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepository) List(_ context.Context, limit, offset int) ([]*auth.Account, int, error) {
	all := make([]*auth.Account, 0, len(f.accounts))
	for _, stored := range f.accounts {
		all = append(all, stored)
	}
	return all, len(all), nil
}

func (f *fakeAccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeAccountRepository) SetIsActive(_ context.Context, id string, isActive bool) error {
	stored, ok := f.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	stored.IsActive = isActive
	return nil
}

func (f *fakeAccountRepository) TouchLastLogin(_ context.Context, id string) error {
	stored, ok := f.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	now := time.Now()
	stored.LastLoggedInAt = &now
	return nil
}

// fakeTokenStore is an in-memory refresh token store.
type fakeTokenStore struct {
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (f *fakeTokenStore) Save(_ context.Context, token, accountID string, _ time.Duration) error {
	f.tokens[token] = accountID
	return nil
}

func (f *fakeTokenStore) Resolve(_ context.Context, token string) (string, error) {
	accountID, ok := f.tokens[token]
	if !ok {
		return "", apperr.NotFound("Refresh token")
	}
	return accountID, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

// fakeIssuer emits inspectable tokens instead of signed JWTs.
type fakeIssuer struct {
	issued int
}

func (f *fakeIssuer) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	f.issued++
	return fmt.Sprintf("access:%s:%s:%d", userID, role, f.issued), nil
}

func newAuthService() (*auth.Service, *fakeAccountRepository, *fakeTokenStore) {
	repo := newFakeAccountRepository()
	tokens := newFakeTokenStore()
	service := auth.NewService(repo, tokens, &fakeIssuer{})
	return service, repo, tokens
}

func adminContext(accountID string) context.Context {
	return ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{
		UserID: accountID,
		Role:   string(sec.RoleAdmin),
	})
}

func mustCreateAccount(t *testing.T, service *auth.Service, email, password, role string) *auth.Account {
	t.Helper()
	account, err := service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Email: email, Password: password,
		FirstName: "Pat", LastName: "Editor", Role: role,
	})
	require.NoError(t, err)
	return account
}

func TestCreateAccountValidates(t *testing.T) {
	service, _, _ := newAuthService()

	_, err := service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Email: "not-an-email", Password: "short",
		FirstName: "Pat", LastName: "Editor", Role: "superuser",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, auth.FieldEmail)
	assert.Contains(t, fields, auth.FieldPassword)
	assert.Contains(t, fields, auth.FieldRole)
}

func TestCreateAccountDuplicateEmailConflicts(t *testing.T) {
	service, _, _ := newAuthService()

	mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))
	_, err := service.CreateAccount(context.Background(), auth.CreateAccountInput{
		Email: "pat@acme.test", Password: "correct-horse",
		FirstName: "Pat", LastName: "Editor", Role: string(sec.RoleEditor),
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestLoginIssuesSession(t *testing.T) {
	service, repo, tokens := newAuthService()
	account := mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "pat@acme.test", Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, account.ID, session.Account.ID)
	assert.Equal(t, account.ID, tokens.tokens[session.RefreshToken])

	stored, err := repo.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoggedInAt)
}

func TestLoginDoesNotLeakWhichPartFailed(t *testing.T) {
	service, _, _ := newAuthService()
	mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))

	_, wrongPassword := service.Login(context.Background(), auth.LoginInput{
		Email: "pat@acme.test", Password: "wrong",
	})
	_, unknownEmail := service.Login(context.Background(), auth.LoginInput{
		Email: "nobody@acme.test", Password: "correct-horse",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "UNAUTHORIZED", apperr.As(wrongPassword).Code)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(unknownEmail).Code)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	service, _, _ := newAuthService()
	account := mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))

	admin := mustCreateAccount(t, service, "boss@acme.test", "correct-horse", string(sec.RoleAdmin))
	require.NoError(t, service.SetIsActive(adminContext(admin.ID), account.ID, false))

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email: "pat@acme.test", Password: "correct-horse",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	service, _, _ := newAuthService()
	mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "pat@acme.test", Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

	// The consumed token no longer works.
	_, err = service.Refresh(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	service, _, _ := newAuthService()
	mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "pat@acme.test", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), ""))

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	require.Error(t, err)
}

func TestMeRequiresAuthentication(t *testing.T) {
	service, _, _ := newAuthService()
	account := mustCreateAccount(t, service, "pat@acme.test", "correct-horse", string(sec.RoleEditor))

	_, err := service.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	me, err := service.Me(adminContext(account.ID))
	require.NoError(t, err)
	assert.Equal(t, "pat@acme.test", me.Email)
}

func TestCannotDeactivateOwnAccount(t *testing.T) {
	service, _, _ := newAuthService()
	admin := mustCreateAccount(t, service, "boss@acme.test", "correct-horse", string(sec.RoleAdmin))

	err := service.SetIsActive(adminContext(admin.ID), admin.ID, false)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
