// Copyright (c) 2026 Raytha. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/database/schema"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, $7)
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.FirstName, schema.UserAccount.LastName,
		schema.UserAccount.Role, schema.UserAccount.IsActive,
	)

	_, err := repository.db.Exec(context, query,
		account.ID, account.Email, account.PasswordHash,
		account.FirstName, account.LastName, account.Role, account.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, "create_account")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findOne(context, schema.UserAccount.ID+" = $1", id)
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	return repository.findOne(context, "LOWER("+schema.UserAccount.Email+") = LOWER($1)", email)
}

func (repository *PostgresRepository) findOne(context context.Context, condition, argument string) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s
	`, accountSelectColumns(), schema.UserAccount.Table, condition)

	account := &Account{}
	err := repository.db.QueryRow(context, query, argument).Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.FirstName, &account.LastName, &account.Role,
		&account.IsActive, &account.LastLoggedInAt,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account")
	}
	return account, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Account, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`, accountSelectColumns(), schema.UserAccount.Table, schema.UserAccount.Email)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	total := 0

	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(
			&account.ID, &account.Email, &account.PasswordHash,
			&account.FirstName, &account.LastName, &account.Role,
			&account.IsActive, &account.LastLoggedInAt,
			&account.CreatedAt, &account.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, account)
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE LOWER(%s) = LOWER($1))`,
		schema.UserAccount.Table, schema.UserAccount.Email)

	exists := false
	if err := repository.db.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "account_email_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) SetIsActive(context context.Context, id string, isActive bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.IsActive,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.db.Exec(context, query, id, isActive)
	if err != nil {
		return dberr.Wrap(err, "set_account_active")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "set_account_active")
	}
	return nil
}

func (repository *PostgresRepository) TouchLastLogin(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW(), %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoggedInAt,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "touch_last_login")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "touch_last_login")
	}
	return nil
}

func accountSelectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Role,
		schema.UserAccount.IsActive, schema.UserAccount.LastLoggedInAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)
}
