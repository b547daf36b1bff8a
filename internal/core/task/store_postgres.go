// Copyright (c) 2026 Raytha. All rights reserved.

package task

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

// NewPostgresRepository constructs a PostgreSQL backed task store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, queued *Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, '', 0, 0)
	`,
		schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.ID, schema.CMSBackgroundTask.Name, schema.CMSBackgroundTask.Args,
		schema.CMSBackgroundTask.Status, schema.CMSBackgroundTask.StatusInfo,
		schema.CMSBackgroundTask.PercentComplete, schema.CMSBackgroundTask.NumberOfRetries,
	)

	_, err := repository.db.Exec(context, query, queued.ID, queued.Name, queued.Args, queued.Status)
	if err != nil {
		return dberr.Wrap(err, "create_task")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Task, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1
	`, taskSelectColumns(), schema.CMSBackgroundTask.Table, schema.CMSBackgroundTask.ID)

	found := &Task{}
	if err := scanTask(repository.db.QueryRow(context, query, id), found); err != nil {
		return nil, dberr.Wrap(err, "find_task")
	}
	return found, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Task, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`, taskSelectColumns(), schema.CMSBackgroundTask.Table, schema.CMSBackgroundTask.CreatedAt)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	total := 0

	for rows.Next() {
		listed := &Task{}
		if err := rows.Scan(
			&listed.ID, &listed.Name, &listed.Args, &listed.Status,
			&listed.StatusInfo, &listed.PercentComplete, &listed.NumberOfRetries,
			&listed.ErrorMessage, &listed.CreatedAt, &listed.UpdatedAt, &listed.CompletedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, listed)
	}

	return tasks, total, nil
}

// ClaimNext relies on FOR UPDATE SKIP LOCKED so concurrent workers pick
// disjoint rows without blocking each other.
func (repository *PostgresRepository) ClaimNext(context context.Context) (*Task, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = NOW()
		WHERE %s = (
			SELECT %s FROM %s
			WHERE %s = $2
			ORDER BY %s ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s
	`,
		schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.Status, schema.CMSBackgroundTask.UpdatedAt,
		schema.CMSBackgroundTask.ID,
		schema.CMSBackgroundTask.ID, schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.Status,
		schema.CMSBackgroundTask.CreatedAt,
		taskSelectColumns(),
	)

	claimed := &Task{}
	if err := scanTask(repository.db.QueryRow(context, query, StatusProcessing, StatusEnqueued), claimed); err != nil {
		return nil, dberr.Wrap(err, "claim_task")
	}
	return claimed, nil
}

func (repository *PostgresRepository) Requeue(context context.Context, id string, numberOfRetries int, statusInfo string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.Status, schema.CMSBackgroundTask.NumberOfRetries,
		schema.CMSBackgroundTask.StatusInfo, schema.CMSBackgroundTask.UpdatedAt,
		schema.CMSBackgroundTask.ID,
	)

	tag, err := repository.db.Exec(context, query, id, StatusEnqueued, numberOfRetries, statusInfo)
	if err != nil {
		return dberr.Wrap(err, "requeue_task")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "requeue_task")
	}
	return nil
}

func (repository *PostgresRepository) SetProgress(context context.Context, id string, percentComplete int, statusInfo string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.PercentComplete, schema.CMSBackgroundTask.StatusInfo,
		schema.CMSBackgroundTask.UpdatedAt,
		schema.CMSBackgroundTask.ID,
	)

	tag, err := repository.db.Exec(context, query, id, percentComplete, statusInfo)
	if err != nil {
		return dberr.Wrap(err, "set_task_progress")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "set_task_progress")
	}
	return nil
}

func (repository *PostgresRepository) MarkComplete(context context.Context, id, statusInfo string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = 100, %s = $3, %s = NOW(), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.Status, schema.CMSBackgroundTask.PercentComplete,
		schema.CMSBackgroundTask.StatusInfo,
		schema.CMSBackgroundTask.CompletedAt, schema.CMSBackgroundTask.UpdatedAt,
		schema.CMSBackgroundTask.ID,
	)

	tag, err := repository.db.Exec(context, query, id, StatusComplete, statusInfo)
	if err != nil {
		return dberr.Wrap(err, "complete_task")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "complete_task")
	}
	return nil
}

func (repository *PostgresRepository) MarkFailed(context context.Context, id, errorMessage string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW(), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSBackgroundTask.Table,
		schema.CMSBackgroundTask.Status, schema.CMSBackgroundTask.ErrorMessage,
		schema.CMSBackgroundTask.CompletedAt, schema.CMSBackgroundTask.UpdatedAt,
		schema.CMSBackgroundTask.ID,
	)

	tag, err := repository.db.Exec(context, query, id, StatusError, errorMessage)
	if err != nil {
		return dberr.Wrap(err, "fail_task")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "fail_task")
	}
	return nil
}

// # Internals

func taskSelectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.CMSBackgroundTask.ID, schema.CMSBackgroundTask.Name, schema.CMSBackgroundTask.Args,
		schema.CMSBackgroundTask.Status, schema.CMSBackgroundTask.StatusInfo,
		schema.CMSBackgroundTask.PercentComplete, schema.CMSBackgroundTask.NumberOfRetries,
		schema.CMSBackgroundTask.ErrorMessage,
		schema.CMSBackgroundTask.CreatedAt, schema.CMSBackgroundTask.UpdatedAt, schema.CMSBackgroundTask.CompletedAt,
	)
}

func scanTask(row pgx.Row, target *Task) error {
	return row.Scan(
		&target.ID, &target.Name, &target.Args, &target.Status,
		&target.StatusInfo, &target.PercentComplete, &target.NumberOfRetries,
		&target.ErrorMessage, &target.CreatedAt, &target.UpdatedAt, &target.CompletedAt,
	)
}
