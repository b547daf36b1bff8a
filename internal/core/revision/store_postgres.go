// Copyright (c) 2026 Raytha. All rights reserved.

package revision

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/database/schema"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/dberr"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, parentType ParentType, parentID string, snapshot json.RawMessage, actorID string) (*Revision, error) {
	record := &Revision{
		ID:            uuidv7.New(),
		ParentType:    parentType,
		ParentID:      parentID,
		Snapshot:      snapshot,
		CreatorUserID: actorID,
		CreatedAt:     time.Now().UTC(),
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		schema.CMSRevision.Table,
		schema.CMSRevision.ID, schema.CMSRevision.ParentType, schema.CMSRevision.ParentID,
		schema.CMSRevision.Snapshot, schema.CMSRevision.CreatorUserID, schema.CMSRevision.CreatedAt,
	)

	_, err := repository.db.Exec(context, query,
		record.ID, string(record.ParentType), record.ParentID,
		record.Snapshot, record.CreatorUserID, record.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "create_revision")
	}

	return record, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Revision, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, COALESCE(%s::text, ''), %s FROM %s WHERE %s = $1`,
		schema.CMSRevision.ID, schema.CMSRevision.ParentType, schema.CMSRevision.ParentID,
		schema.CMSRevision.Snapshot, schema.CMSRevision.CreatorUserID, schema.CMSRevision.CreatedAt,
		schema.CMSRevision.Table, schema.CMSRevision.ID,
	)

	record := &Revision{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&record.ID, &record.ParentType, &record.ParentID,
		&record.Snapshot, &record.CreatorUserID, &record.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_revision_by_id")
	}

	return record, nil
}

func (repository *PostgresRepository) ListByParent(context context.Context, parentType ParentType, parentID string, limit, offset int) ([]*Revision, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s::text, ''), %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC
		LIMIT $3 OFFSET $4
	`,
		schema.CMSRevision.ID, schema.CMSRevision.ParentType, schema.CMSRevision.ParentID,
		schema.CMSRevision.Snapshot, schema.CMSRevision.CreatorUserID, schema.CMSRevision.CreatedAt,
		schema.CMSRevision.Table,
		schema.CMSRevision.ParentType, schema.CMSRevision.ParentID,
		schema.CMSRevision.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, string(parentType), parentID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_revisions")
	}
	defer rows.Close()

	revisions := make([]*Revision, 0)
	total := 0

	for rows.Next() {
		record := &Revision{}
		if err := rows.Scan(
			&record.ID, &record.ParentType, &record.ParentID,
			&record.Snapshot, &record.CreatorUserID, &record.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_revision")
		}
		revisions = append(revisions, record)
	}

	return revisions, total, nil
}
