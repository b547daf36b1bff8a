// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package contentitem provides the PostgreSQL implementation for item storage.

Draft and published bodies are stored as JSONB documents. Lifecycle moves
that must be atomic (publish + revision, trash, restore) run inside
transactions so no observer ever sees a half-applied state.
*/
package contentitem

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/database/schema"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/dberr"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed content item store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Live Items

func (repository *PostgresRepository) Create(context context.Context, item *ContentItem) error {
	return execInsertItem(context, repository.db, item)
}

func (repository *PostgresRepository) CreateWithRevision(context context.Context, item *ContentItem, snapshot json.RawMessage, actorID string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_with_revision_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := execInsertItem(context, transaction, item); err != nil {
		return err
	}
	if err := execAppendRevision(context, transaction, item.ID, snapshot, actorID); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_with_revision_commit")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, item *ContentItem) error {
	return execUpdateItem(context, repository.db, item)
}

// rowExecutor covers both pool and transaction execution.
type rowExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func execInsertItem(ctx context.Context, executor rowExecutor, item *ContentItem) error {
	draftJSON, publishedJSON, err := marshalBodies(item)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''))
	`,
		schema.CMSContentItem.Table,
		schema.CMSContentItem.ID, schema.CMSContentItem.ContentTypeID,
		schema.CMSContentItem.IsPublished, schema.CMSContentItem.IsDraft,
		schema.CMSContentItem.DraftContent, schema.CMSContentItem.PublishedContent,
		schema.CMSContentItem.RoutePath, schema.CMSContentItem.WebTemplateID,
		schema.CMSContentItem.CreatorUserID, schema.CMSContentItem.LastModifierUserID,
	)

	_, err = executor.Exec(ctx, query,
		item.ID, item.ContentTypeID,
		item.IsPublished, item.IsDraft,
		draftJSON, publishedJSON,
		item.RoutePath, item.WebTemplateID,
		item.CreatorUserID, item.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "create_content_item")
	}
	return nil
}

func execAppendRevision(ctx context.Context, executor rowExecutor, itemID string, snapshot json.RawMessage, actorID string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, 'content_item', $2, $3, NULLIF($4, ''))`,
		schema.CMSRevision.Table,
		schema.CMSRevision.ID, schema.CMSRevision.ParentType, schema.CMSRevision.ParentID,
		schema.CMSRevision.Snapshot, schema.CMSRevision.CreatorUserID,
	)
	if _, err := executor.Exec(ctx, query, uuidv7.New(), itemID, snapshot, actorID); err != nil {
		return dberr.Wrap(err, "append_revision")
	}
	return nil
}

func execUpdateItem(ctx context.Context, executor rowExecutor, item *ContentItem) error {
	draftJSON, publishedJSON, err := marshalBodies(item)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = NULLIF($8, ''), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSContentItem.Table,
		schema.CMSContentItem.IsPublished, schema.CMSContentItem.IsDraft,
		schema.CMSContentItem.DraftContent, schema.CMSContentItem.PublishedContent,
		schema.CMSContentItem.RoutePath, schema.CMSContentItem.WebTemplateID,
		schema.CMSContentItem.LastModifierUserID, schema.CMSContentItem.UpdatedAt,
		schema.CMSContentItem.ID,
	)

	tag, err := executor.Exec(ctx, query,
		item.ID,
		item.IsPublished, item.IsDraft,
		draftJSON, publishedJSON,
		item.RoutePath, item.WebTemplateID,
		item.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_content_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_content_item")
	}
	return nil
}

func (repository *PostgresRepository) UpdateWithRevision(context context.Context, item *ContentItem, snapshot json.RawMessage, actorID string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_with_revision_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := execUpdateItem(context, transaction, item); err != nil {
		return err
	}
	if err := execAppendRevision(context, transaction, item.ID, snapshot, actorID); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "update_with_revision_commit")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*ContentItem, error) {
	return repository.findOne(context, schema.CMSContentItem.ID, id)
}

func (repository *PostgresRepository) FindByRoutePath(context context.Context, routePath string) (*ContentItem, error) {
	return repository.findOne(context, schema.CMSContentItem.RoutePath, routePath)
}

func (repository *PostgresRepository) findOne(context context.Context, column, value string) (*ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CMSContentItem.ID, schema.CMSContentItem.ContentTypeID,
		schema.CMSContentItem.IsPublished, schema.CMSContentItem.IsDraft,
		schema.CMSContentItem.DraftContent, schema.CMSContentItem.PublishedContent,
		schema.CMSContentItem.RoutePath, schema.CMSContentItem.WebTemplateID,
		schema.CMSContentItem.CreatorUserID, schema.CMSContentItem.LastModifierUserID,
		schema.CMSContentItem.CreatedAt, schema.CMSContentItem.UpdatedAt,
		schema.CMSContentItem.Table,
		column,
	)

	item := &ContentItem{}
	var draftJSON, publishedJSON []byte

	err := repository.db.QueryRow(context, query, value).Scan(
		&item.ID, &item.ContentTypeID,
		&item.IsPublished, &item.IsDraft,
		&draftJSON, &publishedJSON,
		&item.RoutePath, &item.WebTemplateID,
		&item.CreatorUserID, &item.LastModifierUserID,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_item")
	}

	if err := unmarshalBodies(item, draftJSON, publishedJSON); err != nil {
		return nil, err
	}
	return item, nil
}

func (repository *PostgresRepository) List(context context.Context, contentTypeID string, limit, offset int) ([]*ContentItem, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s,
		       COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CMSContentItem.ID, schema.CMSContentItem.ContentTypeID,
		schema.CMSContentItem.IsPublished, schema.CMSContentItem.IsDraft,
		schema.CMSContentItem.DraftContent, schema.CMSContentItem.PublishedContent,
		schema.CMSContentItem.RoutePath, schema.CMSContentItem.WebTemplateID,
		schema.CMSContentItem.CreatorUserID, schema.CMSContentItem.LastModifierUserID,
		schema.CMSContentItem.CreatedAt, schema.CMSContentItem.UpdatedAt,
		schema.CMSContentItem.Table,
		schema.CMSContentItem.ContentTypeID,
		schema.CMSContentItem.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, contentTypeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_content_items")
	}
	defer rows.Close()

	items := make([]*ContentItem, 0)
	total := 0

	for rows.Next() {
		item := &ContentItem{}
		var draftJSON, publishedJSON []byte

		if err := rows.Scan(
			&item.ID, &item.ContentTypeID,
			&item.IsPublished, &item.IsDraft,
			&draftJSON, &publishedJSON,
			&item.RoutePath, &item.WebTemplateID,
			&item.CreatorUserID, &item.LastModifierUserID,
			&item.CreatedAt, &item.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_content_item")
		}

		if err := unmarshalBodies(item, draftJSON, publishedJSON); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, total, nil
}

func (repository *PostgresRepository) ExistsByRoutePath(context context.Context, routePath string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CMSContentItem.Table, schema.CMSContentItem.RoutePath,
	)

	exists := false
	if err := repository.db.QueryRow(context, query, routePath).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "route_path_exists")
	}
	return exists, nil
}

// # Trash

func (repository *PostgresRepository) MoveToTrash(context context.Context, itemID string, deleted *DeletedContentItem) error {
	publishedJSON, err := json.Marshal(deleted.PublishedContent)
	if err != nil {
		return fmt.Errorf("contentitem: marshal trash snapshot: %w", err)
	}

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "move_to_trash_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
	`,
		schema.CMSDeletedContentItem.Table,
		schema.CMSDeletedContentItem.ID, schema.CMSDeletedContentItem.OriginalItemID,
		schema.CMSDeletedContentItem.ContentTypeID, schema.CMSDeletedContentItem.PrimaryFieldValue,
		schema.CMSDeletedContentItem.PublishedContent, schema.CMSDeletedContentItem.RoutePath,
		schema.CMSDeletedContentItem.WebTemplateID, schema.CMSDeletedContentItem.DeleterUserID,
	)

	_, err = transaction.Exec(context, insertQuery,
		deleted.ID, deleted.OriginalItemID,
		deleted.ContentTypeID, deleted.PrimaryFieldValue,
		publishedJSON, deleted.RoutePath,
		deleted.WebTemplateID, deleted.DeleterUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_deleted_content_item")
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSContentItem.Table, schema.CMSContentItem.ID,
	)
	tag, err := transaction.Exec(context, deleteQuery, itemID)
	if err != nil {
		return dberr.Wrap(err, "delete_content_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_content_item")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "move_to_trash_commit")
	}
	return nil
}

func (repository *PostgresRepository) RestoreFromTrash(context context.Context, deletedID string, item *ContentItem) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "restore_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := execInsertItem(context, transaction, item); err != nil {
		return err
	}

	purgeQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSDeletedContentItem.Table, schema.CMSDeletedContentItem.ID,
	)
	tag, err := transaction.Exec(context, purgeQuery, deletedID)
	if err != nil {
		return dberr.Wrap(err, "remove_trash_entry")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "remove_trash_entry")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "restore_commit")
	}
	return nil
}

func (repository *PostgresRepository) FindDeletedByID(context context.Context, id string) (*DeletedContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CMSDeletedContentItem.ID, schema.CMSDeletedContentItem.OriginalItemID,
		schema.CMSDeletedContentItem.ContentTypeID, schema.CMSDeletedContentItem.PrimaryFieldValue,
		schema.CMSDeletedContentItem.PublishedContent, schema.CMSDeletedContentItem.RoutePath,
		schema.CMSDeletedContentItem.WebTemplateID, schema.CMSDeletedContentItem.DeleterUserID,
		schema.CMSDeletedContentItem.CreatedAt,
		schema.CMSDeletedContentItem.Table,
		schema.CMSDeletedContentItem.ID,
	)

	deleted := &DeletedContentItem{}
	var publishedJSON []byte

	err := repository.db.QueryRow(context, query, id).Scan(
		&deleted.ID, &deleted.OriginalItemID,
		&deleted.ContentTypeID, &deleted.PrimaryFieldValue,
		&publishedJSON, &deleted.RoutePath,
		&deleted.WebTemplateID, &deleted.DeleterUserID,
		&deleted.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_deleted_content_item")
	}

	if len(publishedJSON) > 0 {
		if err := json.Unmarshal(publishedJSON, &deleted.PublishedContent); err != nil {
			return nil, fmt.Errorf("contentitem: unmarshal trash snapshot: %w", err)
		}
	}
	return deleted, nil
}

func (repository *PostgresRepository) ListDeleted(context context.Context, contentTypeID string, limit, offset int) ([]*DeletedContentItem, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.CMSDeletedContentItem.ID, schema.CMSDeletedContentItem.OriginalItemID,
		schema.CMSDeletedContentItem.ContentTypeID, schema.CMSDeletedContentItem.PrimaryFieldValue,
		schema.CMSDeletedContentItem.PublishedContent, schema.CMSDeletedContentItem.RoutePath,
		schema.CMSDeletedContentItem.WebTemplateID, schema.CMSDeletedContentItem.DeleterUserID,
		schema.CMSDeletedContentItem.CreatedAt,
		schema.CMSDeletedContentItem.Table,
		schema.CMSDeletedContentItem.ContentTypeID,
		schema.CMSDeletedContentItem.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, contentTypeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_deleted_content_items")
	}
	defer rows.Close()

	entries := make([]*DeletedContentItem, 0)
	total := 0

	for rows.Next() {
		deleted := &DeletedContentItem{}
		var publishedJSON []byte

		if err := rows.Scan(
			&deleted.ID, &deleted.OriginalItemID,
			&deleted.ContentTypeID, &deleted.PrimaryFieldValue,
			&publishedJSON, &deleted.RoutePath,
			&deleted.WebTemplateID, &deleted.DeleterUserID,
			&deleted.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_deleted_content_item")
		}

		if len(publishedJSON) > 0 {
			if err := json.Unmarshal(publishedJSON, &deleted.PublishedContent); err != nil {
				return nil, 0, fmt.Errorf("contentitem: unmarshal trash snapshot: %w", err)
			}
		}
		entries = append(entries, deleted)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) PurgeDeleted(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSDeletedContentItem.Table, schema.CMSDeletedContentItem.ID,
	)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "purge_deleted_content_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "purge_deleted_content_item")
	}
	return nil
}

// # Serialization Helpers

func marshalBodies(item *ContentItem) (draftJSON, publishedJSON []byte, err error) {
	draftJSON, err = json.Marshal(item.DraftContent)
	if err != nil {
		return nil, nil, fmt.Errorf("contentitem: marshal draft: %w", err)
	}
	publishedJSON, err = json.Marshal(item.PublishedContent)
	if err != nil {
		return nil, nil, fmt.Errorf("contentitem: marshal published: %w", err)
	}
	return draftJSON, publishedJSON, nil
}

func unmarshalBodies(item *ContentItem, draftJSON, publishedJSON []byte) error {
	if len(draftJSON) > 0 {
		if err := json.Unmarshal(draftJSON, &item.DraftContent); err != nil {
			return fmt.Errorf("contentitem: unmarshal draft: %w", err)
		}
	}
	if len(publishedJSON) > 0 {
		if err := json.Unmarshal(publishedJSON, &item.PublishedContent); err != nil {
			return fmt.Errorf("contentitem: unmarshal published: %w", err)
		}
	}
	return nil
}
