// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package contenttype provides the PostgreSQL implementation for schema storage.

Field definitions live in their own table and are hydrated on every content
type read, ordered by FieldOrder. Reorders rewrite every affected row inside
a single transaction so the dense-order invariant survives concurrent moves.
*/
package contenttype

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/database/schema"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed content type store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Content Type Rows

func (repository *PostgresRepository) Create(context context.Context, contentType *ContentType) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_content_type_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
	`,
		schema.CMSContentType.Table,
		schema.CMSContentType.ID, schema.CMSContentType.LabelSingular, schema.CMSContentType.LabelPlural,
		schema.CMSContentType.DeveloperName, schema.CMSContentType.Description,
		schema.CMSContentType.DefaultRouteTemplate, schema.CMSContentType.PrimaryFieldID,
		schema.CMSContentType.CreatorUserID, schema.CMSContentType.LastModifierUserID,
	)

	_, err = transaction.Exec(context, query,
		contentType.ID, contentType.LabelSingular, contentType.LabelPlural,
		contentType.DeveloperName, contentType.Description,
		contentType.DefaultRouteTemplate, contentType.PrimaryFieldID,
		contentType.CreatorUserID, contentType.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "create_content_type")
	}

	for index := range contentType.Fields {
		if err := insertField(context, transaction, &contentType.Fields[index]); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_content_type_commit")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, contentType *ContentType) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NULLIF($7, ''), %s = now()
		WHERE %s = $1 AND %s = FALSE
	`,
		schema.CMSContentType.Table,
		schema.CMSContentType.LabelSingular, schema.CMSContentType.LabelPlural,
		schema.CMSContentType.Description, schema.CMSContentType.DefaultRouteTemplate,
		schema.CMSContentType.PrimaryFieldID, schema.CMSContentType.LastModifierUserID,
		schema.CMSContentType.UpdatedAt,
		schema.CMSContentType.ID, schema.CMSContentType.IsDeleted,
	)

	tag, err := repository.db.Exec(context, query,
		contentType.ID, contentType.LabelSingular, contentType.LabelPlural,
		contentType.Description, contentType.DefaultRouteTemplate,
		contentType.PrimaryFieldID, contentType.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_content_type")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_content_type")
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id, actorID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = NULLIF($2, ''), %s = now()
		WHERE %s = $1 AND %s = FALSE
	`,
		schema.CMSContentType.Table,
		schema.CMSContentType.IsDeleted, schema.CMSContentType.LastModifierUserID,
		schema.CMSContentType.UpdatedAt,
		schema.CMSContentType.ID, schema.CMSContentType.IsDeleted,
	)

	tag, err := repository.db.Exec(context, query, id, actorID)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_content_type")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "soft_delete_content_type")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*ContentType, error) {
	return repository.findOne(context, schema.CMSContentType.ID, id)
}

func (repository *PostgresRepository) FindByDeveloperName(context context.Context, developerName string) (*ContentType, error) {
	return repository.findOne(context, schema.CMSContentType.DeveloperName, developerName)
}

func (repository *PostgresRepository) findOne(context context.Context, column, value string) (*ContentType, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE
	`,
		schema.CMSContentType.ID, schema.CMSContentType.LabelSingular, schema.CMSContentType.LabelPlural,
		schema.CMSContentType.DeveloperName, schema.CMSContentType.Description,
		schema.CMSContentType.DefaultRouteTemplate, schema.CMSContentType.PrimaryFieldID,
		schema.CMSContentType.CreatorUserID, schema.CMSContentType.LastModifierUserID,
		schema.CMSContentType.CreatedAt, schema.CMSContentType.UpdatedAt,
		schema.CMSContentType.Table,
		column, schema.CMSContentType.IsDeleted,
	)

	contentType := &ContentType{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&contentType.ID, &contentType.LabelSingular, &contentType.LabelPlural,
		&contentType.DeveloperName, &contentType.Description,
		&contentType.DefaultRouteTemplate, &contentType.PrimaryFieldID,
		&contentType.CreatorUserID, &contentType.LastModifierUserID,
		&contentType.CreatedAt, &contentType.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_content_type")
	}

	if err := repository.loadFields(context, contentType); err != nil {
		return nil, err
	}
	return contentType, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*ContentType, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = FALSE
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.CMSContentType.ID, schema.CMSContentType.LabelSingular, schema.CMSContentType.LabelPlural,
		schema.CMSContentType.DeveloperName, schema.CMSContentType.Description,
		schema.CMSContentType.DefaultRouteTemplate, schema.CMSContentType.PrimaryFieldID,
		schema.CMSContentType.CreatedAt, schema.CMSContentType.UpdatedAt,
		schema.CMSContentType.Table,
		schema.CMSContentType.IsDeleted,
		schema.CMSContentType.LabelPlural,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_content_types")
	}
	defer rows.Close()

	contentTypes := make([]*ContentType, 0)
	total := 0

	for rows.Next() {
		contentType := &ContentType{}
		if err := rows.Scan(
			&contentType.ID, &contentType.LabelSingular, &contentType.LabelPlural,
			&contentType.DeveloperName, &contentType.Description,
			&contentType.DefaultRouteTemplate, &contentType.PrimaryFieldID,
			&contentType.CreatedAt, &contentType.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_content_type")
		}
		contentTypes = append(contentTypes, contentType)
	}
	rows.Close()

	for _, contentType := range contentTypes {
		if err := repository.loadFields(context, contentType); err != nil {
			return nil, 0, err
		}
	}

	return contentTypes, total, nil
}

func (repository *PostgresRepository) ExistsByDeveloperName(context context.Context, developerName string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = FALSE)`,
		schema.CMSContentType.Table, schema.CMSContentType.DeveloperName, schema.CMSContentType.IsDeleted,
	)

	exists := false
	if err := repository.db.QueryRow(context, query, developerName).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "content_type_exists")
	}
	return exists, nil
}

// # Field Rows

func (repository *PostgresRepository) CreateField(context context.Context, definition *field.Definition) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_field_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := insertField(context, transaction, definition); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_field_commit")
	}
	return nil
}

func insertField(context context.Context, transaction pgx.Tx, definition *field.Definition) error {
	choicesJSON, err := json.Marshal(definition.Choices)
	if err != nil {
		return fmt.Errorf("contenttype: marshal choices: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		schema.CMSContentTypeField.Table,
		schema.CMSContentTypeField.ID, schema.CMSContentTypeField.ContentTypeID,
		schema.CMSContentTypeField.Label, schema.CMSContentTypeField.DeveloperName,
		schema.CMSContentTypeField.Description, schema.CMSContentTypeField.FieldType,
		schema.CMSContentTypeField.FieldOrder, schema.CMSContentTypeField.IsRequired,
		schema.CMSContentTypeField.Choices, schema.CMSContentTypeField.RelatedContentTypeID,
	)

	_, err = transaction.Exec(context, query,
		definition.ID, definition.ContentTypeID,
		definition.Label, definition.DeveloperName,
		definition.Description, string(definition.FieldType),
		definition.FieldOrder, definition.IsRequired,
		choicesJSON, definition.RelatedContentTypeID,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_field")
	}
	return nil
}

func (repository *PostgresRepository) UpdateField(context context.Context, definition *field.Definition) error {
	choicesJSON, err := json.Marshal(definition.Choices)
	if err != nil {
		return fmt.Errorf("contenttype: marshal choices: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = now()
		WHERE %s = $1 AND %s = FALSE
	`,
		schema.CMSContentTypeField.Table,
		schema.CMSContentTypeField.Label, schema.CMSContentTypeField.Description,
		schema.CMSContentTypeField.IsRequired, schema.CMSContentTypeField.Choices,
		schema.CMSContentTypeField.UpdatedAt,
		schema.CMSContentTypeField.ID, schema.CMSContentTypeField.IsDeleted,
	)

	tag, err := repository.db.Exec(context, query,
		definition.ID, definition.Label, definition.Description,
		definition.IsRequired, choicesJSON,
	)
	if err != nil {
		return dberr.Wrap(err, "update_field")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_field")
	}
	return nil
}

func (repository *PostgresRepository) SoftDeleteField(context context.Context, fieldID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = now()
		WHERE %s = $1 AND %s = FALSE
	`,
		schema.CMSContentTypeField.Table,
		schema.CMSContentTypeField.IsDeleted, schema.CMSContentTypeField.UpdatedAt,
		schema.CMSContentTypeField.ID, schema.CMSContentTypeField.IsDeleted,
	)

	tag, err := repository.db.Exec(context, query, fieldID)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_field")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "soft_delete_field")
	}
	return nil
}

// SaveFieldOrder rewrites FieldOrder for the listed fields in one batch
// inside a transaction; each id gets its slice index.
func (repository *PostgresRepository) SaveFieldOrder(context context.Context, contentTypeID string, orderedFieldIDs []string) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "save_field_order_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = now() WHERE %s = $1 AND %s = $2`,
		schema.CMSContentTypeField.Table,
		schema.CMSContentTypeField.FieldOrder, schema.CMSContentTypeField.UpdatedAt,
		schema.CMSContentTypeField.ContentTypeID, schema.CMSContentTypeField.ID,
	)

	batch := &pgx.Batch{}
	for index, fieldID := range orderedFieldIDs {
		batch.Queue(query, contentTypeID, fieldID, index)
	}

	results := transaction.SendBatch(context, batch)
	for range orderedFieldIDs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "save_field_order")
		}
	}
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "save_field_order_close")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "save_field_order_commit")
	}
	return nil
}

// loadFields hydrates every field row (deleted included) in FieldOrder.
func (repository *PostgresRepository) loadFields(context context.Context, contentType *ContentType) error {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
	`,
		schema.CMSContentTypeField.ID, schema.CMSContentTypeField.Label,
		schema.CMSContentTypeField.DeveloperName, schema.CMSContentTypeField.Description,
		schema.CMSContentTypeField.FieldType, schema.CMSContentTypeField.FieldOrder,
		schema.CMSContentTypeField.IsRequired, schema.CMSContentTypeField.Choices,
		schema.CMSContentTypeField.RelatedContentTypeID, schema.CMSContentTypeField.IsDeleted,
		schema.CMSContentTypeField.CreatedAt, schema.CMSContentTypeField.UpdatedAt,
		schema.CMSContentTypeField.Table,
		schema.CMSContentTypeField.ContentTypeID,
		schema.CMSContentTypeField.IsDeleted, schema.CMSContentTypeField.FieldOrder,
	)

	rows, err := repository.db.Query(context, query, contentType.ID)
	if err != nil {
		return dberr.Wrap(err, "load_fields")
	}
	defer rows.Close()

	contentType.Fields = make([]field.Definition, 0)
	for rows.Next() {
		definition := field.Definition{ContentTypeID: contentType.ID}
		var choicesJSON []byte

		if err := rows.Scan(
			&definition.ID, &definition.Label,
			&definition.DeveloperName, &definition.Description,
			&definition.FieldType, &definition.FieldOrder,
			&definition.IsRequired, &choicesJSON,
			&definition.RelatedContentTypeID, &definition.IsDeleted,
			&definition.CreatedAt, &definition.UpdatedAt,
		); err != nil {
			return dberr.Wrap(err, "scan_field")
		}

		if len(choicesJSON) > 0 {
			if err := json.Unmarshal(choicesJSON, &definition.Choices); err != nil {
				return fmt.Errorf("contenttype: unmarshal choices: %w", err)
			}
		}

		contentType.Fields = append(contentType.Fields, definition)
	}

	return nil
}
