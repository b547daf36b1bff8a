// Copyright (c) 2026 Raytha. All rights reserved.

package template

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

// NewPostgresRepository constructs a PostgreSQL backed template store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Web Templates

func (repository *PostgresRepository) CreateWebTemplate(context context.Context, template *WebTemplate) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
	`,
		schema.CMSWebTemplate.Table,
		schema.CMSWebTemplate.ID, schema.CMSWebTemplate.Label, schema.CMSWebTemplate.DeveloperName,
		schema.CMSWebTemplate.Content, schema.CMSWebTemplate.IsBuiltIn, schema.CMSWebTemplate.ParentTemplateID,
		schema.CMSWebTemplate.CreatorUserID, schema.CMSWebTemplate.LastModifierUserID,
	)

	_, err := repository.db.Exec(context, query,
		template.ID, template.Label, template.DeveloperName,
		template.Content, template.IsBuiltIn, template.ParentTemplateID,
		template.CreatorUserID, template.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "create_web_template")
	}
	return nil
}

func (repository *PostgresRepository) UpdateWebTemplate(context context.Context, template *WebTemplate) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NULLIF($4, ''), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSWebTemplate.Table,
		schema.CMSWebTemplate.Label, schema.CMSWebTemplate.Content,
		schema.CMSWebTemplate.LastModifierUserID, schema.CMSWebTemplate.UpdatedAt,
		schema.CMSWebTemplate.ID,
	)

	tag, err := repository.db.Exec(context, query,
		template.ID, template.Label, template.Content, template.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_web_template")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_web_template")
	}
	return nil
}

func (repository *PostgresRepository) DeleteWebTemplate(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSWebTemplate.Table, schema.CMSWebTemplate.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_web_template")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_web_template")
	}
	return nil
}

func (repository *PostgresRepository) FindWebTemplateByID(context context.Context, id string) (*WebTemplate, error) {
	return repository.findWebTemplate(context, schema.CMSWebTemplate.ID, id)
}

func (repository *PostgresRepository) FindWebTemplateByDeveloperName(context context.Context, developerName string) (*WebTemplate, error) {
	return repository.findWebTemplate(context, schema.CMSWebTemplate.DeveloperName, developerName)
}

func (repository *PostgresRepository) findWebTemplate(context context.Context, column, value string) (*WebTemplate, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COALESCE(%s::text, '') AS parent, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CMSWebTemplate.ID, schema.CMSWebTemplate.Label, schema.CMSWebTemplate.DeveloperName,
		schema.CMSWebTemplate.Content, schema.CMSWebTemplate.IsBuiltIn, schema.CMSWebTemplate.ParentTemplateID,
		schema.CMSWebTemplate.CreatorUserID, schema.CMSWebTemplate.LastModifierUserID,
		schema.CMSWebTemplate.CreatedAt, schema.CMSWebTemplate.UpdatedAt,
		schema.CMSWebTemplate.Table,
		column,
	)

	template := &WebTemplate{}
	parent := ""

	err := repository.db.QueryRow(context, query, value).Scan(
		&template.ID, &template.Label, &template.DeveloperName,
		&template.Content, &template.IsBuiltIn, &parent,
		&template.CreatorUserID, &template.LastModifierUserID,
		&template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_web_template")
	}

	if parent != "" {
		template.ParentTemplateID = &parent
	}
	return template, nil
}

func (repository *PostgresRepository) ListWebTemplates(context context.Context, limit, offset int) ([]*WebTemplate, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COALESCE(%s::text, '') AS parent, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s,
		       COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.CMSWebTemplate.ID, schema.CMSWebTemplate.Label, schema.CMSWebTemplate.DeveloperName,
		schema.CMSWebTemplate.Content, schema.CMSWebTemplate.IsBuiltIn, schema.CMSWebTemplate.ParentTemplateID,
		schema.CMSWebTemplate.CreatorUserID, schema.CMSWebTemplate.LastModifierUserID,
		schema.CMSWebTemplate.CreatedAt, schema.CMSWebTemplate.UpdatedAt,
		schema.CMSWebTemplate.Table,
		schema.CMSWebTemplate.Label,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_web_templates")
	}
	defer rows.Close()

	templates := make([]*WebTemplate, 0)
	total := 0

	for rows.Next() {
		template := &WebTemplate{}
		parent := ""

		if err := rows.Scan(
			&template.ID, &template.Label, &template.DeveloperName,
			&template.Content, &template.IsBuiltIn, &parent,
			&template.CreatorUserID, &template.LastModifierUserID,
			&template.CreatedAt, &template.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_web_template")
		}

		if parent != "" {
			template.ParentTemplateID = &parent
		}
		templates = append(templates, template)
	}

	return templates, total, nil
}

func (repository *PostgresRepository) ExistsWebTemplateByDeveloperName(context context.Context, developerName string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CMSWebTemplate.Table, schema.CMSWebTemplate.DeveloperName)

	exists := false
	if err := repository.db.QueryRow(context, query, developerName).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "web_template_name_exists")
	}
	return exists, nil
}

// # Email Templates

func (repository *PostgresRepository) UpdateEmailTemplate(context context.Context, template *EmailTemplate) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NULLIF($6, ''), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSEmailTemplate.Table,
		schema.CMSEmailTemplate.Subject, schema.CMSEmailTemplate.Content,
		schema.CMSEmailTemplate.Cc, schema.CMSEmailTemplate.Bcc,
		schema.CMSEmailTemplate.LastModifierUserID, schema.CMSEmailTemplate.UpdatedAt,
		schema.CMSEmailTemplate.ID,
	)

	tag, err := repository.db.Exec(context, query,
		template.ID, template.Subject, template.Content,
		template.Cc, template.Bcc, template.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_email_template")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_email_template")
	}
	return nil
}

func (repository *PostgresRepository) FindEmailTemplateByID(context context.Context, id string) (*EmailTemplate, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CMSEmailTemplate.ID, schema.CMSEmailTemplate.DeveloperName,
		schema.CMSEmailTemplate.Subject, schema.CMSEmailTemplate.Content,
		schema.CMSEmailTemplate.Cc, schema.CMSEmailTemplate.Bcc, schema.CMSEmailTemplate.IsBuiltIn,
		schema.CMSEmailTemplate.CreatorUserID, schema.CMSEmailTemplate.LastModifierUserID,
		schema.CMSEmailTemplate.CreatedAt, schema.CMSEmailTemplate.UpdatedAt,
		schema.CMSEmailTemplate.Table,
		schema.CMSEmailTemplate.ID,
	)

	template := &EmailTemplate{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&template.ID, &template.DeveloperName,
		&template.Subject, &template.Content,
		&template.Cc, &template.Bcc, &template.IsBuiltIn,
		&template.CreatorUserID, &template.LastModifierUserID,
		&template.CreatedAt, &template.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_email_template")
	}
	return template, nil
}

func (repository *PostgresRepository) ListEmailTemplates(context context.Context, limit, offset int) ([]*EmailTemplate, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s,
		       COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.CMSEmailTemplate.ID, schema.CMSEmailTemplate.DeveloperName,
		schema.CMSEmailTemplate.Subject, schema.CMSEmailTemplate.Content,
		schema.CMSEmailTemplate.Cc, schema.CMSEmailTemplate.Bcc, schema.CMSEmailTemplate.IsBuiltIn,
		schema.CMSEmailTemplate.CreatorUserID, schema.CMSEmailTemplate.LastModifierUserID,
		schema.CMSEmailTemplate.CreatedAt, schema.CMSEmailTemplate.UpdatedAt,
		schema.CMSEmailTemplate.Table,
		schema.CMSEmailTemplate.DeveloperName,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_email_templates")
	}
	defer rows.Close()

	templates := make([]*EmailTemplate, 0)
	total := 0

	for rows.Next() {
		template := &EmailTemplate{}
		if err := rows.Scan(
			&template.ID, &template.DeveloperName,
			&template.Subject, &template.Content,
			&template.Cc, &template.Bcc, &template.IsBuiltIn,
			&template.CreatorUserID, &template.LastModifierUserID,
			&template.CreatedAt, &template.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_email_template")
		}
		templates = append(templates, template)
	}

	return templates, total, nil
}
