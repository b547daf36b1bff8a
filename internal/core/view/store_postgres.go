// Copyright (c) 2026 Raytha. All rights reserved.

package view

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/database/schema"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// Filter, Columns, and Sorts are stored as JSONB; FavoritedBy as a text
// array.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed view store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, view *View) error {
	filterJSON, columnsJSON, sortsJSON, err := marshalViewParts(view)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), NULLIF($16, ''))
	`,
		schema.CMSView.Table,
		schema.CMSView.ID, schema.CMSView.ContentTypeID,
		schema.CMSView.Label, schema.CMSView.DeveloperName, schema.CMSView.Description,
		schema.CMSView.RoutePath, schema.CMSView.Filter, schema.CMSView.ViewColumns, schema.CMSView.Sorts,
		schema.CMSView.IsPublished, schema.CMSView.DefaultItemsPerPage, schema.CMSView.MaxItemsPerPage,
		schema.CMSView.IgnoreClientFilterSort, schema.CMSView.FavoritedBy,
		schema.CMSView.CreatorUserID, schema.CMSView.LastModifierUserID,
	)

	_, err = repository.db.Exec(context, query,
		view.ID, view.ContentTypeID,
		view.Label, view.DeveloperName, view.Description,
		view.RoutePath, filterJSON, columnsJSON, sortsJSON,
		view.IsPublished, view.DefaultItemsPerPage, view.MaxItemsPerPage,
		view.IgnoreClientFilterSort, view.FavoritedBy,
		view.CreatorUserID, view.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "create_view")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, view *View) error {
	filterJSON, columnsJSON, sortsJSON, err := marshalViewParts(view)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = $10, %s = $11, %s = $12,
		    %s = NULLIF($13, ''), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSView.Table,
		schema.CMSView.Label, schema.CMSView.Description,
		schema.CMSView.RoutePath, schema.CMSView.Filter, schema.CMSView.ViewColumns, schema.CMSView.Sorts,
		schema.CMSView.IsPublished, schema.CMSView.DefaultItemsPerPage, schema.CMSView.MaxItemsPerPage,
		schema.CMSView.IgnoreClientFilterSort, schema.CMSView.FavoritedBy,
		schema.CMSView.LastModifierUserID, schema.CMSView.UpdatedAt,
		schema.CMSView.ID,
	)

	tag, err := repository.db.Exec(context, query,
		view.ID,
		view.Label, view.Description,
		view.RoutePath, filterJSON, columnsJSON, sortsJSON,
		view.IsPublished, view.DefaultItemsPerPage, view.MaxItemsPerPage,
		view.IgnoreClientFilterSort, view.FavoritedBy,
		view.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_view")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_view")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CMSView.Table, schema.CMSView.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_view")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_view")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*View, error) {
	return repository.findOne(context, schema.CMSView.ID, id)
}

func (repository *PostgresRepository) FindByRoutePath(context context.Context, routePath string) (*View, error) {
	return repository.findOne(context, schema.CMSView.RoutePath, routePath)
}

func (repository *PostgresRepository) findOne(context context.Context, column, value string) (*View, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1
	`, viewSelectColumns(), schema.CMSView.Table, column)

	row := repository.db.QueryRow(context, query, value)
	view, err := scanView(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find_view")
	}
	return view, nil
}

func (repository *PostgresRepository) List(context context.Context, contentTypeID string, limit, offset int) ([]*View, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`, viewSelectColumns(), schema.CMSView.Table, schema.CMSView.ContentTypeID, schema.CMSView.Label)

	rows, err := repository.db.Query(context, query, contentTypeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_views")
	}
	defer rows.Close()

	views := make([]*View, 0)
	total := 0

	for rows.Next() {
		view, err := scanViewWithTotal(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_view")
		}
		views = append(views, view)
	}

	return views, total, nil
}

func (repository *PostgresRepository) ExistsByRoutePath(context context.Context, routePath string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CMSView.Table, schema.CMSView.RoutePath)

	exists := false
	if err := repository.db.QueryRow(context, query, routePath).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "view_route_path_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) ExistsByDeveloperName(context context.Context, contentTypeID, developerName string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CMSView.Table, schema.CMSView.ContentTypeID, schema.CMSView.DeveloperName)

	exists := false
	if err := repository.db.QueryRow(context, query, contentTypeID, developerName).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "view_developer_name_exists")
	}
	return exists, nil
}

// # Item Listing

func (repository *PostgresRepository) ListItems(context context.Context, contentTypeID, where string, args []any, orderBy string, limit, offset int) ([]*contentitem.ContentItem, int, error) {
	conditions := fmt.Sprintf("%s = $1", schema.CMSContentItem.ContentTypeID)
	if where != "" {
		conditions += " AND " + where
	}
	if orderBy == "" {
		orderBy = schema.CMSContentItem.CreatedAt + " DESC"
	}

	limitArg := len(args) + 2
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`,
		schema.CMSContentItem.ID, schema.CMSContentItem.ContentTypeID,
		schema.CMSContentItem.IsPublished, schema.CMSContentItem.IsDraft,
		schema.CMSContentItem.DraftContent, schema.CMSContentItem.PublishedContent,
		schema.CMSContentItem.RoutePath, schema.CMSContentItem.WebTemplateID,
		schema.CMSContentItem.CreatedAt, schema.CMSContentItem.UpdatedAt,
		schema.CMSContentItem.Table,
		conditions,
		orderBy,
		limitArg, limitArg+1,
	)

	queryArgs := append([]any{contentTypeID}, args...)
	queryArgs = append(queryArgs, limit, offset)

	rows, err := repository.db.Query(context, query, queryArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_view_items")
	}
	defer rows.Close()

	items := make([]*contentitem.ContentItem, 0)
	total := 0

	for rows.Next() {
		item := &contentitem.ContentItem{}
		var draftJSON, publishedJSON []byte

		if err := rows.Scan(
			&item.ID, &item.ContentTypeID,
			&item.IsPublished, &item.IsDraft,
			&draftJSON, &publishedJSON,
			&item.RoutePath, &item.WebTemplateID,
			&item.CreatedAt, &item.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_view_item")
		}

		if len(draftJSON) > 0 {
			if err := json.Unmarshal(draftJSON, &item.DraftContent); err != nil {
				return nil, 0, fmt.Errorf("view: unmarshal draft: %w", err)
			}
		}
		if len(publishedJSON) > 0 {
			if err := json.Unmarshal(publishedJSON, &item.PublishedContent); err != nil {
				return nil, 0, fmt.Errorf("view: unmarshal published: %w", err)
			}
		}
		items = append(items, item)
	}

	return items, total, nil
}

// # Serialization Helpers

func marshalViewParts(view *View) (filterJSON, columnsJSON, sortsJSON []byte, err error) {
	if view.Filter != nil {
		filterJSON, err = json.Marshal(view.Filter)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("view: marshal filter: %w", err)
		}
	}
	columnsJSON, err = json.Marshal(view.Columns)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("view: marshal columns: %w", err)
	}
	sortsJSON, err = json.Marshal(view.Sorts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("view: marshal sorts: %w", err)
	}
	return filterJSON, columnsJSON, sortsJSON, nil
}

func viewSelectColumns() string {
	t := schema.CMSView
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s",
		t.ID, t.ContentTypeID, t.Label, t.DeveloperName, t.Description,
		t.RoutePath, t.Filter, t.ViewColumns, t.Sorts, t.IsPublished,
		t.DefaultItemsPerPage, t.MaxItemsPerPage, t.IgnoreClientFilterSort, t.FavoritedBy,
		t.CreatorUserID, t.LastModifierUserID, t.CreatedAt, t.UpdatedAt,
	)
}

func scanView(row pgx.Row) (*View, error) {
	view := &View{}
	var filterJSON, columnsJSON, sortsJSON []byte

	err := row.Scan(
		&view.ID, &view.ContentTypeID, &view.Label, &view.DeveloperName, &view.Description,
		&view.RoutePath, &filterJSON, &columnsJSON, &sortsJSON, &view.IsPublished,
		&view.DefaultItemsPerPage, &view.MaxItemsPerPage, &view.IgnoreClientFilterSort, &view.FavoritedBy,
		&view.CreatorUserID, &view.LastModifierUserID, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return view, unmarshalViewParts(view, filterJSON, columnsJSON, sortsJSON)
}

func scanViewWithTotal(row pgx.Row, total *int) (*View, error) {
	view := &View{}
	var filterJSON, columnsJSON, sortsJSON []byte

	err := row.Scan(
		&view.ID, &view.ContentTypeID, &view.Label, &view.DeveloperName, &view.Description,
		&view.RoutePath, &filterJSON, &columnsJSON, &sortsJSON, &view.IsPublished,
		&view.DefaultItemsPerPage, &view.MaxItemsPerPage, &view.IgnoreClientFilterSort, &view.FavoritedBy,
		&view.CreatorUserID, &view.LastModifierUserID, &view.CreatedAt, &view.UpdatedAt,
		total,
	)
	if err != nil {
		return nil, err
	}

	return view, unmarshalViewParts(view, filterJSON, columnsJSON, sortsJSON)
}

func unmarshalViewParts(view *View, filterJSON, columnsJSON, sortsJSON []byte) error {
	if len(filterJSON) > 0 {
		view.Filter = &FilterNode{}
		if err := json.Unmarshal(filterJSON, view.Filter); err != nil {
			return fmt.Errorf("view: unmarshal filter: %w", err)
		}
	}
	if len(columnsJSON) > 0 {
		if err := json.Unmarshal(columnsJSON, &view.Columns); err != nil {
			return fmt.Errorf("view: unmarshal columns: %w", err)
		}
	}
	if len(sortsJSON) > 0 {
		if err := json.Unmarshal(sortsJSON, &view.Sorts); err != nil {
			return fmt.Errorf("view: unmarshal sorts: %w", err)
		}
	}
	return nil
}
