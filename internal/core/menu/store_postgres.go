// Copyright (c) 2026 Raytha. All rights reserved.

package menu

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

// NewPostgresRepository constructs a PostgreSQL backed menu store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Menus

func (repository *PostgresRepository) CreateMenu(context context.Context, menu *NavigationMenu) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
	`,
		schema.CMSNavigationMenu.Table,
		schema.CMSNavigationMenu.ID, schema.CMSNavigationMenu.Label, schema.CMSNavigationMenu.DeveloperName,
		schema.CMSNavigationMenu.IsMainMenu,
		schema.CMSNavigationMenu.CreatorUserID, schema.CMSNavigationMenu.LastModifierUserID,
	)

	_, err := repository.db.Exec(context, query,
		menu.ID, menu.Label, menu.DeveloperName, menu.IsMainMenu,
		menu.CreatorUserID, menu.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "create_menu")
	}
	return nil
}

func (repository *PostgresRepository) UpdateMenu(context context.Context, menu *NavigationMenu) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NULLIF($3, ''), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSNavigationMenu.Table,
		schema.CMSNavigationMenu.Label, schema.CMSNavigationMenu.LastModifierUserID,
		schema.CMSNavigationMenu.UpdatedAt,
		schema.CMSNavigationMenu.ID,
	)

	tag, err := repository.db.Exec(context, query, menu.ID, menu.Label, menu.LastModifierUserID)
	if err != nil {
		return dberr.Wrap(err, "update_menu")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_menu")
	}
	return nil
}

func (repository *PostgresRepository) DeleteMenu(context context.Context, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "delete_menu_begin")
	}
	defer tx.Rollback(context)

	deleteItems := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSNavigationMenuItem.Table, schema.CMSNavigationMenuItem.NavigationMenuID)
	if _, err := tx.Exec(context, deleteItems, id); err != nil {
		return dberr.Wrap(err, "delete_menu_items")
	}

	deleteMenu := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSNavigationMenu.Table, schema.CMSNavigationMenu.ID)
	tag, err := tx.Exec(context, deleteMenu, id)
	if err != nil {
		return dberr.Wrap(err, "delete_menu")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_menu")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "delete_menu_commit")
	}
	return nil
}

func (repository *PostgresRepository) FindMenuByID(context context.Context, id string) (*NavigationMenu, error) {
	return repository.findMenu(context, schema.CMSNavigationMenu.ID+" = $1", id)
}

func (repository *PostgresRepository) FindMenuByDeveloperName(context context.Context, developerName string) (*NavigationMenu, error) {
	return repository.findMenu(context, schema.CMSNavigationMenu.DeveloperName+" = $1", developerName)
}

func (repository *PostgresRepository) FindMainMenu(context context.Context) (*NavigationMenu, error) {
	return repository.findMenu(context, schema.CMSNavigationMenu.IsMainMenu+" = $1", true)
}

func (repository *PostgresRepository) findMenu(context context.Context, condition string, argument any) (*NavigationMenu, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s
		FROM %s
		WHERE %s
	`,
		schema.CMSNavigationMenu.ID, schema.CMSNavigationMenu.Label, schema.CMSNavigationMenu.DeveloperName,
		schema.CMSNavigationMenu.IsMainMenu,
		schema.CMSNavigationMenu.CreatorUserID, schema.CMSNavigationMenu.LastModifierUserID,
		schema.CMSNavigationMenu.CreatedAt, schema.CMSNavigationMenu.UpdatedAt,
		schema.CMSNavigationMenu.Table,
		condition,
	)

	menu := &NavigationMenu{}
	err := repository.db.QueryRow(context, query, argument).Scan(
		&menu.ID, &menu.Label, &menu.DeveloperName, &menu.IsMainMenu,
		&menu.CreatorUserID, &menu.LastModifierUserID,
		&menu.CreatedAt, &menu.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_menu")
	}

	if err := repository.hydrateItems(context, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (repository *PostgresRepository) ListMenus(context context.Context, limit, offset int) ([]*NavigationMenu, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s,
		       COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`,
		schema.CMSNavigationMenu.ID, schema.CMSNavigationMenu.Label, schema.CMSNavigationMenu.DeveloperName,
		schema.CMSNavigationMenu.IsMainMenu,
		schema.CMSNavigationMenu.CreatorUserID, schema.CMSNavigationMenu.LastModifierUserID,
		schema.CMSNavigationMenu.CreatedAt, schema.CMSNavigationMenu.UpdatedAt,
		schema.CMSNavigationMenu.Table,
		schema.CMSNavigationMenu.Label,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_menus")
	}
	defer rows.Close()

	menus := make([]*NavigationMenu, 0)
	total := 0

	for rows.Next() {
		menu := &NavigationMenu{}
		if err := rows.Scan(
			&menu.ID, &menu.Label, &menu.DeveloperName, &menu.IsMainMenu,
			&menu.CreatorUserID, &menu.LastModifierUserID,
			&menu.CreatedAt, &menu.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_menu")
		}
		menus = append(menus, menu)
	}

	for _, menu := range menus {
		if err := repository.hydrateItems(context, menu); err != nil {
			return nil, 0, err
		}
	}
	return menus, total, nil
}

func (repository *PostgresRepository) ExistsMenuByDeveloperName(context context.Context, developerName string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CMSNavigationMenu.Table, schema.CMSNavigationMenu.DeveloperName)

	exists := false
	if err := repository.db.QueryRow(context, query, developerName).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "menu_name_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) SetAsMainMenu(context context.Context, id string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "set_main_menu_begin")
	}
	defer tx.Rollback(context)

	clear := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = TRUE`,
		schema.CMSNavigationMenu.Table, schema.CMSNavigationMenu.IsMainMenu, schema.CMSNavigationMenu.IsMainMenu)
	if _, err := tx.Exec(context, clear); err != nil {
		return dberr.Wrap(err, "clear_main_menu")
	}

	flag := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1`,
		schema.CMSNavigationMenu.Table, schema.CMSNavigationMenu.IsMainMenu,
		schema.CMSNavigationMenu.UpdatedAt, schema.CMSNavigationMenu.ID)
	tag, err := tx.Exec(context, flag, id)
	if err != nil {
		return dberr.Wrap(err, "set_main_menu")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "set_main_menu")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "set_main_menu_commit")
	}
	return nil
}

// # Menu Items

func (repository *PostgresRepository) CreateItem(context context.Context, item *NavigationMenuItem) error {
	query := itemInsertQuery()

	_, err := repository.db.Exec(context, query,
		item.ID, item.NavigationMenuID, item.Label, item.URL,
		item.IsDisabled, item.OpenInNewTab, item.CSSClassName,
		item.Ordinal, item.ParentItemID,
		item.CreatorUserID, item.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "create_menu_item")
	}
	return nil
}

func (repository *PostgresRepository) UpdateItem(context context.Context, item *NavigationMenuItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = NULLIF($9, ''), %s = NOW()
		WHERE %s = $1
	`,
		schema.CMSNavigationMenuItem.Table,
		schema.CMSNavigationMenuItem.Label, schema.CMSNavigationMenuItem.URL,
		schema.CMSNavigationMenuItem.IsDisabled, schema.CMSNavigationMenuItem.OpenInNewTab,
		schema.CMSNavigationMenuItem.CSSClassName, schema.CMSNavigationMenuItem.Ordinal,
		schema.CMSNavigationMenuItem.ParentItemID,
		schema.CMSNavigationMenuItem.LastModifierUserID, schema.CMSNavigationMenuItem.UpdatedAt,
		schema.CMSNavigationMenuItem.ID,
	)

	tag, err := repository.db.Exec(context, query,
		item.ID, item.Label, item.URL, item.IsDisabled, item.OpenInNewTab,
		item.CSSClassName, item.Ordinal, item.ParentItemID,
		item.LastModifierUserID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_menu_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_menu_item")
	}
	return nil
}

func (repository *PostgresRepository) DeleteItem(context context.Context, itemID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSNavigationMenuItem.Table, schema.CMSNavigationMenuItem.ID)

	tag, err := repository.db.Exec(context, query, itemID)
	if err != nil {
		return dberr.Wrap(err, "delete_menu_item")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_menu_item")
	}
	return nil
}

func (repository *PostgresRepository) SaveItemOrder(context context.Context, menuID string, orderedItemIDs []string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "save_item_order_begin")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s = $3`,
		schema.CMSNavigationMenuItem.Table,
		schema.CMSNavigationMenuItem.Ordinal, schema.CMSNavigationMenuItem.UpdatedAt,
		schema.CMSNavigationMenuItem.ID, schema.CMSNavigationMenuItem.NavigationMenuID,
	)

	for ordinal, itemID := range orderedItemIDs {
		if _, err := tx.Exec(context, query, ordinal, itemID, menuID); err != nil {
			return dberr.Wrap(err, "save_item_order")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "save_item_order_commit")
	}
	return nil
}

func (repository *PostgresRepository) ReplaceItems(context context.Context, menuID string, items []NavigationMenuItem) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "replace_items_begin")
	}
	defer tx.Rollback(context)

	deleteItems := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CMSNavigationMenuItem.Table, schema.CMSNavigationMenuItem.NavigationMenuID)
	if _, err := tx.Exec(context, deleteItems, menuID); err != nil {
		return dberr.Wrap(err, "replace_items_delete")
	}

	insert := itemInsertQuery()
	for _, item := range items {
		if _, err := tx.Exec(context, insert,
			item.ID, menuID, item.Label, item.URL,
			item.IsDisabled, item.OpenInNewTab, item.CSSClassName,
			item.Ordinal, item.ParentItemID,
			item.CreatorUserID, item.LastModifierUserID,
		); err != nil {
			return dberr.Wrap(err, "replace_items_insert")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "replace_items_commit")
	}
	return nil
}

// # Internals

func itemInsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''))
	`,
		schema.CMSNavigationMenuItem.Table,
		schema.CMSNavigationMenuItem.ID, schema.CMSNavigationMenuItem.NavigationMenuID,
		schema.CMSNavigationMenuItem.Label, schema.CMSNavigationMenuItem.URL,
		schema.CMSNavigationMenuItem.IsDisabled, schema.CMSNavigationMenuItem.OpenInNewTab,
		schema.CMSNavigationMenuItem.CSSClassName, schema.CMSNavigationMenuItem.Ordinal,
		schema.CMSNavigationMenuItem.ParentItemID,
		schema.CMSNavigationMenuItem.CreatorUserID, schema.CMSNavigationMenuItem.LastModifierUserID,
	)
}

// hydrateItems loads a menu's items, parents before children, siblings in
// Ordinal order.
func (repository *PostgresRepository) hydrateItems(context context.Context, menu *NavigationMenu) error {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, COALESCE(%s::text, '') AS parent,
		       COALESCE(%s::text, ''), COALESCE(%s::text, ''), %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s NULLS FIRST, %s ASC
	`,
		schema.CMSNavigationMenuItem.ID, schema.CMSNavigationMenuItem.NavigationMenuID,
		schema.CMSNavigationMenuItem.Label, schema.CMSNavigationMenuItem.URL,
		schema.CMSNavigationMenuItem.IsDisabled, schema.CMSNavigationMenuItem.OpenInNewTab,
		schema.CMSNavigationMenuItem.CSSClassName, schema.CMSNavigationMenuItem.Ordinal,
		schema.CMSNavigationMenuItem.ParentItemID,
		schema.CMSNavigationMenuItem.CreatorUserID, schema.CMSNavigationMenuItem.LastModifierUserID,
		schema.CMSNavigationMenuItem.CreatedAt, schema.CMSNavigationMenuItem.UpdatedAt,
		schema.CMSNavigationMenuItem.Table,
		schema.CMSNavigationMenuItem.NavigationMenuID,
		schema.CMSNavigationMenuItem.ParentItemID, schema.CMSNavigationMenuItem.Ordinal,
	)

	rows, err := repository.db.Query(context, query, menu.ID)
	if err != nil {
		return dberr.Wrap(err, "list_menu_items")
	}
	defer rows.Close()

	menu.Items = make([]NavigationMenuItem, 0)
	for rows.Next() {
		item := NavigationMenuItem{}
		parent := ""

		if err := rows.Scan(
			&item.ID, &item.NavigationMenuID, &item.Label, &item.URL,
			&item.IsDisabled, &item.OpenInNewTab, &item.CSSClassName,
			&item.Ordinal, &parent,
			&item.CreatorUserID, &item.LastModifierUserID,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return dberr.Wrap(err, "scan_menu_item")
		}

		if parent != "" {
			item.ParentItemID = &parent
		}
		menu.Items = append(menu.Items, item)
	}
	return nil
}
