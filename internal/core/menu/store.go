// Copyright (c) 2026 Raytha. All rights reserved.

package menu

import "context"

// Repository is the persistence boundary for navigation menus.
//
// Implementations always hydrate the Items slice on every menu read,
// ordered by Ordinal within each sibling group.
type Repository interface {
	CreateMenu(context context.Context, menu *NavigationMenu) error
	UpdateMenu(context context.Context, menu *NavigationMenu) error
	DeleteMenu(context context.Context, id string) error
	FindMenuByID(context context.Context, id string) (*NavigationMenu, error)
	FindMenuByDeveloperName(context context.Context, developerName string) (*NavigationMenu, error)
	FindMainMenu(context context.Context) (*NavigationMenu, error)
	ListMenus(context context.Context, limit, offset int) ([]*NavigationMenu, int, error)
	ExistsMenuByDeveloperName(context context.Context, developerName string) (bool, error)

	// SetAsMainMenu flips the main flag to the given menu in one
	// transaction so exactly one menu carries it.
	SetAsMainMenu(context context.Context, id string) error

	CreateItem(context context.Context, item *NavigationMenuItem) error
	UpdateItem(context context.Context, item *NavigationMenuItem) error
	DeleteItem(context context.Context, itemID string) error

	// SaveItemOrder rewrites Ordinal for every listed item in one
	// transaction, assigning each id its slice index.
	SaveItemOrder(context context.Context, menuID string, orderedItemIDs []string) error

	// ReplaceItems deletes a menu's items and inserts the given set in
	// one transaction. Used when reverting a menu to a snapshot.
	ReplaceItems(context context.Context, menuID string, items []NavigationMenuItem) error
}
