// Copyright (c) 2026 Raytha. All rights reserved.

package view

import (
	"context"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
)

// Repository is the persistence boundary for saved views and their item
// listings.
type Repository interface {
	Create(context context.Context, view *View) error
	Update(context context.Context, view *View) error
	Delete(context context.Context, id string) error
	FindByID(context context.Context, id string) (*View, error)
	FindByRoutePath(context context.Context, routePath string) (*View, error)
	List(context context.Context, contentTypeID string, limit, offset int) ([]*View, int, error)
	ExistsByRoutePath(context context.Context, routePath string) (bool, error)
	ExistsByDeveloperName(context context.Context, contentTypeID, developerName string) (bool, error)

	// ListItems runs a compiled view query against the content item table.
	// where and orderBy are fragments produced by [CompileFilter] and
	// [CompileSorts]; args follow the contentTypeID positionally.
	ListItems(context context.Context, contentTypeID, where string, args []any, orderBy string, limit, offset int) ([]*contentitem.ContentItem, int, error)
}
