// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem

import (
	"context"
	"encoding/json"
)

// Repository is the persistence boundary for live and trashed content items.
type Repository interface {
	Create(context context.Context, item *ContentItem) error
	Update(context context.Context, item *ContentItem) error

	// CreateWithRevision inserts the item and appends its first
	// content_item revision in the same transaction. Used by the
	// create-and-publish path: a published item must never exist without
	// its snapshot.
	CreateWithRevision(context context.Context, item *ContentItem, snapshot json.RawMessage, actorID string) error

	// UpdateWithRevision persists the item and appends a content_item
	// revision in the same transaction. Publish and revert depend on the
	// item state and its snapshot landing together or not at all.
	UpdateWithRevision(context context.Context, item *ContentItem, snapshot json.RawMessage, actorID string) error

	FindByID(context context.Context, id string) (*ContentItem, error)
	FindByRoutePath(context context.Context, routePath string) (*ContentItem, error)
	List(context context.Context, contentTypeID string, limit, offset int) ([]*ContentItem, int, error)
	ExistsByRoutePath(context context.Context, routePath string) (bool, error)

	// MoveToTrash inserts the trash row and removes the live row in one
	// transaction.
	MoveToTrash(context context.Context, itemID string, deleted *DeletedContentItem) error

	// RestoreFromTrash recreates the live row and removes the trash row
	// in one transaction.
	RestoreFromTrash(context context.Context, deletedID string, item *ContentItem) error

	FindDeletedByID(context context.Context, id string) (*DeletedContentItem, error)
	ListDeleted(context context.Context, contentTypeID string, limit, offset int) ([]*DeletedContentItem, int, error)
	PurgeDeleted(context context.Context, id string) error
}

// RouteCache is the hot-path lookup from route path to content item id.
//
// Cache misses and cache errors are equivalent to the caller: fall through
// to the repository. Every route write must invalidate.
type RouteCache interface {
	GetItemID(context context.Context, routePath string) (string, bool)
	SetItemID(context context.Context, routePath, itemID string)
	Invalidate(context context.Context, routePath string)
}
