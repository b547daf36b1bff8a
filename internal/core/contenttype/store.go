// Copyright (c) 2026 Raytha. All rights reserved.

package contenttype

import (
	"context"

	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
)

// Repository is the persistence boundary for content type schemas.
//
// Implementations always hydrate the Fields slice (including logically
// deleted rows) on every read, ordered by FieldOrder.
type Repository interface {
	Create(context context.Context, contentType *ContentType) error
	Update(context context.Context, contentType *ContentType) error
	SoftDelete(context context.Context, id, actorID string) error
	FindByID(context context.Context, id string) (*ContentType, error)
	FindByDeveloperName(context context.Context, developerName string) (*ContentType, error)
	List(context context.Context, limit, offset int) ([]*ContentType, int, error)
	ExistsByDeveloperName(context context.Context, developerName string) (bool, error)

	CreateField(context context.Context, definition *field.Definition) error
	UpdateField(context context.Context, definition *field.Definition) error
	SoftDeleteField(context context.Context, fieldID string) error

	// SaveFieldOrder rewrites FieldOrder for every listed field in one
	// transaction, assigning each id its slice index.
	SaveFieldOrder(context context.Context, contentTypeID string, orderedFieldIDs []string) error
}
