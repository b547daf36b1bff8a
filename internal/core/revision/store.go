// Copyright (c) 2026 Raytha. All rights reserved.

package revision

import (
	"context"
	"encoding/json"
)

type Repository interface {
	Create(context context.Context, parentType ParentType, parentID string, snapshot json.RawMessage, actorID string) (*Revision, error)
	GetByID(context context.Context, id string) (*Revision, error)
	ListByParent(context context.Context, parentType ParentType, parentID string, limit, offset int) ([]*Revision, int, error)
}
