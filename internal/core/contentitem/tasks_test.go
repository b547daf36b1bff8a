// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/task"
)

func emptyTrashTask(t *testing.T, contentTypeID string) *task.Task {
	t.Helper()
	args, err := json.Marshal(contentitem.EmptyTrashArgs{ContentTypeID: contentTypeID})
	require.NoError(t, err)
	return &task.Task{
		ID:   "t-1",
		Name: contentitem.EmptyTrashTaskName,
		Args: args,
	}
}

func TestEmptyTrashTaskPurgesAllDeletedItems(t *testing.T) {
	h := newTestHarness()

	for _, title := range []string{"First", "Second", "Third"} {
		item := h.publishNew(t, title)
		_, err := h.service.DeleteContentItem(context.Background(), item.ID)
		require.NoError(t, err)
	}
	require.Len(t, h.repo.trash, 3)

	var lastPercent int
	var lastInfo string
	progress := func(percent int, info string) {
		lastPercent = percent
		lastInfo = info
	}

	handler := contentitem.EmptyTrashTaskHandler(h.service)
	err := handler(context.Background(), emptyTrashTask(t, "b3f0c8aa-0000-7000-8000-0000000000aa"), progress)
	require.NoError(t, err)

	assert.Empty(t, h.repo.trash)
	assert.Equal(t, 100, lastPercent)
	assert.Equal(t, "Purged 3 deleted items", lastInfo)
}

func TestEmptyTrashTaskWithEmptyTrashCompletes(t *testing.T) {
	h := newTestHarness()

	handler := contentitem.EmptyTrashTaskHandler(h.service)
	err := handler(context.Background(), emptyTrashTask(t, "b3f0c8aa-0000-7000-8000-0000000000aa"), func(int, string) {})
	require.NoError(t, err)
}

func TestEmptyTrashTaskRejectsMalformedArgs(t *testing.T) {
	h := newTestHarness()

	handler := contentitem.EmptyTrashTaskHandler(h.service)
	err := handler(context.Background(), &task.Task{
		ID:   "t-2",
		Name: contentitem.EmptyTrashTaskName,
		Args: json.RawMessage(`{"content_type_id": "not-a-uuid"}`),
	}, func(int, string) {})
	require.Error(t, err)
}
