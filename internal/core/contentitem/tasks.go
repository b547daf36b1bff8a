// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RaythaHQ/raytha-sub000/internal/core/task"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
)

// EmptyTrashTaskName identifies the background task that permanently
// purges every trashed item of one content type.
const EmptyTrashTaskName = "empty_content_type_trash"

// EmptyTrashArgs is the payload for [EmptyTrashTaskName].
type EmptyTrashArgs struct {
	ContentTypeID string `json:"content_type_id"`
}

// purgeBatchSize bounds how many trash entries one pass loads.
const purgeBatchSize = 100

// EmptyTrashTaskHandler returns the worker handler that drains a content
// type's trash. Progress is reported per purged entry so long-running
// purges stay observable through the task status endpoint.
func EmptyTrashTaskHandler(service *Service) task.HandlerFunc {
	return func(context context.Context, claimed *task.Task, progress task.ProgressFunc) error {
		var args EmptyTrashArgs
		if err := json.Unmarshal(claimed.Args, &args); err != nil {
			return fmt.Errorf("contentitem: decode empty trash args: %w", err)
		}

		validator := &validate.Validator{}
		validator.Required("content_type_id", args.ContentTypeID)
		validator.UUID("content_type_id", args.ContentTypeID)
		if validator.HasErrors() {
			return validator.Err()
		}

		return service.emptyTrash(context, args.ContentTypeID, progress)
	}
}

// emptyTrash purges trash entries in batches until none remain. It always
// reloads the first page because each purge shrinks the result set.
func (service *Service) emptyTrash(context context.Context, contentTypeID string, progress task.ProgressFunc) error {
	purged := 0
	total := 0

	for {
		entries, remaining, err := service.repo.ListDeleted(context, contentTypeID, purgeBatchSize, 0)
		if err != nil {
			return err
		}
		if total == 0 {
			total = remaining
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			if err := context.Err(); err != nil {
				return err
			}
			if err := service.repo.PurgeDeleted(context, entry.ID); err != nil {
				return err
			}
			purged++
			progress(percentOf(purged, total), fmt.Sprintf("Purged %d of %d deleted items", purged, total))
		}
	}

	progress(100, fmt.Sprintf("Purged %d deleted items", purged))
	return nil
}

func percentOf(done, total int) int {
	if total <= 0 {
		return 100
	}
	percent := done * 100 / total
	if percent > 100 {
		percent = 100
	}
	return percent
}
