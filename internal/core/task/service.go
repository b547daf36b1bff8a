// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package task implements the background task queue.

Work is enqueued as a named task with a JSON payload and consumed by an
in-process worker pool. Claiming uses row locks so multiple workers (or
multiple API instances sharing the database) never run the same task
twice.
*/
package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Validation field identifiers surfaced in error details.
const (
	FieldName = "name"
	FieldArgs = "args"
)

// Service orchestrates queueing and inspection of background tasks.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

/*
Enqueue queues a named task for background execution.

Description: The payload is marshalled to JSON and stored with the task.
The returned id can be polled through Get until the task reaches a
terminal status.

Parameters:
  - name: string (Handler name registered with the worker pool)
  - payload: any (Handler-specific arguments, may be nil)

Returns:
  - string: The queued task's id
  - error: VALIDATION_ERROR when the name is empty or the payload cannot
    be marshalled
*/
func (service *Service) Enqueue(context context.Context, name string, payload any) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 120)
	if err := validator.Err(); err != nil {
		return "", err
	}

	args := json.RawMessage(nil)
	if payload != nil {
		marshalled, err := json.Marshal(payload)
		if err != nil {
			return "", validate.RequiredError(FieldArgs, fmt.Sprintf("Payload cannot be encoded: %v", err))
		}
		args = marshalled
	}

	queued := &Task{
		ID:     uuidv7.New(),
		Name:   name,
		Args:   args,
		Status: StatusEnqueued,
	}

	if err := service.repo.Create(context, queued); err != nil {
		return "", err
	}
	return queued.ID, nil
}

// Get fetches a task's current status, progress included.
func (service *Service) Get(context context.Context, id string) (*Task, error) {
	return service.repo.FindByID(context, id)
}

// List retrieves a paginated collection of tasks, newest first.
func (service *Service) List(context context.Context, limit, offset int) ([]*Task, int, error) {
	return service.repo.List(context, limit, offset)
}
