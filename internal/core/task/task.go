// Copyright (c) 2026 Raytha. All rights reserved.

package task

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a background task.
type Status string

const (
	StatusEnqueued   Status = "enqueued"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// IsValid reports whether the status is one of the lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusEnqueued, StatusProcessing, StatusComplete, StatusError:
		return true
	}
	return false
}

// IsTerminal reports whether the task will not be picked up again.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusError
}

// Task is one queued unit of background work.
//
// Args is an opaque JSON payload interpreted by the registered handler.
// PercentComplete and StatusInfo are progress hints written by the handler
// while it runs; they are advisory, not part of the lifecycle.
type Task struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Args            json.RawMessage `json:"args,omitempty"`
	Status          Status          `json:"status"`
	StatusInfo      string          `json:"status_info,omitempty"`
	PercentComplete int             `json:"percent_complete"`
	NumberOfRetries int             `json:"number_of_retries"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}
