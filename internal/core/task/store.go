// Copyright (c) 2026 Raytha. All rights reserved.

package task

import "context"

// Repository is the persistence boundary for the background task queue.
type Repository interface {
	Create(context context.Context, task *Task) error
	FindByID(context context.Context, id string) (*Task, error)
	List(context context.Context, limit, offset int) ([]*Task, int, error)

	// ClaimNext atomically picks the oldest enqueued task and flips it to
	// processing. Concurrent workers never claim the same row. Returns
	// NOT_FOUND when the queue is empty.
	ClaimNext(context context.Context) (*Task, error)

	// Requeue puts a claimed task back on the queue with an incremented
	// retry counter.
	Requeue(context context.Context, id string, numberOfRetries int, statusInfo string) error

	SetProgress(context context.Context, id string, percentComplete int, statusInfo string) error
	MarkComplete(context context.Context, id, statusInfo string) error
	MarkFailed(context context.Context, id, errorMessage string) error
}
