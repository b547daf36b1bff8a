// Copyright (c) 2026 Raytha. All rights reserved.

package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/constants"
)

// maxRetries bounds how often a failing task is requeued before it is
// marked as errored.
const maxRetries = 3

// ProgressFunc lets a running handler report advisory progress.
type ProgressFunc func(percentComplete int, statusInfo string)

// HandlerFunc executes one claimed task. Returning an error requeues the
// task until its retry budget is exhausted.
type HandlerFunc func(context context.Context, claimed *Task, progress ProgressFunc) error

// Worker is the in-process consumer pool of the background task queue.
type Worker struct {
	repo     Repository
	logger   *slog.Logger
	interval time.Duration

	mu       sync.RWMutex
	handlers map[string]HandlerFunc

	wg sync.WaitGroup
}

// NewWorker constructs a worker pool polling at the default interval.
func NewWorker(repo Repository, logger *slog.Logger) *Worker {
	return &Worker{
		repo:     repo,
		logger:   logger,
		interval: constants.TaskPollInterval,
		handlers: make(map[string]HandlerFunc),
	}
}

// Register binds a handler to a task name. Later registrations under the
// same name win.
func (worker *Worker) Register(name string, handler HandlerFunc) {
	worker.mu.Lock()
	defer worker.mu.Unlock()
	worker.handlers[name] = handler
}

// Start launches the consumer goroutines. They poll until the context is
// cancelled; call [Worker.Drain] to wait for in-flight tasks afterwards.
func (worker *Worker) Start(context context.Context) {
	for index := 0; index < constants.TaskWorkerCount; index++ {
		worker.wg.Add(1)
		go func(workerIndex int) {
			defer worker.wg.Done()
			worker.loop(context, workerIndex)
		}(index)
	}
}

// Drain blocks until every consumer goroutine has finished its current
// task and exited.
func (worker *Worker) Drain() {
	worker.wg.Wait()
}

func (worker *Worker) loop(context context.Context, workerIndex int) {
	worker.logger.Info("task worker started", "worker", workerIndex)

	ticker := time.NewTicker(worker.interval)
	defer ticker.Stop()

	for {
		// Keep claiming while work is available, then fall back to the
		// poll interval.
		for worker.RunOnce(context) {
			if context.Err() != nil {
				return
			}
		}

		select {
		case <-context.Done():
			worker.logger.Info("task worker stopping", "worker", workerIndex)
			return
		case <-ticker.C:
		}
	}
}

/*
RunOnce claims and executes at most one task.

Description: The oldest enqueued task is claimed, dispatched to its
registered handler, and moved to a terminal status (or requeued when the
handler fails and retries remain). A task without a registered handler is
marked as errored immediately.

Parameters:
  - context: context.Context

Returns:
  - bool: Whether a task was claimed
*/
func (worker *Worker) RunOnce(context context.Context) bool {
	claimed, err := worker.repo.ClaimNext(context)
	if err != nil {
		return false
	}

	logger := worker.logger.With("task_id", claimed.ID, "task_name", claimed.Name)

	worker.mu.RLock()
	handler, registered := worker.handlers[claimed.Name]
	worker.mu.RUnlock()

	if !registered {
		logger.Error("no handler registered for task")
		if err := worker.repo.MarkFailed(context, claimed.ID, fmt.Sprintf("No handler registered for %q", claimed.Name)); err != nil {
			logger.Error("failed to mark task as errored", "error", err)
		}
		return true
	}

	progress := func(percentComplete int, statusInfo string) {
		if err := worker.repo.SetProgress(context, claimed.ID, percentComplete, statusInfo); err != nil {
			logger.Warn("failed to persist task progress", "error", err)
		}
	}

	if handlerErr := handler(context, claimed, progress); handlerErr != nil {
		worker.settleFailure(context, logger, claimed, handlerErr)
		return true
	}

	if err := worker.repo.MarkComplete(context, claimed.ID, claimed.StatusInfo); err != nil {
		logger.Error("failed to mark task as complete", "error", err)
		return true
	}

	logger.Info("task complete")
	return true
}

func (worker *Worker) settleFailure(context context.Context, logger *slog.Logger, claimed *Task, handlerErr error) {
	if claimed.NumberOfRetries >= maxRetries {
		logger.Error("task failed permanently", "error", handlerErr, "retries", claimed.NumberOfRetries)
		if err := worker.repo.MarkFailed(context, claimed.ID, handlerErr.Error()); err != nil {
			logger.Error("failed to mark task as errored", "error", err)
		}
		return
	}

	logger.Warn("task failed, requeueing", "error", handlerErr, "retries", claimed.NumberOfRetries)
	info := fmt.Sprintf("Retrying after failure: %v", handlerErr)
	if err := worker.repo.Requeue(context, claimed.ID, claimed.NumberOfRetries+1, info); err != nil {
		logger.Error("failed to requeue task", "error", err)
	}
}
