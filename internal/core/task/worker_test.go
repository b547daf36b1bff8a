// Copyright (c) 2026 Raytha. All rights reserved.

package task_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/task"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
)

// fakeTaskRepository is an in-memory queue for worker tests.
type fakeTaskRepository struct {
	tasks map[string]*task.Task
	seq   int
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[string]*task.Task)}
}

func (f *fakeTaskRepository) Create(_ context.Context, queued *task.Task) error {
	f.seq++
	clone := *queued
	clone.CreatedAt = time.Unix(int64(f.seq), 0)
	f.tasks[queued.ID] = &clone
	return nil
}

func (f *fakeTaskRepository) FindByID(_ context.Context, id string) (*task.Task, error) {
	stored, ok := f.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	clone := *stored
	return &clone, nil
}

func (f *fakeTaskRepository) List(_ context.Context, limit, offset int) ([]*task.Task, int, error) {
	all := make([]*task.Task, 0, len(f.tasks))
	for _, stored := range f.tasks {
		all = append(all, stored)
	}
	sort.Slice(all, func(a, b int) bool { return all[a].CreatedAt.After(all[b].CreatedAt) })
	return all, len(all), nil
}

func (f *fakeTaskRepository) ClaimNext(_ context.Context) (*task.Task, error) {
	var oldest *task.Task
	for _, stored := range f.tasks {
		if stored.Status != task.StatusEnqueued {
			continue
		}
		if oldest == nil || stored.CreatedAt.Before(oldest.CreatedAt) {
			oldest = stored
		}
	}
	if oldest == nil {
		return nil, apperr.NotFound("Task")
	}
	oldest.Status = task.StatusProcessing
	clone := *oldest
	return &clone, nil
}

func (f *fakeTaskRepository) Requeue(_ context.Context, id string, numberOfRetries int, statusInfo string) error {
	stored, ok := f.tasks[id]
	if !ok {
		return apperr.NotFound("Task")
	}
	stored.Status = task.StatusEnqueued
	stored.NumberOfRetries = numberOfRetries
	stored.StatusInfo = statusInfo
	return nil
}

func (f *fakeTaskRepository) SetProgress(_ context.Context, id string, percentComplete int, statusInfo string) error {
	stored, ok := f.tasks[id]
	if !ok {
		return apperr.NotFound("Task")
	}
	stored.PercentComplete = percentComplete
	stored.StatusInfo = statusInfo
	return nil
}

func (f *fakeTaskRepository) MarkComplete(_ context.Context, id, statusInfo string) error {
	stored, ok := f.tasks[id]
	if !ok {
		return apperr.NotFound("Task")
	}
	now := time.Now()
	stored.Status = task.StatusComplete
	stored.PercentComplete = 100
	stored.StatusInfo = statusInfo
	stored.CompletedAt = &now
	return nil
}

func (f *fakeTaskRepository) MarkFailed(_ context.Context, id, errorMessage string) error {
	stored, ok := f.tasks[id]
	if !ok {
		return apperr.NotFound("Task")
	}
	now := time.Now()
	stored.Status = task.StatusError
	stored.ErrorMessage = errorMessage
	stored.CompletedAt = &now
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnqueueValidatesName(t *testing.T) {
	service := task.NewService(newFakeTaskRepository())

	_, err := service.Enqueue(context.Background(), "", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestEnqueueAndGet(t *testing.T) {
	repo := newFakeTaskRepository()
	service := task.NewService(repo)

	taskID, err := service.Enqueue(context.Background(), "export-content", map[string]string{"format": "csv"})
	require.NoError(t, err)

	queued, err := service.Get(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, task.StatusEnqueued, queued.Status)
	assert.Equal(t, "export-content", queued.Name)
	assert.JSONEq(t, `{"format":"csv"}`, string(queued.Args))
}

func TestWorkerCompletesTask(t *testing.T) {
	repo := newFakeTaskRepository()
	service := task.NewService(repo)
	worker := task.NewWorker(repo, quietLogger())

	var seenArgs json.RawMessage
	worker.Register("export-content", func(_ context.Context, claimed *task.Task, progress task.ProgressFunc) error {
		seenArgs = claimed.Args
		progress(50, "halfway")
		return nil
	})

	taskID, err := service.Enqueue(context.Background(), "export-content", map[string]string{"format": "csv"})
	require.NoError(t, err)

	assert.True(t, worker.RunOnce(context.Background()))
	assert.False(t, worker.RunOnce(context.Background()))

	done, err := service.Get(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, task.StatusComplete, done.Status)
	assert.Equal(t, 100, done.PercentComplete)
	assert.NotNil(t, done.CompletedAt)
	assert.JSONEq(t, `{"format":"csv"}`, string(seenArgs))
}

func TestWorkerRetriesThenFails(t *testing.T) {
	repo := newFakeTaskRepository()
	service := task.NewService(repo)
	worker := task.NewWorker(repo, quietLogger())

	attempts := 0
	worker.Register("flaky", func(context.Context, *task.Task, task.ProgressFunc) error {
		attempts++
		return errors.New("boom")
	})

	taskID, err := service.Enqueue(context.Background(), "flaky", nil)
	require.NoError(t, err)

	// Three retries plus the original attempt, then the task settles.
	for range [4]struct{}{} {
		assert.True(t, worker.RunOnce(context.Background()))
	}
	assert.False(t, worker.RunOnce(context.Background()))

	failed, err := service.Get(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, task.StatusError, failed.Status)
	assert.Equal(t, "boom", failed.ErrorMessage)
	assert.Equal(t, 3, failed.NumberOfRetries)
	assert.Equal(t, 4, attempts)
}

func TestWorkerFailsUnregisteredTask(t *testing.T) {
	repo := newFakeTaskRepository()
	service := task.NewService(repo)
	worker := task.NewWorker(repo, quietLogger())

	taskID, err := service.Enqueue(context.Background(), "nobody-home", nil)
	require.NoError(t, err)

	assert.True(t, worker.RunOnce(context.Background()))

	failed, err := service.Get(context.Background(), taskID)
	require.NoError(t, err)

	assert.Equal(t, task.StatusError, failed.Status)
	assert.Contains(t, failed.ErrorMessage, "nobody-home")
}

func TestWorkerProgressIsAdvisory(t *testing.T) {
	repo := newFakeTaskRepository()
	service := task.NewService(repo)
	worker := task.NewWorker(repo, quietLogger())

	worker.Register("slow", func(_ context.Context, claimed *task.Task, progress task.ProgressFunc) error {
		progress(25, "a quarter in")
		midway, err := repo.FindByID(context.Background(), claimed.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, midway.PercentComplete)
		assert.Equal(t, "a quarter in", midway.StatusInfo)
		return nil
	})

	taskID, err := service.Enqueue(context.Background(), "slow", nil)
	require.NoError(t, err)

	assert.True(t, worker.RunOnce(context.Background()))

	done, err := service.Get(context.Background(), taskID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusComplete, done.Status)
}
