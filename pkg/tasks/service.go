package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gudini108/tasktracker/pkg/auth"
)

const maxTitleLength = 256

var (
	// ErrInvalidTitle is returned when a task title is empty or too long.
	ErrInvalidTitle = errors.New("task title must be between 1 and 256 characters")

	// ErrInvalidStatus is returned for a status outside the fixed enumeration.
	ErrInvalidStatus = errors.New("invalid task status")
)

// Store is the task persistence consumed by the service. GetTask returns
// (nil, nil) when no task matches.
type Store interface {
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, task *Task) (*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, filter Filter, page PageParams) (*Page, error)
}

// Service applies ownership rules on top of the task store. All task access
// by id flows through Authorize; listing is a separate, filterable view.
type Service struct {
	store Store
}

// NewService creates the task service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create persists a new task owned by the calling account.
func (s *Service) Create(ctx context.Context, owner *auth.Account, draft Draft) (*Task, error) {
	if len(draft.Title) == 0 || len(draft.Title) > maxTitleLength {
		return nil, ErrInvalidTitle
	}
	status := draft.Status
	if status == "" {
		status = StatusNew
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}

	return s.store.CreateTask(ctx, &Task{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      status,
		Owner:       Owner{ID: owner.ID, Username: owner.Username},
	})
}

// Get returns a task by id, owner-scoped.
func (s *Service) Get(ctx context.Context, caller *auth.Account, id int64) (*Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(task, caller, OpRead); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update to a task the caller owns.
func (s *Service) Update(ctx context.Context, caller *auth.Account, id int64, patch Patch) (*Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(task, caller, OpUpdate); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if len(*patch.Title) == 0 || len(*patch.Title) > maxTitleLength {
			return nil, ErrInvalidTitle
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w %q", ErrInvalidStatus, *patch.Status)
		}
		task.Status = *patch.Status
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task the caller owns and returns the removed record.
func (s *Service) Delete(ctx context.Context, caller *auth.Account, id int64) (*Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(task, caller, OpDelete); err != nil {
		return nil, err
	}
	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns a page of tasks matching the filter. Page parameters are
// normalized to page >= 1 and 1 <= size <= MaxPageSize.
func (s *Service) List(ctx context.Context, filter Filter, page PageParams) (*Page, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidStatus, *filter.Status)
	}
	return s.store.ListTasks(ctx, filter, page.Normalize())
}
