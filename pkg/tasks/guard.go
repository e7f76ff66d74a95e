package tasks

import (
	"errors"

	"github.com/Gudini108/tasktracker/pkg/auth"
)

var (
	// ErrNotFound is returned for an unknown task id, and for reads of a
	// task the caller does not own so foreign tasks are indistinguishable
	// from absent ones.
	ErrNotFound = errors.New("task not found")

	// ErrForbidden is returned when a caller mutates an existing task owned
	// by another account.
	ErrForbidden = errors.New("can't modify other user's tasks")
)

// Authorize decides whether account may perform op on task. It is a pure
// decision function: a nil task means the id did not resolve and answers
// ErrNotFound before any ownership consideration. Reads by a non-owner also
// answer ErrNotFound; update and delete by a non-owner answer ErrForbidden.
func Authorize(task *Task, account *auth.Account, op Operation) error {
	if task == nil {
		return ErrNotFound
	}
	if account != nil && task.Owner.ID == account.ID {
		return nil
	}
	if op == OpRead {
		return ErrNotFound
	}
	return ErrForbidden
}
