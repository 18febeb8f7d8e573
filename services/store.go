package services

import (
	"context"

	"taskhive/model"
)

type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterToday     TaskFilter = "today"
	FilterCompleted TaskFilter = "completed"
	FilterOverdue   TaskFilter = "overdue"
	FilterShared    TaskFilter = "shared"
)

func ParseFilter(s string) (TaskFilter, error) {
	switch TaskFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterToday, FilterCompleted, FilterOverdue, FilterShared:
		return TaskFilter(s), nil
	}
	return "", ErrInvalidInput
}

// Store is the durable backing for tasks, users and the score ledger.
// Implementations: FirestoreStore and MemoryStore.
type Store interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	// ListTasksForActor returns tasks visible to the actor (owner or accepted
	// collaborator), newest first. FilterShared instead returns every task
	// where the actor appears in the collaborator list regardless of status.
	ListTasksForActor(ctx context.Context, actorID string, filter TaskFilter) ([]*model.Task, error)
	SaveTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error

	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	SaveUser(ctx context.Context, user *model.User) error

	// CommitTaskScore persists the task and, when entry is non-nil, appends
	// entry to the ledger and applies entry.Delta to the actor's point
	// balance clamped at zero. The whole commit is a single atomic step.
	CommitTaskScore(ctx context.Context, task *model.Task, entry *model.ScoreEntry) error
	// DeleteTaskScore removes the task and applies entry the same way.
	DeleteTaskScore(ctx context.Context, taskID string, entry *model.ScoreEntry) error
}
