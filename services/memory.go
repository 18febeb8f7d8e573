package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taskhive/model"
)

// MemoryStore keeps everything in process. It backs the tests and
// credential-less development runs; the mutex gives it the same atomic
// task+ledger commit the Firestore transaction provides.
type MemoryStore struct {
	mu      sync.RWMutex
	tasks   map[string]*model.Task
	users   map[string]*model.User
	entries []*model.ScoreEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*model.Task),
		users: make(map[string]*model.User),
	}
}

func cloneTask(t *model.Task) *model.Task {
	c := *t
	c.Collaborators = append([]model.Collaborator(nil), t.Collaborators...)
	c.CollabUserIDs = append([]string(nil), t.CollabUserIDs...)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

func (s *MemoryStore) CreateTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *MemoryStore) GetTask(_ context.Context, id string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTask(task), nil
}

func (s *MemoryStore) ListTasksForActor(_ context.Context, actorID string, filter TaskFilter) ([]*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Task
	for _, task := range s.tasks {
		if !matchesFilter(task, actorID, filter, time.Now()) {
			continue
		}
		out = append(out, cloneTask(task))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// matchesFilter implements the visibility and filter rules shared by both
// store implementations.
func matchesFilter(task *model.Task, actorID string, filter TaskFilter, now time.Time) bool {
	entry := task.FindCollaborator(actorID)
	if filter == FilterShared {
		return entry != nil
	}
	visible := task.Owner() == actorID || (entry != nil && entry.Status == model.CollabAccepted)
	if !visible {
		return false
	}
	switch filter {
	case FilterCompleted:
		return task.Completed
	case FilterToday:
		return !task.Completed
	case FilterOverdue:
		return !task.Completed && task.DueDate != nil && task.DueDate.Before(startOfDay(now))
	}
	return true
}

func (s *MemoryStore) SaveTask(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.TaskID]; !ok {
		return ErrNotFound
	}
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *MemoryStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return cloneUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = cloneUser(user)
	return nil
}

func (s *MemoryStore) SaveUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return ErrNotFound
	}
	s.users[user.UserID] = cloneUser(user)
	return nil
}

func (s *MemoryStore) CommitTaskScore(_ context.Context, task *model.Task, entry *model.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.applyEntry(entry); err != nil {
		return err
	}
	s.tasks[task.TaskID] = cloneTask(task)
	return nil
}

func (s *MemoryStore) DeleteTaskScore(_ context.Context, taskID string, entry *model.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[taskID]; !ok {
		return ErrNotFound
	}
	if err := s.applyEntry(entry); err != nil {
		return err
	}
	delete(s.tasks, taskID)
	return nil
}

// applyEntry adjusts the actor's balance (clamped at zero) and appends the
// entry to the ledger. Callers hold the write lock.
func (s *MemoryStore) applyEntry(entry *model.ScoreEntry) error {
	if entry == nil {
		return nil
	}
	user, ok := s.users[entry.ActorID]
	if !ok {
		return ErrNotFound
	}
	user.Points += entry.Delta
	if user.Points < 0 {
		user.Points = 0
	}
	s.entries = append(s.entries, entry)
	return nil
}

// ScoreEntries returns a copy of the ledger, oldest first.
func (s *MemoryStore) ScoreEntries() []*model.ScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.ScoreEntry(nil), s.entries...)
}
