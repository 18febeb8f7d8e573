package services

import (
	"context"
	"testing"
	"time"

	"taskhive/model"
)

func TestPriorityWeights(t *testing.T) {
	tests := []struct {
		priority model.Priority
		want     int
	}{
		{model.PriorityLow, 10},
		{model.PriorityMedium, 20},
		{model.PriorityHigh, 30},
		{model.Priority("bogus"), 0},
	}
	for _, tt := range tests {
		if got := tt.priority.Weight(); got != tt.want {
			t.Errorf("Weight(%q) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func seedUser(t *testing.T, store *MemoryStore, id string, points int) {
	t.Helper()
	err := store.CreateUser(context.Background(), &model.User{UserID: id, Email: id + "@example.com", Points: points})
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
}

func userPoints(t *testing.T, store *MemoryStore, id string) int {
	t.Helper()
	user, err := store.GetUser(context.Background(), id)
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	return user.Points
}

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedUser(t, store, "alice", 42)

	task := &model.Task{TaskID: "t1", OwnerID: "alice", Priority: model.PriorityHigh}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error: %v", err)
	}

	now := time.Now()

	// Toggle complete: +30 for high priority.
	task.Completed = true
	if err := store.CommitTaskScore(ctx, task, ToggleEntry(task, "alice", now)); err != nil {
		t.Fatalf("CommitTaskScore() error: %v", err)
	}
	if got := userPoints(t, store, "alice"); got != 72 {
		t.Errorf("points after complete = %d, want 72", got)
	}

	// Toggle back: -30, returning to the original balance.
	task.Completed = false
	if err := store.CommitTaskScore(ctx, task, ToggleEntry(task, "alice", now)); err != nil {
		t.Fatalf("CommitTaskScore() error: %v", err)
	}
	if got := userPoints(t, store, "alice"); got != 42 {
		t.Errorf("points after round trip = %d, want 42", got)
	}
}

func TestToggleCreditsActingUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedUser(t, store, "owner", 0)
	seedUser(t, store, "editor", 0)

	task := &model.Task{TaskID: "t1", OwnerID: "owner", Priority: model.PriorityMedium, Completed: true}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error: %v", err)
	}

	// The editor toggled it, so the editor earns the points.
	if err := store.CommitTaskScore(ctx, task, ToggleEntry(task, "editor", time.Now())); err != nil {
		t.Fatalf("CommitTaskScore() error: %v", err)
	}
	if got := userPoints(t, store, "editor"); got != 20 {
		t.Errorf("editor points = %d, want 20", got)
	}
	if got := userPoints(t, store, "owner"); got != 0 {
		t.Errorf("owner points = %d, want 0", got)
	}
}

func TestPointsNeverNegative(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seedUser(t, store, "alice", 5)

	task := &model.Task{TaskID: "t1", OwnerID: "alice", Priority: model.PriorityHigh, Completed: false}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error: %v", err)
	}

	// Debit of 30 against a balance of 5 clamps at zero.
	if err := store.CommitTaskScore(ctx, task, ToggleEntry(task, "alice", time.Now())); err != nil {
		t.Fatalf("CommitTaskScore() error: %v", err)
	}
	if got := userPoints(t, store, "alice"); got != 0 {
		t.Errorf("points = %d, want 0 (clamped)", got)
	}
}

func TestPriorityChangeEntry(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		old, next model.Priority
		wantDelta int
		wantNil   bool
	}{
		{"medium to high", model.PriorityMedium, model.PriorityHigh, 10, false},
		{"high to low", model.PriorityHigh, model.PriorityLow, -20, false},
		{"unchanged weight", model.PriorityLow, model.PriorityLow, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := PriorityChangeEntry("t1", "alice", tt.old, tt.next, now)
			if tt.wantNil {
				if entry != nil {
					t.Fatalf("PriorityChangeEntry() = %+v, want nil", entry)
				}
				return
			}
			if entry == nil {
				t.Fatal("PriorityChangeEntry() returned nil")
			}
			if entry.Delta != tt.wantDelta {
				t.Errorf("delta = %d, want %d", entry.Delta, tt.wantDelta)
			}
			if entry.Reason != model.ScorePriorityChange {
				t.Errorf("reason = %q, want %q", entry.Reason, model.ScorePriorityChange)
			}
		})
	}
}

func TestDeleteEntry(t *testing.T) {
	now := time.Now()

	completed := &model.Task{TaskID: "t1", OwnerID: "alice", Priority: model.PriorityMedium, Completed: true}
	entry := DeleteEntry(completed, "alice", now)
	if entry == nil || entry.Delta != -20 {
		t.Errorf("DeleteEntry(completed) = %+v, want delta -20", entry)
	}

	open := &model.Task{TaskID: "t2", OwnerID: "alice", Priority: model.PriorityMedium}
	if got := DeleteEntry(open, "alice", now); got != nil {
		t.Errorf("DeleteEntry(incomplete) = %+v, want nil", got)
	}
}

func TestApplyLoginStreak(t *testing.T) {
	base := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		streak     int
		last       *time.Time
		now        time.Time
		wantStreak int
	}{
		{"first login", 0, nil, base, 1},
		{"same day keeps streak", 5, tp(base.Add(-2 * time.Hour)), base, 5},
		{"next day extends", 5, tp(base.AddDate(0, 0, -1)), base, 6},
		{"three day gap resets", 5, tp(base.AddDate(0, 0, -3)), base, 1},
		{"next calendar day across midnight", 2, tp(time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC)), time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{UserID: "u1", StreakDays: tt.streak, LastLoginAt: tt.last}
			ApplyLoginStreak(user, tt.now)
			if user.StreakDays != tt.wantStreak {
				t.Errorf("streakDays = %d, want %d", user.StreakDays, tt.wantStreak)
			}
			if user.LastLoginAt == nil || !user.LastLoginAt.Equal(tt.now) {
				t.Error("lastLoginAt should be updated to now")
			}
		})
	}
}

func tp(t time.Time) *time.Time { return &t }
