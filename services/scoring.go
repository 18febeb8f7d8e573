package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	"taskhive/model"
)

func newScoreEntry(taskID, actorID string, delta int, reason string, now time.Time) *model.ScoreEntry {
	return &model.ScoreEntry{
		EntryID:   uuid.New().String(),
		TaskID:    taskID,
		ActorID:   actorID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: now,
	}
}

// ToggleEntry builds the ledger entry for a completion toggle that has
// already been applied to the task: credit on incomplete->complete, debit on
// complete->incomplete. The acting user is credited, not the task owner.
func ToggleEntry(task *model.Task, actorID string, now time.Time) *model.ScoreEntry {
	weight := task.Priority.Weight()
	if task.Completed {
		return newScoreEntry(task.TaskID, actorID, weight, model.ScoreToggleComplete, now)
	}
	return newScoreEntry(task.TaskID, actorID, -weight, model.ScoreToggleIncomplete, now)
}

// PriorityChangeEntry builds the entry for a priority change on an already
// completed task. Returns nil when the weights match.
func PriorityChangeEntry(taskID, actorID string, oldPriority, newPriority model.Priority, now time.Time) *model.ScoreEntry {
	diff := newPriority.Weight() - oldPriority.Weight()
	if diff == 0 {
		return nil
	}
	return newScoreEntry(taskID, actorID, diff, model.ScorePriorityChange, now)
}

// DeleteEntry builds the debit for deleting a completed task. Returns nil
// for incomplete tasks.
func DeleteEntry(task *model.Task, actorID string, now time.Time) *model.ScoreEntry {
	if !task.Completed {
		return nil
	}
	return newScoreEntry(task.TaskID, actorID, -task.Priority.Weight(), model.ScoreTaskDeleted, now)
}

// ApplyLoginStreak updates the user's streak on successful authentication:
// first login starts at 1, a same-day login keeps it, logging in the next
// calendar day extends it, any larger gap resets it to 1.
func ApplyLoginStreak(user *model.User, now time.Time) {
	if user.LastLoginAt == nil {
		user.StreakDays = 1
	} else {
		last := startOfDay(user.LastLoginAt.In(now.Location()))
		today := startOfDay(now)
		// Rounding absorbs DST-shortened or -lengthened days.
		switch days := int(math.Round(today.Sub(last).Hours() / 24)); {
		case days == 0:
			// same calendar day, streak unchanged
		case days == 1:
			user.StreakDays++
		default:
			user.StreakDays = 1
		}
	}
	t := now
	user.LastLoginAt = &t
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
