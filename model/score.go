package model

import "time"

// Score entry reasons.
const (
	ScoreToggleComplete   = "toggle_complete"
	ScoreToggleIncomplete = "toggle_incomplete"
	ScorePriorityChange   = "priority_change"
	ScoreTaskDeleted      = "task_deleted"
)

// ScoreEntry is one append-only ledger record. The actor's point balance is
// adjusted by Delta (clamped at zero) in the same transaction that persists
// the task mutation the entry describes.
type ScoreEntry struct {
	EntryID   string    `firestore:"entryid" json:"entryId"`
	TaskID    string    `firestore:"taskid" json:"taskId"`
	ActorID   string    `firestore:"actorid" json:"actorId"`
	Delta     int       `firestore:"delta" json:"delta"`
	Reason    string    `firestore:"reason" json:"reason"`
	CreatedAt time.Time `firestore:"createdat" json:"createdAt"`
}
