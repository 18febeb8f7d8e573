package model

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Weight is the point value credited when a task of this priority is completed.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 10
	case PriorityMedium:
		return 20
	case PriorityHigh:
		return 30
	}
	return 0
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type CollabStatus string

const (
	CollabPending  CollabStatus = "pending"
	CollabAccepted CollabStatus = "accepted"
	CollabRejected CollabStatus = "rejected"
)

func (s CollabStatus) Valid() bool {
	switch s {
	case CollabPending, CollabAccepted, CollabRejected:
		return true
	}
	return false
}

// Collaborator is one invited user on a task. At most one entry exists per
// (task, user) pair.
type Collaborator struct {
	UserID      string       `firestore:"user" json:"user"`
	Status      CollabStatus `firestore:"status" json:"status"`
	Role        Role         `firestore:"role" json:"role"`
	InvitedAt   time.Time    `firestore:"invitedat" json:"invitedAt"`
	RespondedAt *time.Time   `firestore:"respondedat" json:"respondedAt"`
}

type Task struct {
	TaskID        string         `firestore:"taskid" json:"taskId"`
	OwnerID       string         `firestore:"owner" json:"owner"`
	UserID        string         `firestore:"user" json:"user"` // legacy alias of OwnerID
	Title         string         `firestore:"title" json:"title"`
	Description   string         `firestore:"description" json:"description"`
	Completed     bool           `firestore:"completed" json:"completed"`
	Priority      Priority       `firestore:"priority" json:"priority"`
	DueDate       *time.Time     `firestore:"duedate,omitempty" json:"dueDate"`
	Collaborators []Collaborator `firestore:"collaborators" json:"collaborators"`
	// CollabUserIDs mirrors Collaborators[].UserID so Firestore can answer
	// array-contains queries for the shared listing.
	CollabUserIDs []string  `firestore:"collabuserids" json:"-"`
	CreatedAt     time.Time `firestore:"createdat" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedat" json:"updatedAt"`
}

// Owner resolves the owning user id, falling back to the legacy user field
// for records written before the owner field existed.
func (t *Task) Owner() string {
	if t.OwnerID != "" {
		return t.OwnerID
	}
	return t.UserID
}

// FindCollaborator returns the entry for userID, or nil.
func (t *Task) FindCollaborator(userID string) *Collaborator {
	for i := range t.Collaborators {
		if t.Collaborators[i].UserID == userID {
			return &t.Collaborators[i]
		}
	}
	return nil
}

// SyncCollabUserIDs rebuilds the denormalized id mirror after any
// collaborator-list mutation.
func (t *Task) SyncCollabUserIDs() {
	ids := make([]string, 0, len(t.Collaborators))
	for i := range t.Collaborators {
		ids = append(ids, t.Collaborators[i].UserID)
	}
	t.CollabUserIDs = ids
}
