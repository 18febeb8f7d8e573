package services

import (
	"time"

	"taskhive/model"
)

// Invite adds targetID as a pending viewer, or resets an existing entry back
// to pending. Re-inviting is idempotent, never an error.
func Invite(task *model.Task, actorID, targetID string, now time.Time) error {
	if !IsOwner(task, actorID) {
		return ErrUnauthorized
	}
	if targetID == task.Owner() {
		return ErrInvalidInput
	}
	if entry := task.FindCollaborator(targetID); entry != nil {
		entry.Status = model.CollabPending
		entry.InvitedAt = now
		entry.RespondedAt = nil
		return nil
	}
	task.Collaborators = append(task.Collaborators, model.Collaborator{
		UserID:    targetID,
		Status:    model.CollabPending,
		Role:      model.RoleViewer,
		InvitedAt: now,
	})
	task.SyncCollabUserIDs()
	return nil
}

// Respond records the invited user's accept/reject decision. Only the invited
// user may respond to their own invite.
func Respond(task *model.Task, actorID string, accept bool, now time.Time) error {
	entry := task.FindCollaborator(actorID)
	if entry == nil {
		return ErrNotFound
	}
	if accept {
		entry.Status = model.CollabAccepted
	} else {
		entry.Status = model.CollabRejected
	}
	entry.RespondedAt = &now
	return nil
}

// SetRole changes the target collaborator's role. Setting RoleOwner performs
// an ownership transfer: the task's owner field moves to the target, the
// target's entry becomes owner/accepted, and the previous owner is kept on
// the task as an accepted editor. The transfer is one atomic mutation of the
// task record.
func SetRole(task *model.Task, actorID, targetID string, role model.Role, now time.Time) error {
	if !IsOwner(task, actorID) {
		return ErrUnauthorized
	}
	if !role.Valid() {
		return ErrInvalidInput
	}
	entry := task.FindCollaborator(targetID)
	if entry == nil {
		return ErrNotFound
	}

	if role != model.RoleOwner {
		entry.Role = role
		return nil
	}

	prevOwner := task.Owner()
	task.OwnerID = targetID
	entry.Status = model.CollabAccepted
	entry.Role = model.RoleOwner
	if entry.RespondedAt == nil {
		entry.RespondedAt = &now
	}

	// The previous owner must never be left without access.
	if prev := task.FindCollaborator(prevOwner); prev != nil {
		prev.Role = model.RoleEditor
		prev.Status = model.CollabAccepted
		if prev.RespondedAt == nil {
			prev.RespondedAt = &now
		}
	} else {
		task.Collaborators = append(task.Collaborators, model.Collaborator{
			UserID:      prevOwner,
			Status:      model.CollabAccepted,
			Role:        model.RoleEditor,
			InvitedAt:   now,
			RespondedAt: &now,
		})
	}
	task.SyncCollabUserIDs()
	return nil
}

// Remove hard-deletes the target's collaborator entry.
func Remove(task *model.Task, actorID, targetID string) error {
	if !IsOwner(task, actorID) {
		return ErrUnauthorized
	}
	for i := range task.Collaborators {
		if task.Collaborators[i].UserID == targetID {
			task.Collaborators = append(task.Collaborators[:i], task.Collaborators[i+1:]...)
			task.SyncCollabUserIDs()
			return nil
		}
	}
	return ErrNotFound
}
