package services

import (
	"taskhive/model"
)

// EffectiveRole resolves the actor's role on a task. The second return is
// false when the actor has no access at all (unknown, pending or rejected).
func EffectiveRole(task *model.Task, actorID string) (model.Role, bool) {
	if actorID == task.Owner() {
		return model.RoleOwner, true
	}
	entry := task.FindCollaborator(actorID)
	if entry == nil || entry.Status != model.CollabAccepted {
		return "", false
	}
	// A non-owner entry can never grant ownership; exactly one user holds
	// the owner role at any time.
	if entry.Role == model.RoleOwner {
		return model.RoleEditor, true
	}
	return entry.Role, true
}

// CanRead reports whether the actor may view the task.
func CanRead(task *model.Task, actorID string) bool {
	_, ok := EffectiveRole(task, actorID)
	return ok
}

// CanWrite reports whether the actor may edit or toggle the task.
func CanWrite(task *model.Task, actorID string) bool {
	role, ok := EffectiveRole(task, actorID)
	return ok && (role == model.RoleOwner || role == model.RoleEditor)
}

// IsOwner reports whether the actor may delete the task or manage its
// collaborators.
func IsOwner(task *model.Task, actorID string) bool {
	role, ok := EffectiveRole(task, actorID)
	return ok && role == model.RoleOwner
}
