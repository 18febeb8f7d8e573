package realtime

import (
	"log"

	"taskhive/model"
)

// Event names delivered to clients.
const (
	EventTaskCreated        = "task_created"
	EventTaskUpdated        = "task_updated"
	EventTaskDeleted        = "task_deleted"
	EventTaskShared         = "task_shared"
	EventTaskUnshared       = "task_unshared"
	EventTaskSharedAccepted = "task_shared_accepted"
	EventTaskSharedRejected = "task_shared_rejected"
)

// Broadcaster turns committed task mutations into named events on the
// affected users' channels. Delivery is fire and forget: a failed emit is
// logged and never fails the owning request.
type Broadcaster struct {
	notifier Notifier
}

func NewBroadcaster(notifier Notifier) *Broadcaster {
	return &Broadcaster{notifier: notifier}
}

// recipients is the unique set of the task's owner and every collaborator,
// whatever their invite status.
func recipients(task *model.Task) []string {
	seen := map[string]bool{task.Owner(): true}
	out := []string{task.Owner()}
	for i := range task.Collaborators {
		id := task.Collaborators[i].UserID
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (b *Broadcaster) emit(userIDs []string, event string, payload interface{}) {
	for _, id := range userIDs {
		if err := b.notifier.Emit(id, event, payload); err != nil {
			log.Printf("broadcast %s to %s failed: %v", event, id, err)
		}
	}
}

// TaskCreated notifies the owner only.
func (b *Broadcaster) TaskCreated(task *model.Task, payload interface{}) {
	b.emit([]string{task.Owner()}, EventTaskCreated, payload)
}

// TaskUpdated notifies the owner and all collaborators after an update,
// toggle or role change.
func (b *Broadcaster) TaskUpdated(task *model.Task, payload interface{}) {
	b.emit(recipients(task), EventTaskUpdated, payload)
}

// TaskDeleted notifies the owner and all collaborators; the payload carries
// only the task id.
func (b *Broadcaster) TaskDeleted(task *model.Task) {
	b.emit(recipients(task), EventTaskDeleted, map[string]string{"taskId": task.TaskID})
}

// TaskShared notifies everyone on the task after an invite or re-invite.
func (b *Broadcaster) TaskShared(task *model.Task, payload interface{}) {
	b.emit(recipients(task), EventTaskShared, payload)
}

// TaskUnshared notifies the owner and the remaining collaborators; the
// payload names who was removed.
func (b *Broadcaster) TaskUnshared(task *model.Task, removedUserID string) {
	payload := map[string]string{"taskId": task.TaskID, "userId": removedUserID}
	b.emit(recipients(task), EventTaskUnshared, payload)
}

// TaskResponded notifies the owner and the responding user that an invite
// was accepted or rejected.
func (b *Broadcaster) TaskResponded(task *model.Task, responderID string, accepted bool) {
	event := EventTaskSharedRejected
	status := model.CollabRejected
	if accepted {
		event = EventTaskSharedAccepted
		status = model.CollabAccepted
	}
	payload := map[string]string{
		"taskId": task.TaskID,
		"userId": responderID,
		"status": string(status),
	}
	ids := []string{task.Owner()}
	if responderID != task.Owner() {
		ids = append(ids, responderID)
	}
	b.emit(ids, event, payload)
}
