package services

import (
	"testing"
	"time"

	"taskhive/model"
)

func sharedTask() *model.Task {
	now := time.Now()
	accepted := now
	return &model.Task{
		TaskID:  "t1",
		OwnerID: "owner",
		UserID:  "owner",
		Title:   "Shared task",
		Collaborators: []model.Collaborator{
			{UserID: "editor", Status: model.CollabAccepted, Role: model.RoleEditor, InvitedAt: now, RespondedAt: &accepted},
			{UserID: "viewer", Status: model.CollabAccepted, Role: model.RoleViewer, InvitedAt: now, RespondedAt: &accepted},
			{UserID: "invited", Status: model.CollabPending, Role: model.RoleViewer, InvitedAt: now},
			{UserID: "declined", Status: model.CollabRejected, Role: model.RoleViewer, InvitedAt: now, RespondedAt: &accepted},
		},
	}
}

func TestEffectiveRole(t *testing.T) {
	task := sharedTask()

	tests := []struct {
		name     string
		actorID  string
		wantRole model.Role
		wantOK   bool
	}{
		{"owner", "owner", model.RoleOwner, true},
		{"accepted editor", "editor", model.RoleEditor, true},
		{"accepted viewer", "viewer", model.RoleViewer, true},
		{"pending collaborator", "invited", "", false},
		{"rejected collaborator", "declined", "", false},
		{"stranger", "nobody", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := EffectiveRole(task, tt.actorID)
			if ok != tt.wantOK {
				t.Fatalf("EffectiveRole() ok = %v, want %v", ok, tt.wantOK)
			}
			if role != tt.wantRole {
				t.Errorf("EffectiveRole() role = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestEffectiveRole_LegacyUserField(t *testing.T) {
	task := &model.Task{TaskID: "t1", UserID: "creator"}

	role, ok := EffectiveRole(task, "creator")
	if !ok || role != model.RoleOwner {
		t.Errorf("EffectiveRole() = (%q, %v), want (owner, true) via legacy user field", role, ok)
	}
}

func TestEffectiveRole_ExactlyOneOwner(t *testing.T) {
	task := sharedTask()
	if err := SetRole(task, "owner", "editor", model.RoleOwner, time.Now()); err != nil {
		t.Fatalf("SetRole() error: %v", err)
	}

	actors := []string{"owner", "editor", "viewer", "invited", "declined", "nobody"}
	owners := 0
	for _, actor := range actors {
		if role, ok := EffectiveRole(task, actor); ok && role == model.RoleOwner {
			owners++
			if actor != "editor" {
				t.Errorf("unexpected owner %q after transfer", actor)
			}
		}
	}
	if owners != 1 {
		t.Errorf("owner count = %d, want exactly 1", owners)
	}
}

func TestAccessGates(t *testing.T) {
	task := sharedTask()

	tests := []struct {
		actorID  string
		canRead  bool
		canWrite bool
		isOwner  bool
	}{
		{"owner", true, true, true},
		{"editor", true, true, false},
		{"viewer", true, false, false},
		{"invited", false, false, false},
		{"declined", false, false, false},
		{"nobody", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.actorID, func(t *testing.T) {
			if got := CanRead(task, tt.actorID); got != tt.canRead {
				t.Errorf("CanRead() = %v, want %v", got, tt.canRead)
			}
			if got := CanWrite(task, tt.actorID); got != tt.canWrite {
				t.Errorf("CanWrite() = %v, want %v", got, tt.canWrite)
			}
			if got := IsOwner(task, tt.actorID); got != tt.isOwner {
				t.Errorf("IsOwner() = %v, want %v", got, tt.isOwner)
			}
		})
	}
}
