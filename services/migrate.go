package services

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"taskhive/model"
)

// MigrateLegacyCollaborators walks the Tasks collection once at startup and
// rewrites records that predate the canonical collaborator shape: raw user-id
// strings become {user, status, role} entries, a missing owner field is
// backfilled from the legacy user field, and the collabuserids mirror is
// rebuilt. Replaces the old lazy per-read normalization.
func MigrateLegacyCollaborators(ctx context.Context, client *firestore.Client) error {
	docs, err := client.Collection(tasksCollection).Documents(ctx).GetAll()
	if err != nil {
		return err
	}

	migrated := 0
	for _, doc := range docs {
		data := doc.Data()
		updates := normalizeTaskData(data, time.Now())
		if len(updates) == 0 {
			continue
		}
		if _, err := doc.Ref.Set(ctx, updates, firestore.MergeAll); err != nil {
			return err
		}
		migrated++
	}
	if migrated > 0 {
		log.Printf("migrated %d task(s) to canonical collaborator shape", migrated)
	}
	return nil
}

// normalizeTaskData returns the fields that need rewriting, or an empty map
// when the record is already canonical.
func normalizeTaskData(data map[string]interface{}, now time.Time) map[string]interface{} {
	updates := make(map[string]interface{})

	owner, _ := data["owner"].(string)
	legacyUser, _ := data["user"].(string)
	if owner == "" && legacyUser != "" {
		owner = legacyUser
		updates["owner"] = owner
	}

	raw, _ := data["collaborators"].([]interface{})
	dirty := false
	entries := make([]model.Collaborator, 0, len(raw))
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			// Raw ids predate the invite workflow; those users already had
			// full access, so they land as accepted editors.
			entries = append(entries, model.Collaborator{
				UserID:    v,
				Status:    model.CollabAccepted,
				Role:      model.RoleEditor,
				InvitedAt: now,
			})
			ids = append(ids, v)
			dirty = true
		case map[string]interface{}:
			entry := model.Collaborator{
				UserID: stringField(v, "user"),
				Status: model.CollabStatus(stringField(v, "status")),
				Role:   model.Role(stringField(v, "role")),
			}
			if !entry.Status.Valid() {
				entry.Status = model.CollabPending
				dirty = true
			}
			if !entry.Role.Valid() {
				entry.Role = model.RoleEditor
				dirty = true
			}
			if t, ok := v["invitedat"].(time.Time); ok {
				entry.InvitedAt = t
			} else {
				entry.InvitedAt = now
				dirty = true
			}
			if t, ok := v["respondedat"].(time.Time); ok {
				entry.RespondedAt = &t
			}
			entries = append(entries, entry)
			ids = append(ids, entry.UserID)
		}
	}
	if dirty {
		updates["collaborators"] = entries
	}
	if mirror, _ := data["collabuserids"].([]interface{}); dirty || len(mirror) != len(ids) {
		updates["collabuserids"] = ids
	}
	return updates
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
