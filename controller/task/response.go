package task

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"taskhive/dto"
	"taskhive/model"
	"taskhive/services"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(404, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(401, gin.H{"error": "Not authorized"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(400, gin.H{"error": "Invalid input"})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}

// userRef resolves a user id to display fields. A missing user still yields
// a ref carrying the id so responses never fail on a dangling reference.
func userRef(ctx context.Context, store services.Store, userID string) dto.UserRef {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return dto.UserRef{UserID: userID}
	}
	return dto.UserRef{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
}

func taskResponse(ctx context.Context, store services.Store, t *model.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		TaskID:      t.TaskID,
		Owner:       userRef(ctx, store, t.Owner()),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		s := t.DueDate.Format(time.RFC3339)
		resp.DueDate = &s
	}
	resp.Collaborators = make([]dto.CollaboratorResponse, 0, len(t.Collaborators))
	for i := range t.Collaborators {
		entry := &t.Collaborators[i]
		cr := dto.CollaboratorResponse{
			User:      userRef(ctx, store, entry.UserID),
			Status:    string(entry.Status),
			Role:      string(entry.Role),
			InvitedAt: entry.InvitedAt.Format(time.RFC3339),
		}
		if entry.RespondedAt != nil {
			s := entry.RespondedAt.Format(time.RFC3339)
			cr.RespondedAt = &s
		}
		resp.Collaborators = append(resp.Collaborators, cr)
	}
	return resp
}
