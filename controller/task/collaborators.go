package task

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhive/dto"
	"taskhive/middleware"
	"taskhive/model"
	"taskhive/realtime"
	"taskhive/services"
)

func CollaboratorController(router *gin.Engine, store services.Store, broadcaster *realtime.Broadcaster) {
	auth := middleware.AccessTokenMiddleware()

	router.POST("/tasks/:id/collaborators", auth, func(c *gin.Context) {
		AddCollaborator(c, store, broadcaster)
	})
	router.DELETE("/tasks/:id/collaborators/:userId", auth, func(c *gin.Context) {
		RemoveCollaborator(c, store, broadcaster)
	})
	router.PUT("/tasks/:id/collaborators/:userId/accept", auth, func(c *gin.Context) {
		RespondCollaborator(c, store, broadcaster, true)
	})
	router.PUT("/tasks/:id/collaborators/:userId/reject", auth, func(c *gin.Context) {
		RespondCollaborator(c, store, broadcaster, false)
	})
	router.PUT("/tasks/:id/collaborators/:userId/role", auth, func(c *gin.Context) {
		SetCollaboratorRole(c, store, broadcaster)
	})
}

func AddCollaborator(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)

	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	// Authorization first; resolving the target for a non-owner would reveal
	// which user ids exist.
	if !services.IsOwner(t, userId) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}
	if _, err := store.GetUser(c.Request.Context(), req.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := services.Invite(t, userId, req.UserID, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	t.UpdatedAt = time.Now()
	if err := store.SaveTask(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}

	resp := taskResponse(c.Request.Context(), store, t)
	broadcaster.TaskShared(t, resp)
	c.JSON(http.StatusOK, resp)
}

func RemoveCollaborator(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)
	targetId := c.Param("userId")

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := services.Remove(t, userId, targetId); err != nil {
		respondError(c, err)
		return
	}
	t.UpdatedAt = time.Now()
	if err := store.SaveTask(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}

	broadcaster.TaskUnshared(t, targetId)
	c.JSON(http.StatusOK, taskResponse(c.Request.Context(), store, t))
}

func RespondCollaborator(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster, accept bool) {
	userId := c.MustGet("userId").(string)

	// Only the invited user may answer their own invite.
	if c.Param("userId") != userId {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := services.Respond(t, userId, accept, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	t.UpdatedAt = time.Now()
	if err := store.SaveTask(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}

	broadcaster.TaskResponded(t, userId, accept)
	c.JSON(http.StatusOK, taskResponse(c.Request.Context(), store, t))
}

func SetCollaboratorRole(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)
	targetId := c.Param("userId")

	var req dto.CollaboratorRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := services.SetRole(t, userId, targetId, role, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	t.UpdatedAt = time.Now()
	if err := store.SaveTask(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}

	resp := taskResponse(c.Request.Context(), store, t)
	broadcaster.TaskUpdated(t, resp)
	c.JSON(http.StatusOK, resp)
}
