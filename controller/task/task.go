package task

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive/dto"
	"taskhive/middleware"
	"taskhive/model"
	"taskhive/realtime"
	"taskhive/services"
)

func TaskController(router *gin.Engine, store services.Store, broadcaster *realtime.Broadcaster) {
	auth := middleware.AccessTokenMiddleware()

	router.GET("/tasks", auth, func(c *gin.Context) {
		ListTasks(c, store)
	})
	router.POST("/tasks", auth, func(c *gin.Context) {
		CreateTask(c, store, broadcaster)
	})
	router.GET("/tasks/:id", auth, func(c *gin.Context) {
		GetTask(c, store)
	})
	router.PUT("/tasks/:id", auth, func(c *gin.Context) {
		UpdateTask(c, store, broadcaster)
	})
	router.DELETE("/tasks/:id", auth, func(c *gin.Context) {
		DeleteTask(c, store, broadcaster)
	})
	router.PATCH("/tasks/:id/toggle", auth, func(c *gin.Context) {
		ToggleTask(c, store, broadcaster)
	})
}

func ListTasks(c *gin.Context, store services.Store) {
	userId := c.MustGet("userId").(string)

	filter, err := services.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown filter"})
		return
	}

	tasks, err := store.ListTasksForActor(c.Request.Context(), userId, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskResponse(c.Request.Context(), store, t))
	}
	c.JSON(http.StatusOK, out)
}

func CreateTask(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	priority := model.PriorityMedium
	if req.Priority != "" {
		priority = model.Priority(req.Priority)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate format"})
			return
		}
		dueDate = &parsed
	}

	now := time.Now()
	newTask := model.Task{
		TaskID:      uuid.New().String(),
		OwnerID:     userId,
		UserID:      userId,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.CreateTask(c.Request.Context(), &newTask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	resp := taskResponse(c.Request.Context(), store, &newTask)
	broadcaster.TaskCreated(&newTask, resp)
	c.JSON(http.StatusCreated, resp)
}

func GetTask(c *gin.Context, store services.Store) {
	userId := c.MustGet("userId").(string)

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !services.CanRead(t, userId) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}
	c.JSON(http.StatusOK, taskResponse(c.Request.Context(), store, t))
}

func UpdateTask(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !services.CanWrite(t, userId) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	wasCompleted := t.Completed
	oldPriority := t.Priority

	if req.Title != nil {
		// Rune counts, matching the create binding's max= validation.
		if *req.Title == "" || utf8.RuneCountInString(*req.Title) > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title"})
			return
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid description"})
			return
		}
		t.Description = *req.Description
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		if !p.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		t.Priority = p
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			t.DueDate = nil
		} else {
			parsed, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate format"})
				return
			}
			t.DueDate = &parsed
		}
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	now := time.Now()
	t.UpdatedAt = now

	// Changing priority on an already completed task re-prices it for the
	// acting user.
	var entry *model.ScoreEntry
	if wasCompleted && t.Priority != oldPriority {
		entry = services.PriorityChangeEntry(t.TaskID, userId, oldPriority, t.Priority, now)
	}
	if err := store.CommitTaskScore(c.Request.Context(), t, entry); err != nil {
		respondError(c, err)
		return
	}

	resp := taskResponse(c.Request.Context(), store, t)
	broadcaster.TaskUpdated(t, resp)
	c.JSON(http.StatusOK, resp)
}

func DeleteTask(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !services.IsOwner(t, userId) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	entry := services.DeleteEntry(t, userId, time.Now())
	if err := store.DeleteTaskScore(c.Request.Context(), t.TaskID, entry); err != nil {
		respondError(c, err)
		return
	}

	broadcaster.TaskDeleted(t)
	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}

func ToggleTask(c *gin.Context, store services.Store, broadcaster *realtime.Broadcaster) {
	userId := c.MustGet("userId").(string)

	t, err := store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !services.CanWrite(t, userId) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	now := time.Now()
	t.Completed = !t.Completed
	t.UpdatedAt = now

	entry := services.ToggleEntry(t, userId, now)
	if err := store.CommitTaskScore(c.Request.Context(), t, entry); err != nil {
		respondError(c, err)
		return
	}

	resp := taskResponse(c.Request.Context(), store, t)
	broadcaster.TaskUpdated(t, resp)
	c.JSON(http.StatusOK, resp)
}
