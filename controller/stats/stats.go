package stats

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhive/dto"
	"taskhive/middleware"
	"taskhive/services"
)

func StatsController(router *gin.Engine, store services.Store) {
	router.GET("/stats", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		GetStats(c, store)
	})
}

// GetStats summarizes the actor's visible tasks for the dashboard. Points are
// recomputed from the priorities of currently completed tasks so the figure
// reflects what is on the board rather than the historical balance.
func GetStats(c *gin.Context, store services.Store) {
	userId := c.MustGet("userId").(string)

	tasks, err := store.ListTasksForActor(c.Request.Context(), userId, services.FilterAll)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	weekStart := startOfWeek(todayStart)

	var resp dto.StatsResponse
	for _, t := range tasks {
		dueToday := t.DueDate != nil && !t.DueDate.Before(todayStart) && t.DueDate.Before(tomorrowStart)
		if dueToday {
			resp.TasksDueToday++
			if t.Completed {
				resp.TasksDoneToday++
			}
		}
		if t.Completed {
			resp.TasksCompleted++
			resp.Points += t.Priority.Weight()
		} else {
			resp.TasksPending++
		}
		if !t.CreatedAt.Before(weekStart) {
			resp.TasksThisWeek++
		}
	}
	if resp.TasksDueToday > 0 {
		resp.ProgressPercent = int(math.Round(float64(resp.TasksDoneToday) / float64(resp.TasksDueToday) * 100))
	}

	if user, err := store.GetUser(c.Request.Context(), userId); err == nil {
		resp.StreakDays = user.StreakDays
	}

	c.JSON(http.StatusOK, resp)
}

// startOfWeek returns the most recent Monday at midnight.
func startOfWeek(day time.Time) time.Time {
	offset := int(day.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}
