package stream

import (
	"io"

	"github.com/gin-gonic/gin"

	"taskhive/middleware"
	"taskhive/realtime"
)

func StreamController(router *gin.Engine, hub *realtime.Hub) {
	router.GET("/realtime/stream", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Stream(c, hub)
	})
}

// Stream subscribes the connection to the authenticated user's channel and
// relays events as server-sent events until the client disconnects.
func Stream(c *gin.Context, hub *realtime.Hub) {
	userId := c.MustGet("userId").(string)

	events, leave := hub.Join(userId)
	defer leave()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
