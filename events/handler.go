package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/partsearch/partsearch/logger"
)

// keepAliveInterval is how often keep-alive comments are sent. It must be
// shorter than intermediary proxy timeouts (typically 60s).
const keepAliveInterval = 30 * time.Second

type connectedEvent struct {
	Type         string `json:"type"`
	SubscriberID string `json:"subscriberId"`
	Category     string `json:"category,omitempty"`
}

// Stream returns a handler serving the part change feed as Server-Sent
// Events. The optional "category" query parameter narrows the feed to one
// category.
func Stream(hub *Hub) gin.HandlerFunc {
	log := logger.WithComponent("events")

	return func(c *gin.Context) {
		w := c.Writer
		flusher, ok := w.(http.Flusher)
		if !ok {
			c.String(http.StatusInternalServerError, "streaming not supported")
			return
		}

		// The connection is long-lived; the server's WriteTimeout must not
		// apply to it.
		rc := http.NewResponseController(w)
		if err := rc.SetWriteDeadline(time.Time{}); err != nil {
			log.Warn("Could not disable write deadline", logger.Fields(
				logger.FieldError, err.Error(),
			))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		category := c.Query("category")
		sub := hub.Subscribe(category)
		defer hub.Unsubscribe(sub)

		connected, _ := json.Marshal(connectedEvent{
			Type:         "connected",
			SubscriberID: sub.ID(),
			Category:     category,
		})
		fmt.Fprintf(w, "event: connected\ndata: %s\n\n", connected)
		flusher.Flush()

		log.Debug("Stream opened", logger.Fields(
			"subscriber_id", sub.ID(),
			"category", category,
			"remote_addr", c.Request.RemoteAddr,
		))

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				log.Debug("Stream closed by client", logger.Fields(
					"subscriber_id", sub.ID(),
				))
				return

			case data, ok := <-sub.Events():
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
				flusher.Flush()

			case <-keepAlive.C:
				fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix())
				flusher.Flush()
			}
		}
	}
}
