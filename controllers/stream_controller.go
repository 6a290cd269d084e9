package controllers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/services"
)

// StreamController serves the live-query surfaces over SSE. Every event is a
// full snapshot of its list; clients replace their local copy on each one.
type StreamController struct {
	Hub      *services.Hub
	Bookings *services.BookingService
	Notifier *services.NotificationService
}

func NewStreamController(hub *services.Hub, bookings *services.BookingService, notifier *services.NotificationService) *StreamController {
	return &StreamController{Hub: hub, Bookings: bookings, Notifier: notifier}
}

// stream sends an initial snapshot, then relays hub publishes until the
// client disconnects.
func (ctrl *StreamController) stream(c *gin.Context, topic string, initial func() (interface{}, error)) {
	ch, cancel := ctrl.Hub.Subscribe(topic)
	defer cancel()

	if snapshot, err := initial(); err == nil {
		if payload, mErr := json.Marshal(snapshot); mErr == nil {
			c.SSEvent("snapshot", string(payload))
			c.Writer.Flush()
		}
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Notifications streams the caller's notification list.
func (ctrl *StreamController) Notifications(c *gin.Context) {
	uid := c.GetString(middleware.CtxUID)
	topic := fmt.Sprintf("notifications/%s", uid)
	ctrl.stream(c, topic, func() (interface{}, error) {
		return ctrl.Notifier.List(uid)
	})
}

// AdminBookings streams the full bookings list to the admin console.
func (ctrl *StreamController) AdminBookings(c *gin.Context) {
	ctrl.stream(c, "bookings", func() (interface{}, error) {
		return ctrl.Bookings.Search("")
	})
}
