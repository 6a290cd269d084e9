package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(svc *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: svc}
}

func (ctrl *NotificationController) List(c *gin.Context) {
	list, err := ctrl.Notifications.List(c.GetString(middleware.CtxUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// MarkAllRead fires when the notification panel opens.
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	if err := ctrl.Notifications.MarkAllRead(c.GetString(middleware.CtxUID)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"read": true})
}
