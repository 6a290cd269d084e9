package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

type sendMessagePayload struct {
	Text string `json:"text" binding:"required"`
}

type HelpdeskController struct {
	Helpdesk *services.HelpdeskService
}

func NewHelpdeskController(svc *services.HelpdeskService) *HelpdeskController {
	return &HelpdeskController{Helpdesk: svc}
}

// Send posts a guest message to the caller's own thread (60s cooldown).
func (ctrl *HelpdeskController) Send(c *gin.Context) {
	var payload sendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "text is required")
		return
	}
	msg, err := ctrl.Helpdesk.Send(
		c.GetString(middleware.CtxUID),
		c.GetString(middleware.CtxName),
		models.ViewerGuest,
		payload.Text,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, msg)
}

// Thread returns the caller's own conversation.
func (ctrl *HelpdeskController) Thread(c *gin.Context) {
	msgs, err := ctrl.Helpdesk.Thread(c.GetString(middleware.CtxUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, msgs)
}

// ---- admin side ----

// ActiveChats lists open conversations, newest activity first.
func (ctrl *HelpdeskController) ActiveChats(c *gin.Context) {
	chats, err := ctrl.Helpdesk.ActiveChats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, chats)
}

// AdminThread returns any user's conversation.
func (ctrl *HelpdeskController) AdminThread(c *gin.Context) {
	msgs, err := ctrl.Helpdesk.Thread(c.Param("uid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, msgs)
}

// AdminSend posts a reply into a user's thread; no cooldown applies.
func (ctrl *HelpdeskController) AdminSend(c *gin.Context) {
	var payload sendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "text is required")
		return
	}
	msg, err := ctrl.Helpdesk.Send(
		c.Param("uid"),
		c.GetString(middleware.CtxName),
		models.ViewerAdmin,
		payload.Text,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, msg)
}
