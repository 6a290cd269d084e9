package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

type RoomController struct {
	Rooms  *services.RoomService
	Offers *services.OfferService
}

func NewRoomController(rooms *services.RoomService, offers *services.OfferService) *RoomController {
	return &RoomController{Rooms: rooms, Offers: offers}
}

// callerDiscount resolves the active discount session for signed-in callers;
// anonymous visitors see base prices.
func (ctrl *RoomController) callerDiscount(c *gin.Context) int {
	uid := c.GetString(middleware.CtxUID)
	if uid == "" {
		return 0
	}
	session, ok, err := ctrl.Offers.ActiveDiscount(uid)
	if err != nil || !ok {
		return 0
	}
	return session.DiscountPercent
}

// List is the public room catalog, priced for the caller.
func (ctrl *RoomController) List(c *gin.Context) {
	rooms, err := ctrl.Rooms.ListPriced(ctrl.callerDiscount(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "invalid room id")
		return
	}
	room, err := ctrl.Rooms.Get(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	discount := ctrl.callerDiscount(c)
	utils.JSONSuccess(c, http.StatusOK, services.PricedRoomFrom(room, discount))
}

// ---- admin content management ----

func (ctrl *RoomController) Create(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed room")
		return
	}
	created, err := ctrl.Rooms.Create(room)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctrl *RoomController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "invalid room id")
		return
	}
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed room")
		return
	}
	updated, err := ctrl.Rooms.Update(uint(id), room)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *RoomController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "invalid room id")
		return
	}
	if err := ctrl.Rooms.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
