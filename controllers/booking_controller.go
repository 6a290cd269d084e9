package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type acceptBookingPayload struct {
	RoomNumber string `json:"roomNumber"`
}

type rejectBookingPayload struct {
	Reason string `json:"reason" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Bookings: svc}
}

// Create files a booking request for the signed-in, verified user.
func (ctrl *BookingController) Create(c *gin.Context) {
	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed booking request")
		return
	}
	booking, err := ctrl.Bookings.Create(c.GetString(middleware.CtxUID), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// ListMine returns the caller's booking history.
func (ctrl *BookingController) ListMine(c *gin.Context) {
	bookings, err := ctrl.Bookings.ListMine(c.GetString(middleware.CtxUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Search is the admin console list with its substring filter.
func (ctrl *BookingController) Search(c *gin.Context) {
	bookings, err := ctrl.Bookings.Search(c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Accept assigns a room number and confirms the stay.
func (ctrl *BookingController) Accept(c *gin.Context) {
	var payload acceptBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "roomNumber is required")
		return
	}
	booking, err := ctrl.Bookings.Accept(c.Param("id"), payload.RoomNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// Reject declines the stay with a reason the guest will see.
func (ctrl *BookingController) Reject(c *gin.Context) {
	var payload rejectBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "reason is required")
		return
	}
	booking, err := ctrl.Bookings.Reject(c.Param("id"), payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) MarkArrived(c *gin.Context) {
	booking, err := ctrl.Bookings.MarkArrived(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) MarkDeparted(c *gin.Context) {
	booking, err := ctrl.Bookings.MarkDeparted(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
