package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

type OfferController struct {
	Offers *services.OfferService
}

func NewOfferController(offers *services.OfferService) *OfferController {
	return &OfferController{Offers: offers}
}

// List is the public promotional catalog.
func (ctrl *OfferController) List(c *gin.Context) {
	offers, err := ctrl.Offers.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, offers)
}

// Claim redeems an offer and activates its discount for the session.
func (ctrl *OfferController) Claim(c *gin.Context) {
	session, err := ctrl.Offers.Claim(c.GetString(middleware.CtxUID), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

// ActiveDiscount powers the room-price display.
func (ctrl *OfferController) ActiveDiscount(c *gin.Context) {
	session, ok, err := ctrl.Offers.ActiveDiscount(c.GetString(middleware.CtxUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !ok {
		utils.JSONSuccess(c, http.StatusOK, gin.H{"active": false})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"active": true, "discount": session})
}

// ---- admin content management ----

func (ctrl *OfferController) Create(c *gin.Context) {
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed offer")
		return
	}
	created, err := ctrl.Offers.Create(offer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctrl *OfferController) Update(c *gin.Context) {
	var offer models.Offer
	if err := c.ShouldBindJSON(&offer); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed offer")
		return
	}
	updated, err := ctrl.Offers.Update(c.Param("id"), offer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *OfferController) Delete(c *gin.Context) {
	if err := ctrl.Offers.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
