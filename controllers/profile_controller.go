package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/middleware"
	"resort-backend/services"
	"resort-backend/utils"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: profiles}
}

// Me returns the caller's own profile.
func (ctrl *ProfileController) Me(c *gin.Context) {
	profile, err := ctrl.Profiles.Get(c.GetString(middleware.CtxUID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}

// Onboard completes identity verification for the signed-in user.
func (ctrl *ProfileController) Onboard(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed onboarding form")
		return
	}
	profile, err := ctrl.Profiles.Onboard(c.GetString(middleware.CtxUID), c.GetString(middleware.CtxEmail), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, profile)
}

// Update applies a ManageAccount edit, subject to the 30-day cooldown.
func (ctrl *ProfileController) Update(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed profile form")
		return
	}
	profile, err := ctrl.Profiles.Update(c.GetString(middleware.CtxUID), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}

// Search lists/filters all profiles for the admin console.
func (ctrl *ProfileController) Search(c *gin.Context) {
	profiles, err := ctrl.Profiles.Search(c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profiles)
}

// Delete removes a user account (admin action).
func (ctrl *ProfileController) Delete(c *gin.Context) {
	if err := ctrl.Profiles.Delete(c.Param("uid")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
