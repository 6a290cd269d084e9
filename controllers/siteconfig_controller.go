package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

type SiteConfigController struct {
	Config *services.SiteConfigService
}

func NewSiteConfigController(svc *services.SiteConfigService) *SiteConfigController {
	return &SiteConfigController{Config: svc}
}

// Get serves the effective marketing config (CMS or compiled-in defaults).
func (ctrl *SiteConfigController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Config.Fetch())
}

// Publish pushes a full new version to the CMS (admin only).
func (ctrl *SiteConfigController) Publish(c *gin.Context) {
	var cfg models.SiteConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "malformed site config")
		return
	}
	published, err := ctrl.Config.Publish(cfg)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, published)
}
