package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

// respondServiceError converts workflow sentinels into the structured error
// JSON the frontend switches on. Every handler maps at its own call site;
// nothing propagates to a global handler.
func respondServiceError(c *gin.Context, err error) {
	var locked *services.LockedError
	if errors.As(err, &locked) {
		c.JSON(http.StatusLocked, gin.H{
			"error": gin.H{
				"code":          "error.profileLocked",
				"message":       locked.Error(),
				"daysRemaining": locked.DaysRemaining,
			},
		})
		return
	}
	var cooldown *services.ChatCooldownError
	if errors.As(err, &cooldown) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": gin.H{
				"code":             "error.chatCooldown",
				"message":          cooldown.Error(),
				"secondsRemaining": cooldown.SecondsRemaining,
			},
		})
		return
	}

	switch {
	// conflicts
	case errors.Is(err, services.ErrPendingExists):
		utils.JSONErrorCode(c, http.StatusConflict, "error.pendingBookingExists", "you already have a pending booking")
	case errors.Is(err, services.ErrUsernameTaken):
		utils.JSONErrorCode(c, http.StatusConflict, "error.usernameTaken", "this username is already taken")
	case errors.Is(err, services.ErrAlreadyClaimed):
		utils.JSONErrorCode(c, http.StatusConflict, "error.offerAlreadyClaimed", "you have already claimed this offer")
	case errors.Is(err, services.ErrProfileComplete):
		utils.JSONErrorCode(c, http.StatusConflict, "error.profileAlreadyComplete", "profile is already verified; use account settings to edit")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONErrorCode(c, http.StatusConflict, "error.invalidStatusTransition", "booking status cannot change that way")

	// not found
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.roomNotFound", "room not found")
	case errors.Is(err, services.ErrOfferNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.offerNotFound", "offer not found")
	case errors.Is(err, services.ErrProfileNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.profileNotFound", "profile not found")

	// verification gate
	case errors.Is(err, services.ErrProfileIncomplete):
		utils.JSONErrorCode(c, http.StatusForbidden, "error.profileIncomplete", "complete identity verification first")

	// offer window
	case errors.Is(err, services.ErrOfferNotStarted):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.offerNotStarted", "this offer has not started yet")
	case errors.Is(err, services.ErrOfferExpired):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.offerExpired", "this offer has expired")

	// field-level validation
	case errors.Is(err, utils.ErrEmptyField),
		errors.Is(err, utils.ErrInvalidPhone),
		errors.Is(err, utils.ErrInvalidNID),
		errors.Is(err, utils.ErrInvalidUsername),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrGuestCountMismatch),
		errors.Is(err, services.ErrGuestName),
		errors.Is(err, services.ErrGuestIdentity),
		errors.Is(err, services.ErrGuestAge),
		errors.Is(err, services.ErrInvalidDates),
		errors.Is(err, services.ErrRoomNumberRequired),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrFileTooLarge):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.validation", err.Error())

	// upstream collaborators
	case errors.Is(err, services.ErrUploadFailed),
		errors.Is(err, services.ErrStorageNotSet),
		errors.Is(err, services.ErrConfigPublishFailed):
		utils.JSONErrorCode(c, http.StatusBadGateway, "error.upstream", "the operation could not be completed, please try again")

	default:
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", "something went wrong")
	}
}
