package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var userService *services.UserService

func SetUserService(service *services.UserService) {
	userService = service
}

// EnsureProfile bootstraps the profile document on first sign-in and
// returns the current profile, applying the monthly credit reset when
// one is due.
func EnsureProfile(c *gin.Context) {
	sender := senderFrom(c)
	user, err := userService.EnsureProfile(c.Request.Context(), sender.UID, sender.Name, sender.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func GetMe(c *gin.Context) {
	uid := senderFrom(c).UID
	user, err := userService.Get(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// RegisterDeviceToken stores the device's FCM token.
func RegisterDeviceToken(c *gin.Context) {
	var input struct {
		DeviceToken string `json:"device_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := senderFrom(c).UID
	if err := userService.RegisterDeviceToken(c.Request.Context(), uid, input.DeviceToken); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "registered"})
}
