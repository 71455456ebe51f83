package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var friendService *services.FriendService

func SetFriendService(service *services.FriendService) {
	friendService = service
}

func SendFriendRequest(c *gin.Context) {
	var input struct {
		RecipientID string `json:"recipient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := friendService.SendRequest(c.Request.Context(), senderFrom(c), input.RecipientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": req})
}

func AcceptFriendRequest(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := friendService.AcceptRequest(c.Request.Context(), uid, c.Param("request_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "accepted"})
}

func DeclineFriendRequest(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := friendService.DeclineRequest(c.Request.Context(), uid, c.Param("request_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "declined"})
}

func SendServerInvite(c *gin.Context) {
	var input struct {
		ServerID    string `json:"server_id" binding:"required"`
		RecipientID string `json:"recipient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := friendService.SendInvite(c.Request.Context(), senderFrom(c), input.ServerID, input.RecipientID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": inv})
}

func AcceptServerInvite(c *gin.Context) {
	sender := senderFrom(c)
	if err := friendService.AcceptInvite(c.Request.Context(), sender.UID, sender.Name, c.Param("invite_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "joined"})
}

func DeclineServerInvite(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := friendService.DeclineInvite(c.Request.Context(), uid, c.Param("invite_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "declined"})
}

func ListServerInvites(c *gin.Context) {
	uid := senderFrom(c).UID
	invites, err := friendService.ListInvites(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invites})
}
