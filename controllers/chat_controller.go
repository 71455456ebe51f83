package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

var chatService ChatServiceInterface

func SetChatService(service ChatServiceInterface) {
	chatService = service
}

// SendRoomMessage posts a message into a server room.
func SendRoomMessage(c *gin.Context) {
	var input struct {
		Text       string             `json:"text"`
		Attachment *models.Attachment `json:"attachment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := chatService.SendRoomMessage(c.Request.Context(), senderFrom(c),
		c.Param("server_id"), c.Param("room_id"), input.Text, input.Attachment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": msg})
}

// DeleteRoomMessage removes a message; authors always may, owners and
// admins may remove anyone's.
func DeleteRoomMessage(c *gin.Context) {
	uid := senderFrom(c).UID
	err := chatService.DeleteRoomMessage(c.Request.Context(), uid,
		c.Param("server_id"), c.Param("room_id"), c.Param("message_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "deleted"})
}
