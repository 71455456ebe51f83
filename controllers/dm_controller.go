package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var dmService *services.DMService

func SetDMService(service *services.DMService) {
	dmService = service
}

// StartThread opens or reuses the thread holding exactly the given
// participants plus the caller.
func StartThread(c *gin.Context) {
	var input struct {
		ParticipantIDs []string `json:"participant_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := senderFrom(c).UID
	thread, err := dmService.StartThread(c.Request.Context(), uid, input.ParticipantIDs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": thread})
}

func SendDM(c *gin.Context) {
	var input struct {
		Text       string             `json:"text"`
		Attachment *models.Attachment `json:"attachment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := dmService.SendMessage(c.Request.Context(), senderFrom(c),
		c.Param("thread_id"), input.Text, input.Attachment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": msg})
}

func DeleteDM(c *gin.Context) {
	uid := senderFrom(c).UID
	err := dmService.DeleteMessage(c.Request.Context(), uid, c.Param("thread_id"), c.Param("message_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "deleted"})
}
