package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var generateService *services.GenerateService

func SetGenerateService(service *services.GenerateService) {
	generateService = service
}

// Generate runs a gen-AI request (image, music) against the AI service
// and charges one gen-AI credit.
func Generate(c *gin.Context) {
	var input struct {
		Prompt string `json:"prompt" binding:"required"`
		Kind   string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := generateService.Generate(c.Request.Context(), senderFrom(c), input.Prompt, input.Kind)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}
