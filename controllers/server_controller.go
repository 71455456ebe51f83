package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var serverService *services.ServerService

func SetServerService(service *services.ServerService) {
	serverService = service
}

func CreateServer(c *gin.Context) {
	var input struct {
		Name       string `json:"name"`
		Icon       string `json:"icon"`
		Color      string `json:"color"`
		Visibility string `json:"visibility"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	srv, err := serverService.Create(c.Request.Context(), senderFrom(c),
		input.Name, input.Icon, input.Color, input.Visibility)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": srv})
}

func GetServer(c *gin.Context) {
	srv, err := serverService.Get(c.Request.Context(), c.Param("server_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": srv})
}

func UpdateServer(c *gin.Context) {
	var input struct {
		Name       string `json:"name"`
		Icon       string `json:"icon"`
		Color      string `json:"color"`
		Visibility string `json:"visibility"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]any{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Icon != "" {
		fields["icon"] = input.Icon
	}
	if input.Color != "" {
		fields["color"] = input.Color
	}
	if input.Visibility != "" {
		fields["visibility"] = input.Visibility
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	uid := senderFrom(c).UID
	if err := serverService.Update(c.Request.Context(), uid, c.Param("server_id"), fields); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "updated"})
}

// DeleteServer hands the cascade delete to the platform function.
func DeleteServer(c *gin.Context) {
	if err := serverService.Delete(c.Request.Context(), senderFrom(c), c.Param("server_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "deleted"})
}

func CreateRoom(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		Icon    string `json:"icon"`
		AgentID string `json:"agent_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := senderFrom(c).UID
	room := &models.Room{Name: input.Name, Type: input.Type, Icon: input.Icon, AgentID: input.AgentID}
	room, err := serverService.CreateRoom(c.Request.Context(), uid, c.Param("server_id"), room)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": room})
}

func ListRooms(c *gin.Context) {
	uid := senderFrom(c).UID
	rooms, err := serverService.ListRooms(c.Request.Context(), uid, c.Param("server_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

func ListMembers(c *gin.Context) {
	uid := senderFrom(c).UID
	members, err := serverService.ListMembers(c.Request.Context(), uid, c.Param("server_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": members})
}

func LeaveServer(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := serverService.Leave(c.Request.Context(), uid, c.Param("server_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "left"})
}
