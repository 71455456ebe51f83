package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var feedService *services.FeedService

func SetFeedService(service *services.FeedService) {
	feedService = service
}

func CreatePost(c *gin.Context) {
	var input struct {
		Content   string   `json:"content"`
		MediaURL  string   `json:"media_url"`
		MediaKind string   `json:"media_kind"`
		Tags      []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := feedService.CreatePost(c.Request.Context(), senderFrom(c),
		input.Content, input.MediaURL, input.MediaKind, input.Tags)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": post})
}

func DeletePost(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := feedService.DeletePost(c.Request.Context(), uid, c.Param("post_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "deleted"})
}

func LikePost(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := feedService.SetLike(c.Request.Context(), uid, c.Param("post_id"), true); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "liked"})
}

func UnlikePost(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := feedService.SetLike(c.Request.Context(), uid, c.Param("post_id"), false); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "unliked"})
}

func AddComment(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := feedService.AddComment(c.Request.Context(), senderFrom(c), c.Param("post_id"), input.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": comment})
}

func ListComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	comments, err := feedService.ListComments(c.Request.Context(), c.Param("post_id"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}

func SharePost(c *gin.Context) {
	if err := feedService.Share(c.Request.Context(), c.Param("post_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "shared"})
}

func CreateCustomFeed(c *gin.Context) {
	var input struct {
		Name string   `json:"name" binding:"required"`
		Tags []string `json:"tags" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := senderFrom(c).UID
	feed, err := feedService.CreateCustomFeed(c.Request.Context(), uid, input.Name, input.Tags)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": feed})
}

func ListCustomFeeds(c *gin.Context) {
	uid := senderFrom(c).UID
	feeds, err := feedService.ListCustomFeeds(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": feeds})
}

func DeleteCustomFeed(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := feedService.DeleteCustomFeed(c.Request.Context(), uid, c.Param("feed_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "deleted"})
}

// GetCustomFeedScope resolves a saved feed into the stream scope the
// websocket layer subscribes with.
func GetCustomFeedScope(c *gin.Context) {
	uid := senderFrom(c).UID
	scope, err := feedService.FeedScope(c.Request.Context(), uid, c.Param("feed_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"scope": scope}})
}

func SubscribeTag(c *gin.Context) {
	var input struct {
		Tag string `json:"tag" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := senderFrom(c).UID
	tag, err := feedService.SubscribeTag(c.Request.Context(), uid, input.Tag)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"tag": tag}})
}

func UnsubscribeTag(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := feedService.UnsubscribeTag(c.Request.Context(), uid, c.Param("tag")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "unsubscribed"})
}
