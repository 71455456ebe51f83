package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/controllers"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/middlewares"
)

func RegisterRoutes(r *gin.Engine, authClient *auth.Client) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := middlewares.AuthMiddleware(authClient)

	r.GET("/ws", authed, controllers.ServeWs)

	users := r.Group("/users")
	users.Use(authed)
	{
		users.POST("/ensure", controllers.EnsureProfile)
		users.GET("/me", controllers.GetMe)
		users.PUT("/device-token", controllers.RegisterDeviceToken)
	}

	servers := r.Group("/servers")
	servers.Use(authed)
	{
		servers.POST("", controllers.CreateServer)
		servers.GET("/:server_id", controllers.GetServer)
		servers.PATCH("/:server_id", controllers.UpdateServer)
		servers.DELETE("/:server_id", controllers.DeleteServer)
		servers.POST("/:server_id/leave", controllers.LeaveServer)
		servers.GET("/:server_id/members", controllers.ListMembers)

		servers.POST("/:server_id/rooms", controllers.CreateRoom)
		servers.GET("/:server_id/rooms", controllers.ListRooms)

		servers.POST("/:server_id/rooms/:room_id/messages", controllers.SendRoomMessage)
		servers.DELETE("/:server_id/rooms/:room_id/messages/:message_id", controllers.DeleteRoomMessage)
	}

	dms := r.Group("/dms")
	dms.Use(authed)
	{
		dms.POST("", controllers.StartThread)
		dms.POST("/:thread_id/messages", controllers.SendDM)
		dms.DELETE("/:thread_id/messages/:message_id", controllers.DeleteDM)
	}

	media := r.Group("/media")
	media.Use(authed)
	{
		media.POST("", controllers.UploadMedia)
		media.DELETE("/:file_id", controllers.DeleteMedia)
	}

	friends := r.Group("/friends")
	friends.Use(authed)
	{
		friends.POST("/requests", controllers.SendFriendRequest)
		friends.POST("/requests/:request_id/accept", controllers.AcceptFriendRequest)
		friends.DELETE("/requests/:request_id", controllers.DeclineFriendRequest)
	}

	invites := r.Group("/invites")
	invites.Use(authed)
	{
		invites.GET("", controllers.ListServerInvites)
		invites.POST("", controllers.SendServerInvite)
		invites.POST("/:invite_id/accept", controllers.AcceptServerInvite)
		invites.DELETE("/:invite_id", controllers.DeclineServerInvite)
	}

	posts := r.Group("/posts")
	posts.Use(authed)
	{
		posts.POST("", controllers.CreatePost)
		posts.DELETE("/:post_id", controllers.DeletePost)
		posts.POST("/:post_id/like", controllers.LikePost)
		posts.DELETE("/:post_id/like", controllers.UnlikePost)
		posts.POST("/:post_id/comments", controllers.AddComment)
		posts.GET("/:post_id/comments", controllers.ListComments)
		posts.POST("/:post_id/share", controllers.SharePost)
	}

	feeds := r.Group("/feeds")
	feeds.Use(authed)
	{
		feeds.POST("", controllers.CreateCustomFeed)
		feeds.GET("", controllers.ListCustomFeeds)
		feeds.GET("/:feed_id/scope", controllers.GetCustomFeedScope)
		feeds.DELETE("/:feed_id", controllers.DeleteCustomFeed)
	}

	ai := r.Group("/ai")
	ai.Use(authed)
	{
		ai.POST("/generate", controllers.Generate)
	}

	tags := r.Group("/tags")
	tags.Use(authed)
	{
		tags.POST("", controllers.SubscribeTag)
		tags.DELETE("/:tag", controllers.UnsubscribeTag)
	}
}
