package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/config"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/controllers"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/interfaces"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories/impl"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/routes"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/websocket"
)

// fanoutNotifier delivers each notification both in-app over the
// websocket hub and as an FCM push.
type fanoutNotifier []interfaces.Notifier

func (f fanoutNotifier) SendToUser(ctx context.Context, uid, title, body string, data map[string]string) error {
	var firstErr error
	for _, n := range f {
		if err := n.SendToUser(ctx, uid, title, body, data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// accessGuard answers websocket scope checks with the chat and DM
// services.
type accessGuard struct {
	chat *services.ChatService
	dm   *services.DMService
}

func (g accessGuard) CanAccessRoom(ctx context.Context, uid, serverID, roomID string) error {
	return g.chat.CanAccessRoom(ctx, uid, serverID, roomID)
}

func (g accessGuard) CanAccessThread(ctx context.Context, uid, threadID string) error {
	return g.dm.CanAccessThread(ctx, uid, threadID)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := config.InitFirebase(); err != nil {
		log.Fatal().Err(err).Msg("firebase initialization failed")
	}
	defer config.Close()

	// Repositories
	userRepo := impl.NewUserRepository(config.Firestore)
	messageRepo := impl.NewMessageRepository(config.Firestore)
	serverRepo := impl.NewServerRepository(config.Firestore)
	dmRepo := impl.NewDMRepository(config.Firestore)
	mediaRepo := impl.NewMediaRepository(config.Firestore)
	friendRepo := impl.NewFriendRepository(config.Firestore)
	feedRepo := impl.NewFeedRepository(config.Firestore)

	// Hub first: it doubles as the in-app notifier.
	hub := websocket.NewHub()
	go hub.Run()

	// Services
	pushService := services.NewNotificationService(config.FCM, userRepo)
	notifier := fanoutNotifier{hub, pushService}

	aiService := services.NewAIService(config.AIServiceURL)
	functionsService := services.NewFunctionsService(config.FunctionsURL)

	userService := services.NewUserService(userRepo)
	chatService := services.NewChatService(messageRepo, serverRepo, userRepo, aiService)
	serverService := services.NewServerService(serverRepo, functionsService)
	dmService := services.NewDMService(dmRepo, notifier)
	mediaService := services.NewMediaService(mediaRepo, &services.GCSBlobStore{
		Client: config.Storage,
		Bucket: config.StorageBucket,
	})
	friendService := services.NewFriendService(friendRepo, serverRepo, userRepo, notifier)
	feedService := services.NewFeedService(feedRepo, userRepo)
	generateService := services.NewGenerateService(aiService, userRepo)

	// Controllers
	controllers.SetUserService(userService)
	controllers.SetChatService(chatService)
	controllers.SetServerService(serverService)
	controllers.SetDMService(dmService)
	controllers.SetMediaService(mediaService)
	controllers.SetFriendService(friendService)
	controllers.SetFeedService(feedService)
	controllers.SetGenerateService(generateService)
	controllers.SetWebSocket(hub, websocket.Sources{
		RoomMessages:   chatService.RoomMessages(),
		DMMessages:     dmService.ThreadMessages(),
		Threads:        dmService.Threads(),
		MediaFiles:     mediaService.Files(),
		Posts:          feedService.Posts(),
		FriendRequests: friendService.Requests(),
	}, accessGuard{chat: chatService, dm: dmService})

	r := gin.Default()
	routes.RegisterRoutes(r, config.FirebaseAuth)

	port := config.IntEnv("PORT", 8080)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Info().Int("port", port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
