package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

// NotificationService sends push notifications through Firebase Cloud
// Messaging.
type NotificationService struct {
	FCMClient *messaging.Client
	UserRepo  repositories.UserRepository
}

func NewNotificationService(fcmClient *messaging.Client, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{FCMClient: fcmClient, UserRepo: userRepo}
}

// SendToUser delivers a notification to the user's registered device.
// Users without a device token are silently skipped.
func (s *NotificationService) SendToUser(ctx context.Context, uid, title, body string, data map[string]string) error {
	user, err := s.UserRepo.Get(ctx, uid)
	if err != nil {
		return fmt.Errorf("notification recipient: %w", err)
	}
	if user.DeviceToken == "" {
		return nil
	}
	return s.send(ctx, user.DeviceToken, title, body, data)
}

func (s *NotificationService) send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: deviceToken,
	}

	id, err := s.FCMClient.Send(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("fcm send failed")
		return err
	}
	log.Debug().Str("id", id).Str("title", title).Msg("fcm notification sent")
	return nil
}
