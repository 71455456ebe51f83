package interfaces

import "context"

// Notifier delivers push notifications to a user's registered device.
type Notifier interface {
	SendToUser(ctx context.Context, uid, title, body string, data map[string]string) error
}
