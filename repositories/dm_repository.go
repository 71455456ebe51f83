package repositories

import (
	"context"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type DMRepository interface {
	// FindOrCreateThread returns the thread holding exactly the given
	// participants, creating it when none exists.
	FindOrCreateThread(ctx context.Context, participantIDs []string) (*models.DMThread, error)
	GetThread(ctx context.Context, threadID string) (*models.DMThread, error)

	// SendMessage bundles the message insert with the thread-preview
	// update in one atomic remote write.
	SendMessage(ctx context.Context, threadID string, msg *models.Message) (string, error)
	GetMessage(ctx context.Context, threadID, messageID string) (*models.Message, error)
	DeleteMessage(ctx context.Context, threadID, messageID string) error

	// ThreadMessages serves DM logs; the scope key is the thread id.
	ThreadMessages() livelist.Source[models.Message]
	// Threads serves the DM sidebar; the scope key is the user id.
	Threads() livelist.Source[models.DMThread]
}
