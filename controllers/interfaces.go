package controllers

import (
	"context"
	"io"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

// ChatServiceInterface is the message surface the chat endpoints use.
type ChatServiceInterface interface {
	SendRoomMessage(ctx context.Context, sender services.Sender, serverID, roomID, text string, attachment *models.Attachment) (*models.Message, error)
	DeleteRoomMessage(ctx context.Context, uid, serverID, roomID, messageID string) error
}

// MediaServiceInterface is the upload surface the media endpoints use.
type MediaServiceInterface interface {
	Upload(ctx context.Context, ownerID, name, mimeType string, size int64, r io.Reader, kinds ...string) (*models.MediaFile, error)
	Delete(ctx context.Context, uid, fileID string) error
}
