package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) SendRoomMessage(ctx context.Context, serverID, roomID string, msg *models.Message) (string, error) {
	args := m.Called(ctx, serverID, roomID, msg)
	return args.String(0), args.Error(1)
}

func (m *MessageRepository) GetRoomMessage(ctx context.Context, serverID, roomID, messageID string) (*models.Message, error) {
	args := m.Called(ctx, serverID, roomID, messageID)
	var msg *models.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(*models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepository) DeleteRoomMessage(ctx context.Context, serverID, roomID, messageID string) error {
	return m.Called(ctx, serverID, roomID, messageID).Error(0)
}

func (m *MessageRepository) RoomMessages() livelist.Source[models.Message] {
	args := m.Called()
	if src, ok := args.Get(0).(livelist.Source[models.Message]); ok {
		return src
	}
	return nil
}
