package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type DMRepository struct {
	mock.Mock
}

func (m *DMRepository) FindOrCreateThread(ctx context.Context, participantIDs []string) (*models.DMThread, error) {
	args := m.Called(ctx, participantIDs)
	var thread *models.DMThread
	if args.Get(0) != nil {
		thread = args.Get(0).(*models.DMThread)
	}
	return thread, args.Error(1)
}

func (m *DMRepository) GetThread(ctx context.Context, threadID string) (*models.DMThread, error) {
	args := m.Called(ctx, threadID)
	var thread *models.DMThread
	if args.Get(0) != nil {
		thread = args.Get(0).(*models.DMThread)
	}
	return thread, args.Error(1)
}

func (m *DMRepository) SendMessage(ctx context.Context, threadID string, msg *models.Message) (string, error) {
	args := m.Called(ctx, threadID, msg)
	return args.String(0), args.Error(1)
}

func (m *DMRepository) GetMessage(ctx context.Context, threadID, messageID string) (*models.Message, error) {
	args := m.Called(ctx, threadID, messageID)
	var msg *models.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(*models.Message)
	}
	return msg, args.Error(1)
}

func (m *DMRepository) DeleteMessage(ctx context.Context, threadID, messageID string) error {
	return m.Called(ctx, threadID, messageID).Error(0)
}

func (m *DMRepository) ThreadMessages() livelist.Source[models.Message] {
	args := m.Called()
	if src, ok := args.Get(0).(livelist.Source[models.Message]); ok {
		return src
	}
	return nil
}

func (m *DMRepository) Threads() livelist.Source[models.DMThread] {
	args := m.Called()
	if src, ok := args.Get(0).(livelist.Source[models.DMThread]); ok {
		return src
	}
	return nil
}
