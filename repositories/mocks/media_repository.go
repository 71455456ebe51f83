package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type MediaRepository struct {
	mock.Mock
}

func (m *MediaRepository) Save(ctx context.Context, file *models.MediaFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MediaRepository) Get(ctx context.Context, fileID string) (*models.MediaFile, error) {
	args := m.Called(ctx, fileID)
	var file *models.MediaFile
	if args.Get(0) != nil {
		file = args.Get(0).(*models.MediaFile)
	}
	return file, args.Error(1)
}

func (m *MediaRepository) Delete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

func (m *MediaRepository) Files() livelist.Source[models.MediaFile] {
	args := m.Called()
	if src, ok := args.Get(0).(livelist.Source[models.MediaFile]); ok {
		return src
	}
	return nil
}
