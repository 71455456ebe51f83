package repositories

import (
	"context"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type MediaRepository interface {
	Save(ctx context.Context, file *models.MediaFile) (string, error)
	Get(ctx context.Context, fileID string) (*models.MediaFile, error)
	Delete(ctx context.Context, fileID string) error

	// Files serves the personal media bucket; the scope key is the
	// owner's user id.
	Files() livelist.Source[models.MediaFile]
}
