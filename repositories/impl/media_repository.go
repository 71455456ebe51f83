package impl

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type MediaRepositoryImpl struct {
	client *firestore.Client
}

func NewMediaRepository(client *firestore.Client) *MediaRepositoryImpl {
	return &MediaRepositoryImpl{client: client}
}

func (r *MediaRepositoryImpl) Save(ctx context.Context, file *models.MediaFile) (string, error) {
	ref := r.client.Collection(colMedia).NewDoc()
	if _, err := ref.Create(ctx, file); err != nil {
		return "", wrapErr("save media file", err)
	}
	file.ID = ref.ID
	return ref.ID, nil
}

func (r *MediaRepositoryImpl) Get(ctx context.Context, fileID string) (*models.MediaFile, error) {
	doc, err := r.client.Collection(colMedia).Doc(fileID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get media file", err)
	}
	file, err := decodeMediaFile(doc)
	if err != nil {
		return nil, wrapErr("get media file", err)
	}
	return &file, nil
}

func (r *MediaRepositoryImpl) Delete(ctx context.Context, fileID string) error {
	_, err := r.client.Collection(colMedia).Doc(fileID).Delete(ctx)
	return wrapErr("delete media file", err)
}

func (r *MediaRepositoryImpl) Files() livelist.Source[models.MediaFile] {
	return &mediaSource{client: r.client}
}

type mediaSource struct {
	client *firestore.Client
}

func (s *mediaSource) query(ownerID string) firestore.Query {
	return s.client.Collection(colMedia).
		Where("ownerId", "==", ownerID).
		OrderBy("uploadedAt", firestore.Desc)
}

func (s *mediaSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.MediaFile], error) {
	return newSnapshotSub(ctx, s.query(scope).Limit(limit), decodeMediaFile), nil
}

func (s *mediaSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.MediaFile, error) {
	docs := s.query(scope).StartAfter(before).Limit(limit).Documents(ctx)
	rows, err := decodeAll(docs, decodeMediaFile)
	if err != nil {
		return nil, wrapErr("fetch older media files", err)
	}
	return rows, nil
}

func decodeMediaFile(doc *firestore.DocumentSnapshot) (models.MediaFile, error) {
	var file models.MediaFile
	if err := doc.DataTo(&file); err != nil {
		return models.MediaFile{}, err
	}
	file.ID = doc.Ref.ID
	return file, nil
}
