package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

// MaxUploadBytes caps a single attachment or bucket upload at 10 MiB.
const MaxUploadBytes = 10 << 20

// Validation failures carry a user-facing message.
var (
	ErrFileTooLarge   = errors.New("file exceeds the 10MB upload limit")
	ErrDisallowedType = errors.New("file type is not allowed")
	ErrNotFileOwner   = errors.New("file belongs to another user")
)

// allowedMimeTypes maps each media kind to its accepted MIME types.
var allowedMimeTypes = map[string]map[string]bool{
	models.MediaKindImage: {
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	},
	models.MediaKindAudio: {
		"audio/mpeg": true,
		"audio/mp4":  true,
		"audio/ogg":  true,
		"audio/wav":  true,
		"audio/webm": true,
	},
	models.MediaKindFile: {
		"application/pdf": true,
		"application/zip": true,
		"text/plain":      true,
		"text/csv":        true,
	},
}

// KindForMimeType maps a MIME type onto the coarse media kind used for
// storage namespacing and rendering.
func KindForMimeType(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.MediaKindImage
	case strings.HasPrefix(mimeType, "audio/"):
		return models.MediaKindAudio
	default:
		return models.MediaKindFile
	}
}

// ValidateUpload fails closed on oversize or disallowed files before any
// bytes move. kinds restricts the call site's accepted media kinds; an
// empty list accepts all three.
func ValidateUpload(size int64, mimeType string, kinds ...string) (string, error) {
	if size > MaxUploadBytes {
		return "", ErrFileTooLarge
	}
	kind := KindForMimeType(mimeType)
	if len(kinds) > 0 {
		ok := false
		for _, k := range kinds {
			if k == kind {
				ok = true
				break
			}
		}
		if !ok {
			return "", ErrDisallowedType
		}
	}
	if !allowedMimeTypes[kind][mimeType] {
		return "", ErrDisallowedType
	}
	return kind, nil
}

// BlobStore is the blob side of the platform; the Cloud Storage
// implementation lives below, tests substitute their own.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (publicURL string, err error)
	Delete(ctx context.Context, objectPath string) error
}

type MediaService struct {
	MediaRepo repositories.MediaRepository
	Blobs     BlobStore
}

func NewMediaService(mediaRepo repositories.MediaRepository, blobs BlobStore) *MediaService {
	return &MediaService{MediaRepo: mediaRepo, Blobs: blobs}
}

// Upload validates the candidate file, stores its bytes under a path
// namespaced by owner and kind, and mirrors the descriptor into the
// owner's media bucket.
func (s *MediaService) Upload(ctx context.Context, ownerID, name, mimeType string, size int64, r io.Reader, kinds ...string) (*models.MediaFile, error) {
	kind, err := ValidateUpload(size, mimeType, kinds...)
	if err != nil {
		return nil, err
	}

	objectPath := fmt.Sprintf("media/%s/%s/%s_%s", ownerID, kind, uuid.NewString(), path.Base(name))
	url, err := s.Blobs.Upload(ctx, objectPath, mimeType, io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	file := &models.MediaFile{
		OwnerID:     ownerID,
		Name:        path.Base(name),
		Kind:        kind,
		URL:         url,
		Size:        size,
		MimeType:    mimeType,
		StoragePath: objectPath,
	}
	id, err := s.MediaRepo.Save(ctx, file)
	if err != nil {
		// keep the bucket clean when metadata cannot be written
		if delErr := s.Blobs.Delete(ctx, objectPath); delErr != nil {
			log.Warn().Err(delErr).Str("path", objectPath).Msg("orphaned blob after failed metadata write")
		}
		return nil, err
	}
	file.ID = id
	return file, nil
}

// Delete removes the blob then the metadata, tolerating already-gone on
// either side.
func (s *MediaService) Delete(ctx context.Context, uid, fileID string) error {
	file, err := s.MediaRepo.Get(ctx, fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if file.OwnerID != uid {
		return ErrNotFileOwner
	}

	if err := s.Blobs.Delete(ctx, file.StoragePath); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		log.Warn().Err(err).Str("path", file.StoragePath).Msg("blob delete failed, removing metadata anyway")
	}
	if err := s.MediaRepo.Delete(ctx, fileID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

func (s *MediaService) Files() livelist.Source[models.MediaFile] {
	return s.MediaRepo.Files()
}

// GCSBlobStore stores blobs in the project's Cloud Storage bucket and
// serves them through public-read object ACLs.
type GCSBlobStore struct {
	Client *storage.Client
	Bucket string
}

func (s *GCSBlobStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	obj := s.Client.Bucket(s.Bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, objectPath), nil
}

func (s *GCSBlobStore) Delete(ctx context.Context, objectPath string) error {
	return s.Client.Bucket(s.Bucket).Object(objectPath).Delete(ctx)
}
