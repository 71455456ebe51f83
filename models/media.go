package models

import "time"

// MediaFile is an entry in a user's personal media bucket, mirroring a
// blob stored in Cloud Storage.
type MediaFile struct {
	ID          string    `json:"id" firestore:"-"`
	OwnerID     string    `json:"owner_id" firestore:"ownerId"`
	Name        string    `json:"name" firestore:"name"`
	Kind        string    `json:"kind" firestore:"kind"`
	URL         string    `json:"url" firestore:"url"`
	Size        int64     `json:"size" firestore:"size"`
	MimeType    string    `json:"mime_type" firestore:"mimeType"`
	StoragePath string    `json:"storage_path" firestore:"storagePath"`
	UploadedAt  time.Time `json:"uploaded_at" firestore:"uploadedAt,serverTimestamp"`
}
