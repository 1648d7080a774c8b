package types

import (
	"errors"
	"time"
)

// Upload is a file attached to a service entry and tagged with a team label.
// ServiceID is not checked against service_plan.
type Upload struct {
	ID         int64     `db:"id"`
	ServiceID  int64     `db:"service_id"`
	FileID     int64     `db:"file_id"`
	FileName   string    `db:"file_name"`
	Team       string    `db:"team"`
	UploadedAt time.Time `db:"uploaded_at"`
}

// TeamUploads is one display bucket of uploads sharing a team label.
type TeamUploads struct {
	Team    string
	Uploads []*Upload
}

// MediaFile is the media store's record of a stored binary.
type MediaFile struct {
	ID          int64     `db:"id"`
	StorageKey  string    `db:"storage_key"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	CreatedAt   time.Time `db:"created_at"`
}

var ErrMediaNotFound = errors.New("media file not found")
