package models

import (
	"time"

	"github.com/google/uuid"
)

// PhoneImage is one stored attachment reference for a phone. The raw
// bytes live with the storage collaborator; only the handle is kept.
type PhoneImage struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PhoneID uuid.UUID `gorm:"column:phone_id;type:uuid;not null;index"`

	URL          string `gorm:"column:url;not null"`
	StorageKey   string `gorm:"column:storage_key;not null"`
	OriginalName string `gorm:"column:original_name"`
	MimeType     string `gorm:"column:mime_type"`
	SizeBytes    int64  `gorm:"column:size_bytes"`

	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

// TableName pins the table name.
func (PhoneImage) TableName() string {
	return "phone_images"
}
