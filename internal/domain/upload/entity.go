// internal/domain/upload/entity.go
package upload

import (
	"time"
)

// UploadedFile represents a stored image file
type UploadedFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FileName     string    `gorm:"not null;size:255" json:"file_name"`
	OriginalName string    `gorm:"not null;size:255" json:"original_name"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	Size         int64     `gorm:"not null" json:"size"`
	URL          string    `gorm:"not null;size:500" json:"url"`
	UploadedBy   string    `gorm:"size:100" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
