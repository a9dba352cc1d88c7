// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/restaurant-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles image uploads for the admin catalog
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// allowed MIME types for menu images
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadImage validates, stores and records an uploaded image, returning its
// public URL.
func (s *Service) UploadImage(file multipart.File, header *multipart.FileHeader, uploadedBy string) (*UploadedFile, error) {
	if header.Size > s.config.Upload.MaxSize {
		return nil, fmt.Errorf("file too large: maximum %d bytes", s.config.Upload.MaxSize)
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return nil, fmt.Errorf("unsupported file type %q: only jpeg, png, webp and gif are accepted", contentType)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !s.extensionAllowed(ext) {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}

	if err := os.MkdirAll(s.config.Upload.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	destPath := filepath.Join(s.config.Upload.LocalPath, fileName)

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	uploaded := UploadedFile{
		FileName:     fileName,
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
		URL:          fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.Upload.PublicBaseURL, "/"), fileName),
		UploadedBy:   uploadedBy,
	}

	if err := s.db.Create(&uploaded).Error; err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return &uploaded, nil
}

// DeleteImage removes a stored image and its record
func (s *Service) DeleteImage(id uint) error {
	var uploaded UploadedFile
	if err := s.db.First(&uploaded, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("file not found")
		}
		return fmt.Errorf("failed to retrieve file: %w", err)
	}

	path := filepath.Join(s.config.Upload.LocalPath, uploaded.FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return s.db.Delete(&uploaded).Error
}

func (s *Service) extensionAllowed(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
