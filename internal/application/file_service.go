package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	repo "github.com/oksasatya/go-barber/internal/domain/repository"
)

var ErrStorageNotConfigured = errors.New("file storage not configured")

// ObjectUploader writes an object to the avatar bucket.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
}

type FileService struct {
	Files    repo.FileRepository
	Uploader ObjectUploader
	Logger   *logrus.Logger
}

func NewFileService(files repo.FileRepository, uploader ObjectUploader, logger *logrus.Logger) *FileService {
	return &FileService{Files: files, Uploader: uploader, Logger: logger}
}

// Upload stores r under avatars/<userID>/<uuid><ext> and records it as a File.
func (s *FileService) Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.File, error) {
	if s.Uploader == nil {
		return nil, ErrStorageNotConfigured
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))

	if err := s.Uploader.Upload(ctx, objectPath, contentType, r); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("path", objectPath).Error("upload failed")
		}
		return nil, fmt.Errorf("upload: %w", err)
	}

	f := &entity.File{Name: filepath.Base(filename), Path: objectPath}
	if err := s.Files.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return f, nil
}
