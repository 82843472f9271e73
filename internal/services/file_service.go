package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"rapporteur_backend/internal/logger"
	"rapporteur_backend/internal/storage"
	"rapporteur_backend/pkg/apperrors"
)

const allowedMimeType = "application/pdf"
const allowedExtension = ".pdf"

// FileUploadResult describes a stored attachment.
type FileUploadResult struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	FileSize     int64  `json:"fileSize"`
	FilePath     string `json:"filePath"`
	FileURL      string `json:"fileUrl"`
	MimeType     string `json:"mimeType"`
}

// FileService validates and persists PDF attachments. It owns the
// physical files; the report service directs when they come and go.
type FileService interface {
	// Validate collects every rule violation; it never short-circuits.
	Validate(file *multipart.FileHeader) []apperrors.FieldError

	// Upload validates and stores the file under a collision-free
	// generated name, returning its storage path and public URL.
	Upload(ctx context.Context, file *multipart.FileHeader) (*FileUploadResult, error)

	// Delete removes a file by storage path. Best-effort: failures are
	// logged, never returned.
	Delete(ctx context.Context, path string) bool
}

type fileService struct {
	storage     storage.Storage
	maxFileSize int64
}

// NewFileService creates a file service over the given storage.
func NewFileService(st storage.Storage, maxFileSize int64) FileService {
	return &fileService{
		storage:     st,
		maxFileSize: maxFileSize,
	}
}

func (s *fileService) Validate(file *multipart.FileHeader) []apperrors.FieldError {
	var errs []apperrors.FieldError

	if file.Size > s.maxFileSize {
		errs = append(errs, apperrors.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %dMB", s.maxFileSize/1024/1024),
		})
	}

	if file.Header.Get("Content-Type") != allowedMimeType {
		errs = append(errs, apperrors.FieldError{
			Field:   "file",
			Message: "Only PDF files are allowed",
		})
	}

	if strings.ToLower(filepath.Ext(file.Filename)) != allowedExtension {
		errs = append(errs, apperrors.FieldError{
			Field:   "file",
			Message: "Only .pdf files are allowed",
		})
	}

	return errs
}

func (s *fileService) Upload(ctx context.Context, file *multipart.FileHeader) (*FileUploadResult, error) {
	if errs := s.Validate(file); len(errs) > 0 {
		return nil, apperrors.NewUploadError("File validation failed", http.StatusBadRequest, errs)
	}

	// A generated name prevents collisions and path traversal; the
	// original name never reaches the filesystem.
	uniqueName := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.NewUploadError("Failed to save file", http.StatusInternalServerError, nil).WithError(err)
	}
	defer src.Close()

	if err := s.storage.Save(ctx, uniqueName, src); err != nil {
		return nil, apperrors.NewUploadError("Failed to save file", http.StatusInternalServerError, nil).WithError(err)
	}

	return &FileUploadResult{
		Filename:     uniqueName,
		OriginalName: file.Filename,
		FileSize:     file.Size,
		FilePath:     s.storage.Path(uniqueName),
		FileURL:      s.storage.URL(uniqueName),
		MimeType:     file.Header.Get("Content-Type"),
	}, nil
}

func (s *fileService) Delete(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}
	if err := s.storage.Delete(ctx, path); err != nil {
		logger.CtxWithError(ctx, "failed to delete file", err, "path", path)
		return false
	}
	return true
}
