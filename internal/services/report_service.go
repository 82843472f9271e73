package services

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"rapporteur_backend/internal/logger"
	"rapporteur_backend/internal/models"
	"rapporteur_backend/internal/repositories"
	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/internal/validator"
	"rapporteur_backend/pkg/apperrors"
)

// ReportService is the model layer: it owns the business flow of a
// report's lifecycle and coordinates the store and the file service so
// records and files never drift apart.
type ReportService interface {
	Create(ctx context.Context, req *dto.CreateReportRequest, file *multipart.FileHeader) (*models.Report, error)
	GetByID(ctx context.Context, id string) (*models.Report, error)
	GetAll(ctx context.Context, filters models.ReportFilters, page, limit int) (*models.PaginatedReports, error)
	Update(ctx context.Context, id string, req *dto.UpdateReportRequest, file *multipart.FileHeader) (*models.Report, error)
	Delete(ctx context.Context, id string) error
	TogglePublish(ctx context.Context, id string) (*models.Report, error)
	Stats(ctx context.Context) (*models.ReportStats, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	files      FileService
	validate   *validator.Validator
}

// NewReportService wires the model layer.
func NewReportService(reportRepo repositories.ReportRepository, files FileService, v *validator.Validator) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		files:      files,
		validate:   v,
	}
}

func (s *reportService) Create(ctx context.Context, req *dto.CreateReportRequest, file *multipart.FileHeader) (*models.Report, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	var fileData *FileUploadResult
	if file != nil {
		uploaded, err := s.files.Upload(ctx, file)
		if err != nil {
			if _, ok := apperrors.AsAppError(err); ok {
				return nil, err
			}
			return nil, apperrors.NewUploadError("File upload failed", http.StatusInternalServerError, nil).WithError(err)
		}
		fileData = uploaded
	}

	eventDate, _ := models.ParseEventDate(req.EventDate) // validated above

	report := &models.Report{
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Category:       models.Category(req.Category),
		EventDate:      eventDate,
		EventLocation:  strings.TrimSpace(req.EventLocation),
		EventOrganizer: strings.TrimSpace(req.EventOrganizer),
		Summary:        strings.TrimSpace(req.Summary),
		KeyOutcomes:    req.KeyOutcomes,
		Tags:           req.Tags,
		IsPublished:    req.IsPublished,
	}
	if fileData != nil {
		report.Filename = fileData.Filename
		report.FileURL = fileData.FileURL
		report.FileSize = fileData.FileSize
		report.FilePath = fileData.FilePath
	}

	created, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		// Compensating action: a record that never landed must not
		// leave its file behind. Its own failure is only logged.
		if fileData != nil {
			s.files.Delete(ctx, fileData.FilePath)
		}
		return nil, apperrors.NewPersistenceError(err, "Failed to create report")
	}

	return created, nil
}

func (s *reportService) GetByID(ctx context.Context, id string) (*models.Report, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Failed to retrieve report")
	}
	return report, nil
}

func (s *reportService) GetAll(ctx context.Context, filters models.ReportFilters, page, limit int) (*models.PaginatedReports, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	result, err := s.reportRepo.GetAll(ctx, filters, page, limit)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err, "Failed to retrieve reports")
	}
	return result, nil
}

func (s *reportService) Update(ctx context.Context, id string, req *dto.UpdateReportRequest, file *multipart.FileHeader) (*models.Report, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "Failed to retrieve report")
	}

	var fileData *FileUploadResult
	if file != nil {
		uploaded, err := s.files.Upload(ctx, file)
		if err != nil {
			if _, ok := apperrors.AsAppError(err); ok {
				return nil, err
			}
			return nil, apperrors.NewUploadError("File upload failed", http.StatusInternalServerError, nil).WithError(err)
		}
		fileData = uploaded

		// The superseded file goes only after the new one is safely
		// stored; a failed upload leaves the old attachment in place.
		if existing.HasFile() {
			s.files.Delete(ctx, existing.FilePath)
		}
	}

	patch := buildPatch(req)
	if fileData != nil {
		patch.Filename = &fileData.Filename
		patch.FileURL = &fileData.FileURL
		patch.FileSize = &fileData.FileSize
		patch.FilePath = &fileData.FilePath
	}

	updated, err := s.reportRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapRepoError(err, "Failed to update report")
	}
	return updated, nil
}

func (s *reportService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, "Failed to retrieve report")
	}

	deleted, err := s.reportRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.NewPersistenceError(err, "Failed to delete report")
	}
	if !deleted {
		return apperrors.NewNotFoundError("Report not found")
	}

	// Best-effort: the record is already gone, a stuck file only gets
	// logged inside the file service.
	if report.HasFile() {
		s.files.Delete(ctx, report.FilePath)
	}

	return nil
}

func (s *reportService) TogglePublish(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	toggled := !report.IsPublished
	updated, err := s.reportRepo.Update(ctx, id, repositories.ReportPatch{IsPublished: &toggled})
	if err != nil {
		return nil, mapRepoError(err, "Failed to update report")
	}

	logger.CtxInfo(ctx, "report publish state toggled", "report_id", id, "is_published", toggled)
	return updated, nil
}

func (s *reportService) Stats(ctx context.Context) (*models.ReportStats, error) {
	stats, err := s.reportRepo.Stats(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err, "Failed to retrieve report statistics")
	}
	return stats, nil
}

// validateRequest runs struct validation and converts the collected
// field errors into the domain's 400.
func (s *reportService) validateRequest(req interface{}) error {
	err := s.validate.Validate(req)
	if err == nil {
		return nil
	}
	if vErr, ok := err.(*validator.ValidationError); ok {
		return apperrors.ValidationError("Validation failed", vErr.Fields)
	}
	return apperrors.InternalError(err)
}

// requireID rejects empty or all-whitespace identifiers before any
// storage call.
func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewBadRequestError("Report ID is required")
	}
	return nil
}

func mapRepoError(err error, fallback string) error {
	if apperrors.Is(err, repositories.ErrReportNotFound) {
		return apperrors.NewNotFoundError("Report not found")
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.NewPersistenceError(err, fallback)
}

func buildPatch(req *dto.UpdateReportRequest) repositories.ReportPatch {
	patch := repositories.ReportPatch{
		KeyOutcomes: req.KeyOutcomes,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	}

	if req.Title != nil {
		patch.Title = trimmed(*req.Title)
	}
	if req.Description != nil {
		patch.Description = trimmed(*req.Description)
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		patch.Category = &category
	}
	if req.EventDate != nil {
		eventDate, _ := models.ParseEventDate(*req.EventDate) // validated above
		patch.EventDate = &eventDate
	}
	if req.EventLocation != nil {
		patch.EventLocation = trimmed(*req.EventLocation)
	}
	if req.EventOrganizer != nil {
		patch.EventOrganizer = trimmed(*req.EventOrganizer)
	}
	if req.Summary != nil {
		patch.Summary = trimmed(*req.Summary)
	}

	return patch
}

func trimmed(s string) *string {
	t := strings.TrimSpace(s)
	return &t
}
