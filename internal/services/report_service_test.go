package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapporteur_backend/internal/config"
	"rapporteur_backend/internal/models"
	"rapporteur_backend/internal/repositories"
	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/internal/storage"
	"rapporteur_backend/internal/validator"
	"rapporteur_backend/pkg/apperrors"
)

// failingRepo wraps the memory store and forces Create to fail, for
// exercising the cleanup path.
type failingRepo struct {
	repositories.ReportRepository
}

func (f *failingRepo) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	return nil, errors.New("store unavailable")
}

func newTestReportService(t *testing.T) (ReportService, repositories.ReportRepository) {
	t.Helper()
	repo := repositories.NewMemoryReportRepository()
	svc := newServiceOver(t, repo)
	return svc, repo
}

func newServiceOver(t *testing.T, repo repositories.ReportRepository) ReportService {
	t.Helper()
	st, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "/reports",
	})
	require.NoError(t, err)
	files := NewFileService(st, config.DefaultMaxUploadSize)
	return NewReportService(repo, files, validator.New())
}

func createRequest() *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		Title:       "Board Meeting Q1",
		Description: "Resolutions and action items",
		Category:    "Business Roundtables",
		EventDate:   "2026-02-14",
	}
}

func TestReportService_Create(t *testing.T) {
	svc, _ := newTestReportService(t)

	req := createRequest()
	req.Title = "  Board Meeting Q1  "
	req.Tags = []string{"governance"}

	report, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "Board Meeting Q1", report.Title, "title is trimmed")
	assert.Equal(t, models.CategoryBusinessTables, report.Category)
	assert.Equal(t, report.CreatedAt, report.UpdatedAt)
	assert.False(t, report.IsPublished)

	// No attachment means every file field stays zero.
	assert.Empty(t, report.Filename)
	assert.Empty(t, report.FileURL)
	assert.Zero(t, report.FileSize)
	assert.False(t, report.HasFile())
}

func TestReportService_Create_ValidationFailure(t *testing.T) {
	svc, repo := newTestReportService(t)

	_, err := svc.Create(context.Background(), &dto.CreateReportRequest{
		Category:  "Knitting Circles",
		EventDate: "golf",
	}, nil)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Len(t, appErr.Fields, 4)

	// Nothing was persisted.
	result, err := repo.GetAll(context.Background(), models.ReportFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
}

func TestReportService_Create_WithFile(t *testing.T) {
	svc, _ := newTestReportService(t)

	file := makeFileHeader(t, "minutes.pdf", "application/pdf", 512)
	report, err := svc.Create(context.Background(), createRequest(), file)
	require.NoError(t, err)

	assert.True(t, report.HasFile())
	assert.Equal(t, int64(512), report.FileSize)
	assert.Equal(t, "/reports/"+report.Filename, report.FileURL)

	_, statErr := os.Stat(report.FilePath)
	assert.NoError(t, statErr)
}

func TestReportService_Create_InvalidFileRejected(t *testing.T) {
	svc, repo := newTestReportService(t)

	file := makeFileHeader(t, "minutes.docx", "application/msword", 512)
	_, err := svc.Create(context.Background(), createRequest(), file)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	result, err := repo.GetAll(context.Background(), models.ReportFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
}

func TestReportService_Create_StoreFailureCleansUpFile(t *testing.T) {
	repo := &failingRepo{ReportRepository: repositories.NewMemoryReportRepository()}

	st, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/reports"})
	require.NoError(t, err)
	files := NewFileService(st, config.DefaultMaxUploadSize)
	svc := NewReportService(repo, files, validator.New())

	file := makeFileHeader(t, "minutes.pdf", "application/pdf", 512)
	_, err = svc.Create(context.Background(), createRequest(), file)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)

	// The orphaned upload was compensated away.
	entries, err := os.ReadDir(st.Path(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReportService_GetByID(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = svc.GetByID(context.Background(), "missing-id")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Equal(t, "Report not found", appErr.Message)

	_, err = svc.GetByID(context.Background(), "   ")
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestReportService_GetAll_ClampsPagination(t *testing.T) {
	svc, _ := newTestReportService(t)

	_, err := svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)

	result, err := svc.GetAll(context.Background(), models.ReportFilters{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)

	result, err = svc.GetAll(context.Background(), models.ReportFilters{}, -3, 5000)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
}

func TestReportService_Update_Partial(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)

	newTitle := "  Board Meeting Q1 (final)  "
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateReportRequest{
		Title: &newTitle,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Board Meeting Q1 (final)", updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.EventDate, updated.EventDate)
}

func TestReportService_Update_InvalidField(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)

	bad := "Knitting Circles"
	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateReportRequest{
		Category: &bad,
	}, nil)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestReportService_Update_NotFound(t *testing.T) {
	svc, _ := newTestReportService(t)

	title := "New"
	_, err := svc.Update(context.Background(), "missing-id", &dto.UpdateReportRequest{Title: &title}, nil)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestReportService_Update_ReplacesFile(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(),
		makeFileHeader(t, "v1.pdf", "application/pdf", 100))
	require.NoError(t, err)
	oldPath := created.FilePath

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateReportRequest{},
		makeFileHeader(t, "v2.pdf", "application/pdf", 200))
	require.NoError(t, err)

	assert.NotEqual(t, created.Filename, updated.Filename)
	assert.Equal(t, int64(200), updated.FileSize)

	_, statErr := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(statErr), "superseded file is removed")
	_, statErr = os.Stat(updated.FilePath)
	assert.NoError(t, statErr)
}

func TestReportService_Update_BadFileKeepsOld(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(),
		makeFileHeader(t, "v1.pdf", "application/pdf", 100))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateReportRequest{},
		makeFileHeader(t, "v2.txt", "text/plain", 100))
	require.Error(t, err)

	// A rejected replacement leaves the original attachment alone.
	_, statErr := os.Stat(created.FilePath)
	assert.NoError(t, statErr)

	current, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Filename, current.Filename)
}

func TestReportService_Delete(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(),
		makeFileHeader(t, "doomed.pdf", "application/pdf", 100))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, statErr := os.Stat(created.FilePath)
	assert.True(t, os.IsNotExist(statErr), "the file goes with the record")

	err = svc.Delete(context.Background(), created.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestReportService_TogglePublish(t *testing.T) {
	svc, _ := newTestReportService(t)

	created, err := svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)
	require.False(t, created.IsPublished)

	published, err := svc.TogglePublish(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	unpublished, err := svc.TogglePublish(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
}

func TestReportService_Stats(t *testing.T) {
	svc, _ := newTestReportService(t)

	req := createRequest()
	req.IsPublished = true
	_, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createRequest(), nil)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalReports)
	assert.Equal(t, int64(1), stats.PublishedReports)
	assert.Equal(t, int64(2), stats.CategoryCounts["Business Roundtables"])
}
