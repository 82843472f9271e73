package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"rapporteur_backend/internal/services"
	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/pkg/apperrors"
)

// ReportHandler translates HTTP requests into report service calls and
// wraps the results in the response envelope.
type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("", h.ListPublic)
		reports.POST("", h.Create)
		reports.GET("/:id", h.GetByID)
		reports.PUT("/:id", h.Update)
		reports.PATCH("/:id", h.Update)
		reports.DELETE("/:id", h.Delete)
		reports.POST("/:id/publish", h.TogglePublish)
	}

	admin := r.Group("/admin/reports")
	{
		admin.GET("", h.List)
		admin.GET("/stats", h.Stats)
	}
}

// Create handles POST /api/reports: a multipart form, optionally
// carrying a PDF attachment.
func (h *ReportHandler) Create(c *gin.Context) {
	req, err := parseCreateForm(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	file, err := formFile(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), req, file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondCreated(c, report, "Report created successfully")
}

// ListPublic handles GET /api/reports. The isPublished filter is
// forced server-side: public consumers only ever see published
// reports, whatever the query string says.
func (h *ReportHandler) ListPublic(c *gin.Context) {
	filters, err := parseListFilters(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	published := true
	filters.IsPublished = &published

	page, limit := ParsePagination(c)
	result, err := h.reportService.GetAll(c.Request.Context(), filters, page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondOK(c, result, "Public reports retrieved successfully")
}

// List handles GET /api/admin/reports: the unrestricted listing.
func (h *ReportHandler) List(c *gin.Context) {
	filters, err := parseListFilters(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	page, limit := ParsePagination(c)
	result, err := h.reportService.GetAll(c.Request.Context(), filters, page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondOK(c, result, "Reports retrieved successfully")
}

// GetByID handles GET /api/reports/:id.
func (h *ReportHandler) GetByID(c *gin.Context) {
	report, err := h.reportService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondOK(c, report, "Report retrieved successfully")
}

// Update handles PUT and PATCH /api/reports/:id with partial-update
// semantics: only the fields present in the form change.
func (h *ReportHandler) Update(c *gin.Context) {
	req, err := parseUpdateForm(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	file, err := formFile(c)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	report, err := h.reportService.Update(c.Request.Context(), c.Param("id"), req, file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondOK(c, report, "Report updated successfully")
}

// Delete handles DELETE /api/reports/:id; the associated file goes
// with the record.
func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.reportService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Report deleted successfully",
	})
}

// TogglePublish handles POST /api/reports/:id/publish.
func (h *ReportHandler) TogglePublish(c *gin.Context) {
	report, err := h.reportService.TogglePublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	message := "Report unpublished successfully"
	if report.IsPublished {
		message = "Report published successfully"
	}
	respondOK(c, report, message)
}

// Stats handles GET /api/admin/reports/stats.
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.Stats(c.Request.Context())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	respondOK(c, stats, "Report statistics retrieved successfully")
}

// parseCreateForm extracts the multipart form fields of a create call.
func parseCreateForm(c *gin.Context) (*dto.CreateReportRequest, error) {
	req := &dto.CreateReportRequest{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Category:       c.PostForm("category"),
		EventDate:      c.PostForm("eventDate"),
		EventLocation:  c.PostForm("eventLocation"),
		EventOrganizer: c.PostForm("eventOrganizer"),
		Summary:        c.PostForm("summary"),
		IsPublished:    c.PostForm("isPublished") == "true",
	}

	if raw := c.PostForm("keyOutcomes"); raw != "" {
		list, err := parseJSONList(raw, "keyOutcomes")
		if err != nil {
			return nil, err
		}
		req.KeyOutcomes = list
	}
	if raw := c.PostForm("tags"); raw != "" {
		list, err := parseJSONList(raw, "tags")
		if err != nil {
			return nil, err
		}
		req.Tags = list
	}

	return req, nil
}

// parseUpdateForm extracts only the fields actually present in the
// form; an absent field stays nil and is neither validated nor
// changed.
func parseUpdateForm(c *gin.Context) (*dto.UpdateReportRequest, error) {
	req := &dto.UpdateReportRequest{}

	setIfPresent := func(key string, dst **string) {
		if v, ok := c.GetPostForm(key); ok {
			*dst = &v
		}
	}
	setIfPresent("title", &req.Title)
	setIfPresent("description", &req.Description)
	setIfPresent("category", &req.Category)
	setIfPresent("eventDate", &req.EventDate)
	setIfPresent("eventLocation", &req.EventLocation)
	setIfPresent("eventOrganizer", &req.EventOrganizer)
	setIfPresent("summary", &req.Summary)

	if raw, ok := c.GetPostForm("keyOutcomes"); ok {
		list, err := parseJSONList(raw, "keyOutcomes")
		if err != nil {
			return nil, err
		}
		req.KeyOutcomes = list
	}
	if raw, ok := c.GetPostForm("tags"); ok {
		list, err := parseJSONList(raw, "tags")
		if err != nil {
			return nil, err
		}
		req.Tags = list
	}
	if v, ok := c.GetPostForm("isPublished"); ok {
		published := v == "true"
		req.IsPublished = &published
	}

	return req, nil
}

// formFile returns the attached file or nil when the form has none.
func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("Invalid file upload")
	}
	return file, nil
}
