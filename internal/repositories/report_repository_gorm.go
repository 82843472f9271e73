package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rapporteur_backend/internal/models"
)

// GormReportRepository is the persistent substitute for the in-memory
// store. Same contract, backed by Postgres through GORM.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository migrates the reports table and returns the
// repository.
func NewGormReportRepository(db *gorm.DB) (*GormReportRepository, error) {
	if err := db.AutoMigrate(&models.Report{}); err != nil {
		return nil, err
	}
	return &GormReportRepository{db: db}, nil
}

func (r *GormReportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	stored := *report
	stored.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *GormReportRepository) GetAll(ctx context.Context, filters models.ReportFilters, page, limit int) (*models.PaginatedReports, error) {
	var total int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Report{}), filters)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var reports []models.Report
	err := r.applyFilters(r.db.WithContext(ctx).Model(&models.Report{}), filters).
		Order("event_date DESC, created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginatedReports{
		Reports:    reports,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (r *GormReportRepository) Update(ctx context.Context, id string, patch ReportPatch) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	applyPatch(&report, patch)

	if err := r.db.WithContext(ctx).Save(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *GormReportRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Report{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormReportRepository) Stats(ctx context.Context) (*models.ReportStats, error) {
	stats := &models.ReportStats{
		CategoryCounts: make(map[string]int64, len(models.Categories)),
		RecentReports:  []models.Report{},
	}
	for _, c := range models.Categories {
		stats.CategoryCounts[string(c)] = 0
	}

	db := r.db.WithContext(ctx).Model(&models.Report{})

	if err := db.Count(&stats.TotalReports).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("is_published = ?", true).
		Count(&stats.PublishedReports).Error; err != nil {
		return nil, err
	}

	type categoryCount struct {
		Category string
		Count    int64
	}
	var counts []categoryCount
	if err := r.db.WithContext(ctx).Model(&models.Report{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, cc := range counts {
		stats.CategoryCounts[cc.Category] = cc.Count
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentReports).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *GormReportRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *GormReportRepository) applyFilters(query *gorm.DB, filters models.ReportFilters) *gorm.DB {
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		needle := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(summary) LIKE ?",
			needle, needle, needle,
		)
	}
	if filters.IsPublished != nil {
		query = query.Where("is_published = ?", *filters.IsPublished)
	}
	if filters.StartDate != nil {
		query = query.Where("event_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("event_date <= ?", *filters.EndDate)
	}
	if len(filters.Tags) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS t(tag) WHERE t.tag IN ?)",
			filters.Tags,
		)
	}
	return query
}
