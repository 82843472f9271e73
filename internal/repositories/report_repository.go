package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rapporteur_backend/internal/models"
)

// ErrReportNotFound is returned when an id resolves to no record.
var ErrReportNotFound = errors.New("report not found")

// ReportPatch is a partial update. Nil fields are left unchanged.
type ReportPatch struct {
	Title          *string
	Description    *string
	Category       *models.Category
	EventDate      *time.Time
	EventLocation  *string
	EventOrganizer *string
	Summary        *string
	KeyOutcomes    []string
	Tags           []string
	IsPublished    *bool

	// File fields move together; nil means the attachment is untouched.
	Filename *string
	FileURL  *string
	FileSize *int64
	FilePath *string
}

// ReportRepository is the storage adapter contract. It is specified
// purely by behavior so a persistent database can be substituted
// without touching callers; both implementations in this package
// honor it.
type ReportRepository interface {
	// Create persists a new report, assigning id and timestamps.
	Create(ctx context.Context, report *models.Report) (*models.Report, error)

	// GetByID returns a report or ErrReportNotFound.
	GetByID(ctx context.Context, id string) (*models.Report, error)

	// GetAll returns one page of the filtered listing, sorted by
	// eventDate descending. page and limit must already be clamped by
	// the caller.
	GetAll(ctx context.Context, filters models.ReportFilters, page, limit int) (*models.PaginatedReports, error)

	// Update applies a partial patch and bumps updatedAt, returning the
	// updated report or ErrReportNotFound.
	Update(ctx context.Context, id string, patch ReportPatch) (*models.Report, error)

	// Delete removes a record, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Stats aggregates over the whole collection.
	Stats(ctx context.Context) (*models.ReportStats, error)

	// Close releases the underlying store.
	Close() error
}

// MemoryReportRepository keeps reports in process memory. It is the
// default store; the mutex makes concurrent handlers safe, but there
// is no lost-update protection between overlapping edits of one id.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string]models.Report
	order   []string // insertion order, for stable tie-breaks
}

// NewMemoryReportRepository creates an empty in-memory store. Each
// call returns an isolated instance, so tests never share state.
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{
		reports: make(map[string]models.Report),
	}
}

func (r *MemoryReportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *report
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.reports[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	result := stored
	return &result, nil
}

func (r *MemoryReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	result := report
	return &result, nil
}

func (r *MemoryReportRepository) GetAll(ctx context.Context, filters models.ReportFilters, page, limit int) (*models.PaginatedReports, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]models.Report, 0, len(r.order))
	for _, id := range r.order {
		report := r.reports[id]
		if matchesFilters(&report, filters) {
			filtered = append(filtered, report)
		}
	}

	// Most recent event first; insertion order breaks ties.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EventDate.After(filtered[j].EventDate)
	})

	total := int64(len(filtered))
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	pageReports := make([]models.Report, end-start)
	copy(pageReports, filtered[start:end])

	return &models.PaginatedReports{
		Reports:    pageReports,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (r *MemoryReportRepository) Update(ctx context.Context, id string, patch ReportPatch) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}

	applyPatch(&report, patch)
	report.UpdatedAt = time.Now().UTC()
	r.reports[id] = report

	result := report
	return &result, nil
}

func (r *MemoryReportRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return false, nil
	}
	delete(r.reports, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryReportRepository) Stats(ctx context.Context) (*models.ReportStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.ReportStats{
		CategoryCounts: make(map[string]int64, len(models.Categories)),
		RecentReports:  []models.Report{},
	}
	for _, c := range models.Categories {
		stats.CategoryCounts[string(c)] = 0
	}

	all := make([]models.Report, 0, len(r.order))
	for _, id := range r.order {
		report := r.reports[id]
		stats.TotalReports++
		if report.IsPublished {
			stats.PublishedReports++
		}
		stats.CategoryCounts[string(report.Category)]++
		all = append(all, report)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > 5 {
		all = all[:5]
	}
	stats.RecentReports = all

	return stats, nil
}

func (r *MemoryReportRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = make(map[string]models.Report)
	r.order = nil
	return nil
}

// matchesFilters implements the conjunctive filter semantics: a report
// survives only when every provided predicate holds. Tags are the one
// internal OR: any shared tag keeps the report.
func matchesFilters(report *models.Report, filters models.ReportFilters) bool {
	if filters.Category != "" && string(report.Category) != filters.Category {
		return false
	}

	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(report.Title), needle) &&
			!strings.Contains(strings.ToLower(report.Description), needle) &&
			!strings.Contains(strings.ToLower(report.Summary), needle) {
			return false
		}
	}

	if filters.IsPublished != nil && report.IsPublished != *filters.IsPublished {
		return false
	}

	if filters.StartDate != nil && report.EventDate.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && report.EventDate.After(*filters.EndDate) {
		return false
	}

	if len(filters.Tags) > 0 {
		found := false
		for _, want := range filters.Tags {
			for _, have := range report.Tags {
				if have == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func applyPatch(report *models.Report, patch ReportPatch) {
	if patch.Title != nil {
		report.Title = *patch.Title
	}
	if patch.Description != nil {
		report.Description = *patch.Description
	}
	if patch.Category != nil {
		report.Category = *patch.Category
	}
	if patch.EventDate != nil {
		report.EventDate = *patch.EventDate
	}
	if patch.EventLocation != nil {
		report.EventLocation = *patch.EventLocation
	}
	if patch.EventOrganizer != nil {
		report.EventOrganizer = *patch.EventOrganizer
	}
	if patch.Summary != nil {
		report.Summary = *patch.Summary
	}
	if patch.KeyOutcomes != nil {
		report.KeyOutcomes = patch.KeyOutcomes
	}
	if patch.Tags != nil {
		report.Tags = patch.Tags
	}
	if patch.IsPublished != nil {
		report.IsPublished = *patch.IsPublished
	}
	if patch.Filename != nil {
		report.Filename = *patch.Filename
	}
	if patch.FileURL != nil {
		report.FileURL = *patch.FileURL
	}
	if patch.FileSize != nil {
		report.FileSize = *patch.FileSize
	}
	if patch.FilePath != nil {
		report.FilePath = *patch.FilePath
	}
}
