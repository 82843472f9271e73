package models

import (
	"time"
)

// Category is the closed set of event categories a report can belong to.
type Category string

const (
	CategoryTradeForums    Category = "Trade Forums"
	CategoryLegalConf      Category = "Legal Conferences"
	CategoryTechConf       Category = "Technology Conferences"
	CategoryGovMeetings    Category = "Government Meetings"
	CategoryBusinessTables Category = "Business Roundtables"
	CategoryAcademicConf   Category = "Academic Conferences"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryTradeForums,
	CategoryLegalConf,
	CategoryTechConf,
	CategoryGovMeetings,
	CategoryBusinessTables,
	CategoryAcademicConf,
}

// IsValidCategory reports whether s is a member of the category set.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ParseEventDate parses a client-supplied event date. Date-only and
// RFC3339 forms are both accepted.
func ParseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Report is the central entity: one PDF-backed account of an event.
// The file fields are all empty/zero when no attachment exists; a
// non-empty FilePath always has a matching file on storage.
type Report struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:1000;not null"`
	Category    Category  `json:"category" gorm:"size:100;not null;index"`
	EventDate   time.Time `json:"eventDate" gorm:"not null;index"`

	EventLocation  string   `json:"eventLocation,omitempty" gorm:"size:200"`
	EventOrganizer string   `json:"eventOrganizer,omitempty" gorm:"size:200"`
	Summary        string   `json:"summary,omitempty" gorm:"size:2000"`
	KeyOutcomes    []string `json:"keyOutcomes,omitempty" gorm:"type:jsonb;serializer:json"`
	Tags           []string `json:"tags,omitempty" gorm:"type:jsonb;serializer:json"`

	Filename string `json:"filename"`
	FileURL  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	FilePath string `json:"filePath"`

	IsPublished bool `json:"isPublished" gorm:"default:false;index"`
}

// HasFile reports whether an attachment is associated with the report.
func (r *Report) HasFile() bool {
	return r.FilePath != ""
}

// ReportFilters narrows a listing. All filters combine conjunctively;
// a zero value means the filter is not applied.
type ReportFilters struct {
	Category    string     // exact match
	Search      string     // case-insensitive substring over title/description/summary
	IsPublished *bool      // exact match when set
	StartDate   *time.Time // eventDate >= StartDate
	EndDate     *time.Time // eventDate <= EndDate
	Tags        []string   // report kept when it shares at least one tag
}

// PaginatedReports is one page of a filtered, eventDate-descending listing.
type PaginatedReports struct {
	Reports    []Report `json:"reports"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}

// ReportStats aggregates the whole collection.
type ReportStats struct {
	TotalReports     int64            `json:"totalReports"`
	PublishedReports int64            `json:"publishedReports"`
	CategoryCounts   map[string]int64 `json:"categoryCounts"`
	RecentReports    []Report         `json:"recentReports"` // five most recently created
}
