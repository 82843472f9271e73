package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rapporteur_backend/internal/models"
	"rapporteur_backend/pkg/apperrors"
)

// ParseQueryInt reads an integer query parameter, falling back to the
// default on absence or garbage.
func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParsePagination extracts page and limit with the API's defaults. The
// model layer clamps them again; this keeps obviously bad input from
// ever reaching it.
func ParsePagination(c *gin.Context) (page, limit int) {
	page = ParseQueryInt(c, "page", 1)
	limit = ParseQueryInt(c, "limit", 10)
	return page, limit
}

// parseListFilters coerces the listing query parameters into typed
// filters. Unknown category values and unparseable dates are rejected
// here, at the boundary, rather than compared loosely later.
func parseListFilters(c *gin.Context) (models.ReportFilters, error) {
	var filters models.ReportFilters

	if category := c.Query("category"); category != "" {
		if !models.IsValidCategory(category) {
			return filters, apperrors.NewBadRequestError("Unknown category: " + category)
		}
		filters.Category = category
	}

	filters.Search = c.Query("search")

	if v := c.Query("isPublished"); v != "" {
		published := v == "true"
		filters.IsPublished = &published
	}

	if v := c.Query("startDate"); v != "" {
		t, err := models.ParseEventDate(v)
		if err != nil {
			return filters, apperrors.NewBadRequestError("Invalid startDate: use YYYY-MM-DD")
		}
		filters.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := models.ParseEventDate(v)
		if err != nil {
			return filters, apperrors.NewBadRequestError("Invalid endDate: use YYYY-MM-DD")
		}
		filters.EndDate = &t
	}

	if v := c.Query("tags"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		}
	}

	return filters, nil
}

// parseJSONList decodes a JSON-encoded string array form field
// (tags, keyOutcomes travel this way inside the multipart form).
func parseJSONList(raw, field string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid JSON in " + field + " field")
	}
	return list, nil
}
