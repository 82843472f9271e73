package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// PagesHandler serves the marketing site and the public report
// browser. The browser and detail pages are thin shells: their data
// comes from the public JSON API over fetch calls, the same surface
// third parties use.
type PagesHandler struct {
	uploadDir string
}

func NewPagesHandler(uploadDir string) *PagesHandler {
	return &PagesHandler{
		uploadDir: uploadDir,
	}
}

func (h *PagesHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.page("home.html", "Professional Rapporteur Services"))
	r.GET("/why-rapporteurs", h.page("why-rapporteurs.html", "Why Rapporteurs"))
	r.GET("/services", h.page("services.html", "Our Services"))
	r.GET("/our-work", h.page("our-work.html", "Our Work"))
	r.GET("/contact", h.page("contact.html", "Contact Us"))

	r.GET("/reports", h.page("reports.html", "Event Reports"))
	r.GET("/reports/:id", h.ReportDetail)
}

func (h *PagesHandler) page(template, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, template, gin.H{"Title": title})
	}
}

// ReportDetail renders the detail shell for a report id. Stored PDFs
// share the /reports prefix, so .pdf paths are served straight from
// the upload root (names are generated UUIDs; the base-name guard
// keeps traversal out).
func (h *PagesHandler) ReportDetail(c *gin.Context) {
	id := c.Param("id")
	if strings.HasSuffix(strings.ToLower(id), ".pdf") {
		c.File(filepath.Join(h.uploadDir, filepath.Base(id)))
		return
	}

	c.HTML(http.StatusOK, "report_detail.html", gin.H{
		"Title":    "Event Report",
		"ReportID": id,
	})
}
