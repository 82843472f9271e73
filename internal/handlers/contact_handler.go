package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rapporteur_backend/internal/services"
	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/pkg/apperrors"
)

// ContactHandler accepts booking enquiries from the contact page.
type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.Submit)
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Enquiry submitted successfully",
	})
}
