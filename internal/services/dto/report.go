package dto

// CreateReportRequest carries the multipart form fields of a create
// call. The file travels separately.
type CreateReportRequest struct {
	Title          string   `json:"title" validate:"required,notblank,max=200"`
	Description    string   `json:"description" validate:"required,notblank,max=1000"`
	Category       string   `json:"category" validate:"required,reportcategory"`
	EventDate      string   `json:"eventDate" validate:"required,eventdate"`
	EventLocation  string   `json:"eventLocation" validate:"omitempty,max=200"`
	EventOrganizer string   `json:"eventOrganizer" validate:"omitempty,max=200"`
	Summary        string   `json:"summary" validate:"omitempty,max=2000"`
	KeyOutcomes    []string `json:"keyOutcomes"`
	Tags           []string `json:"tags"`
	IsPublished    bool     `json:"isPublished"`
}

// UpdateReportRequest is a partial update: nil means "leave this field
// alone", so rules only run on fields the caller actually sent.
type UpdateReportRequest struct {
	Title          *string  `json:"title" validate:"omitnil,notblank,max=200"`
	Description    *string  `json:"description" validate:"omitnil,notblank,max=1000"`
	Category       *string  `json:"category" validate:"omitnil,reportcategory"`
	EventDate      *string  `json:"eventDate" validate:"omitnil,eventdate"`
	EventLocation  *string  `json:"eventLocation" validate:"omitnil,max=200"`
	EventOrganizer *string  `json:"eventOrganizer" validate:"omitnil,max=200"`
	Summary        *string  `json:"summary" validate:"omitnil,max=2000"`
	KeyOutcomes    []string `json:"keyOutcomes"`
	Tags           []string `json:"tags"`
	IsPublished    *bool    `json:"isPublished"`
}

// IsEmpty reports whether the update carries no changes at all.
func (r *UpdateReportRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Category == nil &&
		r.EventDate == nil && r.EventLocation == nil && r.EventOrganizer == nil &&
		r.Summary == nil && r.KeyOutcomes == nil && r.Tags == nil && r.IsPublished == nil
}

// ContactRequest is a booking enquiry from the contact page.
type ContactRequest struct {
	Name                string `json:"name" validate:"required,notblank,max=200"`
	Email               string `json:"email" validate:"required,email"`
	Phone               string `json:"phone" validate:"omitempty,max=50"`
	Organization        string `json:"organization" validate:"omitempty,max=200"`
	EventType           string `json:"eventType" validate:"omitempty,max=200"`
	EventDate           string `json:"eventDate" validate:"omitempty,eventdate"`
	EventFormat         string `json:"eventFormat" validate:"omitempty,oneof=in-person virtual hybrid"`
	EventDuration       string `json:"eventDuration" validate:"omitempty,max=100"`
	Attendees           string `json:"attendees" validate:"omitempty,max=100"`
	SpecialRequirements string `json:"specialRequirements" validate:"omitempty,max=2000"`
	Message             string `json:"message" validate:"required,notblank,max=5000"`
}
