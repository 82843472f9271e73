package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// FieldError describes a single validation failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the application error carried across layer boundaries.
// HTTPCode never crosses the wire directly; the controller boundary
// maps it into the response envelope.
type AppError struct {
	Code     ErrorCode    `json:"code"`
	Domain   string       `json:"domain"`
	Message  string       `json:"message"`
	Fields   []FieldError `json:"fields,omitempty"`
	Err      error        `json:"-"`
	HTTPCode int          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New is the base constructor.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithFields(fields []FieldError) *AppError {
	e.Fields = fields
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- common non-domain helpers ---

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError builds a 400 carrying the collected field errors.
func ValidationError(message string, fields []FieldError) *AppError {
	return New(CodeValidationFailed, "validation", message, http.StatusBadRequest).WithFields(fields)
}

// NewNotFoundError builds a 404 for a missing record or file.
func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, "resource", message, http.StatusNotFound)
}

// NewBadRequestError builds a plain 400 without field details.
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// NewMethodNotAllowedError builds a 405 for unsupported verbs on a route.
func NewMethodNotAllowedError() *AppError {
	return New(CodeMethodNotAllowed, "request", "Method not allowed", http.StatusMethodNotAllowed)
}

// NewUploadError builds a file-service error. Bad input (wrong type or
// size) travels as 400, storage failures as 500.
func NewUploadError(message string, httpCode int, fields []FieldError) *AppError {
	return New(CodeUploadFailed, "file", message, httpCode).WithFields(fields)
}

// NewPersistenceError wraps a failed storage-adapter operation.
func NewPersistenceError(err error, message string) *AppError {
	return Wrap(err, CodeDatabaseError, "storage", message, http.StatusInternalServerError)
}
