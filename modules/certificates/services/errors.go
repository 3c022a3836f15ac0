package services

import "fmt"

// Error codes returned by the certificate services. They are part of the API
// contract; the HTTP layer maps Status onto the response code verbatim.
const (
	CodeNotFound             = "CERTIFICATE_NOT_FOUND"
	CodeAccessDenied         = "CERTIFICATE_ACCESS_DENIED"
	CodeCannotBeEdited       = "CERTIFICATE_CANNOT_BE_EDITED"
	CodeConfirmationRequired = "STATUS_VALIDATION_CONFIRMATION_REQUIRED"
	CodeRequiredFieldMissing = "STATUS_VALIDATION_REQUIRED_FIELD"
	CodeBulkEmptyList        = "BULK_UPDATE_EMPTY_LIST"
	CodeBulkMaxLimitExceeded = "BULK_UPDATE_MAX_LIMIT_EXCEEDED"
	CodeBulkBlocked          = "BULK_UPDATE_CERTIFICATES_BLOCKED"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeUnexpectedError      = "UNEXPECTED_ERROR"
)

// ServiceError is a typed failure crossing the domain boundary. Details
// carries structured payloads (blocked lists, missing field names) without
// widening the primary fields.
type ServiceError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

func (e *ServiceError) withDetails(details map[string]any) *ServiceError {
	e.Details = details
	return e
}
