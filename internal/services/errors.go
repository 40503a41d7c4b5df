// Package services provides the business logic layer between handlers
// and the statistical engine. Services validate input, fetch series,
// run the analysis pipeline, and fan results out to alerting.
package services

// Service layer error codes
const (
	CodeCollectionNotFound = "COLLECTION_NOT_FOUND"
	CodeRegistryFailed     = "REGISTRY_FAILED"
	CodeNoNumericFields    = "NO_NUMERIC_FIELDS"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
