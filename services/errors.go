package services

import "errors"

var (
	// ErrUnsupportedFileType is returned when no analysis branch handles a MIME type
	ErrUnsupportedFileType = errors.New("unsupported file type for processing")
	// ErrInvalidCredentials is returned when admin login fails
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrStorageNotConfigured is returned when an upload arrives without object storage
	ErrStorageNotConfigured = errors.New("object storage is not configured")
)

// ValidationError reports bad client input. Handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
