package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Upload & Storage Errors
var (
	ErrNotAnImage       = errors.New("Please select an image file")
	ErrImageTooLarge    = errors.New("Image size must be less than 5MB")
	ErrImageDimensions  = errors.New("Image dimensions must be at most 10000x10000 pixels and 40 megapixels")
	ErrNotADocument     = errors.New("Please upload a PDF or Word document")
	ErrResumeTooLarge   = errors.New("Resume size must be less than 5MB")
	ErrUploadFailed     = errors.New("upload failed")
	ErrObjectExists     = errors.New("object already exists")
	ErrNotConfigured    = errors.New("not configured")
	ErrModalNotFound    = errors.New("modal not found")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNotificationFail = errors.New("notification failed")
)

// NewFileValidationError wraps one of the file sentinels so visitors see the sentinel text.
func NewFileValidationError(sentinel error, field string, statusCode int) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        sentinel,
		Field:      field,
	}
}

func NewUploadError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Could not upload %s", path),
		Cause:      cause,
	}
}

func NewObjectExistsError(path string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrObjectExists,
		Details:    path,
	}
}

// NewConfigError reports a dependency that was never initialized, such as storage or email.
func NewConfigError(dependency string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        fmt.Errorf("%s is %w", dependency, ErrNotConfigured),
		Field:      "configuration",
	}
}

func NewModalNotFoundError(id string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrModalNotFound,
		Details:    fmt.Sprintf("No open modal with id %s", id),
	}
}

func NewSubmitInProgressError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrSubmitInProgress,
	}
}

func NewNotificationError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrNotificationFail,
		Cause:      cause,
	}
}

func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

func IsSubmitInProgress(err error) bool {
	return errors.Is(err, ErrSubmitInProgress)
}
