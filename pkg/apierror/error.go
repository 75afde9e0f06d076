package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error represents a structured API error. It doubles as the error kind
// returned by the data layer: two errors with the same Code match under
// errors.Is, so callers can test against the sentinels below.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	Err        error        `json:"-"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error kinds surfaced by the record layer.
var (
	// ErrUnconfigured means the remote base URL is absent.
	ErrUnconfigured = &Error{StatusCode: http.StatusServiceUnavailable, Code: "UNCONFIGURED", Message: "remote API URL not configured"}
	// ErrTransport means the remote service could not be reached.
	ErrTransport = &Error{StatusCode: http.StatusBadGateway, Code: "TRANSPORT", Message: "remote service unreachable"}
	// ErrUnauthorized means the remote service rejected our credentials.
	ErrUnauthorized = &Error{StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "remote service rejected credentials"}
	// ErrRemoteProtocol means the remote answered with something we cannot use.
	ErrRemoteProtocol = &Error{StatusCode: http.StatusBadGateway, Code: "REMOTE_PROTOCOL", Message: "unexpected response from remote service"}
	// ErrNotFound means no record has the requested id.
	ErrNotFound = &Error{StatusCode: http.StatusNotFound, Code: "NOT_FOUND", Message: "Resource not found"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e carrying a different message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

// Wrap returns a copy of e with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// ToJSON converts the error to JSON bytes.
func (e *Error) ToJSON() []byte {
	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    e.Code,
			"message": e.Message,
		},
	}

	if len(e.Details) > 0 {
		response["error"].(map[string]interface{})["details"] = e.Details
	}

	data, _ := json.Marshal(response)
	return data
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// ValidationError creates a 400 error with validation details.
func ValidationError(message string, details ...FieldError) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
		Details:    details,
	}
}

// NotFound creates a 404 Not Found error that still matches ErrNotFound.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return ErrNotFound.WithMessage(message)
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
	}
}
