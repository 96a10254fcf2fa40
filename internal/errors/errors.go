package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when no valid access token accompanies a request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidToken is returned when an access token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidRefreshToken is returned when a refresh token is missing, invalid, or rotated out.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrInvalidCredentials is returned for both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the authenticated role is not permitted.
	ErrForbidden = errors.New("forbidden: insufficient permissions")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a token subject no longer resolves to a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmployeeNotFound is returned for unknown or malformed employee ids.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// ErrorResponse represents a standardized error response body. Every error
// rendered by the API carries a message; validation failures additionally
// carry per-field messages.
type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// NewValidationError creates a 400 error carrying field-level messages.
func NewValidationError(fields []string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Code:       "VALIDATION_FAILED",
		Fields:     fields,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so persistence failures never leak detail to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Not authenticated", "NOT_AUTHENTICATED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid or expired token", "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid refresh token", "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Forbidden: Insufficient permissions", "FORBIDDEN")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, "User already exists", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrEmployeeNotFound):
		return NewHTTPError(http.StatusNotFound, "Employee not found", "EMPLOYEE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
