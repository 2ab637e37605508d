package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFossilNotFound is returned when a fossil id has no matching row.
	ErrFossilNotFound = errors.New("fossil not found")
	// ErrUserNotFound is returned when a user id has no matching row.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOwner is returned when an authenticated caller tries to mutate a
	// fossil owned by someone else.
	ErrNotOwner = errors.New("access denied")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login failure. Unknown email and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrContactRequired is returned when showContact is enabled without a
	// non-empty public contact.
	ErrContactRequired = errors.New("a public contact is required when showContact is enabled")
	// ErrWrongPassword is returned when the current password presented for a
	// password change does not verify.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrMissingFields is returned when a required fossil field is empty.
	ErrMissingFields = errors.New("especie, familia, periodo and localizacao are required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors map to
// a generic 500 so persistence details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrFossilNotFound), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrContactRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CONTACT_REQUIRED")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "MISSING_FIELDS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
