package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
// This covers both missing catalog rows and lookups that legitimately
// returned zero results.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// ConfigurationMissing indicates a required setting is absent. Raised before
// any external call is attempted.
func ConfigurationMissing(setting string) error {
	return &Error{
		http.StatusInternalServerError,
		setting + " is not configured.",
		"configuration_missing",
	}
}

// LookupFailed wraps transport, decode, or non-success responses from the
// bibliographic lookup service.
func LookupFailed(cause string) error {
	return &Error{
		http.StatusBadGateway,
		"Bibliographic lookup failed: " + cause,
		"lookup_failed",
	}
}

// InvalidIdentifier indicates an identifier whose digit count is neither 10
// nor 13.
func InvalidIdentifier(identifier string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Invalid identifier length: %q", identifier),
		"invalid_identifier",
	}
}

// ConstraintViolation surfaces database-level constraint failures.
func ConstraintViolation(msg string) error {
	return &Error{
		http.StatusConflict,
		msg,
		"constraint_violation",
	}
}

// IoFailure surfaces file system errors reading or writing assets or export
// files.
func IoFailure(msg string) error {
	return &Error{
		http.StatusInternalServerError,
		msg,
		"io_failure",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}
