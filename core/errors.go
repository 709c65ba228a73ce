// Package core carries the client configuration, the connection descriptor,
// the shared error envelope and the strict typed API service the endpoint
// namespaces delegate to.
package core

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-digitalize/model"
)

const (
	// SDKErrorConnectionURI flags a malformed or incomplete connection URI.
	// Fatal at construction, never recovered.
	SDKErrorConnectionURI = "SDK_CONNECTION_URI_INVALID"

	// SDKErrorQueryFailed flags an HTTP >= 400 answer from the API. The
	// envelope code carries the HTTP status and the message carries the
	// decoded server error.
	SDKErrorQueryFailed = "SDK_QUERY_FAILED"

	// SDKErrorApplication flags local misuse (unsupported method) or a
	// wrapped transport failure.
	SDKErrorApplication = "SDK_APPLICATION_ERROR"

	SDKErrorBadInput      = model.ErrorBadInput
	SDKErrorTypeUndefined = model.ErrorTypeUndefined
	SDKErrorInternal      = "SDK_INTERNAL_ERROR"
)

func connectionURIError(message string, fields ...goerrors.FieldError) error {
	return goerrors.NewValidation(message, fields...).
		WithCode(http.StatusBadRequest).
		WithTextCode(SDKErrorConnectionURI).
		WithSeverity(goerrors.SeverityError)
}

func connectionURIWrapError(source error, message string) error {
	return goerrors.Wrap(source, goerrors.CategoryValidation, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(SDKErrorConnectionURI)
}

func badInputError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(SDKErrorBadInput)
}

func dependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(SDKErrorInternal)
}

func textCode(err error) string {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return ""
	}
	return rich.TextCode
}

// IsConnectionURIError reports whether err is a connection URI rejection.
func IsConnectionURIError(err error) bool {
	return textCode(err) == SDKErrorConnectionURI
}

// IsQueryError reports whether err is an HTTP error answer from the API.
func IsQueryError(err error) bool {
	return textCode(err) == SDKErrorQueryFailed
}

// IsApplicationError reports whether err is local misuse or a wrapped
// transport failure.
func IsApplicationError(err error) bool {
	return textCode(err) == SDKErrorApplication
}

// IsTypeError reports whether err is an unregistered model tag.
func IsTypeError(err error) bool {
	return textCode(err) == SDKErrorTypeUndefined
}

// QueryStatus extracts the HTTP status carried by a query error.
func QueryStatus(err error) (int, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != SDKErrorQueryFailed {
		return 0, false
	}
	return rich.Code, true
}
