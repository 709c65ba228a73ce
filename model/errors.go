package model

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// ErrorTypeUndefined flags a field descriptor pointing at a model tag
	// that no factory was registered for. Programmer error, never recovered.
	ErrorTypeUndefined = "SDK_TYPE_UNDEFINED"

	// ErrorBadInput flags raw input that cannot be coerced to the declared
	// field kind.
	ErrorBadInput = "SDK_BAD_INPUT"
)

func typeUndefinedError(tag string) error {
	return goerrors.New("model: type is not defined: "+tag, goerrors.CategoryOperation).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorTypeUndefined).
		WithMetadata(map[string]any{"type": tag})
}

func coerceError(key string, message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput).
		WithMetadata(map[string]any{"field": key})
}

func coerceWrapError(source error, key string, message string) error {
	if source == nil {
		return coerceError(key, message)
	}
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput).
		WithMetadata(map[string]any{"field": key})
}
