package transport

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-digitalize/core"
)

func applicationError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.SDKErrorApplication)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func applicationWrapError(source error, message string, metadata map[string]any) error {
	if source == nil {
		return applicationError(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(core.SDKErrorApplication)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func queryError(status int, message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(status).
		WithTextCode(core.SDKErrorQueryFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
