package core

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// HTTPDoer is the minimal HTTP client surface the transport needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is the classified outcome of one API call. Payload is the full
// decoded JSON body; Data is the decoded `data` member when present, nil
// otherwise.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Payload    map[string]any
	Data       map[string]any
}

// Executor issues one authenticated request per call and classifies the
// answer. Implementations own the connection for the duration of the call
// and release it on every exit path.
type Executor interface {
	Execute(ctx context.Context, method string, endpoint string, params map[string]any) (Response, error)
}
