// Package transport issues the authenticated HTTP requests behind every API
// call: it encodes parameters per verb, applies Basic authentication from
// the connection credentials and classifies the answer into the shared
// error envelope.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/goliatone/go-digitalize/core"
)

const defaultClientTimeout = 30 * time.Second
const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

// Executor builds and issues one authenticated request per Execute call.
// It holds only configuration, so sharing one instance is safe.
type Executor struct {
	descriptor           core.ConnectionDescriptor
	client               core.HTTPDoer
	logger               core.Logger
	maxResponseBodyBytes int64
	newRequestID         func() string
}

type Option func(*Executor)

// WithHTTPClient overrides the HTTP client, e.g. for tests.
func WithHTTPClient(client core.HTTPDoer) Option {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

func WithLogger(logger core.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithInsecureTLS disables certificate and hostname verification on the
// default client. Only for local or test endpoints.
func WithInsecureTLS() Option {
	return func(e *Executor) {
		e.client = &http.Client{
			Timeout: defaultClientTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		if timeout <= 0 {
			return
		}
		if client, ok := e.client.(*http.Client); ok {
			client.Timeout = timeout
		}
	}
}

func WithMaxResponseBodyBytes(limit int64) Option {
	return func(e *Executor) {
		if limit > 0 {
			e.maxResponseBodyBytes = limit
		}
	}
}

func NewExecutor(descriptor core.ConnectionDescriptor, options ...Option) *Executor {
	executor := &Executor{
		descriptor:           descriptor,
		client:               &http.Client{Timeout: defaultClientTimeout},
		logger:               glog.Nop(),
		maxResponseBodyBytes: defaultResponseBodyLimit,
		newRequestID:         uuid.NewString,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(executor)
	}
	return executor
}

// Execute sends one request and classifies the answer. GET and DELETE carry
// the parameters as a query string with an empty body; POST, PUT and PATCH
// carry them as a JSON body with no query string. Any other method fails
// before network activity.
func (e *Executor) Execute(ctx context.Context, method string, endpoint string, params map[string]any) (core.Response, error) {
	if e == nil || e.client == nil {
		return core.Response{}, applicationError("transport: executor requires an http client", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	var body []byte
	var query string
	switch method {
	case http.MethodGet, http.MethodDelete:
		query = encodeQuery(params)
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		encoded, err := json.Marshal(normalizeParams(params))
		if err != nil {
			return core.Response{}, applicationWrapError(err, "transport: encode request body", map[string]any{
				"method": method,
			})
		}
		body = encoded
	default:
		return core.Response{}, applicationError(fmt.Sprintf("transport: unsupported method: %s", method), map[string]any{
			"method": method,
		})
	}

	requestURL := e.descriptor.BaseURL() + normalizeEndpoint(endpoint)
	if query != "" {
		requestURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bytes.NewReader(body))
	if err != nil {
		return core.Response{}, applicationWrapError(err, "transport: create http request", map[string]any{
			"method": method,
			"url":    requestURL,
		})
	}
	req.ContentLength = int64(len(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+basicCredentials(e.descriptor))
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))
	req.Header.Set("X-Request-Id", e.newRequestID())

	startedAt := time.Now()
	res, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("transport: request failed", "method", method, "url", requestURL, "error", err)
		return core.Response{}, applicationWrapError(err, "transport: execute http request", map[string]any{
			"method": method,
			"url":    requestURL,
		})
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, e.maxResponseBodyBytes+1))
	if err != nil {
		return core.Response{}, applicationWrapError(err, "transport: read response body", map[string]any{
			"method":      method,
			"status_code": res.StatusCode,
		})
	}
	if int64(len(raw)) > e.maxResponseBodyBytes {
		return core.Response{}, applicationError(
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", e.maxResponseBodyBytes),
			map[string]any{"status_code": res.StatusCode},
		)
	}

	var payload map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = nil
		}
	}

	if res.StatusCode >= http.StatusBadRequest {
		message := serverErrorMessage(payload)
		e.logger.Error("transport: api returned an error",
			"method", method,
			"url", requestURL,
			"status_code", res.StatusCode,
			"error", message,
		)
		return core.Response{}, queryError(res.StatusCode, message, map[string]any{
			"method": method,
			"url":    requestURL,
		})
	}

	e.logger.Info("transport: request completed",
		"method", method,
		"url", requestURL,
		"status_code", res.StatusCode,
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	return core.Response{
		StatusCode: res.StatusCode,
		Headers:    flattenHeaders(res.Header),
		Body:       raw,
		Payload:    payload,
		Data:       dataMember(payload),
	}, nil
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return endpoint
}

func normalizeParams(params map[string]any) map[string]any {
	if params == nil {
		return map[string]any{}
	}
	return params
}

func encodeQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range params {
		if strings.TrimSpace(key) == "" {
			continue
		}
		addQueryValue(values, key, value)
	}
	return values.Encode()
}

// addQueryValue encodes nested maps and sequences as bracketed keys, e.g.
// filter[status]=payed and ids[0]=1, the way the api expects query arrays.
func addQueryValue(values url.Values, key string, value any) {
	switch typed := value.(type) {
	case map[string]any:
		for sub, item := range typed {
			addQueryValue(values, key+"["+sub+"]", item)
		}
	case []any:
		for i, item := range typed {
			addQueryValue(values, fmt.Sprintf("%s[%d]", key, i), item)
		}
	default:
		values.Set(key, cast.ToString(value))
	}
}

func basicCredentials(descriptor core.ConnectionDescriptor) string {
	return base64.StdEncoding.EncodeToString([]byte(descriptor.APIKey + ":" + descriptor.APISecret))
}

func serverErrorMessage(payload map[string]any) string {
	if payload != nil {
		if message := strings.TrimSpace(cast.ToString(payload["error"])); message != "" {
			return message
		}
	}
	return "transport: the api returned an error"
}

func dataMember(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	data, _ := payload["data"].(map[string]any)
	return data
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

var _ core.Executor = (*Executor)(nil)
