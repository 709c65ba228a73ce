// Package digitalize is the Go client SDK for the Digital'ize
// order-management API. A Client is built from a connection URI carrying the
// API credentials and customer scope, and exposes the Orders and Providers
// namespaces plus the strict typed service underneath them.
package digitalize

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-digitalize/command"
	"github.com/goliatone/go-digitalize/core"
	"github.com/goliatone/go-digitalize/transport"
)

// RequestContext is the session-derived context the host application can
// attach to the client; it is merged into every saved order.
type RequestContext struct {
	UserID  string
	StateID string
}

// Commands groups the go-command handlers bound to this client.
type Commands struct {
	SaveOrder         *command.SaveOrderCommand
	RefundOrder       *command.RefundOrderCommand
	RefundProduct     *command.RefundProductCommand
	UpdateOrderStatus *command.UpdateOrderStatusCommand
	UpdateProduct     *command.UpdateProductCommand
	EmitActivity      *command.EmitActivityCommand
}

// Client holds the parsed connection descriptor and the request executor.
// It carries only configuration, no in-flight request state.
type Client struct {
	descriptor core.ConnectionDescriptor
	executor   core.Executor
	service    *core.Service
	logger     core.Logger
	commands   Commands
	context    RequestContext
	config     core.Config

	Orders    *Orders
	Providers *Providers
}

type clientBuilder struct {
	httpClient     core.HTTPDoer
	logger         core.Logger
	loggerProvider core.LoggerProvider
	executor       core.Executor
	insecure       bool
	timeout        time.Duration
	location       *time.Location
	clock          func() time.Time
}

type Option func(*clientBuilder)

// WithHTTPClient overrides the HTTP client. Takes precedence over
// WithInsecureTLS and WithTimeout.
func WithHTTPClient(client core.HTTPDoer) Option {
	return func(b *clientBuilder) {
		b.httpClient = client
	}
}

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

// WithExecutor swaps the whole transport, e.g. for tests.
func WithExecutor(executor core.Executor) Option {
	return func(b *clientBuilder) {
		b.executor = executor
	}
}

// WithInsecureTLS disables TLS certificate and hostname verification. Only
// for local or test endpoints, never a production default.
func WithInsecureTLS() Option {
	return func(b *clientBuilder) {
		b.insecure = true
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(b *clientBuilder) {
		b.timeout = timeout
	}
}

// WithLocation sets the location dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(b *clientBuilder) {
		if loc != nil {
			b.location = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *clientBuilder) {
		if now != nil {
			b.clock = now
		}
	}
}

// New parses the connection URI and builds a ready client. A malformed URI
// fails here with the aggregated validation envelope; nothing is recovered.
func New(uri string, options ...Option) (*Client, error) {
	builder := clientBuilder{
		location: time.Local,
		clock:    time.Now,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&builder)
	}

	descriptor, err := core.ParseConnectionURI(uri)
	if err != nil {
		return nil, err
	}

	provider, logger := glog.Resolve("digitalize", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("digitalize"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	executor := builder.executor
	if executor == nil {
		executorOptions := []transport.Option{transport.WithLogger(logger)}
		if builder.insecure {
			executorOptions = append(executorOptions, transport.WithInsecureTLS())
		}
		if builder.timeout > 0 {
			executorOptions = append(executorOptions, transport.WithTimeout(builder.timeout))
		}
		if builder.httpClient != nil {
			executorOptions = append(executorOptions, transport.WithHTTPClient(builder.httpClient))
		}
		executor = transport.NewExecutor(descriptor, executorOptions...)
	}

	service, err := core.NewService(descriptor, executor,
		core.WithServiceLogger(logger),
		core.WithServiceLocation(builder.location),
		core.WithServiceClock(builder.clock),
	)
	if err != nil {
		return nil, err
	}

	client := &Client{
		descriptor: descriptor,
		executor:   executor,
		service:    service,
		logger:     logger,
		config:     core.Config{ConnectionURI: uri},
	}
	client.commands = Commands{
		SaveOrder:         command.NewSaveOrderCommand(service),
		RefundOrder:       command.NewRefundOrderCommand(service),
		RefundProduct:     command.NewRefundProductCommand(service),
		UpdateOrderStatus: command.NewUpdateOrderStatusCommand(service),
		UpdateProduct:     command.NewUpdateProductCommand(service),
		EmitActivity:      command.NewEmitActivityCommand(service),
	}
	client.Orders = &Orders{client: client}
	client.Providers = &Providers{client: client}
	return client, nil
}

// NewFromConfig resolves cfg over the defaults through the options resolver
// and builds a client from the result.
func NewFromConfig(cfg core.Config, options ...Option) (*Client, error) {
	resolved, err := core.GoOptionsResolver{}.Resolve(core.DefaultConfig(), cfg, core.Config{})
	if err != nil {
		return nil, err
	}
	return newFromResolved(resolved, options...)
}

// NewFromRawConfig loads loosely-typed configuration through cfgx, overlays
// the runtime values and builds a client from the resolved result.
func NewFromRawConfig(ctx context.Context, loader core.RawConfigLoader, runtime core.Config, options ...Option) (*Client, error) {
	defaults := core.DefaultConfig()
	loaded, err := core.NewCfgxConfigProvider(loader).Load(ctx, defaults)
	if err != nil {
		return nil, err
	}
	resolved, err := core.GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		return nil, err
	}
	return newFromResolved(resolved, options...)
}

func newFromResolved(cfg core.Config, options ...Option) (*Client, error) {
	base := []Option{}
	if cfg.Insecure {
		base = append(base, WithInsecureTLS())
	}
	if cfg.TimeoutSeconds > 0 {
		base = append(base, WithTimeout(cfg.Timeout()))
	}
	if cfg.Timezone != "" {
		base = append(base, WithLocation(cfg.Location()))
	}
	client, err := New(cfg.ConnectionURI, append(base, options...)...)
	if err != nil {
		return nil, err
	}
	client.config = cfg
	return client, nil
}

// Service returns the strict typed surface for callers that want errors
// instead of the namespaces' nil-on-failure compatibility behavior.
func (c *Client) Service() *core.Service {
	return c.service
}

func (c *Client) Descriptor() core.ConnectionDescriptor {
	return c.descriptor
}

// Config returns the declarative configuration the client was built from.
// Clients built through New carry only the connection URI.
func (c *Client) Config() core.Config {
	return c.config
}

// Commands returns the go-command handlers bound to this client.
func (c *Client) Commands() Commands {
	return c.commands
}

// Params returns a copy of the extra query parameters retained from the
// connection URI.
func (c *Client) Params() map[string]string {
	out := make(map[string]string, len(c.descriptor.Params))
	for key, value := range c.descriptor.Params {
		out[key] = value
	}
	return out
}

// SetRequestContext attaches the session-derived context merged into every
// order saved through the Orders namespace.
func (c *Client) SetRequestContext(rc RequestContext) {
	c.context = rc
}

// Get issues a GET request against the API. Params travel as a query string.
func (c *Client) Get(ctx context.Context, endpoint string, query map[string]any) (core.Response, error) {
	return c.executor.Execute(ctx, "GET", endpoint, query)
}

// Post issues a POST request. Params travel as a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, params map[string]any) (core.Response, error) {
	return c.executor.Execute(ctx, "POST", endpoint, params)
}

// Put issues a PUT request. Params travel as a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, params map[string]any) (core.Response, error) {
	return c.executor.Execute(ctx, "PUT", endpoint, params)
}

// Patch issues a PATCH request. Params travel as a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, params map[string]any) (core.Response, error) {
	return c.executor.Execute(ctx, "PATCH", endpoint, params)
}

// Delete issues a DELETE request. Params travel as a query string.
func (c *Client) Delete(ctx context.Context, endpoint string, query map[string]any) (core.Response, error) {
	return c.executor.Execute(ctx, "DELETE", endpoint, query)
}
