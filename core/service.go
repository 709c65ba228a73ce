package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-digitalize/model"
	"github.com/goliatone/go-digitalize/models"
)

const activityDateLayout = "2006-01-02 15:04:05"

// SaveOrderRequest carries the order to create plus the optional
// session-derived context merged into it before submission.
type SaveOrderRequest struct {
	Order   *models.Order
	UserID  string
	StateID string
}

// ProductPatch is a sparse product update; only non-nil fields are sent.
type ProductPatch struct {
	UnitPrice    *float64
	Qty          *int
	Discount     *float64
	DiscountType *string
}

// Changes renders the patch as the sparse field map the API expects.
func (p ProductPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.UnitPrice != nil {
		out["unit_price"] = *p.UnitPrice
	}
	if p.Qty != nil {
		out["qty"] = *p.Qty
	}
	if p.Discount != nil {
		out["discount"] = *p.Discount
	}
	if p.DiscountType != nil {
		out["discount_type"] = *p.DiscountType
	}
	return out
}

// ProviderRef names the external system an activity originates from.
type ProviderRef struct {
	Type       string
	Identifier string
}

// ProviderUserRef is the acting user behind an activity, when known.
type ProviderUserRef struct {
	ID   string
	Name string
}

// EmitActivityRequest describes one provider activity to record. An empty
// or "now" date stamps the current time.
type EmitActivityRequest struct {
	Provider  ProviderRef
	User      *ProviderUserRef
	EventType string
	Payload   map[string]any
	Date      string
}

// Service is the strict typed surface over the API: every operation returns
// the hydrated model or the untouched error envelope. The compatibility
// namespaces on the client wrap this surface and swallow errors to nil.
type Service struct {
	descriptor ConnectionDescriptor
	executor   Executor
	logger     Logger
	loc        *time.Location
	now        func() time.Time
}

type ServiceOption func(*Service)

func WithServiceLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithServiceLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(descriptor ConnectionDescriptor, executor Executor, options ...ServiceOption) (*Service, error) {
	if executor == nil {
		return nil, dependencyError("core: service requires an executor")
	}
	service := &Service{
		descriptor: descriptor,
		executor:   executor,
		logger:     glog.Nop(),
		loc:        time.Local,
		now:        time.Now,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(service)
	}
	return service, nil
}

// SaveOrder creates the order. The exported order is submitted without its
// server-side id; the session context overrides user_id/state_id when set.
func (s *Service) SaveOrder(ctx context.Context, req SaveOrderRequest) (*models.Order, error) {
	if req.Order == nil {
		return nil, badInputError("core: save order requires an order")
	}
	if req.UserID != "" {
		if err := req.Order.Set("user_id", req.UserID); err != nil {
			return nil, err
		}
	}
	if req.StateID != "" {
		if err := req.Order.Set("state_id", req.StateID); err != nil {
			return nil, err
		}
	}
	data, err := req.Order.Export()
	if err != nil {
		return nil, err
	}
	delete(data, "id")
	res, err := s.executor.Execute(ctx, "POST", s.ordersEndpoint(""), data)
	if err != nil {
		return nil, err
	}
	return s.orderFromResponse(res)
}

// RefundProduct refunds qty units of one product line of an order.
func (s *Service) RefundProduct(ctx context.Context, orderID int, productID int, qty int) (*models.Order, error) {
	endpoint := s.ordersEndpoint(fmt.Sprintf("/%d/products/%d/refund", orderID, productID))
	res, err := s.executor.Execute(ctx, "PUT", endpoint, map[string]any{"qty": qty})
	if err != nil {
		return nil, err
	}
	return s.orderFromResponse(res)
}

// RefundOrder refunds a whole order.
func (s *Service) RefundOrder(ctx context.Context, orderID int) (*models.Order, error) {
	res, err := s.executor.Execute(ctx, "PUT", s.ordersEndpoint(fmt.Sprintf("/%d/refund", orderID)), nil)
	if err != nil {
		return nil, err
	}
	return s.orderFromResponse(res)
}

// UpdateOrderStatus moves an order to a new workflow status.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, badInputError("core: update status requires a status")
	}
	endpoint := s.ordersEndpoint(fmt.Sprintf("/%d/status/%s", orderID, status))
	res, err := s.executor.Execute(ctx, "PUT", endpoint, nil)
	if err != nil {
		return nil, err
	}
	return s.orderFromResponse(res)
}

// UpdateProduct submits the sparse map of changed product fields only.
func (s *Service) UpdateProduct(ctx context.Context, orderID int, productID int, patch ProductPatch) (*models.Order, error) {
	endpoint := s.ordersEndpoint(fmt.Sprintf("/%d/products/%d", orderID, productID))
	res, err := s.executor.Execute(ctx, "PUT", endpoint, patch.Changes())
	if err != nil {
		return nil, err
	}
	return s.orderFromResponse(res)
}

// EmitProviderActivity records one external-system event.
func (s *Service) EmitProviderActivity(ctx context.Context, req EmitActivityRequest) (*models.ProviderActivity, error) {
	if strings.TrimSpace(req.EventType) == "" {
		return nil, badInputError("core: emit activity requires an event type")
	}
	stamp, err := s.activityDate(req.Date)
	if err != nil {
		return nil, err
	}
	payload := req.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	user := map[string]any{"id": nil, "name": nil}
	if req.User != nil {
		user = map[string]any{"id": req.User.ID, "name": req.User.Name}
	}
	params := map[string]any{
		"provider": map[string]any{
			"type":       req.Provider.Type,
			"identifier": req.Provider.Identifier,
		},
		"type":    req.EventType,
		"date":    stamp,
		"payload": payload,
		"user":    user,
	}
	res, err := s.executor.Execute(ctx, "POST", "providers/activity", params)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		s.logger.Info("core: activity accepted without content", "status_code", res.StatusCode)
		return nil, nil
	}
	return models.NewProviderActivity(res.Data, s.modelOptions()...)
}

// Descriptor returns the immutable connection descriptor.
func (s *Service) Descriptor() ConnectionDescriptor {
	return s.descriptor
}

func (s *Service) ordersEndpoint(suffix string) string {
	return fmt.Sprintf("customers/%d/orders%s", s.descriptor.CustomerIDInt(), suffix)
}

// orderFromResponse hydrates the returned order. A 2xx answer without a data
// member is a success with no content and yields a nil order, not an error.
func (s *Service) orderFromResponse(res Response) (*models.Order, error) {
	if res.Data == nil {
		s.logger.Info("core: api answered without content", "status_code", res.StatusCode)
		return nil, nil
	}
	return models.NewOrder(res.Data, s.modelOptions()...)
}

func (s *Service) modelOptions() []model.Option {
	return []model.Option{model.WithLocation(s.loc)}
}

func (s *Service) activityDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "now") {
		return s.now().In(s.loc).Format(activityDateLayout), nil
	}
	parsed, err := dateparse.ParseIn(raw, s.loc)
	if err != nil {
		return "", badInputError("core: activity date is not parseable: " + raw)
	}
	return parsed.In(s.loc).Format(activityDateLayout), nil
}
