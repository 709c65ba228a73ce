package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-digitalize/core"
	"github.com/goliatone/go-digitalize/models"
)

// OrderService is the strict order surface the commands delegate to.
type OrderService interface {
	SaveOrder(ctx context.Context, req core.SaveOrderRequest) (*models.Order, error)
	RefundOrder(ctx context.Context, orderID int) (*models.Order, error)
	RefundProduct(ctx context.Context, orderID int, productID int, qty int) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status string) (*models.Order, error)
	UpdateProduct(ctx context.Context, orderID int, productID int, patch core.ProductPatch) (*models.Order, error)
}

// ProviderService is the strict provider-activity surface.
type ProviderService interface {
	EmitProviderActivity(ctx context.Context, req core.EmitActivityRequest) (*models.ProviderActivity, error)
}

type SaveOrderCommand struct {
	service OrderService
}

func NewSaveOrderCommand(service OrderService) *SaveOrderCommand {
	return &SaveOrderCommand{service: service}
}

func (c *SaveOrderCommand) Execute(ctx context.Context, msg SaveOrderMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: save order service is required")
	}
	out, err := c.service.SaveOrder(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RefundOrderCommand struct {
	service OrderService
}

func NewRefundOrderCommand(service OrderService) *RefundOrderCommand {
	return &RefundOrderCommand{service: service}
}

func (c *RefundOrderCommand) Execute(ctx context.Context, msg RefundOrderMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refund order service is required")
	}
	out, err := c.service.RefundOrder(ctx, msg.OrderID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RefundProductCommand struct {
	service OrderService
}

func NewRefundProductCommand(service OrderService) *RefundProductCommand {
	return &RefundProductCommand{service: service}
}

func (c *RefundProductCommand) Execute(ctx context.Context, msg RefundProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refund product service is required")
	}
	out, err := c.service.RefundProduct(ctx, msg.OrderID, msg.ProductID, msg.Qty)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateOrderStatusCommand struct {
	service OrderService
}

func NewUpdateOrderStatusCommand(service OrderService) *UpdateOrderStatusCommand {
	return &UpdateOrderStatusCommand{service: service}
}

func (c *UpdateOrderStatusCommand) Execute(ctx context.Context, msg UpdateOrderStatusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: update status service is required")
	}
	out, err := c.service.UpdateOrderStatus(ctx, msg.OrderID, msg.Status)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateProductCommand struct {
	service OrderService
}

func NewUpdateProductCommand(service OrderService) *UpdateProductCommand {
	return &UpdateProductCommand{service: service}
}

func (c *UpdateProductCommand) Execute(ctx context.Context, msg UpdateProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: update product service is required")
	}
	out, err := c.service.UpdateProduct(ctx, msg.OrderID, msg.ProductID, msg.Patch)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type EmitActivityCommand struct {
	service ProviderService
}

func NewEmitActivityCommand(service ProviderService) *EmitActivityCommand {
	return &EmitActivityCommand{service: service}
}

func (c *EmitActivityCommand) Execute(ctx context.Context, msg EmitActivityMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: emit activity service is required")
	}
	out, err := c.service.EmitProviderActivity(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
