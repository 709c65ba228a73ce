package digitalize

import (
	"context"

	"github.com/goliatone/go-digitalize/core"
	"github.com/goliatone/go-digitalize/models"
)

// Orders is the order endpoint namespace. Every method swallows the
// underlying error and answers nil after logging it, so callers cannot tell
// a business rejection from a transport failure here; use Client.Service()
// for the strict variant.
type Orders struct {
	client *Client
}

// Save creates the order. The client request context overrides the order's
// user_id/state_id before submission; the server-side id is never sent.
func (o *Orders) Save(ctx context.Context, order *models.Order) *models.Order {
	out, err := o.client.service.SaveOrder(ctx, core.SaveOrderRequest{
		Order:   order,
		UserID:  o.client.context.UserID,
		StateID: o.client.context.StateID,
	})
	if err != nil {
		o.client.logger.Error("orders: save failed", "error", err)
		return nil
	}
	return out
}

// RefundProduct refunds qty units of one product line of an order.
func (o *Orders) RefundProduct(ctx context.Context, orderID int, productID int, qty int) *models.Order {
	out, err := o.client.service.RefundProduct(ctx, orderID, productID, qty)
	if err != nil {
		o.client.logger.Error("orders: refund product failed", "order_id", orderID, "product_id", productID, "error", err)
		return nil
	}
	return out
}

// Refund refunds a whole order.
func (o *Orders) Refund(ctx context.Context, orderID int) *models.Order {
	out, err := o.client.service.RefundOrder(ctx, orderID)
	if err != nil {
		o.client.logger.Error("orders: refund failed", "order_id", orderID, "error", err)
		return nil
	}
	return out
}

// UpdateStatus moves an order to a new workflow status.
func (o *Orders) UpdateStatus(ctx context.Context, orderID int, status string) *models.Order {
	out, err := o.client.service.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		o.client.logger.Error("orders: update status failed", "order_id", orderID, "status", status, "error", err)
		return nil
	}
	return out
}

// UpdateProduct submits only the changed product fields.
func (o *Orders) UpdateProduct(ctx context.Context, orderID int, productID int, patch core.ProductPatch) *models.Order {
	out, err := o.client.service.UpdateProduct(ctx, orderID, productID, patch)
	if err != nil {
		o.client.logger.Error("orders: update product failed", "order_id", orderID, "product_id", productID, "error", err)
		return nil
	}
	return out
}
