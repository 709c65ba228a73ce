// Package command exposes every API operation as a go-command message and
// handler pair, so the SDK plugs into command buses without losing the
// typed error envelope.
package command

import (
	"strings"

	"github.com/goliatone/go-digitalize/core"
)

const (
	TypeSaveOrder         = "digitalize.command.order.save"
	TypeRefundOrder       = "digitalize.command.order.refund"
	TypeRefundProduct     = "digitalize.command.order.refund_product"
	TypeUpdateOrderStatus = "digitalize.command.order.update_status"
	TypeUpdateProduct     = "digitalize.command.order.update_product"
	TypeEmitActivity      = "digitalize.command.provider.emit_activity"
)

type SaveOrderMessage struct {
	Request core.SaveOrderRequest
}

func (SaveOrderMessage) Type() string { return TypeSaveOrder }

func (m SaveOrderMessage) Validate() error {
	if m.Request.Order == nil {
		return commandValidationError("order", "order is required")
	}
	return nil
}

type RefundOrderMessage struct {
	OrderID int
}

func (RefundOrderMessage) Type() string { return TypeRefundOrder }

func (m RefundOrderMessage) Validate() error {
	if m.OrderID <= 0 {
		return commandValidationError("order_id", "order id is required")
	}
	return nil
}

type RefundProductMessage struct {
	OrderID   int
	ProductID int
	Qty       int
}

func (RefundProductMessage) Type() string { return TypeRefundProduct }

func (m RefundProductMessage) Validate() error {
	if m.OrderID <= 0 {
		return commandValidationError("order_id", "order id is required")
	}
	if m.ProductID <= 0 {
		return commandValidationError("product_id", "product id is required")
	}
	if m.Qty <= 0 {
		return commandValidationError("qty", "quantity to refund must be positive")
	}
	return nil
}

type UpdateOrderStatusMessage struct {
	OrderID int
	Status  string
}

func (UpdateOrderStatusMessage) Type() string { return TypeUpdateOrderStatus }

func (m UpdateOrderStatusMessage) Validate() error {
	if m.OrderID <= 0 {
		return commandValidationError("order_id", "order id is required")
	}
	if strings.TrimSpace(m.Status) == "" {
		return commandValidationError("status", "status is required")
	}
	return nil
}

type UpdateProductMessage struct {
	OrderID   int
	ProductID int
	Patch     core.ProductPatch
}

func (UpdateProductMessage) Type() string { return TypeUpdateProduct }

func (m UpdateProductMessage) Validate() error {
	if m.OrderID <= 0 {
		return commandValidationError("order_id", "order id is required")
	}
	if m.ProductID <= 0 {
		return commandValidationError("product_id", "product id is required")
	}
	return nil
}

type EmitActivityMessage struct {
	Request core.EmitActivityRequest
}

func (EmitActivityMessage) Type() string { return TypeEmitActivity }

func (m EmitActivityMessage) Validate() error {
	if strings.TrimSpace(m.Request.EventType) == "" {
		return commandValidationError("type", "event type is required")
	}
	return nil
}
