package command

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-digitalize/core"
)

var (
	_ gocmd.Commander[SaveOrderMessage]         = (*SaveOrderCommand)(nil)
	_ gocmd.Commander[RefundOrderMessage]       = (*RefundOrderCommand)(nil)
	_ gocmd.Commander[RefundProductMessage]     = (*RefundProductCommand)(nil)
	_ gocmd.Commander[UpdateOrderStatusMessage] = (*UpdateOrderStatusCommand)(nil)
	_ gocmd.Commander[UpdateProductMessage]     = (*UpdateProductCommand)(nil)
	_ gocmd.Commander[EmitActivityMessage]      = (*EmitActivityCommand)(nil)

	_ OrderService    = (*core.Service)(nil)
	_ ProviderService = (*core.Service)(nil)
)
