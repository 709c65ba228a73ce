package models

import (
	"time"

	"github.com/goliatone/go-digitalize/model"
)

const (
	StatusCanceled = "canceled"
	StatusCreated  = "created"
	StatusPayed    = "payed"
	StatusFinished = "finished"
	StatusRefunded = "refunded"

	DiscountTypeAmount  = "amount"
	DiscountTypePercent = "percent"
)

var orderSchema = model.Schema{
	"id":                {Kind: model.KindString},
	"order_id":          {Kind: model.KindInt},
	"date":              {Kind: model.KindDateTime},
	"status":            {Kind: model.KindString},
	"state_id":          {Kind: model.KindString},
	"user_id":           {Kind: model.KindAny},
	"final_customer_id": {Kind: model.KindAny},
	"products":          {Kind: model.KindModel, Model: TypeProduct, Multiple: true},
	"amount_due":        {Kind: model.KindFloat},
	"amount_payed":      {Kind: model.KindFloat},
	"discount":          {Kind: model.KindFloat},
	"events":            {Kind: model.KindModel, Model: TypeOrderEvent, Multiple: true},
	"created_at":        {Kind: model.KindDateTime},
	"updated_at":        {Kind: model.KindDateTime},
}

// Order is the aggregate the API trades in: the order header, its product
// lines, derived amount totals and the audit-event trail. The order owns its
// products and events; amount totals are recomputed from the products on
// every mutation and never trusted from caller input afterwards.
type Order struct {
	model.Record
	model.NopHooks
}

func NewOrder(data map[string]any, opts ...model.Option) (*Order, error) {
	order := &Order{}
	options := append([]model.Option{
		model.WithRegistry(registry),
		model.WithHooks(order),
	}, opts...)
	order.Init(orderSchema, options...)
	if err := order.Hydrate(data); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder starts a new order from the external order number. Status
// defaults to created and date to the current time when left empty.
func CreateOrder(orderNumber int, status string, date string) (*Order, error) {
	order, err := NewOrder(nil)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusCreated
	}
	var when any = time.Now()
	if date != "" {
		when = date
	}
	if err := order.Set("order_id", orderNumber); err != nil {
		return nil, err
	}
	if err := order.Set("status", status); err != nil {
		return nil, err
	}
	if err := order.Set("date", when); err != nil {
		return nil, err
	}
	return order, nil
}

func (o *Order) ID() string           { return o.String("id") }
func (o *Order) OrderNumber() int     { return o.Int("order_id") }
func (o *Order) Status() string       { return o.String("status") }
func (o *Order) AmountDue() float64   { return o.Float("amount_due") }
func (o *Order) AmountPayed() float64 { return o.Float("amount_payed") }
func (o *Order) Discount() float64    { return o.Float("discount") }

func (o *Order) Products() []*Product {
	nested := o.NestedList("products")
	out := make([]*Product, 0, len(nested))
	for _, item := range nested {
		if product, ok := item.(*Product); ok {
			out = append(out, product)
		}
	}
	return out
}

func (o *Order) Events() []*OrderEvent {
	nested := o.NestedList("events")
	out := make([]*OrderEvent, 0, len(nested))
	for _, item := range nested {
		if event, ok := item.(*OrderEvent); ok {
			out = append(out, event)
		}
	}
	return out
}

// AddProduct appends a product line and refreshes the order totals. Returns
// the order for chaining; use AppendProduct when the construction error
// matters. An empty discount type means a flat amount.
func (o *Order) AddProduct(id string, unitPrice float64, qty int, discount float64, discountType string) *Order {
	_, _ = o.AppendProduct(id, unitPrice, qty, discount, discountType)
	return o
}

// AppendProduct appends a product line, refreshes the order totals and
// returns the created line.
func (o *Order) AppendProduct(id string, unitPrice float64, qty int, discount float64, discountType string) (*Product, error) {
	if discountType == "" {
		discountType = DiscountTypeAmount
	}
	product, err := NewProduct(map[string]any{
		"id":            id,
		"unit_price":    unitPrice,
		"qty":           qty,
		"discount":      discount,
		"discount_type": discountType,
	})
	if err != nil {
		return nil, err
	}
	items := o.NestedList("products")
	items = append(items, product)
	if err := o.Set("products", items); err != nil {
		return nil, err
	}
	o.RefreshAmounts()
	return product, nil
}

// RefreshAmounts recomputes amount_due, amount_payed and discount as the
// sums over the current product lines, after refreshing each line.
func (o *Order) RefreshAmounts() *Order {
	var amountDue, amountPayed, discount float64
	for _, product := range o.Products() {
		product.RefreshAmounts()
		amountDue += product.AmountDue()
		amountPayed += product.AmountPayed()
		discount += product.AmountDue() - product.AmountPayed()
	}
	_ = o.Set("amount_due", amountDue)
	_ = o.Set("amount_payed", amountPayed)
	_ = o.Set("discount", discount)
	return o
}

// AfterExport keeps the server-stamped timestamps out of the exported view.
func (o *Order) AfterExport(out map[string]any) (map[string]any, error) {
	delete(out, "created_at")
	delete(out, "updated_at")
	return out, nil
}
