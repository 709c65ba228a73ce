package models

import "github.com/goliatone/go-digitalize/model"

var orderEventSchema = model.Schema{
	"type":       {Kind: model.KindString},
	"date":       {Kind: model.KindDateTime},
	"product_id": {Kind: model.KindString},
	"qty":        {Kind: model.KindInt},
	"amount":     {Kind: model.KindFloat},
	"from":       {Kind: model.KindString},
	"to":         {Kind: model.KindString},
	"old":        {Kind: model.KindAny},
	"new":        {Kind: model.KindAny},
}

// OrderEvent is one entry of the order audit trail. Which fields are set
// depends on the event type; the server may send any subset.
type OrderEvent struct {
	model.Record
	model.NopHooks
}

func NewOrderEvent(data map[string]any, opts ...model.Option) (*OrderEvent, error) {
	event := &OrderEvent{}
	options := append([]model.Option{
		model.WithRegistry(registry),
		model.WithHooks(event),
	}, opts...)
	event.Init(orderEventSchema, options...)
	if err := event.Hydrate(data); err != nil {
		return nil, err
	}
	return event, nil
}

func (e *OrderEvent) Type() string      { return e.String("type") }
func (e *OrderEvent) Date() string      { return e.String("date") }
func (e *OrderEvent) ProductID() string { return e.String("product_id") }
func (e *OrderEvent) Qty() int          { return e.Int("qty") }
func (e *OrderEvent) Amount() float64   { return e.Float("amount") }
func (e *OrderEvent) From() string      { return e.String("from") }
func (e *OrderEvent) To() string        { return e.String("to") }
