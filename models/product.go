package models

import (
	"math"

	"github.com/goliatone/go-digitalize/model"
)

var productSchema = model.Schema{
	"id":                     {Kind: model.KindString},
	"qty":                    {Kind: model.KindInt},
	"unit_price":             {Kind: model.KindFloat},
	"discount":               {Kind: model.KindFloat},
	"discount_type":          {Kind: model.KindString},
	"amount_due":             {Kind: model.KindFloat},
	"amount_payed":           {Kind: model.KindFloat},
	"recommended":            {Kind: model.KindBool},
	"recommended_dates":      {Kind: model.KindDateTime, Multiple: true},
	"recommended_occurences": {Kind: model.KindInt},
	"recommended_states":     {Kind: model.KindString, Multiple: true},
}

// Product is a single order line. Amounts are derived from quantity, unit
// price and discount; the recommendation metadata is internal and never
// exported.
type Product struct {
	model.Record
	model.NopHooks
}

func NewProduct(data map[string]any, opts ...model.Option) (*Product, error) {
	product := &Product{}
	options := append([]model.Option{
		model.WithRegistry(registry),
		model.WithHooks(product),
	}, opts...)
	product.Init(productSchema, options...)
	if err := product.Hydrate(data); err != nil {
		return nil, err
	}
	return product, nil
}

func (p *Product) ID() string           { return p.String("id") }
func (p *Product) Qty() int             { return p.Int("qty") }
func (p *Product) UnitPrice() float64   { return p.Float("unit_price") }
func (p *Product) Discount() float64    { return p.Float("discount") }
func (p *Product) DiscountType() string { return p.String("discount_type") }
func (p *Product) AmountDue() float64   { return p.Float("amount_due") }
func (p *Product) AmountPayed() float64 { return p.Float("amount_payed") }

// RefreshAmounts recomputes amount_due and amount_payed. A percent discount
// is rounded to two decimals before subtraction; an amount discount subtracts
// the raw value with no floor at zero, so amount_payed can go negative.
func (p *Product) RefreshAmounts() *Product {
	amountDue := float64(p.Qty()) * p.UnitPrice()
	amountPayed := amountDue
	switch p.DiscountType() {
	case DiscountTypeAmount:
		amountPayed = amountDue - p.Discount()
	case DiscountTypePercent:
		amountPayed = amountDue - round2(amountDue*p.Discount()/100)
	}
	_ = p.Set("amount_due", amountDue)
	_ = p.Set("amount_payed", amountPayed)
	return p
}

func (p *Product) BeforeExport() error {
	p.RefreshAmounts()
	return nil
}

// AfterExport drops the recommendation metadata from the exported view.
func (p *Product) AfterExport(out map[string]any) (map[string]any, error) {
	delete(out, "recommended")
	delete(out, "recommended_dates")
	delete(out, "recommended_occurences")
	delete(out, "recommended_states")
	return out, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
