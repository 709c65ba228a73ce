// Package models declares the concrete API models: orders with their product
// and event sequences, and the provider activity value objects. Every model
// builds on the generic model engine and registers a factory under a static
// tag so nested fields can be constructed during hydration.
package models

import "github.com/goliatone/go-digitalize/model"

const (
	TypeOrder              = "order"
	TypeProduct            = "product"
	TypeOrderEvent         = "order_event"
	TypeProviderActivity   = "provider_activity"
	TypeProviderIdentifier = "provider_identifier"
	TypeProviderUser       = "provider_user"
)

var registry = model.NewRegistry()

func init() {
	registry.MustRegister(TypeOrder, func(data map[string]any, opts ...model.Option) (model.Model, error) {
		return NewOrder(data, opts...)
	})
	registry.MustRegister(TypeProduct, func(data map[string]any, opts ...model.Option) (model.Model, error) {
		return NewProduct(data, opts...)
	})
	registry.MustRegister(TypeOrderEvent, func(data map[string]any, opts ...model.Option) (model.Model, error) {
		return NewOrderEvent(data, opts...)
	})
	registry.MustRegister(TypeProviderActivity, func(data map[string]any, opts ...model.Option) (model.Model, error) {
		return NewProviderActivity(data, opts...)
	})
	registry.MustRegister(TypeProviderIdentifier, func(data map[string]any, opts ...model.Option) (model.Model, error) {
		return NewProviderIdentifier(data, opts...)
	})
	registry.MustRegister(TypeProviderUser, func(data map[string]any, opts ...model.Option) (model.Model, error) {
		return NewProviderUser(data, opts...)
	})
}

// Registry returns the shared factory registry for the known model set.
func Registry() *model.Registry {
	return registry
}
