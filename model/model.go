// Package model implements the generic hydration, casting and export engine
// shared by every API model: a schema of typed field descriptors, weak scalar
// coercion, timezone-aware date rendering, nested-model construction through
// a static registry, and a symmetric export back to plain maps with per-model
// hook points.
package model

import (
	"fmt"
	"reflect"
	"time"
)

// Model is the capability every API model exposes.
type Model interface {
	Hydrate(raw map[string]any) error
	Set(key string, value any) error
	Export() (map[string]any, error)
}

// Hooks is the explicit pre/post export hook pair. Embed NopHooks for the
// default no-op behavior and override per model.
type Hooks interface {
	BeforeExport() error
	AfterExport(out map[string]any) (map[string]any, error)
}

type NopHooks struct{}

func (NopHooks) BeforeExport() error { return nil }

func (NopHooks) AfterExport(out map[string]any) (map[string]any, error) { return out, nil }

// Record is the two-part backing store of a model: coerced values for
// declared fields plus an open extension map for undeclared keys assigned
// through Set. Concrete models embed a Record and call Init before use.
type Record struct {
	schema   Schema
	registry *Registry
	loc      *time.Location
	hooks    Hooks
	fields   map[string]any
	extra    map[string]any
}

type Option func(*Record)

// WithRegistry wires the factory registry used for nested-model coercion.
func WithRegistry(registry *Registry) Option {
	return func(r *Record) {
		r.registry = registry
	}
}

// WithLocation sets the location dates are rendered in. Defaults to the
// process location; never mutates global state.
func WithLocation(loc *time.Location) Option {
	return func(r *Record) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithHooks installs the export hook pair, usually the embedding model itself.
func WithHooks(hooks Hooks) Option {
	return func(r *Record) {
		if hooks != nil {
			r.hooks = hooks
		}
	}
}

func (r *Record) Init(schema Schema, opts ...Option) {
	r.schema = schema
	r.loc = time.Local
	r.hooks = NopHooks{}
	r.fields = map[string]any{}
	r.extra = map[string]any{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
}

// Hydrate coerces and assigns every raw key declared in the schema. Unknown
// keys are silently ignored so additive API changes never break hydration.
// Hydrating the same input twice yields the same state.
func (r *Record) Hydrate(raw map[string]any) error {
	for key, value := range raw {
		if _, ok := r.schema[key]; !ok {
			continue
		}
		if err := r.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Set assigns a single field. Declared fields are coerced to their kind;
// undeclared keys are kept verbatim in the extension map.
func (r *Record) Set(key string, value any) error {
	field, ok := r.schema[key]
	if !ok {
		r.extra[key] = value
		return nil
	}
	if field.Multiple {
		items, ok := toSlice(value)
		if !ok {
			return coerceError(key, fmt.Sprintf("model: field expects a sequence, got %T", value))
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			coerced, err := r.castValue(field, key, item)
			if err != nil {
				return err
			}
			out = append(out, coerced)
		}
		r.fields[key] = out
		return nil
	}
	coerced, err := r.castValue(field, key, value)
	if err != nil {
		return err
	}
	r.fields[key] = coerced
	return nil
}

func (r *Record) castValue(field Field, key string, value any) (any, error) {
	switch field.Kind {
	case KindBool, KindInt, KindFloat, KindString:
		return castScalar(field.Kind, key, value)
	case KindDate, KindDateTime:
		return castDate(field.Kind, key, value, r.loc)
	case KindAny:
		return value, nil
	case KindModel:
		if value == nil {
			return nil, nil
		}
		// Already-constructed models pass through untouched so domain code
		// can assign instances directly.
		if nested, ok := value.(Model); ok {
			return nested, nil
		}
		data, ok := value.(map[string]any)
		if !ok {
			return nil, coerceError(key, fmt.Sprintf("model: nested model expects a map, got %T", value))
		}
		// Nested models render dates in the same location as their parent.
		return r.registry.Build(field.Model, data, WithLocation(r.loc))
	}
	return nil, coerceError(key, fmt.Sprintf("model: unsupported field kind %q", field.Kind))
}

// Export produces the plain view of the record: the BeforeExport hook runs
// first, every declared field is emitted (nil when unset, nested models
// recursively exported), the extension map is flattened in, and the
// AfterExport hook gets the final say over the emitted keys.
func (r *Record) Export() (map[string]any, error) {
	if err := r.hooks.BeforeExport(); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(r.schema)+len(r.extra))
	for key, field := range r.schema {
		value, ok := r.fields[key]
		if !ok || value == nil {
			if field.Multiple {
				out[key] = []any{}
				continue
			}
			out[key] = nil
			continue
		}
		exported, err := exportValue(field, value)
		if err != nil {
			return nil, err
		}
		out[key] = exported
	}
	for key, value := range r.extra {
		out[key] = value
	}
	return r.hooks.AfterExport(out)
}

func exportValue(field Field, value any) (any, error) {
	if field.Multiple {
		items, _ := value.([]any)
		out := make([]any, 0, len(items))
		for _, item := range items {
			exported, err := exportElement(item)
			if err != nil {
				return nil, err
			}
			out = append(out, exported)
		}
		return out, nil
	}
	return exportElement(value)
}

func exportElement(value any) (any, error) {
	if nested, ok := value.(Model); ok {
		return nested.Export()
	}
	return value, nil
}

// Get returns the stored value for key, declared or not.
func (r *Record) Get(key string) (any, bool) {
	if value, ok := r.fields[key]; ok {
		return value, true
	}
	value, ok := r.extra[key]
	return value, ok
}

func (r *Record) String(key string) string {
	value, _ := r.Get(key)
	out, _ := value.(string)
	return out
}

func (r *Record) Int(key string) int {
	value, _ := r.Get(key)
	out, _ := value.(int)
	return out
}

func (r *Record) Float(key string) float64 {
	value, _ := r.Get(key)
	out, _ := value.(float64)
	return out
}

func (r *Record) Bool(key string) bool {
	value, _ := r.Get(key)
	out, _ := value.(bool)
	return out
}

// Nested returns the single nested model stored under key, or nil.
func (r *Record) Nested(key string) Model {
	value, _ := r.Get(key)
	out, _ := value.(Model)
	return out
}

// NestedList returns the nested model sequence stored under key.
func (r *Record) NestedList(key string) []Model {
	value, _ := r.Get(key)
	items, _ := value.([]any)
	out := make([]Model, 0, len(items))
	for _, item := range items {
		if nested, ok := item.(Model); ok {
			out = append(out, nested)
		}
	}
	return out
}

func toSlice(value any) ([]any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, true
	case []any:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
