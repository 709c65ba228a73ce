package model

// Kind identifies the coercion applied to a declared field.
type Kind string

const (
	KindBool     Kind = "bool"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindString   Kind = "string"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindModel    Kind = "model"

	// KindAny declares a field without coercion. The value is kept and
	// exported verbatim.
	KindAny Kind = "any"
)

// Field describes a single declared field: its coercion kind, the registry
// tag of the nested model when Kind is KindModel, and whether the field holds
// a sequence of values instead of a single one.
type Field struct {
	Kind     Kind
	Model    string
	Multiple bool
}

// Schema maps field names to their descriptors.
type Schema map[string]Field

// Scalar reports whether the field coerces to a plain value on export.
func (f Field) Scalar() bool {
	return f.Kind != KindModel
}
