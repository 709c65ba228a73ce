package model

import (
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func stubFactory(data map[string]any, opts ...Option) (Model, error) {
	entry := &testEntry{}
	entry.Init(Schema{"name": {Kind: KindString}}, opts...)
	if err := entry.Hydrate(data); err != nil {
		return nil, err
	}
	return entry, nil
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("stub", stubFactory); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !registry.Has("stub") {
		t.Fatalf("expected tag to be registered")
	}

	built, err := registry.Build("stub", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if built == nil {
		t.Fatalf("expected a model instance")
	}
}

func TestRegistry_DuplicateTagFails(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("stub", stubFactory); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("stub", stubFactory); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegistry_RejectsEmptyTagAndNilFactory(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("  ", stubFactory); err == nil {
		t.Fatalf("expected empty tag to fail")
	}
	if err := registry.Register("stub", nil); err == nil {
		t.Fatalf("expected nil factory to fail")
	}
}

func TestRegistry_UnknownTagYieldsTypeError(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Build("ghost", nil)
	if err == nil {
		t.Fatalf("expected error for unknown tag")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected a rich error, got %T", err)
	}
	if rich.TextCode != ErrorTypeUndefined {
		t.Fatalf("expected text code %s, got %s", ErrorTypeUndefined, rich.TextCode)
	}
	if !strings.Contains(rich.Message, "ghost") {
		t.Fatalf("expected offending tag in message, got %q", rich.Message)
	}
}

func TestRegistry_NilRegistryBuildFails(t *testing.T) {
	var registry *Registry
	if _, err := registry.Build("stub", nil); err == nil {
		t.Fatalf("expected nil registry to fail closed")
	}
}
