package llm

import (
	"slices"
	"testing"
)

func TestDialectRegistry(t *testing.T) {
	RegisterDialect("test-registry", &mockDialect{name: "test-registry"})

	d, err := GetDialect("test-registry")
	if err != nil {
		t.Fatalf("GetDialect: %v", err)
	}
	if d.Name() != "test-registry" {
		t.Errorf("Name() = %q", d.Name())
	}
	if !slices.Contains(Dialects(), "test-registry") {
		t.Errorf("Dialects() = %v", Dialects())
	}

	if _, err := GetDialect("nope"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}
