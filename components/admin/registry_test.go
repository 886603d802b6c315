package admin

import (
	"context"
	"testing"
)

func TestRegistryRequiresDefinitionBeforeProvider(t *testing.T) {
	reg := NewEmptyRegistry()
	err := reg.RegisterProvider("test.widget.missing", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{}, nil
	}))
	if err == nil {
		t.Fatalf("expected error registering provider without definition")
	}
}

func TestRegistryRejectsEmptyCode(t *testing.T) {
	reg := NewEmptyRegistry()
	if err := reg.RegisterDefinition(WidgetDefinition{}); err == nil {
		t.Fatalf("expected error for empty definition code")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewEmptyRegistry()
	def := WidgetDefinition{Code: "test.widget.sample", Name: "Sample"}
	if err := reg.RegisterDefinition(def); err != nil {
		t.Fatalf("RegisterDefinition returned error: %v", err)
	}
	if err := reg.RegisterProvider(def.Code, ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{"value": 42}, nil
	})); err != nil {
		t.Fatalf("RegisterProvider returned error: %v", err)
	}

	got, ok := reg.Definition(def.Code)
	if !ok || got.Name != "Sample" {
		t.Fatalf("expected stored definition, got %#v ok=%v", got, ok)
	}
	provider, ok := reg.Provider(def.Code)
	if !ok {
		t.Fatalf("expected stored provider")
	}
	data, err := provider.Fetch(context.Background(), WidgetContext{})
	if err != nil || data["value"] != 42 {
		t.Fatalf("unexpected provider result %v err=%v", data, err)
	}
}

func TestRegistryAppliesHooks(t *testing.T) {
	RegisterWidgetHook(func(reg *Registry) error {
		return reg.RegisterDefinition(WidgetDefinition{Code: "test.widget.hooked", Name: "Hooked"})
	})
	reg := NewEmptyRegistry()
	if err := reg.ApplyHooks(); err != nil {
		t.Fatalf("ApplyHooks returned error: %v", err)
	}
	if _, ok := reg.Definition("test.widget.hooked"); !ok {
		t.Fatalf("expected hook definition registered")
	}
}

func TestNewRegistryHasDefaultWidgets(t *testing.T) {
	reg := NewRegistry(nil)
	for _, def := range DefaultWidgetDefinitions() {
		if _, ok := reg.Definition(def.Code); !ok {
			t.Fatalf("expected default definition %s", def.Code)
		}
	}
}
