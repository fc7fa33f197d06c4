package modules

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"hcl/interpreter-go/pkg/runtime"
)

func nativeTable() map[string]runtime.Value {
	return map[string]runtime.Value{"now": runtime.NumberValue{Val: 0}}
}

func TestRegistryLookupPrecedence(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterNative("time", nativeTable); err != nil {
		t.Fatalf("register native: %v", err)
	}
	if err := reg.RegisterLinked("math", func() *runtime.ModuleValue { return runtime.NewModule("math", nil) }); err != nil {
		t.Fatalf("register linked: %v", err)
	}
	if err := reg.RegisterStd("list"); err != nil {
		t.Fatalf("register std: %v", err)
	}

	cases := map[string]Kind{"time": KindNative, "math": KindLinked, "list": KindStd}
	for name, want := range cases {
		got, ok := reg.Lookup(name)
		if !ok || got != want {
			t.Fatalf("Lookup(%q) = %s,%v; want %s", name, got, ok, want)
		}
	}
	if _, ok := reg.Lookup("nope"); ok {
		t.Fatalf("expected unknown module to be absent")
	}
	if names := strings.Join(reg.Names(), ","); names != "list,math,time" {
		t.Fatalf("unexpected names: %s", names)
	}
}

func TestRegistryRejectsDuplicatesAcrossKinds(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterNative("io", nativeTable); err != nil {
		t.Fatalf("register native: %v", err)
	}
	err := reg.RegisterStd("io")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if kind, _ := reg.Lookup("io"); kind != KindNative {
		t.Fatalf("duplicate registration changed kind to %s", kind)
	}
}

func TestRegistryFreeze(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()
	if !reg.Frozen() {
		t.Fatalf("expected frozen registry")
	}
	if err := reg.RegisterStd("late"); !errors.Is(err, ErrRegistryFrozen) {
		t.Fatalf("expected ErrRegistryFrozen, got %v", err)
	}
	if _, ok := reg.Lookup("late"); ok {
		t.Fatalf("frozen registry accepted a module")
	}
}

func TestRegistryRejectsNilFactoriesAndEmptyNames(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterNative("x", nil); err == nil {
		t.Fatalf("expected nil native factory to be rejected")
	}
	if err := reg.RegisterLinked("y", nil); err == nil {
		t.Fatalf("expected nil linked factory to be rejected")
	}
	if err := reg.RegisterStd(""); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestModulePaths(t *testing.T) {
	if got := SourcePath("", "util"); got != "util.hcl" {
		t.Fatalf("unexpected bare path %q", got)
	}
	if got := SourcePath("lib", "util"); got != filepath.Join("lib", "util.hcl") {
		t.Fatalf("unexpected based path %q", got)
	}
	if got := StdPath("/opt/hcl", "list"); got != filepath.Join("/opt/hcl", "std", "list.hcl") {
		t.Fatalf("unexpected std path %q", got)
	}
	if _, err := MissingLoader.Load("a.hcl"); err == nil {
		t.Fatalf("missing loader should fail")
	}
}
