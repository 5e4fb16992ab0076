package dispatch

import (
	"strings"
	"testing"

	"loanserve-backend/pkg/apperr"
)

func TestResolve_SingletonWinsOverFactory(t *testing.T) {
	r := NewRegistry()
	r.RegisterFactory("clock", func() any { return "factory" })
	r.RegisterSingleton("clock", "singleton")

	got, err := r.Resolve("clock")
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if got != "singleton" {
		t.Fatalf("got %v, want singleton", got)
	}
}

func TestResolve_FactoryProducesPerCall(t *testing.T) {
	r := NewRegistry()
	n := 0
	r.RegisterFactory("counter", func() any { n++; return n })

	first, _ := r.Resolve("counter")
	second, _ := r.Resolve("counter")
	if first == second {
		t.Fatalf("factory not invoked per call: %v == %v", first, second)
	}
}

func TestResolve_Unregistered_IsConfigurationError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("missing-cap")
	if err == nil {
		t.Fatal("want error")
	}
	if !apperr.IsKind(err, apperr.KindConfiguration) {
		t.Fatalf("kind=%s", apperr.KindOf(err))
	}
	if !strings.Contains(err.Error(), "missing-cap") {
		t.Fatalf("error %q does not name the capability", err.Error())
	}
}

func TestHas(t *testing.T) {
	r := NewRegistry()
	if r.Has("x") {
		t.Fatal("empty registry claims capability")
	}
	r.RegisterFactory("x", func() any { return 1 })
	if !r.Has("x") {
		t.Fatal("factory registration not visible")
	}
}
