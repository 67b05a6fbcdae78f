package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestEnvironment_DeclareAndLookup(t *testing.T) {
	env := NewEnvironment()

	if _, ok := env.Lookup("x"); ok {
		t.Fatal("empty environment has x")
	}

	if err := env.Declare("x", Number(1), false); err != nil {
		t.Fatal(err)
	}

	if err := env.Declare("x", Text("two"), false); err != nil {
		t.Fatalf("rebinding a variable failed: %v", err)
	}

	if v, ok := env.Lookup("x"); !ok || v != Text("two") {
		t.Errorf("x = %v, %v", v, ok)
	}

	if env.IsConst("x") {
		t.Error("variable reported constant")
	}
}

func TestEnvironment_Constants(t *testing.T) {
	env := NewEnvironment()

	if err := env.Declare("k", Bool(true), true); err != nil {
		t.Fatal(err)
	}

	if !env.IsConst("k") {
		t.Error("constant not reported")
	}

	for _, constant := range []bool{false, true} {
		err := env.Declare("k", Bool(false), constant)
		if !errors.Is(err, ErrConstantModified) {
			t.Errorf("redeclare (const=%v) error = %v", constant, err)
		}
	}

	if v, _ := env.Lookup("k"); v != Bool(true) {
		t.Errorf("constant changed to %v", v)
	}
}

func TestEnvironment_VariableBecomesConstant(t *testing.T) {
	env := NewEnvironment()

	_ = env.Declare("v", Number(1), false)

	if err := env.Declare("v", Number(2), true); err != nil {
		t.Fatalf("promoting to constant failed: %v", err)
	}

	if err := env.Declare("v", Number(3), false); !errors.Is(err, ErrConstantModified) {
		t.Errorf("error = %v", err)
	}
}

func TestEnvironment_Enumeration(t *testing.T) {
	env := NewEnvironment()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_ = env.Declare(name, Text(name), false)
	}

	if env.Len() != 3 {
		t.Errorf("Len() = %d", env.Len())
	}

	if got := env.Names(); !slices.Equal(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("Names() = %v", got)
	}

	var seen []string
	for name, v := range env.All() {
		if v != Text(name) {
			t.Errorf("%s = %v", name, v)
		}

		seen = append(seen, name)

		if len(seen) == 2 {
			break
		}
	}

	if !slices.Equal(seen, []string{"alpha", "mid"}) {
		t.Errorf("All() visited %v", seen)
	}
}

func TestEnvironment_ZeroValue(t *testing.T) {
	var env Environment

	if err := env.Declare("x", Number(1), false); err != nil {
		t.Fatal(err)
	}

	if env.Len() != 1 {
		t.Errorf("Len() = %d", env.Len())
	}
}
