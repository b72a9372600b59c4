package autofixture

import (
	"fmt"
	"reflect"
)

// ResolveParameters returns one specimen per parameter, in declaration order.
// On failure no values are returned.
func ResolveParameters(f *Fixture, params []Parameter) ([]reflect.Value, error) {
	if len(params) == 0 {
		return []reflect.Value{}, nil
	}
	if f == nil {
		return nil, fmt.Errorf("resolve parameters: %w", ErrNullArgument)
	}

	values := make([]reflect.Value, len(params))
	for i, p := range params {
		if p.Type == nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, ErrNullArgument)
		}
		v, err := f.ResolveNamed(p.Type, p.Name)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p, err)
		}
		values[i] = v
	}
	return values, nil
}

// Generate applies the parameters' customizations and then resolves them.
func Generate(f *Fixture, params []Parameter) ([]reflect.Value, error) {
	return NewGenerator(f).Generate(params)
}

// Generator produces the values for one invocation's parameters.
type Generator struct {
	fixture *Fixture
}

// NewGenerator creates a generator drawing from f.
func NewGenerator(f *Fixture) *Generator {
	return &Generator{fixture: f}
}

// Generate runs two passes: every declaration is applied first, so pins are
// in place before any parameter is resolved.
func (g *Generator) Generate(params []Parameter) ([]reflect.Value, error) {
	if g == nil || g.fixture == nil {
		return nil, fmt.Errorf("generate: %w", ErrNullArgument)
	}
	if len(params) == 0 {
		return []reflect.Value{}, nil
	}
	if err := ApplyCustomizations(g.fixture, params); err != nil {
		return nil, err
	}
	return ResolveParameters(g.fixture, params)
}

// Values converts specimens to interface values.
func Values(vals []reflect.Value) []any {
	res := make([]any, len(vals))
	for i, v := range vals {
		if v.IsValid() {
			res[i] = v.Interface()
		}
	}
	return res
}
