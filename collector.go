package autofixture

import (
	"fmt"
	"reflect"
	"sort"
)

// pendingCustomization is a declaration together with the parameter it was
// attached to.
type pendingCustomization struct {
	decl  Declaration
	param Parameter
}

// ApplyCustomizations applies the declarations of all parameters to f,
// lowest priority first. Declarations with equal priority keep their
// declaration order, so among overlapping freezes the first one declared
// owns the shared types.
func ApplyCustomizations(f *Fixture, params []Parameter) error {
	if f == nil {
		return fmt.Errorf("apply customizations: %w", ErrNullArgument)
	}

	var pending []pendingCustomization
	types := make([]reflect.Type, 0, len(params))
	for _, p := range params {
		if p.Type == nil {
			return fmt.Errorf("parameter %q: %w", p.Name, ErrNullArgument)
		}
		types = append(types, p.Type)
		for _, d := range p.Declarations {
			if d == nil {
				return fmt.Errorf("parameter %s: declaration: %w", p, ErrNullArgument)
			}
			pending = append(pending, pendingCustomization{decl: d, param: p})
		}
	}
	if len(pending) == 0 {
		return nil
	}

	// Interfaces reachable from any parameter take part in matching.
	f.Learn(types...)

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].decl.Priority() < pending[j].decl.Priority()
	})

	for _, pc := range pending {
		c, err := pc.decl.Customization(pc.param)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", pc.param, err)
		}
		if err := f.Customize(c); err != nil {
			return fmt.Errorf("parameter %s: %w", pc.param, err)
		}
	}
	return nil
}
