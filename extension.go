package autofixture

import "reflect"

// Extension provides hooks into a fixture's resolution, pinning and
// customization steps.
type Extension interface {
	// Name returns the extension's name
	Name() string

	// Order determines extension execution order (lower = earlier)
	Order() int

	// Init is called when the extension is registered to a fixture
	Init(f *Fixture) error

	// Wrap intercepts operations (resolve, pin, customize)
	Wrap(next func() (reflect.Value, error), op *Operation) (reflect.Value, error)

	// OnError is called when a top-level operation fails
	OnError(err error, op *Operation, f *Fixture)

	// Dispose is called when the fixture is disposed
	Dispose(f *Fixture) error
}

// BaseExtension provides default implementations for Extension methods
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Init(f *Fixture) error {
	return nil
}

func (e *BaseExtension) Wrap(next func() (reflect.Value, error), op *Operation) (reflect.Value, error) {
	return next()
}

func (e *BaseExtension) OnError(err error, op *Operation, f *Fixture) {
}

func (e *BaseExtension) Dispose(f *Fixture) error {
	return nil
}

// Operation describes what operation is happening
type Operation struct {
	Kind    OperationKind
	Type    reflect.Type
	Name    string
	Depth   int
	Fixture *Fixture
}

// OperationKind represents the type of operation
type OperationKind string

const (
	// OpResolve indicates a specimen request
	OpResolve OperationKind = "resolve"
	// OpPin indicates a type being pinned to an instance
	OpPin OperationKind = "pin"
	// OpCustomize indicates a customization being applied
	OpCustomize OperationKind = "customize"
)
